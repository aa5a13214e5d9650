package symbol

import "github.com/dtsforge/dtsforge/internal/ident"

// Namespace is an ordered set of types under a dotted name. An empty
// name denotes the root (global) namespace, which has distinct
// emission rules (see planner/emissionplan.go and spec.md §6).
type Namespace struct {
	Name                string
	Types               []ident.StableId // insertion order
	ContributingAssemblies []string
}

// IsRoot reports whether this is the global namespace.
func (n Namespace) IsRoot() bool { return n.Name == "" }
