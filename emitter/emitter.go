// Package emitter ships the C8 reference implementation: a contract
// (Emitter) plus one concrete emitter (FileEmitter) that writes the §6
// output layout to disk. The emitter never renames and never makes
// naming decisions; every identifier it writes comes from the
// EmissionPlan's Renamer/TypeNameResolver.
package emitter

import "github.com/dtsforge/dtsforge/internal/planner"

// Emitter consumes a completed EmissionPlan and produces target-language
// artifacts. This is the C8 contract; FileEmitter below is the one
// reference implementation dtsforge ships.
type Emitter interface {
	Emit(plan *planner.EmissionPlan) error
}
