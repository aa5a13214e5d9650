// Package symbol implements the immutable symbol graph (C1): namespaces,
// types, members, type references, and stable identifiers. The model is
// purely data; no behavior beyond structural queries lives here. All
// graph mutation happens through Graph.WithType, which returns a new
// Graph value rather than mutating in place, matching the teacher's
// mib.Mib/mib.Builder split (an immutable container built incrementally,
// then frozen) generalized to support repeated pure rewrites instead of
// a single build-then-freeze step.
package symbol

import (
	"cmp"
	"slices"

	"github.com/dtsforge/dtsforge/internal/ident"
)

// Graph is a namespace list plus a TypeIndex (StableId -> TypeSymbol).
// Every exported method returns data; none mutate receiver state after
// construction via New/WithType.
type Graph struct {
	namespaces []Namespace
	nsIndex    map[string]int // Namespace.Name -> index into namespaces
	types      map[ident.StableId]TypeSymbol
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{nsIndex: make(map[string]int), types: make(map[ident.StableId]TypeSymbol)}
}

// Namespaces returns all namespaces in insertion order.
func (g *Graph) Namespaces() []Namespace {
	out := make([]Namespace, len(g.namespaces))
	copy(out, g.namespaces)
	return out
}

// Namespace returns the namespace with the given name, and whether it
// exists.
func (g *Graph) Namespace(name string) (Namespace, bool) {
	i, ok := g.nsIndex[name]
	if !ok {
		return Namespace{}, false
	}
	return g.namespaces[i], true
}

// Type returns the type with the given StableId, and whether it exists.
func (g *Graph) Type(id ident.StableId) (TypeSymbol, bool) {
	t, ok := g.types[id]
	return t, ok
}

// MustType returns the type with the given StableId, panicking if it
// does not exist. Rewrite passes use this once a reference has already
// been validated to resolve in-graph, so a missing entry indicates a
// pass bug (§7: hard-error situations are asserted).
func (g *Graph) MustType(id ident.StableId) TypeSymbol {
	t, ok := g.types[id]
	if !ok {
		panic("symbol: MustType: unknown StableId " + string(id))
	}
	return t
}

// TypeIds returns every StableId in the index, sorted, for deterministic
// iteration by passes (§4.4).
func (g *Graph) TypeIds() []ident.StableId {
	out := make([]ident.StableId, 0, len(g.types))
	for id := range g.types {
		out = append(out, id)
	}
	slices.SortFunc(out, func(a, b ident.StableId) int { return cmp.Compare(a, b) })
	return out
}

// Types returns every TypeSymbol, sorted by StableId.
func (g *Graph) Types() []TypeSymbol {
	ids := g.TypeIds()
	out := make([]TypeSymbol, len(ids))
	for i, id := range ids {
		out[i] = g.types[id]
	}
	return out
}

// clone returns a shallow copy of g whose top-level maps/slices are
// fresh, so the receiver is never mutated by a WithType/WithNamespace
// call.
func (g *Graph) clone() *Graph {
	ng := &Graph{
		namespaces: append([]Namespace(nil), g.namespaces...),
		nsIndex:    make(map[string]int, len(g.nsIndex)),
		types:      make(map[ident.StableId]TypeSymbol, len(g.types)),
	}
	for k, v := range g.nsIndex {
		ng.nsIndex[k] = v
	}
	for k, v := range g.types {
		ng.types[k] = v
	}
	return ng
}

// WithType returns a new Graph in which the type identified by id has
// been replaced by fn's result. If id is not present, fn receives the
// zero TypeSymbol and the result is inserted (used by passes that
// synthesize new types, e.g. extension-method bucket interfaces).
// This is the sole mutation primitive for type data (§4.1).
func (g *Graph) WithType(id ident.StableId, fn func(TypeSymbol) TypeSymbol) *Graph {
	ng := g.clone()
	current := ng.types[id]
	ng.types[id] = fn(current)
	return ng
}

// WithNewType returns a new Graph with t inserted into both the type
// index and its namespace's type list. Used by loaders and by passes
// that synthesize wholly new types (extension buckets, views promoted
// to standalone interfaces).
func (g *Graph) WithNewType(t TypeSymbol) *Graph {
	ng := g.clone()
	ng.types[t.StableId] = t
	i, ok := ng.nsIndex[t.Namespace]
	if !ok {
		ng.nsIndex[t.Namespace] = len(ng.namespaces)
		ng.namespaces = append(ng.namespaces, Namespace{Name: t.Namespace})
		i = len(ng.namespaces) - 1
	}
	ns := ng.namespaces[i]
	if !slices.Contains(ns.Types, t.StableId) {
		ns.Types = append(append([]ident.StableId(nil), ns.Types...), t.StableId)
	}
	ng.namespaces[i] = ns
	return ng
}

// WithNamespace returns a new Graph with the namespace named name
// replaced by fn's result (creating it if absent). Used by planners to
// attach per-namespace contributing-assembly data.
func (g *Graph) WithNamespace(name string, fn func(Namespace) Namespace) *Graph {
	ng := g.clone()
	i, ok := ng.nsIndex[name]
	if !ok {
		ng.nsIndex[name] = len(ng.namespaces)
		ng.namespaces = append(ng.namespaces, fn(Namespace{Name: name}))
		return ng
	}
	ng.namespaces[i] = fn(ng.namespaces[i])
	return ng
}

// RemoveType returns a new Graph with id removed from the index and
// from its namespace's type list. Used only by the final adaptation of
// types dropped entirely (none in the current pass set; kept for
// symmetry with WithNewType and for library-mode filtering in §6).
func (g *Graph) RemoveType(id ident.StableId) *Graph {
	ng := g.clone()
	t, ok := ng.types[id]
	if !ok {
		return ng
	}
	delete(ng.types, id)
	if i, ok := ng.nsIndex[t.Namespace]; ok {
		ns := ng.namespaces[i]
		ns.Types = slices.DeleteFunc(append([]ident.StableId(nil), ns.Types...), func(x ident.StableId) bool { return x == id })
		ng.namespaces[i] = ns
	}
	return ng
}
