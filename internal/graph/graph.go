// Package graph provides the namespace-import dependency graph and its
// strongly-connected-component decomposition used by the emission
// planner (C6, §4.6) to break import cycles into buckets.
package graph

import (
	"slices"
)

// Graph is a directed graph of namespace names with forward edges
// ("imports from").
type Graph struct {
	nodes map[string]bool
	edges map[string][]string
}

// New creates an empty namespace dependency graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]bool), edges: make(map[string][]string)}
}

// AddNode registers a namespace, if not already present.
func (g *Graph) AddNode(namespace string) {
	g.nodes[namespace] = true
}

// AddEdge records that namespace "from" imports from namespace "to".
// Missing nodes are created implicitly. Duplicate edges are silently
// deduplicated.
func (g *Graph) AddEdge(from, to string) {
	g.nodes[from] = true
	g.nodes[to] = true
	if slices.Contains(g.edges[from], to) {
		return
	}
	g.edges[from] = append(g.edges[from], to)
}

// Nodes returns every registered namespace, sorted.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Edges returns namespace "from"'s import targets, sorted.
func (g *Graph) Edges(from string) []string {
	out := append([]string(nil), g.edges[from]...)
	slices.Sort(out)
	return out
}

// HasNode reports whether namespace is registered.
func (g *Graph) HasNode(namespace string) bool {
	return g.nodes[namespace]
}
