package graph

import "slices"

// TopologicalOrder returns namespaces ordered with each namespace
// before every namespace it imports — importers first, their imports
// later — using Kahn's algorithm over the "depends on" edge set. Ties
// (nodes simultaneously ready) are broken lexicographically for
// determinism. If the graph contains a cycle, cyclic lists every
// namespace left over once no more zero-in-degree nodes remain: the
// cycle members and every namespace they import, directly or
// transitively. order holds the rest.
func (g *Graph) TopologicalOrder() (order []string, cyclic []string) {
	inDegree := make(map[string]int)
	for _, n := range g.Nodes() {
		inDegree[n] = 0
	}
	for _, deps := range g.edges {
		for _, dep := range deps {
			inDegree[dep]++
		}
	}

	var ready []string
	for _, n := range g.Nodes() {
		if inDegree[n] == 0 {
			ready = append(ready, n)
		}
	}
	slices.Sort(ready)

	for len(ready) > 0 {
		n := ready[0]
		ready = ready[1:]
		order = append(order, n)

		var newlyReady []string
		for _, dep := range g.Edges(n) {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				newlyReady = append(newlyReady, dep)
			}
		}
		slices.Sort(newlyReady)
		ready = append(ready, newlyReady...)
		slices.Sort(ready)
	}

	for _, n := range g.Nodes() {
		if inDegree[n] > 0 {
			cyclic = append(cyclic, n)
		}
	}
	return order, cyclic
}
