package graph

import "slices"

// FindSCCs returns every strongly connected component of size greater
// than one, plus every single namespace that imports itself, found via
// Tarjan's algorithm, each sorted and the overall
// list sorted by first member for deterministic bucket ordering
// (§4.6's SCCBucketing: "within each bucket namespaces are listed in
// sorted order").
func (g *Graph) FindSCCs() [][]string {
	var (
		index    int
		stack    []string
		onStack  = make(map[string]bool)
		indices  = make(map[string]int)
		lowlinks = make(map[string]int)
		sccs     [][]string
	)

	var strongConnect func(n string)
	strongConnect = func(n string) {
		indices[n] = index
		lowlinks[n] = index
		index++
		stack = append(stack, n)
		onStack[n] = true

		for _, dep := range g.edges[n] {
			if _, visited := indices[dep]; !visited {
				strongConnect(dep)
				lowlinks[n] = min(lowlinks[n], lowlinks[dep])
			} else if onStack[dep] {
				lowlinks[n] = min(lowlinks[n], indices[dep])
			}
		}

		if lowlinks[n] == indices[n] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == n {
					break
				}
			}
			if len(scc) > 1 {
				slices.Sort(scc)
				sccs = append(sccs, scc)
			} else if len(scc) == 1 {
				for _, dep := range g.edges[scc[0]] {
					if dep == scc[0] {
						sccs = append(sccs, scc)
						break
					}
				}
			}
		}
	}

	for _, n := range g.Nodes() {
		if _, visited := indices[n]; !visited {
			strongConnect(n)
		}
	}

	slices.SortFunc(sccs, func(a, b []string) int {
		if len(a) == 0 || len(b) == 0 {
			return len(a) - len(b)
		}
		if a[0] < b[0] {
			return -1
		}
		if a[0] > b[0] {
			return 1
		}
		return 0
	})
	return sccs
}

// HasCycles reports whether the graph contains any import cycle.
func (g *Graph) HasCycles() bool {
	return len(g.FindSCCs()) > 0
}
