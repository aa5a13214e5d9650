package graph

import "testing"

func TestFindSCCsBucketsThreeWayImportCycle(t *testing.T) {
	g := New()
	g.AddEdge("A", "B")
	g.AddEdge("B", "C")
	g.AddEdge("C", "A")

	sccs := g.FindSCCs()
	if len(sccs) != 1 {
		t.Fatalf("expected exactly one bucket, got %d: %v", len(sccs), sccs)
	}
	want := []string{"A", "B", "C"}
	got := sccs[0]
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestTopologicalOrderRespectsImportDirection(t *testing.T) {
	g := New()
	g.AddEdge("App", "Lib")
	g.AddEdge("Lib", "Core")

	order, cyclic := g.TopologicalOrder()
	if len(cyclic) != 0 {
		t.Fatalf("expected no cycles, got %v", cyclic)
	}
	pos := make(map[string]int, len(order))
	for i, n := range order {
		pos[n] = i
	}
	if pos["App"] >= pos["Lib"] || pos["Lib"] >= pos["Core"] {
		t.Errorf("expected App before Lib before Core, got %v", order)
	}
}

func TestHasCyclesFalseForAcyclicGraph(t *testing.T) {
	g := New()
	g.AddEdge("X", "Y")
	if g.HasCycles() {
		t.Error("expected no cycles")
	}
}
