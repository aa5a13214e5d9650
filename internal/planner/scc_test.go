package planner

import (
	"testing"

	"github.com/dtsforge/dtsforge/internal/graph"
)

func TestFilterIntraBucketImportsSuppressesCyclicImports(t *testing.T) {
	deps := graph.New()
	deps.AddEdge("A", "B")
	deps.AddEdge("B", "C")
	deps.AddEdge("C", "A")
	bp := BuildBucketPlan(deps)

	if len(bp.Buckets) != 1 || len(bp.Buckets[0].Namespaces) != 3 {
		t.Fatalf("expected one 3-namespace bucket, got %+v", bp.Buckets)
	}

	imports := ImportPlan{
		"A": {{TargetNamespace: "B"}},
		"B": {{TargetNamespace: "C"}},
		"C": {{TargetNamespace: "A"}},
	}
	filtered := bp.FilterIntraBucketImports(imports)
	if len(filtered) != 0 {
		t.Errorf("expected all intra-bucket imports suppressed, got %+v", filtered)
	}
}

func TestFilterIntraBucketImportsKeepsCrossBucketImports(t *testing.T) {
	deps := graph.New()
	deps.AddEdge("App", "Lib")
	bp := BuildBucketPlan(deps)

	imports := ImportPlan{"App": {{TargetNamespace: "Lib"}}}
	filtered := bp.FilterIntraBucketImports(imports)
	if len(filtered["App"]) != 1 {
		t.Errorf("expected the App->Lib import kept, got %+v", filtered)
	}
}
