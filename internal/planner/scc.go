package planner

import "github.com/dtsforge/dtsforge/internal/graph"

// Bucket is one strongly-connected component of the namespace import
// graph, or (for singleton namespaces outside any cycle) not present
// at all — InBucket reports false for those. Namespaces are listed in
// sorted order within the bucket (§4.6's SCCBucketing).
type Bucket struct {
	Namespaces []string
}

// BucketPlan assigns namespaces to import-cycle buckets.
type BucketPlan struct {
	Buckets   []Bucket
	bucketIdx map[string]int
}

// BuildBucketPlan decomposes deps into strongly-connected components
// via Tarjan's algorithm. Each non-singleton SCC, and each namespace
// that imports itself, becomes one bucket.
func BuildBucketPlan(deps *graph.Graph) *BucketPlan {
	sccs := deps.FindSCCs()
	bp := &BucketPlan{bucketIdx: make(map[string]int)}
	for _, scc := range sccs {
		idx := len(bp.Buckets)
		bp.Buckets = append(bp.Buckets, Bucket{Namespaces: scc})
		for _, ns := range scc {
			bp.bucketIdx[ns] = idx
		}
	}
	return bp
}

// SameBucket reports whether a and b belong to the same import-cycle
// bucket (both false if either is not in any bucket).
func (bp *BucketPlan) SameBucket(a, b string) bool {
	ia, ok1 := bp.bucketIdx[a]
	ib, ok2 := bp.bucketIdx[b]
	return ok1 && ok2 && ia == ib
}

// FilterIntraBucketImports removes import statements whose target
// namespace shares a bucket with the importing namespace: per §4.6,
// "circular imports within a bucket become intra-bucket references (no
// import statement)".
func (bp *BucketPlan) FilterIntraBucketImports(imports ImportPlan) ImportPlan {
	out := make(ImportPlan, len(imports))
	for src, stmts := range imports {
		var kept []ImportStatement
		for _, s := range stmts {
			if bp.SameBucket(src, s.TargetNamespace) {
				continue
			}
			kept = append(kept, s)
		}
		if len(kept) > 0 {
			out[src] = kept
		}
	}
	return out
}
