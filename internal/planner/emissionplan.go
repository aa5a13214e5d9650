package planner

import (
	"log/slog"

	"github.com/dtsforge/dtsforge/internal/diagnostics"
	"github.com/dtsforge/dtsforge/internal/renamer"
	"github.com/dtsforge/dtsforge/internal/shape"
	"github.com/dtsforge/dtsforge/internal/symbol"
)

// EmissionPlan aggregates the rewritten graph with every C5 shape-pass
// plan and the C6 import/export/bucket/type-name-resolution data the
// emitter needs, mirroring the teacher's resolverContext's role as the
// single object the final dump step reads from.
type EmissionPlan struct {
	Graph   *symbol.Graph
	Renamer *renamer.Renamer
	Shape   shape.Result

	Imports    ImportPlan
	Exports    ExportPlan
	ValueNames ValueImportQualifiedNames
	Buckets    *BucketPlan
}

// Build runs the C6 emission-planning step: import/export discovery,
// SCC bucketing of namespace import cycles, and packages everything
// from a completed C5 shape.Result plus a populated Renamer into one
// EmissionPlan. log receives phase-start/phase-complete at Debug and
// plan-size counts at Info, mirroring the logging the shape passes
// perform through their own Context.
func Build(shapeResult shape.Result, r *renamer.Renamer, log diagnostics.Logger) *EmissionPlan {
	if log.Enabled(slog.LevelDebug) {
		log.Log(slog.LevelDebug, "planner phase start", slog.String("phase", "BuildImportPlan"))
	}
	imports, exports, valueNames, deps := BuildImportPlan(shapeResult.Graph, r)
	if log.Enabled(slog.LevelDebug) {
		log.Log(slog.LevelDebug, "planner phase complete", slog.String("phase", "BuildImportPlan"))
	}

	if log.Enabled(slog.LevelDebug) {
		log.Log(slog.LevelDebug, "planner phase start", slog.String("phase", "BuildBucketPlan"))
	}
	buckets := BuildBucketPlan(deps)
	before := countImports(imports)
	imports = buckets.FilterIntraBucketImports(imports)
	if log.Enabled(slog.LevelDebug) {
		log.Log(slog.LevelDebug, "planner phase complete", slog.String("phase", "BuildBucketPlan"))
	}

	if log.Enabled(slog.LevelInfo) {
		log.Log(slog.LevelInfo, "emission plan built",
			slog.Int("namespaces", len(shapeResult.Graph.Namespaces())),
			slog.Int("import_cycle_buckets", len(buckets.Buckets)),
			slog.Int("intra_bucket_imports_filtered", before-countImports(imports)))
	}

	return &EmissionPlan{
		Graph:      shapeResult.Graph,
		Renamer:    r,
		Shape:      shapeResult,
		Imports:    imports,
		Exports:    exports,
		ValueNames: valueNames,
		Buckets:    buckets,
	}
}

func countImports(p ImportPlan) int {
	n := 0
	for _, stmts := range p {
		n += len(stmts)
	}
	return n
}

// Resolver returns a TypeNameResolver scoped to namespace.
func (p *EmissionPlan) Resolver(namespace string) *TypeNameResolver {
	return NewTypeNameResolver(p.Graph, p.Renamer, p.ValueNames, namespace)
}
