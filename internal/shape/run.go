package shape

import "github.com/dtsforge/dtsforge/internal/symbol"

// Result aggregates the rewritten graph with every shape-pass plan
// output, the input the emission planner (C6) consumes alongside the
// graph itself.
type Result struct {
	Graph             *symbol.Graph
	StaticFlattening  *StaticFlatteningPlan
	StaticConflicts   *StaticConflictPlan
	PropertyOverrides *PropertyOverridePlan
	ExtensionBuckets  []ExtensionBucket
	HonestEmission    *HonestEmissionPlan
}

// Run executes every pass in the fixed order of §4.5, threading a
// single Context and accumulating each pass's plan output alongside
// the progressively rewritten graph.
func Run(ctx *Context, g *symbol.Graph) Result {
	g = InterfaceInliner(ctx, g)
	g = BaseOverloadAdder(ctx, g)

	g, staticFlattening := StaticHierarchyFlattener(ctx, g)
	g, staticConflicts := StaticConflictDetector(ctx, g)
	g, propertyOverrides := PropertyOverrideUnifier(ctx, g)

	g, findings := StructuralConformance(ctx, g)
	g = DiamondResolver(ctx, g)

	extensionBuckets := ExtensionBucketer(ctx, g)
	honestEmission := HonestEmissionPlanner(ctx, findings)

	return Result{
		Graph:             g,
		StaticFlattening:  staticFlattening,
		StaticConflicts:   staticConflicts,
		PropertyOverrides: propertyOverrides,
		ExtensionBuckets:  extensionBuckets,
		HonestEmission:    honestEmission,
	}
}
