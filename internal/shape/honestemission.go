package shape

import (
	"cmp"
	"log/slog"
	"slices"
)

// HonestEmissionPlanner consumes StructuralConformance's findings and
// groups them per claiming type, so the emitter can both omit the
// unsatisfiable interface from the implements clause and record the
// omission in metadata (§4.5.9). Findings for the same type are sorted
// by interface CLR name for deterministic metadata output.
func HonestEmissionPlanner(ctx *Context, findings []ConformanceFinding) *HonestEmissionPlan {
	if ctx.Log.Enabled(slog.LevelDebug) {
		ctx.Log.Log(slog.LevelDebug, "shape phase start", slog.String("phase", "HonestEmissionPlanner"))
	}
	plan := NewHonestEmissionPlan()
	for _, f := range findings {
		plan.UnsatisfiableInterfaces[f.TypeId] = append(plan.UnsatisfiableInterfaces[f.TypeId], UnsatisfiableInterface{
			InterfaceClrName: f.InterfaceClrName,
			Reason:           f.Reason,
			IssueCount:       f.IssueCount,
		})
	}
	for id := range plan.UnsatisfiableInterfaces {
		slices.SortFunc(plan.UnsatisfiableInterfaces[id], func(a, b UnsatisfiableInterface) int {
			return cmp.Compare(a.InterfaceClrName, b.InterfaceClrName)
		})
	}
	if ctx.Log.Enabled(slog.LevelInfo) {
		ctx.Log.Log(slog.LevelInfo, "honest emission plan built", slog.Int("types_with_unsatisfiable_interfaces", len(plan.UnsatisfiableInterfaces)))
	}
	if ctx.Log.Enabled(slog.LevelDebug) {
		ctx.Log.Log(slog.LevelDebug, "shape phase complete", slog.String("phase", "HonestEmissionPlanner"))
	}
	return plan
}
