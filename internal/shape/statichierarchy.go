package shape

import (
	"log/slog"

	"github.com/dtsforge/dtsforge/internal/ident"
	"github.com/dtsforge/dtsforge/internal/symbol"
)

// StaticHierarchyFlattener identifies static-only classes (no instance
// members, at least one static member) and, where one extends another
// static-only class in-graph, marks the derived class for extends
// suppression and records the complete set of ancestor static members to
// be emitted directly on it (§4.5.3). This does not mutate the graph: it
// produces a StaticFlatteningPlan consumed by the emission planner,
// because suppressing "extends" is an emission-shape decision, not a
// change to the class's own declared member list.
func StaticHierarchyFlattener(ctx *Context, g *symbol.Graph) (*symbol.Graph, *StaticFlatteningPlan) {
	if ctx.Log.Enabled(slog.LevelDebug) {
		ctx.Log.Log(slog.LevelDebug, "shape phase start", slog.String("phase", "StaticHierarchyFlattener"))
	}
	plan := NewStaticFlatteningPlan()
	for _, id := range g.TypeIds() {
		t, _ := g.Type(id)
		if t.Kind != symbol.KindClass || !t.HasOnlyStaticMembers() || t.Base == nil {
			continue
		}
		baseId, ok := classBaseId(g, t)
		if !ok {
			continue
		}
		baseT, ok := g.Type(baseId)
		if !ok || !baseT.HasOnlyStaticMembers() {
			continue
		}

		plan.Flatten[id] = true
		plan.InheritedStatics[id] = collectAncestorStatics(g, baseId)
	}
	if ctx.Log.Enabled(slog.LevelInfo) {
		ctx.Log.Log(slog.LevelInfo, "static hierarchies flattened", slog.Int("count", len(plan.Flatten)))
	}
	if ctx.Log.Enabled(slog.LevelDebug) {
		ctx.Log.Log(slog.LevelDebug, "shape phase complete", slog.String("phase", "StaticHierarchyFlattener"))
	}
	return g, plan
}

func collectAncestorStatics(g *symbol.Graph, baseId ident.StableId) StaticMemberSet {
	var set StaticMemberSet
	for id := baseId; id != ""; {
		t, ok := g.Type(id)
		if !ok {
			break
		}
		for _, m := range t.Members {
			if !m.Static {
				continue
			}
			switch m.Kind {
			case symbol.MemberMethod:
				set.Methods = append(set.Methods, m.StableId)
			case symbol.MemberProperty:
				set.Properties = append(set.Properties, m.StableId)
			case symbol.MemberField:
				set.Fields = append(set.Fields, m.StableId)
			}
		}
		if t.Base == nil {
			break
		}
		nextId, ok := classBaseId(g, t)
		if !ok {
			break
		}
		id = nextId
	}
	return set
}
