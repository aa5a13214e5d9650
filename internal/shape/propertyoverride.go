package shape

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/dtsforge/dtsforge/internal/diagnostics"
	"github.com/dtsforge/dtsforge/internal/ident"
	"github.com/dtsforge/dtsforge/internal/symbol"
	"github.com/dtsforge/dtsforge/internal/typeprint"
)

// PropertyOverrideUnifier walks every class's ancestor chain and, for
// properties re-declared at more than one level under the same name,
// computes the sorted union of the distinct rendered types seen across
// the chain (§4.5.5). The union is recorded in a PropertyOverridePlan
// entry for every level that redeclares the property; the emitter
// widens the property's declared type to the union rather than the
// narrowest level's type, so a derived-type narrowing covariant
// override still type-checks against the base declaration.
//
// A property whose type at any level mentions a generic parameter
// outside the set owned by that level's own type declaration is left
// alone: unioning across disjoint generic scopes has no sound
// structural rendering, so the pass reports
// CodePropertyUnionSkippedGeneric and skips that property entirely.
func PropertyOverrideUnifier(ctx *Context, g *symbol.Graph) (*symbol.Graph, *PropertyOverridePlan) {
	if ctx.Log.Enabled(slog.LevelDebug) {
		ctx.Log.Log(slog.LevelDebug, "shape phase start", slog.String("phase", "PropertyOverrideUnifier"))
	}
	plan := NewPropertyOverridePlan()
	unified := 0

	for _, id := range g.TypeIds() {
		t, _ := g.Type(id)
		if t.Kind != symbol.KindClass {
			continue
		}
		chain := ancestorChain(g, id)
		if len(chain) < 2 {
			continue
		}

		byName := make(map[string][]chainProperty)
		for _, levelId := range chain {
			level, ok := g.Type(levelId)
			if !ok {
				continue
			}
			allowed := ownGenericPositions(level)
			for _, m := range level.Members {
				if m.Kind != symbol.MemberProperty || m.Static || len(m.IndexParams) > 0 {
					continue
				}
				byName[m.ClrName] = append(byName[m.ClrName], chainProperty{
					typeId:   levelId,
					propId:   m.StableId,
					rendered: typeprint.Render(m.FieldType),
					disjoint: typeprint.ContainsGenericParamFromDisjointScope(m.FieldType, allowed),
				})
			}
		}

		names := make([]string, 0, len(byName))
		for name := range byName {
			names = append(names, name)
		}
		slices.Sort(names)

		for _, name := range names {
			levels := byName[name]
			if len(levels) < 2 {
				continue
			}
			if slices.ContainsFunc(levels, func(p chainProperty) bool { return p.disjoint }) {
				ctx.Sink.Report(diagnostics.Diagnostic{
					Severity: diagnostics.SeverityWarning,
					Code:     diagnostics.CodePropertyUnionSkippedGeneric,
					Message:  "property " + name + " spans a disjoint generic scope across the inheritance chain; union skipped",
					Type:     string(id),
				})
				if ctx.Log.Enabled(slog.LevelWarn) {
					ctx.Log.Log(slog.LevelWarn, "property union skipped, disjoint generic scope", slog.String("type", string(id)), slog.String("property", name))
				}
				continue
			}

			distinct := make(map[string]bool)
			for _, l := range levels {
				distinct[l.rendered] = true
			}
			rendered := make([]string, 0, len(distinct))
			for r := range distinct {
				rendered = append(rendered, r)
			}
			slices.Sort(rendered)
			union := strings.Join(rendered, " | ")

			unified++
			for _, l := range levels {
				plan.set(l.typeId, l.propId, union)
			}
		}
	}

	if ctx.Log.Enabled(slog.LevelInfo) {
		ctx.Log.Log(slog.LevelInfo, "property overrides unified", slog.Int("count", unified))
	}
	if ctx.Log.Enabled(slog.LevelDebug) {
		ctx.Log.Log(slog.LevelDebug, "shape phase complete", slog.String("phase", "PropertyOverrideUnifier"))
	}
	return g, plan
}

type chainProperty struct {
	typeId   ident.StableId
	propId   ident.StableId
	rendered string
	disjoint bool
}

// ancestorChain returns id followed by its in-graph base chain,
// most-derived first.
func ancestorChain(g *symbol.Graph, id ident.StableId) []ident.StableId {
	out := []ident.StableId{id}
	cur, ok := g.Type(id)
	if !ok {
		return out
	}
	for cur.Base != nil {
		baseId, ok := classBaseId(g, cur)
		if !ok {
			break
		}
		out = append(out, baseId)
		cur, ok = g.Type(baseId)
		if !ok {
			break
		}
	}
	return out
}

// ownGenericPositions returns the set of generic parameter positions
// declared directly by t (not inherited), the scope a property
// declared on t is allowed to reference.
func ownGenericPositions(t symbol.TypeSymbol) map[int]bool {
	allowed := make(map[int]bool, len(t.GenericParameters))
	for i := range t.GenericParameters {
		allowed[i] = true
	}
	return allowed
}
