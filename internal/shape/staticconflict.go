package shape

import (
	"log/slog"

	"github.com/dtsforge/dtsforge/internal/diagnostics"
	"github.com/dtsforge/dtsforge/internal/symbol"
)

// StaticConflictDetector finds, for every class with an in-graph base,
// derived static members whose signature differs from the base's
// same-named static: properties differing in type, methods with no
// identical-signature counterpart, or fields differing in type (§4.5.4).
// Suppressed members are omitted from the class surface by the emitter
// but preserved in metadata.
func StaticConflictDetector(ctx *Context, g *symbol.Graph) (*symbol.Graph, *StaticConflictPlan) {
	if ctx.Log.Enabled(slog.LevelDebug) {
		ctx.Log.Log(slog.LevelDebug, "shape phase start", slog.String("phase", "StaticConflictDetector"))
	}
	plan := NewStaticConflictPlan()
	suppressed := 0
	for _, id := range g.TypeIds() {
		t, _ := g.Type(id)
		if t.Kind != symbol.KindClass || t.Base == nil {
			continue
		}
		baseId, ok := classBaseId(g, t)
		if !ok {
			continue
		}
		baseT, ok := g.Type(baseId)
		if !ok {
			continue
		}
		baseByName := make(map[string][]symbol.Member)
		for _, m := range baseT.Members {
			if m.Static {
				baseByName[m.ClrName] = append(baseByName[m.ClrName], m)
			}
		}

		for _, m := range t.Members {
			if !m.Static {
				continue
			}
			baseMembers, ok := baseByName[m.ClrName]
			if !ok {
				continue
			}
			reason, conflict := staticConflictReason(m, baseMembers)
			if !conflict {
				continue
			}
			plan.suppress(id, m.StableId, reason)
			suppressed++
			ctx.Sink.Report(diagnostics.Diagnostic{
				Severity: diagnostics.SeverityWarning,
				Code:     diagnostics.CodeStaticFlattenConflict,
				Message:  "static member " + m.ClrName + " conflicts with base and is suppressed: " + reason,
				Type:     string(id),
				Member:   string(m.StableId),
			})
			if ctx.Log.Enabled(slog.LevelWarn) {
				ctx.Log.Log(slog.LevelWarn, "static member suppressed", slog.String("type", string(id)), slog.String("member", m.ClrName), slog.String("reason", reason))
			}
		}
	}
	if ctx.Log.Enabled(slog.LevelInfo) {
		ctx.Log.Log(slog.LevelInfo, "static conflicts resolved", slog.Int("suppressed", suppressed))
	}
	if ctx.Log.Enabled(slog.LevelDebug) {
		ctx.Log.Log(slog.LevelDebug, "shape phase complete", slog.String("phase", "StaticConflictDetector"))
	}
	return g, plan
}

func staticConflictReason(derived symbol.Member, baseMembers []symbol.Member) (string, bool) {
	switch derived.Kind {
	case symbol.MemberProperty:
		for _, b := range baseMembers {
			if b.Kind != symbol.MemberProperty {
				continue
			}
			if sameTypeRef(derived.FieldType, b.FieldType) {
				return "", false
			}
		}
		return ReasonPropertyTypeDiffers, true
	case symbol.MemberField:
		for _, b := range baseMembers {
			if b.Kind != symbol.MemberField {
				continue
			}
			if sameTypeRef(derived.FieldType, b.FieldType) {
				return "", false
			}
		}
		return ReasonFieldTypeDiffers, true
	case symbol.MemberMethod:
		for _, b := range baseMembers {
			if b.Kind == symbol.MemberMethod && b.CanonicalSignature == derived.CanonicalSignature {
				return "", false
			}
		}
		return ReasonNoIdenticalSignature, true
	default:
		return "", false
	}
}

func sameTypeRef(a, b symbol.TypeReference) bool {
	sa := symbol.CanonicalSignature(symbol.MemberField, false, 0, nil, a, a != nil)
	sb := symbol.CanonicalSignature(symbol.MemberField, false, 0, nil, b, b != nil)
	return sa == sb
}
