package shape

import (
	"log/slog"
	"strconv"

	"github.com/dtsforge/dtsforge/internal/diagnostics"
	"github.com/dtsforge/dtsforge/internal/ident"
	"github.com/dtsforge/dtsforge/internal/symbol"
	"github.com/dtsforge/dtsforge/internal/typeprint"
)

// ConformanceFinding records one failed interface claim, the input the
// honest-emission planner (§4.5.9) consumes to build a
// HonestEmissionPlan.
type ConformanceFinding struct {
	TypeId           ident.StableId
	TypeClrName      string
	InterfaceClrName string
	Reason           string
	IssueCount       int
}

// StructuralConformance checks, for every class/struct's claimed
// interfaces (already flattened by InterfaceInliner), whether the
// claiming type's own class-surface members structurally cover every
// inherited interface member: same name, same static-ness, and an
// identical canonical signature for methods or an identical rendered
// field type for properties. A claim that fails is removed from
// Implements and this pass synthesizes an ExplicitView instead, so
// the interface's shape survives as an accessor property rather than
// silently vanishing (§4.5.6). The returned findings feed the
// honest-emission planner.
func StructuralConformance(ctx *Context, g *symbol.Graph) (*symbol.Graph, []ConformanceFinding) {
	if ctx.Log.Enabled(slog.LevelDebug) {
		ctx.Log.Log(slog.LevelDebug, "shape phase start", slog.String("phase", "StructuralConformance"))
	}
	out := g
	var findings []ConformanceFinding
	for _, id := range g.TypeIds() {
		t, _ := g.Type(id)
		if t.Kind != symbol.KindClass && t.Kind != symbol.KindStruct {
			continue
		}
		if len(t.Implements) == 0 {
			continue
		}

		var keptImplements []symbol.TypeReference
		var views []symbol.ExplicitView
		usedViewNames := make(map[string]bool)

		for _, ifaceRef := range t.Implements {
			ifaceId, ifaceMembers, ok := resolveInterfaceMembers(g, ifaceRef)
			if !ok {
				keptImplements = append(keptImplements, ifaceRef)
				continue
			}

			missing, issueCount, conformant := checkConformance(t, ifaceMembers)
			if conformant {
				keptImplements = append(keptImplements, ifaceRef)
				continue
			}

			ctx.Sink.Report(diagnostics.Diagnostic{
				Severity: diagnostics.SeverityWarning,
				Code:     diagnostics.CodeUnsatisfiableInterface,
				Message:  "claimed interface " + string(ifaceId) + " is not structurally satisfied: " + missing,
				Type:     string(id),
			})
			if ctx.Log.Enabled(slog.LevelWarn) {
				ctx.Log.Log(slog.LevelWarn, "claimed interface not structurally satisfied",
					slog.String("type", string(id)), slog.String("interface", string(ifaceId)), slog.Int("issues", issueCount))
			}

			ifaceType, _ := g.Type(ifaceId)
			findings = append(findings, ConformanceFinding{
				TypeId:           id,
				TypeClrName:      t.ClrName,
				InterfaceClrName: ifaceType.ClrName,
				Reason:           missing,
				IssueCount:       issueCount,
			})

			viewName := uniqueViewName(ifaceId, g, usedViewNames)
			usedViewNames[viewName] = true

			var viewIds []ident.StableId
			for _, m := range ifaceMembers {
				clone := m.Clone()
				clone.StableId = ident.Member(t.Assembly, t.FullName, clone.ClrName, clone.CanonicalSignature+"@"+string(ifaceId))
				clone.EmitScope = symbol.ViewOnly
				ref := ifaceRef
				clone.SourceInterface = &ref
				clone.Provenance = symbol.Synthesized
				viewIds = append(viewIds, clone.StableId)
				out = out.WithType(id, func(cur symbol.TypeSymbol) symbol.TypeSymbol {
					cur.Members = append(append([]symbol.Member(nil), cur.Members...), clone)
					return cur
				})
			}

			views = append(views, symbol.ExplicitView{
				InterfaceRef:     ifaceRef,
				ViewPropertyName: viewName,
				ViewMembers:      viewIds,
			})
		}

		out = out.WithType(id, func(cur symbol.TypeSymbol) symbol.TypeSymbol {
			cur.Implements = keptImplements
			cur.ExplicitViews = append(append([]symbol.ExplicitView(nil), cur.ExplicitViews...), views...)
			return cur
		})
	}
	if ctx.Log.Enabled(slog.LevelInfo) {
		ctx.Log.Log(slog.LevelInfo, "structural conformance checked", slog.Int("findings", len(findings)))
	}
	if ctx.Log.Enabled(slog.LevelDebug) {
		ctx.Log.Log(slog.LevelDebug, "shape phase complete", slog.String("phase", "StructuralConformance"))
	}
	return out, findings
}

func resolveInterfaceMembers(g *symbol.Graph, ref symbol.TypeReference) (ident.StableId, []symbol.Member, bool) {
	named, ok := ref.(symbol.Named)
	if !ok {
		return "", nil, false
	}
	id := ident.Type(named.Assembly, named.FullName, len(named.TypeArgs))
	iface, ok := g.Type(id)
	if !ok || iface.Kind != symbol.KindInterface {
		return "", nil, false
	}
	return id, iface.Members, true
}

// checkConformance reports whether every member of ifaceMembers has a
// structural match among t's own class-surface members, and how many
// interface members fail to match.
func checkConformance(t symbol.TypeSymbol, ifaceMembers []symbol.Member) (string, int, bool) {
	issues := 0
	for _, im := range ifaceMembers {
		found := false
		for _, m := range t.Members {
			if m.EmitScope != symbol.ClassSurface || m.ClrName != im.ClrName || m.Static != im.Static {
				continue
			}
			switch im.Kind {
			case symbol.MemberMethod:
				if m.Kind == symbol.MemberMethod && m.CanonicalSignature == im.CanonicalSignature {
					found = true
				}
			case symbol.MemberProperty:
				if m.Kind == symbol.MemberProperty && typeprint.Render(m.FieldType) == typeprint.Render(im.FieldType) {
					found = true
				}
			default:
				if m.Kind == im.Kind {
					found = true
				}
			}
			if found {
				break
			}
		}
		if !found {
			issues++
		}
	}
	if issues > 0 {
		return ReasonMissingOrIncompatibleMembers, issues, false
	}
	return "", 0, true
}

// uniqueViewName derives "As_<InterfaceSimpleName>", disambiguated with
// a numeric suffix if a type claims more than one interface whose
// simple name collides after sanitization (§4.5.6).
func uniqueViewName(ifaceId ident.StableId, g *symbol.Graph, used map[string]bool) string {
	iface, _ := g.Type(ifaceId)
	base := "As_" + sanitizeSimpleName(iface.ClrName)
	if !used[base] {
		return base
	}
	for i := 1; ; i++ {
		candidate := base + "_" + strconv.Itoa(i)
		if !used[candidate] {
			return candidate
		}
	}
}

func sanitizeSimpleName(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return "View"
	}
	return string(out)
}
