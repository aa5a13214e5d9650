package shape

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/dtsforge/dtsforge/internal/diagnostics"
	"github.com/dtsforge/dtsforge/internal/ident"
	"github.com/dtsforge/dtsforge/internal/symbol"
)

// InterfaceInliner flattens interface inheritance (§4.5.1). For every
// interface it computes the transitive closure over base interfaces,
// substitutes generic arguments along each extension edge, unions all
// inherited members, deduplicates by name plus canonical signature (by
// name alone for properties, except indexers which dedup by name plus
// full signature), and
// clears the interface's direct-bases list.
func InterfaceInliner(ctx *Context, g *symbol.Graph) *symbol.Graph {
	if ctx.Log.Enabled(slog.LevelDebug) {
		ctx.Log.Log(slog.LevelDebug, "shape phase start", slog.String("phase", "InterfaceInliner"))
	}
	out := g
	flattened := 0
	for _, id := range g.TypeIds() {
		t, _ := g.Type(id)
		if t.Kind != symbol.KindInterface {
			continue
		}
		members, ok := inlineInterface(ctx, g, id, nil)
		if !ok {
			// Leave the interface untouched; a later pass or PhaseGate
			// will surface the underlying problem (§7: return the
			// graph unchanged rather than partially rewritten).
			continue
		}
		flattened++
		out = out.WithType(id, func(cur symbol.TypeSymbol) symbol.TypeSymbol {
			cur.Members = members
			cur.Implements = nil
			return cur
		})
	}
	if ctx.Log.Enabled(slog.LevelInfo) {
		ctx.Log.Log(slog.LevelInfo, "interface hierarchies flattened", slog.Int("count", flattened))
	}
	if ctx.Log.Enabled(slog.LevelDebug) {
		ctx.Log.Log(slog.LevelDebug, "shape phase complete", slog.String("phase", "InterfaceInliner"))
	}
	return out
}

// inlineInterface returns the deduplicated, substituted member union for
// interface id's transitive closure. visiting guards against cyclic
// interface inheritance (malformed input metadata); a cycle is reported
// and the call fails closed.
func inlineInterface(ctx *Context, g *symbol.Graph, id ident.StableId, visiting []ident.StableId) ([]symbol.Member, bool) {
	if slices.Contains(visiting, id) {
		ctx.Sink.Report(diagnostics.Diagnostic{
			Severity: diagnostics.SeverityError,
			Code:     diagnostics.CodeInterfaceDuplicateMember,
			Message:  "cyclic interface inheritance detected at " + string(id),
			Type:     string(id),
		})
		if ctx.Log.Enabled(slog.LevelWarn) {
			ctx.Log.Log(slog.LevelWarn, "cyclic interface inheritance", slog.String("type", string(id)))
		}
		return nil, false
	}
	visiting = append(visiting, id)

	t, ok := g.Type(id)
	if !ok {
		return nil, false
	}

	var all []symbol.Member
	for _, decl := range t.Members {
		all = append(all, decl)
	}

	for _, baseRef := range t.Implements {
		baseId, subst, ok := resolveAndSubstitution(g, t, baseRef)
		if !ok {
			continue
		}
		inherited, ok := inlineInterface(ctx, g, baseId, visiting)
		if !ok {
			continue
		}
		for _, m := range inherited {
			all = append(all, substituteMember(m, subst))
		}
	}

	return dedupeInterfaceMembers(all), true
}

// resolveAndSubstitution resolves a direct-bases TypeReference to its
// StableId plus the generic-parameter substitution map implied by the
// extension edge's type arguments. Substitution composes along the
// chain: a grandparent's params are first substituted according to the
// parent's extension of it, then the parent's own params are substituted
// according to the child's extension of the parent (parent ∘ current).
func resolveAndSubstitution(g *symbol.Graph, owner symbol.TypeSymbol, ref symbol.TypeReference) (ident.StableId, map[int]symbol.TypeReference, bool) {
	named, ok := ref.(symbol.Named)
	if !ok {
		return "", nil, false
	}
	baseId := ident.Type(named.Assembly, named.FullName, len(named.TypeArgs))
	if _, ok := g.Type(baseId); !ok {
		return "", nil, false
	}
	subst := make(map[int]symbol.TypeReference, len(named.TypeArgs))
	for i, arg := range named.TypeArgs {
		subst[i] = arg
	}
	return baseId, subst, true
}

// substituteMember rewrites type-level generic parameter references in
// m's signature according to subst. Method-level generic parameters
// (GenericParam{Owner: OwnerMethod}) are never substituted by a
// type-level map (§4.5.1).
func substituteMember(m symbol.Member, subst map[int]symbol.TypeReference) symbol.Member {
	out := m.Clone()
	for i := range out.Parameters {
		out.Parameters[i].Type = substituteRef(out.Parameters[i].Type, subst)
	}
	if out.HasReturn {
		out.ReturnType = substituteRef(out.ReturnType, subst)
	}
	if out.FieldType != nil {
		out.FieldType = substituteRef(out.FieldType, subst)
	}
	out.Provenance = symbol.FromInterface
	return out
}

func substituteRef(ref symbol.TypeReference, subst map[int]symbol.TypeReference) symbol.TypeReference {
	switch t := ref.(type) {
	case symbol.GenericParam:
		if t.Owner == symbol.OwnerType {
			if replacement, ok := subst[t.Position]; ok {
				return replacement
			}
		}
		return t
	case symbol.Named:
		if len(t.TypeArgs) == 0 {
			return t
		}
		args := make([]symbol.TypeReference, len(t.TypeArgs))
		for i, a := range t.TypeArgs {
			args[i] = substituteRef(a, subst)
		}
		t.TypeArgs = args
		return t
	case symbol.Array:
		t.Element = substituteRef(t.Element, subst)
		return t
	case symbol.Pointer:
		t.Pointee = substituteRef(t.Pointee, subst)
		return t
	case symbol.ByRef:
		t.Referent = substituteRef(t.Referent, subst)
		return t
	default:
		return ref
	}
}

// dedupeInterfaceMembers deduplicates the union per §4.5.1: methods and
// indexer properties by name plus full canonical signature, non-indexer
// properties by name (the target language has no property overloading).
func dedupeInterfaceMembers(members []symbol.Member) []symbol.Member {
	var out []symbol.Member
	seenSig := make(map[string]bool)
	seenPropName := make(map[string]bool)

	for _, m := range members {
		isIndexer := m.Kind == symbol.MemberProperty && len(m.IndexParams) > 0
		if m.Kind == symbol.MemberProperty && !isIndexer {
			if seenPropName[m.ClrName] {
				continue
			}
			seenPropName[m.ClrName] = true
			out = append(out, m)
			continue
		}
		key := m.ClrName + m.CanonicalSignature
		if seenSig[key] {
			continue
		}
		seenSig[key] = true
		out = append(out, m)
	}

	slices.SortFunc(out, func(a, b symbol.Member) int {
		return cmp.Compare(a.StableId, b.StableId)
	})
	return out
}
