package shape

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/dtsforge/dtsforge/internal/diagnostics"
	"github.com/dtsforge/dtsforge/internal/ident"
	"github.com/dtsforge/dtsforge/internal/symbol"
)

// BaseOverloadAdder collects all instance methods across a class's
// entire ancestor chain and clones onto the derived class any ancestor
// signature the derived class lacks, so that every overload inherited
// from an ancestor remains callable on the target language's
// structurally-typed class surface (§4.5.2). Classes are processed in
// base-first topological order so cloned methods become visible to
// descendants.
func BaseOverloadAdder(ctx *Context, g *symbol.Graph) *symbol.Graph {
	if ctx.Log.Enabled(slog.LevelDebug) {
		ctx.Log.Log(slog.LevelDebug, "shape phase start", slog.String("phase", "BaseOverloadAdder"))
	}
	order := baseFirstOrder(g)
	out := g
	clonedTotal := 0
	for _, id := range order {
		t, ok := out.Type(id)
		if !ok || t.Kind != symbol.KindClass || t.Base == nil {
			continue
		}
		baseId, ok := classBaseId(out, t)
		if !ok {
			continue
		}
		ancestorMethods := collectAncestorInstanceMethods(out, baseId)

		existing := make(map[string]bool, len(t.Members))
		for _, m := range t.Members {
			existing[m.ClrName+m.CanonicalSignature] = true
		}

		var toAdd []symbol.Member
		seenThisPass := make(map[string]bool)
		for _, m := range ancestorMethods {
			if existing[m.ClrName+m.CanonicalSignature] {
				continue
			}
			if seenThisPass[m.ClrName+m.CanonicalSignature] {
				ctx.Sink.Report(diagnostics.Diagnostic{
					Severity: diagnostics.SeverityError,
					Code:     diagnostics.CodeBaseOverloadCollision,
					Message:  "internal duplicate base-overload clone for signature " + m.CanonicalSignature,
					Type:     string(id),
				})
				if ctx.Log.Enabled(slog.LevelWarn) {
					ctx.Log.Log(slog.LevelWarn, "duplicate base-overload clone", slog.String("type", string(id)), slog.String("signature", m.CanonicalSignature))
				}
				continue
			}
			seenThisPass[m.ClrName+m.CanonicalSignature] = true

			clone := m.Clone()
			clone.StableId = ident.Member(t.Assembly, t.FullName, clone.ClrName, clone.CanonicalSignature)
			clone.Provenance = symbol.BaseOverload
			clone.EmitScope = symbol.ClassSurface
			clone.IsOverride = false
			toAdd = append(toAdd, clone)
		}
		if len(toAdd) == 0 {
			continue
		}
		clonedTotal += len(toAdd)
		out = out.WithType(id, func(cur symbol.TypeSymbol) symbol.TypeSymbol {
			cur.Members = append(append([]symbol.Member(nil), cur.Members...), toAdd...)
			return cur
		})
	}
	if ctx.Log.Enabled(slog.LevelInfo) {
		ctx.Log.Log(slog.LevelInfo, "base overloads cloned", slog.Int("count", clonedTotal))
	}
	if ctx.Log.Enabled(slog.LevelDebug) {
		ctx.Log.Log(slog.LevelDebug, "shape phase complete", slog.String("phase", "BaseOverloadAdder"))
	}
	return out
}

func classBaseId(g *symbol.Graph, t symbol.TypeSymbol) (ident.StableId, bool) {
	named, ok := (*t.Base).(symbol.Named)
	if !ok {
		return "", false
	}
	id := ident.Type(named.Assembly, named.FullName, len(named.TypeArgs))
	if _, ok := g.Type(id); !ok {
		return "", false
	}
	return id, true
}

// collectAncestorInstanceMethods walks the entire ancestor chain above
// baseId (inclusive) collecting instance methods, most-derived ancestor
// first so a nearer override wins when two ancestors share a signature.
func collectAncestorInstanceMethods(g *symbol.Graph, baseId ident.StableId) []symbol.Member {
	var out []symbol.Member
	seen := make(map[string]bool)
	for id := baseId; id != ""; {
		t, ok := g.Type(id)
		if !ok {
			break
		}
		for _, idx := range t.InstanceMethods() {
			m := t.Members[idx]
			if seen[m.ClrName+m.CanonicalSignature] {
				continue
			}
			seen[m.ClrName+m.CanonicalSignature] = true
			out = append(out, m)
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
	slices.SortFunc(out, func(a, b symbol.Member) int { return cmp.Compare(a.StableId, b.StableId) })
	return out
}

// baseFirstOrder returns every class StableId such that a class always
// appears after its in-graph base (topological order on the
// class-inheritance edge only).
func baseFirstOrder(g *symbol.Graph) []ident.StableId {
	ids := g.TypeIds()
	depth := make(map[ident.StableId]int, len(ids))

	var depthOf func(id ident.StableId, visiting map[ident.StableId]bool) int
	depthOf = func(id ident.StableId, visiting map[ident.StableId]bool) int {
		if d, ok := depth[id]; ok {
			return d
		}
		if visiting[id] {
			return 0 // cyclic inheritance in malformed input; treat as root
		}
		visiting[id] = true
		t, ok := g.Type(id)
		if !ok || t.Kind != symbol.KindClass || t.Base == nil {
			depth[id] = 0
			return 0
		}
		baseId, ok := classBaseId(g, t)
		if !ok {
			depth[id] = 0
			return 0
		}
		d := depthOf(baseId, visiting) + 1
		depth[id] = d
		return d
	}

	for _, id := range ids {
		depthOf(id, map[ident.StableId]bool{})
	}

	slices.SortFunc(ids, func(a, b ident.StableId) int {
		if d := cmp.Compare(depth[a], depth[b]); d != 0 {
			return d
		}
		return cmp.Compare(a, b)
	})
	return ids
}
