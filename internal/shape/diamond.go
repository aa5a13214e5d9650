package shape

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/dtsforge/dtsforge/internal/diagnostics"
	"github.com/dtsforge/dtsforge/internal/ident"
	"github.com/dtsforge/dtsforge/internal/symbol"
)

// DiamondStrategy selects how DiamondResolver handles a method name
// reachable through more than one inheritance path (typically
// interface inlining feeding the same signature into a class from two
// directions) when the reachable signatures disagree (§4.5.7).
type DiamondStrategy int

const (
	// DiamondPreferDerived keeps whichever member already sits closest
	// to the class being resolved (ClassSurface members beat
	// FromInterface ones; ties break by the lowest canonical signature
	// string for determinism) and drops the rest.
	DiamondPreferDerived DiamondStrategy = iota
	// DiamondOverloadAll keeps every conflicting signature as a
	// distinct overload, relying on the target language's structural
	// typing to disambiguate by call shape.
	DiamondOverloadAll
	// DiamondError reports CodeDiamondUnresolved and leaves the member
	// set untouched.
	DiamondError
)

// DiamondResolver groups same-named members reachable on a type by
// canonical signature. Members sharing a name but disagreeing in
// signature are a diamond: the configured DiamondStrategy decides
// whether one wins, all survive as overloads, or the conflict is
// reported unresolved (§4.5.7).
func DiamondResolver(ctx *Context, g *symbol.Graph) *symbol.Graph {
	if ctx.Log.Enabled(slog.LevelDebug) {
		ctx.Log.Log(slog.LevelDebug, "shape phase start", slog.String("phase", "DiamondResolver"))
	}
	out := g
	conflicts := 0
	for _, id := range g.TypeIds() {
		t, _ := g.Type(id)
		if t.Kind != symbol.KindClass && t.Kind != symbol.KindInterface {
			continue
		}

		groups := make(map[string][]symbol.Member)
		for _, m := range t.Members {
			if m.Kind != symbol.MemberMethod {
				continue
			}
			groups[m.ClrName] = append(groups[m.ClrName], m)
		}

		names := make([]string, 0, len(groups))
		for name := range groups {
			names = append(names, name)
		}
		slices.Sort(names)

		toDrop := make(map[ident.StableId]bool)
		for _, name := range names {
			members := groups[name]
			bySig := make(map[string][]symbol.Member)
			for _, m := range members {
				bySig[m.CanonicalSignature] = append(bySig[m.CanonicalSignature], m)
			}
			if len(bySig) <= 1 {
				continue
			}

			sigs := make([]string, 0, len(bySig))
			for sig := range bySig {
				sigs = append(sigs, sig)
			}
			slices.Sort(sigs)

			conflicts++
			switch ctx.DiamondStrategy {
			case DiamondOverloadAll:
				// Keep everything; no drops.
			case DiamondPreferDerived:
				winner := preferDerived(sigs, bySig)
				for _, sig := range sigs {
					if sig == winner {
						continue
					}
					for _, m := range bySig[sig] {
						toDrop[m.StableId] = true
					}
				}
				ctx.Sink.Report(diagnostics.Diagnostic{
					Severity: diagnostics.SeverityWarning,
					Code:     diagnostics.CodeDiamondConflict,
					Message:  "method " + name + " reachable with conflicting signatures; kept most-derived, dropped the rest",
					Type:     string(id),
				})
				if ctx.Log.Enabled(slog.LevelWarn) {
					ctx.Log.Log(slog.LevelWarn, "diamond conflict resolved, kept most-derived", slog.String("type", string(id)), slog.String("method", name))
				}
			default: // DiamondError
				ctx.Sink.Report(diagnostics.Diagnostic{
					Severity: diagnostics.SeverityError,
					Code:     diagnostics.CodeDiamondUnresolved,
					Message:  "method " + name + " reachable with conflicting signatures and no resolution strategy configured",
					Type:     string(id),
				})
				if ctx.Log.Enabled(slog.LevelWarn) {
					ctx.Log.Log(slog.LevelWarn, "diamond conflict unresolved", slog.String("type", string(id)), slog.String("method", name))
				}
			}
		}

		if len(toDrop) == 0 {
			continue
		}
		out = out.WithType(id, func(cur symbol.TypeSymbol) symbol.TypeSymbol {
			var kept []symbol.Member
			for _, m := range cur.Members {
				if toDrop[m.StableId] {
					continue
				}
				kept = append(kept, m)
			}
			cur.Members = kept
			return cur
		})
	}
	if ctx.Log.Enabled(slog.LevelInfo) {
		ctx.Log.Log(slog.LevelInfo, "diamond conflicts processed", slog.Int("count", conflicts))
	}
	if ctx.Log.Enabled(slog.LevelDebug) {
		ctx.Log.Log(slog.LevelDebug, "shape phase complete", slog.String("phase", "DiamondResolver"))
	}
	return out
}

// preferDerived picks the winning signature among a diamond group:
// ClassSurface beats ViewOnly/Omitted, then Declared/BaseOverload
// provenance beats FromInterface (each signature ranked by its member
// with the lowest StableId), then the lowest signature string breaks ties.
func preferDerived(sigs []string, bySig map[string][]symbol.Member) string {
	rank := func(m symbol.Member) int {
		r := 0
		if m.EmitScope != symbol.ClassSurface {
			r += 100
		}
		if m.Provenance == symbol.FromInterface {
			r += 10
		}
		return r
	}
	best := sigs[0]
	bestRank := 1 << 30
	for _, sig := range sigs {
		members := bySig[sig]
		sort := append([]symbol.Member(nil), members...)
		slices.SortFunc(sort, func(a, b symbol.Member) int { return cmp.Compare(a.StableId, b.StableId) })
		r := rank(sort[0])
		if r < bestRank || (r == bestRank && sig < best) {
			bestRank = r
			best = sig
		}
	}
	return best
}
