package shape

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/dtsforge/dtsforge/internal/ident"
	"github.com/dtsforge/dtsforge/internal/symbol"
	"github.com/dtsforge/dtsforge/internal/typeprint"
)

// ExtensionBucketer groups extension methods — static methods whose
// first parameter binds to a receiver type — by the canonical form of
// that receiver type (§4.5.8). The target language cannot add members
// to a foreign type, so each bucket is emitted as a separate virtual
// interface the consumer imports alongside the receiver type.
//
// A method is treated as an extension method when it is static, has at
// least one parameter, and is declared on a KindStaticNamespace type:
// that is this system's analogue of a source-platform static class
// holding `this`-parameter extension methods.
func ExtensionBucketer(ctx *Context, g *symbol.Graph) []ExtensionBucket {
	if ctx.Log.Enabled(slog.LevelDebug) {
		ctx.Log.Log(slog.LevelDebug, "shape phase start", slog.String("phase", "ExtensionBucketer"))
	}
	byReceiver := make(map[string]*ExtensionBucket)

	for _, id := range g.TypeIds() {
		t, _ := g.Type(id)
		if t.Kind != symbol.KindStaticNamespace {
			continue
		}
		for _, m := range t.Members {
			if !m.Static || m.Kind != symbol.MemberMethod || len(m.Parameters) == 0 {
				continue
			}
			receiver := typeprint.Render(m.Parameters[0].Type)
			bucket, ok := byReceiver[receiver]
			if !ok {
				bucket = &ExtensionBucket{
					ReceiverCanonicalName: receiver,
					BucketInterfaceName:   "Ext_" + sanitizeSimpleName(receiver),
				}
				byReceiver[receiver] = bucket
			}
			bucket.Methods = append(bucket.Methods, m.StableId)
			if !slices.Contains(bucket.RequiredImports, t.Namespace) {
				bucket.RequiredImports = append(bucket.RequiredImports, t.Namespace)
			}
		}
	}

	receivers := make([]string, 0, len(byReceiver))
	for r := range byReceiver {
		receivers = append(receivers, r)
	}
	slices.Sort(receivers)

	out := make([]ExtensionBucket, 0, len(receivers))
	for _, r := range receivers {
		b := byReceiver[r]
		slices.SortFunc(b.Methods, func(a, c ident.StableId) int { return cmp.Compare(a, c) })
		slices.Sort(b.RequiredImports)
		out = append(out, *b)
	}
	if ctx.Log.Enabled(slog.LevelInfo) {
		ctx.Log.Log(slog.LevelInfo, "extension method buckets built", slog.Int("count", len(out)))
	}
	if ctx.Log.Enabled(slog.LevelDebug) {
		ctx.Log.Log(slog.LevelDebug, "shape phase complete", slog.String("phase", "ExtensionBucketer"))
	}
	return out
}
