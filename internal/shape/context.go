// Package shape implements the deterministic graph-rewrite passes (C5,
// §4.5). Each pass is a pure function (*Context, *symbol.Graph) ->
// *symbol.Graph, executed in the fixed order given by Run. The
// one-file-per-phase layout, with a single shared context threaded
// through every pass, is grounded on the teacher's
// internal/resolver/{registration,imports,types_phase,oids,semantics}.go:
// each phase is its own file, and every phase takes the same
// *resolverContext.
package shape

import (
	"github.com/dtsforge/dtsforge/internal/diagnostics"
)

// Context carries the diagnostics sink, logger, and policy shared by
// every pass (§4.4: passes are pure functions of (BuildContext,
// SymbolGraph), never relying on hidden state).
type Context struct {
	Sink   *diagnostics.Sink
	Log    diagnostics.Logger
	Config diagnostics.Config

	// DiamondStrategy selects DiamondResolver's conflict-resolution
	// mode (§4.5.7).
	DiamondStrategy DiamondStrategy
}

// NewContext builds a Context from a diagnostics configuration.
func NewContext(cfg diagnostics.Config, log diagnostics.Logger) *Context {
	return &Context{Sink: diagnostics.NewSink(cfg), Log: log, Config: cfg, DiamondStrategy: DiamondPreferDerived}
}
