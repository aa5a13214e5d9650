// Package dtsforge converts a faithful mirror of a statically-typed,
// nominally-typed source platform's public API metadata into a
// structurally-typed target-language ambient declaration package.
//
// Call [Generate] with one or more [loader.Source] values to load
// assembly dumps, run them through the shape passes, the emission
// planner, and PhaseGate, and emit the result with an [emitter.Emitter].
package dtsforge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dtsforge/dtsforge/emitter"
	"github.com/dtsforge/dtsforge/internal/diagnostics"
	"github.com/dtsforge/dtsforge/internal/phasegate"
	"github.com/dtsforge/dtsforge/internal/planner"
	"github.com/dtsforge/dtsforge/internal/renamer"
	"github.com/dtsforge/dtsforge/internal/shape"
	"github.com/dtsforge/dtsforge/loader"
)

// ErrNoSources is returned when Generate is called with no sources.
var ErrNoSources = errors.New("dtsforge: no sources provided")

// ErrDiagnosticThreshold is returned when diagnostics gathered across
// loading, shaping, or planning exceed cfg's configured FailAt
// severity. The run's diagnostics are still returned alongside the
// error so a caller can inspect what tripped the threshold.
var ErrDiagnosticThreshold = errors.New("dtsforge: diagnostic threshold exceeded")

// ErrValidationFailed is returned when PhaseGate rejects the completed
// EmissionPlan (§4.7): emission never runs.
var ErrValidationFailed = errors.New("dtsforge: plan validation failed")

// GenerateOption configures Generate.
type GenerateOption func(*generateConfig)

type generateConfig struct {
	logger   *slog.Logger
	trace    bool
	config   Config
	sources  []loader.Source
	loader   loader.Loader
	emitter  emitter.Emitter
	strategy renamer.ReservedWordStrategy
}

// WithLogger sets the logger for debug/trace output. If not set, no
// logging occurs.
func WithLogger(logger *slog.Logger) GenerateOption {
	return func(c *generateConfig) { c.logger = logger }
}

// WithTrace enables the third (-vv) verbosity tier on top of logger.
func WithTrace(trace bool) GenerateOption {
	return func(c *generateConfig) { c.trace = trace }
}

// WithConfig sets the §2.3 configuration governing strictness, failure
// threshold, diagnostic overrides, and name-transform selections. If
// not set, DefaultConfig is used.
func WithConfig(cfg Config) GenerateOption {
	return func(c *generateConfig) { c.config = cfg }
}

// WithSource appends one or more sources to read assembly dumps from.
func WithSource(src ...loader.Source) GenerateOption {
	return func(c *generateConfig) { c.sources = append(c.sources, src...) }
}

// WithLoader overrides the default loader.JSONLoader, e.g. for tests
// that construct a symbol.Graph directly via a fake Loader.
func WithLoader(l loader.Loader) GenerateOption {
	return func(c *generateConfig) { c.loader = l }
}

// WithEmitter sets the emitter. There is no default: Generate returns an
// error after validation if none is set.
func WithEmitter(e emitter.Emitter) GenerateOption {
	return func(c *generateConfig) { c.emitter = e }
}

// WithReservedWordStrategy overrides the renamer's default
// UnderscorePrefixStrategy.
func WithReservedWordStrategy(strategy renamer.ReservedWordStrategy) GenerateOption {
	return func(c *generateConfig) { c.strategy = strategy }
}

// Result is everything a caller may want to inspect after a Generate
// run, whether or not it ultimately failed PhaseGate validation.
type Result struct {
	Plan        *planner.EmissionPlan
	Diagnostics []diagnostics.Diagnostic
	Valid       bool
}

// Generate runs the full pipeline: Load -> shape passes -> reserve
// names -> emission planning -> PhaseGate -> Emit. Mirrors the
// teacher's gomib.Load: functional options build a configuration,
// Load's sources/diagConfig/strictness inputs become WithSource/
// WithConfig here, and checkLoadResult's threshold check becomes the
// FailAt comparison below.
func Generate(ctx context.Context, opts ...GenerateOption) (*Result, error) {
	cfg := generateConfig{config: DefaultConfig()}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.loader == nil && len(cfg.sources) == 0 {
		return nil, ErrNoSources
	}

	log := diagnostics.Logger{L: cfg.logger, Trace: cfg.trace}
	diagCfg := cfg.config.DiagnosticConfig()

	ld := cfg.loader
	if ld == nil {
		ld = loader.NewJSONLoader(cfg.logger)
	}
	g, loadDiags, err := ld.Load(ctx, cfg.sources)
	if err != nil {
		return nil, fmt.Errorf("dtsforge: loading sources: %w", err)
	}

	sink := diagnostics.NewSink(diagCfg)
	for _, d := range loadDiags {
		sink.Report(d)
	}
	if sink.HasFailure() {
		return &Result{Diagnostics: sink.Diagnostics()}, fmt.Errorf("%w (during load)", ErrDiagnosticThreshold)
	}

	shapeCtx := shape.NewContext(diagCfg, log)
	shapeCtx.Sink = sink
	shapeResult := shape.Run(shapeCtx, g)
	if sink.HasFailure() {
		return &Result{Diagnostics: sink.Diagnostics()}, fmt.Errorf("%w (during shaping)", ErrDiagnosticThreshold)
	}

	r := renamer.New(sink, cfg.strategy)
	reserveNames(shapeResult, r, cfg.config)

	plan := planner.Build(shapeResult, r, log)

	policy := phasegate.DefaultPolicy()
	if diagCfg.Strict {
		for code := range policy {
			policy[code] = phasegate.Forbidden
		}
	}
	valid := phasegate.Validate(plan, sink, policy)

	result := &Result{Plan: plan, Diagnostics: sink.Diagnostics(), Valid: valid}

	if !valid {
		return result, ErrValidationFailed
	}
	if sink.HasFailure() {
		return result, fmt.Errorf("%w (during validation)", ErrDiagnosticThreshold)
	}

	em := cfg.emitter
	if em == nil {
		return result, fmt.Errorf("dtsforge: no emitter configured (use WithEmitter)")
	}
	if err := em.Emit(plan); err != nil {
		return result, fmt.Errorf("dtsforge: emitting: %w", err)
	}

	return result, nil
}
