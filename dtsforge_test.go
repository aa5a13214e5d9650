package dtsforge

import (
	"context"
	"testing"

	"github.com/dtsforge/dtsforge/internal/diagnostics"
	"github.com/dtsforge/dtsforge/internal/planner"
	"github.com/dtsforge/dtsforge/internal/symbol"
	"github.com/dtsforge/dtsforge/loader"
)

type fakeLoader struct {
	graph *symbol.Graph
	diags []diagnostics.Diagnostic
	err   error
}

func (f fakeLoader) Load(ctx context.Context, sources []loader.Source) (*symbol.Graph, []diagnostics.Diagnostic, error) {
	return f.graph, f.diags, f.err
}

type fakeEmitter struct {
	plan   *planner.EmissionPlan
	called bool
}

func (f *fakeEmitter) Emit(plan *planner.EmissionPlan) error {
	f.called = true
	f.plan = plan
	return nil
}

func TestGenerateNoSourcesOrLoader(t *testing.T) {
	_, err := Generate(context.Background())
	if err != ErrNoSources {
		t.Errorf("expected ErrNoSources, got %v", err)
	}
}

func TestGenerateRunsFullPipeline(t *testing.T) {
	g := symbol.New()
	em := &fakeEmitter{}

	result, err := Generate(context.Background(),
		WithLoader(fakeLoader{graph: g}),
		WithEmitter(em),
	)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected a clean empty graph to pass PhaseGate")
	}
	if !em.called {
		t.Errorf("expected the emitter to be invoked")
	}
	if em.plan == nil {
		t.Fatalf("expected a non-nil plan to reach the emitter")
	}
}

func TestGenerateFailsOnLoaderDiagnosticThreshold(t *testing.T) {
	failing := diagnostics.Diagnostic{Severity: diagnostics.SeverityFatal, Code: "load-broken", Message: "corrupt input"}

	_, err := Generate(context.Background(),
		WithLoader(fakeLoader{graph: symbol.New(), diags: []diagnostics.Diagnostic{failing}}),
		WithEmitter(&fakeEmitter{}),
	)
	if err == nil {
		t.Fatalf("expected an error from a fatal load diagnostic")
	}
}

func TestGenerateRequiresEmitter(t *testing.T) {
	_, err := Generate(context.Background(), WithLoader(fakeLoader{graph: symbol.New()}))
	if err == nil {
		t.Errorf("expected an error when no emitter is configured")
	}
}
