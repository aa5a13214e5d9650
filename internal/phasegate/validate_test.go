package phasegate

import (
	"testing"

	"github.com/dtsforge/dtsforge/internal/diagnostics"
	"github.com/dtsforge/dtsforge/internal/ident"
	"github.com/dtsforge/dtsforge/internal/planner"
	"github.com/dtsforge/dtsforge/internal/renamer"
	"github.com/dtsforge/dtsforge/internal/shape"
	"github.com/dtsforge/dtsforge/internal/symbol"
)

func TestValidatePassesOnCleanPlan(t *testing.T) {
	g := symbol.New()
	id := ident.Type("Asm", "N.Widget", 0)
	g = g.WithNewType(symbol.TypeSymbol{
		StableId:      id,
		Assembly:      "Asm",
		FullName:      "N.Widget",
		ClrName:       "Widget",
		Namespace:     "N",
		Kind:          symbol.KindClass,
		Accessibility: symbol.Public,
	})

	sink := diagnostics.NewSink(diagnostics.DefaultConfig())
	r := renamer.New(sink, nil)
	r.ReserveType(id, "Widget", renamer.NamespacePublic("N"), "declared")

	plan := planner.Build(shape.Result{Graph: g}, r, diagnostics.Logger{})

	if !Validate(plan, sink, DefaultPolicy()) {
		t.Fatalf("expected a clean plan to validate, diagnostics: %v", sink.Diagnostics())
	}
}

func TestValidateReportsViewOnlyMissingSourceInterface(t *testing.T) {
	g := symbol.New()
	id := ident.Type("Asm", "N.Widget", 0)
	memberId := ident.Member("Asm", "N.Widget", "Frob", "()")
	g = g.WithNewType(symbol.TypeSymbol{
		StableId:      id,
		Assembly:      "Asm",
		FullName:      "N.Widget",
		ClrName:       "Widget",
		Namespace:     "N",
		Kind:          symbol.KindClass,
		Accessibility: symbol.Public,
		Members: []symbol.Member{
			{
				ClrName:   "Frob",
				StableId:  memberId,
				Kind:      symbol.MemberMethod,
				EmitScope: symbol.ViewOnly,
			},
		},
	})

	sink := diagnostics.NewSink(diagnostics.DefaultConfig())
	r := renamer.New(sink, nil)
	r.ReserveType(id, "Widget", renamer.NamespacePublic("N"), "declared")

	plan := planner.Build(shape.Result{Graph: g}, r, diagnostics.Logger{})

	if Validate(plan, sink, DefaultPolicy()) {
		t.Fatalf("expected validation to fail for a view-only member with no source interface")
	}
	if sink.CountByCode(diagnostics.CodeViewOnlyMissingSource) != 1 {
		t.Errorf("expected exactly one %s diagnostic, got %d", diagnostics.CodeViewOnlyMissingSource, sink.CountByCode(diagnostics.CodeViewOnlyMissingSource))
	}
}

func TestValidateReportsPublicExposesInternal(t *testing.T) {
	g := symbol.New()
	internalId := ident.Type("Asm", "N.Secret", 0)
	publicId := ident.Type("Asm", "N.Widget", 0)
	memberId := ident.Member("Asm", "N.Widget", "Reveal", "()")

	g = g.WithNewType(symbol.TypeSymbol{
		StableId:      internalId,
		Assembly:      "Asm",
		FullName:      "N.Secret",
		ClrName:       "Secret",
		Namespace:     "N",
		Kind:          symbol.KindClass,
		Accessibility: symbol.Internal,
	})
	g = g.WithNewType(symbol.TypeSymbol{
		StableId:      publicId,
		Assembly:      "Asm",
		FullName:      "N.Widget",
		ClrName:       "Widget",
		Namespace:     "N",
		Kind:          symbol.KindClass,
		Accessibility: symbol.Public,
		Members: []symbol.Member{
			{
				ClrName:    "Reveal",
				StableId:   memberId,
				Kind:       symbol.MemberMethod,
				EmitScope:  symbol.ClassSurface,
				HasReturn:  true,
				ReturnType: symbol.Named{Assembly: "Asm", FullName: "N.Secret"},
			},
		},
	})

	sink := diagnostics.NewSink(diagnostics.DefaultConfig())
	r := renamer.New(sink, nil)
	r.ReserveType(internalId, "Secret", renamer.NamespacePublic("N"), "declared")
	r.ReserveType(publicId, "Widget", renamer.NamespacePublic("N"), "declared")

	plan := planner.Build(shape.Result{Graph: g}, r, diagnostics.Logger{})

	if Validate(plan, sink, DefaultPolicy()) {
		t.Fatalf("expected validation to fail when a public member exposes an internal type")
	}
	if sink.CountByCode(diagnostics.CodePublicExposesInternal) != 1 {
		t.Errorf("expected exactly one %s diagnostic, got %d", diagnostics.CodePublicExposesInternal, sink.CountByCode(diagnostics.CodePublicExposesInternal))
	}
}

func TestDefaultPolicyClassifiesUnknownCodeAsForbidden(t *testing.T) {
	p := DefaultPolicy()
	if p.Classify("totally-unrecognized-code") != Forbidden {
		t.Errorf("expected an unrecognized code to default to Forbidden")
	}
	if p.Classify(diagnostics.CodeUnsatisfiableInterface) != Informational {
		t.Errorf("expected %s to be Informational", diagnostics.CodeUnsatisfiableInterface)
	}
}
