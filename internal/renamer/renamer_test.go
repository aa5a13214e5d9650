package renamer

import (
	"testing"

	"github.com/dtsforge/dtsforge/internal/diagnostics"
	"github.com/dtsforge/dtsforge/internal/ident"
)

func TestReserveTypeDisambiguatesWithNumericSuffix(t *testing.T) {
	r := New(nil, nil)
	a := r.ReserveType("a", "Widget", NamespacePublic("Acme"), "declared")
	b := r.ReserveType("b", "Widget", NamespacePublic("Acme"), "declared")
	if a != "Widget" {
		t.Errorf("got %q, want Widget", a)
	}
	if b != "Widget_1" {
		t.Errorf("got %q, want Widget_1", b)
	}
}

func TestReserveTypeIsMonotonic(t *testing.T) {
	r := New(nil, nil)
	scope := NamespacePublic("Acme")
	first := r.ReserveType("a", "Widget", scope, "declared")
	second := r.ReserveType("a", "DifferentPreferred", scope, "declared")
	if first != second {
		t.Errorf("reservation changed: %q != %q", first, second)
	}
}

func TestReservedWordGetsUnderscorePrefixAndDiagnostic(t *testing.T) {
	sink := diagnostics.NewSink(diagnostics.DefaultConfig())
	r := New(sink, nil)
	name := r.ReserveType("a", "class", NamespacePublic("Acme"), "declared")
	if name != "_class" {
		t.Errorf("got %q, want _class", name)
	}
	if sink.CountByCode(diagnostics.CodeReservedWord) != 1 {
		t.Errorf("expected one reserved-word diagnostic, got %d", sink.CountByCode(diagnostics.CodeReservedWord))
	}
}

func TestMemberReservationSeparatesInstanceAndStaticSides(t *testing.T) {
	r := New(nil, nil)
	base := TypeBase("Acme.Widget")
	a := r.ReserveMember("m1", "Value", base, "declared", false)
	b := r.ReserveMember("m2", "Value", base, "declared", true)
	if a != "Value" || b != "Value" {
		t.Errorf("instance and static sides should not share disambiguation: got %q, %q", a, b)
	}
}

func TestInstanceTypeNameAppendsSuffix(t *testing.T) {
	r := New(nil, nil)
	r.ReserveType("a", "Widget", NamespacePublic("Acme"), "declared")
	if got, want := r.InstanceTypeName("a"), "Widget$instance"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestArityPreferredNameUsesUnderscoreForm(t *testing.T) {
	r := New(nil, nil)
	got := r.ReserveType(ident.Type("Acme", "Acme.Box", 1), "Box`1", NamespacePublic("Acme"), "declared")
	if got != "Box_1" {
		t.Errorf("got %q, want Box_1", got)
	}
}
