package shape

import (
	"testing"

	"github.com/dtsforge/dtsforge/internal/ident"
	"github.com/dtsforge/dtsforge/internal/symbol"
)

func TestStructuralConformanceOmitsUnsatisfiableInterfaceAndRecordsFinding(t *testing.T) {
	const asm = "Acme"
	ifaceId := ident.Type(asm, "Acme.IComparableStatic", 1)
	classId := ident.Type(asm, "Acme.C", 0)
	ifaceRef := symbol.TypeReference(symbol.Named{Assembly: asm, FullName: "Acme.IComparableStatic", TypeArgs: []symbol.TypeReference{
		symbol.Named{Assembly: asm, FullName: "Acme.C"},
	}})

	g := symbol.New()
	g = g.WithNewType(symbol.TypeSymbol{
		StableId: ifaceId, Assembly: asm, FullName: "Acme.IComparableStatic", ClrName: "IComparableStatic",
		Kind: symbol.KindInterface,
		Members: []symbol.Member{
			methodMember(asm, "Acme.IComparableStatic", "CompareTo"),
		},
	})
	g = g.WithNewType(symbol.TypeSymbol{
		StableId: classId, Assembly: asm, FullName: "Acme.C", ClrName: "C",
		Kind:       symbol.KindClass,
		Implements: []symbol.TypeReference{ifaceRef},
		// C has no class-surface CompareTo: structurally unsatisfiable.
	})

	g2, findings := StructuralConformance(newContext(), g)

	c, ok := g2.Type(classId)
	if !ok {
		t.Fatal("C missing")
	}
	if len(c.Implements) != 0 {
		t.Errorf("expected unsatisfiable interface removed from Implements, got %v", c.Implements)
	}
	if len(c.ExplicitViews) != 1 {
		t.Fatalf("expected 1 ExplicitView, got %d", len(c.ExplicitViews))
	}
	if c.ExplicitViews[0].ViewPropertyName != "As_IComparableStatic" {
		t.Errorf("got view name %q, want As_IComparableStatic", c.ExplicitViews[0].ViewPropertyName)
	}

	if len(findings) != 1 {
		t.Fatalf("expected 1 conformance finding, got %d", len(findings))
	}
	if findings[0].Reason != ReasonMissingOrIncompatibleMembers || findings[0].IssueCount == 0 {
		t.Errorf("unexpected finding: %+v", findings[0])
	}

	plan := HonestEmissionPlanner(newContext(), findings)
	entries := plan.UnsatisfiableInterfaces[classId]
	if len(entries) != 1 || entries[0].InterfaceClrName != "IComparableStatic" || entries[0].IssueCount == 0 {
		t.Errorf("unexpected plan entries: %+v", entries)
	}
}
