package shape

import (
	"testing"

	"github.com/dtsforge/dtsforge/internal/ident"
	"github.com/dtsforge/dtsforge/internal/symbol"
)

func staticMethod(assembly, declaringFullName, name string) symbol.Member {
	sig := symbol.CanonicalSignature(symbol.MemberMethod, true, 0, nil, symbol.Named{Assembly: "mscorlib", FullName: "System.Int32"}, true)
	return symbol.Member{
		ClrName:            name,
		StableId:           ident.Member(assembly, declaringFullName, name, sig),
		Kind:               symbol.MemberMethod,
		EmitScope:          symbol.ClassSurface,
		Provenance:         symbol.Declared,
		Static:             true,
		HasReturn:          true,
		ReturnType:         symbol.Named{Assembly: "mscorlib", FullName: "System.Int32"},
		CanonicalSignature: sig,
	}
}

func TestStaticHierarchyFlattenerSuppressesExtendsAndListsAncestorStatics(t *testing.T) {
	const asm = "Acme"
	xId := ident.Type(asm, "Acme.X", 0)
	yId := ident.Type(asm, "Acme.Y", 0)
	xRef := symbol.TypeReference(symbol.Named{Assembly: asm, FullName: "Acme.X"})

	g := symbol.New()
	g = g.WithNewType(symbol.TypeSymbol{
		StableId: xId, Assembly: asm, FullName: "Acme.X", ClrName: "X",
		Kind:    symbol.KindClass,
		Static:  true,
		Members: []symbol.Member{staticMethod(asm, "Acme.X", "A")},
	})
	g = g.WithNewType(symbol.TypeSymbol{
		StableId: yId, Assembly: asm, FullName: "Acme.Y", ClrName: "Y",
		Kind:    symbol.KindClass,
		Static:  true,
		Base:    &xRef,
		Members: []symbol.Member{staticMethod(asm, "Acme.Y", "B")},
	})

	_, plan := StaticHierarchyFlattener(newContext(), g)

	if !plan.Flatten[yId] {
		t.Error("expected Y to be flattened (extends suppressed)")
	}
	set := plan.InheritedStatics[yId]
	if len(set.Methods) != 1 {
		t.Fatalf("expected 1 inherited static method, got %d", len(set.Methods))
	}
	aId := ident.Member(asm, "Acme.X", "A", staticMethod(asm, "Acme.X", "A").CanonicalSignature)
	if set.Methods[0] != aId {
		t.Errorf("expected inherited static to be A, got %v", set.Methods[0])
	}
}
