package shape

import (
	"testing"

	"github.com/dtsforge/dtsforge/internal/ident"
	"github.com/dtsforge/dtsforge/internal/symbol"
)

func overloadMethod(assembly, declaringFullName, name string, hasIntParam bool) symbol.Member {
	var params []symbol.Parameter
	if hasIntParam {
		params = []symbol.Parameter{{Name: "x", Type: symbol.Named{Assembly: "mscorlib", FullName: "System.Int32"}}}
	}
	sig := symbol.CanonicalSignature(symbol.MemberMethod, false, 0, params, nil, false)
	return symbol.Member{
		ClrName:            name,
		StableId:           ident.Member(assembly, declaringFullName, name, sig),
		Kind:               symbol.MemberMethod,
		EmitScope:          symbol.ClassSurface,
		Provenance:         symbol.Declared,
		Parameters:         params,
		CanonicalSignature: sig,
	}
}

func TestBaseOverloadAdderClonesMissingOverload(t *testing.T) {
	const asm = "Acme"
	baseId := ident.Type(asm, "Acme.Base", 0)
	derivedId := ident.Type(asm, "Acme.Derived", 0)
	baseRef := symbol.TypeReference(symbol.Named{Assembly: asm, FullName: "Acme.Base"})

	g := symbol.New()
	g = g.WithNewType(symbol.TypeSymbol{
		StableId: baseId, Assembly: asm, FullName: "Acme.Base", ClrName: "Base",
		Kind: symbol.KindClass,
		Members: []symbol.Member{
			overloadMethod(asm, "Acme.Base", "M", false),
			overloadMethod(asm, "Acme.Base", "M", true),
		},
	})
	g = g.WithNewType(symbol.TypeSymbol{
		StableId: derivedId, Assembly: asm, FullName: "Acme.Derived", ClrName: "Derived",
		Kind: symbol.KindClass,
		Base: &baseRef,
		Members: []symbol.Member{
			overloadMethod(asm, "Acme.Derived", "M", true),
		},
	})

	out := BaseOverloadAdder(newContext(), g)

	derived, ok := out.Type(derivedId)
	if !ok {
		t.Fatal("Derived missing")
	}
	if len(derived.Members) != 2 {
		t.Fatalf("expected 2 members on Derived, got %d", len(derived.Members))
	}

	var noArg, withArg *symbol.Member
	for i := range derived.Members {
		m := &derived.Members[i]
		if len(m.Parameters) == 0 {
			noArg = m
		} else {
			withArg = m
		}
	}
	if noArg == nil || noArg.Provenance != symbol.BaseOverload {
		t.Errorf("expected cloned M() with Provenance=BaseOverload, got %+v", noArg)
	}
	if withArg == nil || withArg.Provenance != symbol.Declared {
		t.Errorf("expected M(int) to remain Provenance=Declared, got %+v", withArg)
	}
}
