package shape

import (
	"testing"

	"github.com/dtsforge/dtsforge/internal/diagnostics"
	"github.com/dtsforge/dtsforge/internal/ident"
	"github.com/dtsforge/dtsforge/internal/symbol"
)

func newContext() *Context {
	return NewContext(diagnostics.DefaultConfig(), diagnostics.Logger{})
}

func methodMember(assembly, declaringFullName, name string) symbol.Member {
	sig := symbol.CanonicalSignature(symbol.MemberMethod, false, 0, nil, nil, false)
	return symbol.Member{
		ClrName:            name,
		StableId:           ident.Member(assembly, declaringFullName, name, sig),
		Kind:               symbol.MemberMethod,
		EmitScope:          symbol.ClassSurface,
		Provenance:         symbol.Declared,
		CanonicalSignature: sig,
	}
}

func TestInterfaceInlinerFlattensOneLevel(t *testing.T) {
	const asm = "Acme"
	iaId := ident.Type(asm, "Acme.IA", 0)
	ibId := ident.Type(asm, "Acme.IB", 0)

	g := symbol.New()
	g = g.WithNewType(symbol.TypeSymbol{
		StableId: iaId, Assembly: asm, FullName: "Acme.IA", ClrName: "IA",
		Kind: symbol.KindInterface,
		Members: []symbol.Member{methodMember(asm, "Acme.IA", "F")},
	})
	g = g.WithNewType(symbol.TypeSymbol{
		StableId: ibId, Assembly: asm, FullName: "Acme.IB", ClrName: "IB",
		Kind:       symbol.KindInterface,
		Members:    []symbol.Member{methodMember(asm, "Acme.IB", "G")},
		Implements: []symbol.TypeReference{symbol.Named{Assembly: asm, FullName: "Acme.IA"}},
	})

	out := InterfaceInliner(newContext(), g)

	ib, ok := out.Type(ibId)
	if !ok {
		t.Fatal("IB missing after inlining")
	}
	if len(ib.Implements) != 0 {
		t.Errorf("expected direct-bases cleared, got %v", ib.Implements)
	}
	names := map[string]bool{}
	for _, m := range ib.Members {
		names[m.ClrName] = true
	}
	if !names["F"] || !names["G"] {
		t.Errorf("expected both F and G on IB, got %v", names)
	}
	if len(ib.Members) != 2 {
		t.Errorf("expected exactly 2 members after dedup, got %d", len(ib.Members))
	}
}
