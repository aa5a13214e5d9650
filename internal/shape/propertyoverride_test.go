package shape

import (
	"testing"

	"github.com/dtsforge/dtsforge/internal/ident"
	"github.com/dtsforge/dtsforge/internal/symbol"
)

func getterProperty(assembly, declaringFullName, name string, fieldType symbol.TypeReference) symbol.Member {
	sig := symbol.CanonicalSignature(symbol.MemberProperty, false, 0, nil, fieldType, true)
	return symbol.Member{
		ClrName:            name,
		StableId:           ident.Member(assembly, declaringFullName, name, sig),
		Kind:               symbol.MemberProperty,
		EmitScope:          symbol.ClassSurface,
		Provenance:         symbol.Declared,
		FieldType:          fieldType,
		HasGetter:          true,
		CanonicalSignature: sig,
	}
}

func TestPropertyOverrideUnifierComputesSortedUnion(t *testing.T) {
	const asm = "Acme"
	baseId := ident.Type(asm, "Acme.Base", 0)
	derivedId := ident.Type(asm, "Acme.Derived", 0)
	baseRef := symbol.TypeReference(symbol.Named{Assembly: asm, FullName: "Acme.Base"})

	cacheLevel := symbol.Named{Assembly: asm, FullName: "Acme.CacheLevel"}
	httpCacheLevel := symbol.Named{Assembly: asm, FullName: "Acme.HttpCacheLevel"}

	g := symbol.New()
	g = g.WithNewType(symbol.TypeSymbol{
		StableId: baseId, Assembly: asm, FullName: "Acme.Base", ClrName: "Base",
		Kind:    symbol.KindClass,
		Members: []symbol.Member{getterProperty(asm, "Acme.Base", "level", cacheLevel)},
	})
	g = g.WithNewType(symbol.TypeSymbol{
		StableId: derivedId, Assembly: asm, FullName: "Acme.Derived", ClrName: "Derived",
		Kind: symbol.KindClass,
		Base: &baseRef,
		Members: []symbol.Member{
			getterProperty(asm, "Acme.Derived", "level", httpCacheLevel),
		},
	})

	_, plan := PropertyOverrideUnifier(newContext(), g)

	baseProp := getterProperty(asm, "Acme.Base", "level", cacheLevel)
	derivedProp := getterProperty(asm, "Acme.Derived", "level", httpCacheLevel)

	baseUnion, ok := plan.Union(baseId, baseProp.StableId)
	if !ok || baseUnion != "CacheLevel | HttpCacheLevel" {
		t.Errorf("base union: got (%q, %v), want \"CacheLevel | HttpCacheLevel\"", baseUnion, ok)
	}
	derivedUnion, ok := plan.Union(derivedId, derivedProp.StableId)
	if !ok || derivedUnion != "CacheLevel | HttpCacheLevel" {
		t.Errorf("derived union: got (%q, %v), want \"CacheLevel | HttpCacheLevel\"", derivedUnion, ok)
	}
}
