package dtsforge

import (
	"unicode"

	"github.com/dtsforge/dtsforge/internal/renamer"
	"github.com/dtsforge/dtsforge/internal/shape"
	"github.com/dtsforge/dtsforge/internal/symbol"
)

// reserveNames walks result.Graph, namespace by namespace in a fixed
// (StableId-sorted) order, and reserves a final target-language
// identifier for every type and member the emission planner and
// PhaseGate will later look up. This is the naming equivalent of the
// teacher's resolver.resolve pass: nothing downstream invents a name
// that did not pass through the Renamer first (§4.2). cfg's
// nameTransform table (§2.3) supplies the preferred-name casing before
// the renamer's own reserved-word/disambiguation logic ever sees it.
func reserveNames(result shape.Result, r *renamer.Renamer, cfg Config) {
	g := result.Graph
	for _, id := range g.TypeIds() {
		reserveTypeNames(g, g.MustType(id), r, cfg)
	}
	for _, bucket := range result.ExtensionBuckets {
		r.ReserveType(bucket.Id(), bucket.BucketInterfaceName, renamer.NamespacePublic(bucket.HomeNamespace()), "extension-bucket")
	}
}

func reserveTypeNames(g *symbol.Graph, t symbol.TypeSymbol, r *renamer.Renamer, cfg Config) {
	scope := renamer.NamespacePublic(t.Namespace)
	if t.Accessibility != symbol.Public {
		scope = renamer.NamespaceInternal(t.Namespace)
	}
	r.ReserveType(t.StableId, typeTransform(t.Kind, cfg).Apply(t.ClrName), scope, t.Kind.String())

	base := renamer.TypeBase(t.FullName)
	viewBaseByInterface := make(map[string]renamer.Scope, len(t.ExplicitViews))
	for _, view := range t.ExplicitViews {
		ifaceId := symbol.TypeId(view.InterfaceRef)
		viewBaseByInterface[string(ifaceId)] = renamer.ViewBase(t.StableId, ifaceId)
	}

	for _, m := range t.Members {
		if m.EmitScope == symbol.Omitted {
			continue
		}
		memberBase := base
		if m.EmitScope == symbol.ViewOnly && m.SourceInterface != nil {
			ifaceId := symbol.TypeId(*m.SourceInterface)
			if vb, ok := viewBaseByInterface[string(ifaceId)]; ok {
				memberBase = vb
			} else {
				memberBase = renamer.ViewBase(t.StableId, ifaceId)
			}
		}
		r.ReserveMember(m.StableId, preferredMemberName(m, cfg), memberBase, m.Provenance.String(), m.Static)
	}
}

// typeTransform picks the nameTransform category for a type's own Kind
// (§2.3): interfaces have their own category, everything else (class,
// struct, enum, delegate, static-namespace) shares the "class" category.
func typeTransform(kind symbol.Kind, cfg Config) NameTransform {
	if kind == symbol.KindInterface {
		return cfg.NameTransform.Interface
	}
	return cfg.NameTransform.Class
}

// preferredMemberName applies the member-kind-appropriate nameTransform
// category to a CLR member name. Fields and events have no dedicated
// §2.3 category; they share "property", the closest data-member analog.
// Constructors have no source name at all: they reserve under a fixed
// placeholder that is never actually printed (declprinter always emits
// the literal "constructor" keyword).
func preferredMemberName(m symbol.Member, cfg Config) string {
	if m.Kind == symbol.MemberConstructor {
		return "constructor"
	}
	transform := cfg.NameTransform.Property
	if m.Kind == symbol.MemberMethod {
		transform = cfg.NameTransform.Method
	}
	return transform.Apply(m.ClrName)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
