// Package planner implements emission planning (C6, §4.6): cross-
// namespace import/export statements, SCC bucketing of namespace
// import cycles, and the central TypeNameResolver. It is grounded on
// the teacher's resolverContext, which plays the equivalent
// aggregation role gathering every phase's output into one structure
// consumed by the final dump/emit step.
package planner

import (
	"cmp"
	"slices"

	"github.com/dtsforge/dtsforge/internal/graph"
	"github.com/dtsforge/dtsforge/internal/ident"
	"github.com/dtsforge/dtsforge/internal/renamer"
	"github.com/dtsforge/dtsforge/internal/symbol"
)

// TypeImport is one imported type name within an ImportStatement.
type TypeImport struct {
	TypeName      string
	Alias         string
	IsValueImport bool
}

// ImportStatement is one namespace's import of another (§4.6).
type ImportStatement struct {
	TargetNamespace string
	NamespaceAlias  string
	TypeImports     []TypeImport
}

// ImportPlan maps a namespace to its import statements.
type ImportPlan map[string][]ImportStatement

// ExportPlan maps a namespace to its exported top-level names.
type ExportPlan map[string][]string

// valueImportKey is (namespace, CLR full name).
type valueImportKey struct {
	namespace string
	clrFull   string
}

// ValueImportQualifiedNames maps a (namespace, CLR full name) pair to
// its pre-resolved "Alias.TypeName" qualified reference.
type ValueImportQualifiedNames map[valueImportKey]string

// Get looks up the qualified name for (namespace, clrFullName).
func (v ValueImportQualifiedNames) Get(namespace, clrFullName string) (string, bool) {
	s, ok := v[valueImportKey{namespace, clrFullName}]
	return s, ok
}

func (v ValueImportQualifiedNames) set(namespace, clrFullName, qualified string) {
	v[valueImportKey{namespace, clrFullName}] = qualified
}

type typeRefUse struct {
	ref     symbol.TypeReference
	isValue bool
}

// BuildImportPlan walks every type's base/implements (value positions)
// and member signatures (type positions) to discover cross-namespace
// references, returning the import/export plans, the qualified-name
// table for value positions, and the raw namespace dependency graph
// (consumed separately for SCC bucketing, §4.6).
func BuildImportPlan(g *symbol.Graph, r *renamer.Renamer) (ImportPlan, ExportPlan, ValueImportQualifiedNames, *graph.Graph) {
	imports := make(ImportPlan)
	exports := make(ExportPlan)
	valueNames := make(ValueImportQualifiedNames)
	deps := graph.New()

	for _, ns := range g.Namespaces() {
		deps.AddNode(ns.Name)
	}

	// collected[nsKey{src, dst}] -> map[typeId]TypeImport, built first
	// so every reference to the same type within one namespace pair
	// collapses into a single TypeImport entry.
	type nsKey struct{ src, dst string }
	collected := make(map[nsKey]map[ident.StableId]TypeImport)

	for _, id := range g.TypeIds() {
		t, _ := g.Type(id)
		srcNs := t.Namespace

		var uses []typeRefUse
		if t.Base != nil {
			uses = append(uses, typeRefUse{*t.Base, true})
		}
		for _, impl := range t.Implements {
			uses = append(uses, typeRefUse{impl, true})
		}
		for _, m := range t.Members {
			for _, p := range m.Parameters {
				collectRefs(p.Type, false, &uses)
			}
			if m.HasReturn {
				collectRefs(m.ReturnType, false, &uses)
			}
			if m.FieldType != nil {
				collectRefs(m.FieldType, false, &uses)
			}
			for _, ip := range m.IndexParams {
				collectRefs(ip.Type, false, &uses)
			}
		}

		for _, u := range uses {
			targetId := symbol.TypeId(u.ref)
			if targetId == "" {
				continue
			}
			target, ok := g.Type(targetId)
			if !ok || target.Namespace == srcNs {
				continue
			}
			deps.AddEdge(srcNs, target.Namespace)

			k := nsKey{srcNs, target.Namespace}
			if collected[k] == nil {
				collected[k] = make(map[ident.StableId]TypeImport)
			}
			alias := r.FinalTypeName(targetId)
			if alias == "" {
				alias = target.ClrName
			}
			existing, seen := collected[k][targetId]
			isValue := u.isValue || (seen && existing.IsValueImport)
			collected[k][targetId] = TypeImport{TypeName: target.ClrName, Alias: alias, IsValueImport: isValue}

			if u.isValue {
				nsAlias := namespaceAlias(target.Namespace)
				valueNames.set(srcNs, target.FullName, nsAlias+"."+alias)
			}
		}
	}

	srcList := make([]string, 0)
	for k := range collected {
		if !slices.Contains(srcList, k.src) {
			srcList = append(srcList, k.src)
		}
	}
	slices.Sort(srcList)

	for _, src := range srcList {
		var dsts []string
		for k := range collected {
			if k.src == src {
				dsts = append(dsts, k.dst)
			}
		}
		slices.Sort(dsts)
		for _, dst := range dsts {
			tm := collected[nsKey{src, dst}]
			ids := make([]ident.StableId, 0, len(tm))
			for id := range tm {
				ids = append(ids, id)
			}
			slices.SortFunc(ids, func(a, b ident.StableId) int { return cmp.Compare(a, b) })
			var typeImports []TypeImport
			for _, id := range ids {
				typeImports = append(typeImports, tm[id])
			}
			imports[src] = append(imports[src], ImportStatement{
				TargetNamespace: dst,
				NamespaceAlias:  namespaceAlias(dst),
				TypeImports:     typeImports,
			})
		}
	}

	for _, ns := range g.Namespaces() {
		var names []string
		for _, id := range ns.Types {
			t, ok := g.Type(id)
			if !ok || t.Accessibility != symbol.Public {
				continue
			}
			name := r.FinalTypeName(id)
			if name == "" {
				continue
			}
			names = append(names, name)
		}
		slices.Sort(names)
		exports[ns.Name] = names
	}

	return imports, exports, valueNames, deps
}

// collectRefs recursively extracts every Named/Nested type reference
// embedded in ref, tagging each with isValue (propagated from the
// caller; nested generic arguments are always type positions even
// when the outer reference sits in a value position, since only the
// outer symbol appears in an extends/implements clause).
func collectRefs(ref symbol.TypeReference, isValue bool, out *[]typeRefUse) {
	switch t := ref.(type) {
	case nil:
		return
	case symbol.Named:
		*out = append(*out, typeRefUse{t, isValue})
		for _, a := range t.TypeArgs {
			collectRefs(a, false, out)
		}
	case symbol.Nested:
		*out = append(*out, typeRefUse{t, isValue})
		collectRefs(t.Outer, false, out)
		for _, a := range t.TypeArgs {
			collectRefs(a, false, out)
		}
	case symbol.Array:
		collectRefs(t.Element, false, out)
	case symbol.Pointer:
		collectRefs(t.Pointee, false, out)
	case symbol.ByRef:
		collectRefs(t.Referent, false, out)
	}
}

// namespaceAlias derives a stable import alias from a namespace's
// dotted name: its last segment. Distinct namespaces sharing a last
// segment get the same alias; nothing disambiguates them.
func namespaceAlias(namespace string) string {
	idx := -1
	for i := len(namespace) - 1; i >= 0; i-- {
		if namespace[i] == '.' {
			idx = i
			break
		}
	}
	if idx < 0 {
		return namespace
	}
	return namespace[idx+1:]
}
