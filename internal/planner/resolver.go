package planner

import (
	"strconv"

	"github.com/dtsforge/dtsforge/internal/renamer"
	"github.com/dtsforge/dtsforge/internal/symbol"
	"github.com/dtsforge/dtsforge/internal/typemap"
	"github.com/dtsforge/dtsforge/internal/typeprint"
)

// TypeNameResolver converts any TypeReference to a target-language
// identifier, applying the short-circuit rules of §4.6 in order:
// built-in primitive, type-import alias, value-import qualified name,
// graph-resolved instance/alias name, external-type sanitization.
type TypeNameResolver struct {
	graph      *symbol.Graph
	renamer    *renamer.Renamer
	currentNs  string
	valueNames ValueImportQualifiedNames
}

// NewTypeNameResolver builds a resolver scoped to one namespace's
// emission (currentNamespace selects which ValueImportQualifiedNames
// row applies, since the same foreign type may be qualified
// differently by different importing namespaces).
func NewTypeNameResolver(g *symbol.Graph, r *renamer.Renamer, valueNames ValueImportQualifiedNames, currentNamespace string) *TypeNameResolver {
	return &TypeNameResolver{graph: g, renamer: r, currentNs: currentNamespace, valueNames: valueNames}
}

// Resolve returns the identifier ref should be rendered as.
// forValuePosition selects the instance form ("Foo$instance") over the
// alias form ("Foo") for in-graph types appearing in an
// extends/implements clause.
func (tr *TypeNameResolver) Resolve(ref symbol.TypeReference, forValuePosition bool) string {
	switch t := ref.(type) {
	case nil:
		return "void"
	case symbol.Named:
		if builtin, ok := typemap.TryMapBuiltin(t.FullName); ok {
			return builtin
		}
		if len(t.TypeArgs) > 0 {
			if tmpl, ok := typemap.TryMapContainer(arityKey(t.FullName, len(t.TypeArgs))); ok && len(t.TypeArgs) == 1 {
				return applyTemplate(tmpl, tr.Resolve(t.TypeArgs[0], false))
			}
		}
		return tr.resolveNamed(t, forValuePosition)
	case symbol.Nested:
		return tr.Resolve(t.Outer, false) + "." + t.NestedName
	case symbol.GenericParam:
		return t.Name
	case symbol.Array:
		elem := tr.Resolve(t.Element, false)
		for i := 0; i < t.Rank; i++ {
			elem += "[]"
		}
		return elem
	case symbol.Pointer:
		return tr.Resolve(t.Pointee, false)
	case symbol.ByRef:
		return tr.Resolve(t.Referent, false)
	default:
		return typeprint.Render(ref)
	}
}

func (tr *TypeNameResolver) resolveNamed(named symbol.Named, forValuePosition bool) string {
	id := symbol.TypeId(named)
	target, inGraph := tr.graph.Type(id)

	if forValuePosition && inGraph && target.Namespace != tr.currentNs {
		if qualified, ok := tr.valueNames.Get(tr.currentNs, target.FullName); ok {
			return qualified
		}
	}

	if inGraph {
		if forValuePosition {
			if name := tr.renamer.InstanceTypeName(id); name != "" {
				return tr.qualifyIfForeign(target, name)
			}
		}
		if name := tr.renamer.FinalTypeName(id); name != "" {
			return tr.qualifyIfForeign(target, name)
		}
	}

	return sanitizeExternal(named.FullName)
}

func (tr *TypeNameResolver) qualifyIfForeign(target symbol.TypeSymbol, name string) string {
	if target.Namespace == tr.currentNs {
		return name
	}
	return namespaceAlias(target.Namespace) + "." + name
}

func arityKey(fullName string, arity int) string {
	if arity == 0 {
		return fullName
	}
	return fullName + "`" + strconv.Itoa(arity)
}

func applyTemplate(tmpl, arg string) string {
	for i := 0; i+1 < len(tmpl); i++ {
		if tmpl[i] == '%' && tmpl[i+1] == 's' {
			return tmpl[:i] + arg + tmpl[i+2:]
		}
	}
	return tmpl
}

// sanitizeExternal renders a type outside the graph (an unresolved
// foreign reference) using its simple name. No diagnostic is reported
// for such references, here or by the phase gate.
func sanitizeExternal(fullName string) string {
	idx := -1
	for i := len(fullName) - 1; i >= 0; i-- {
		if fullName[i] == '.' {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fullName
	}
	return fullName[idx+1:]
}
