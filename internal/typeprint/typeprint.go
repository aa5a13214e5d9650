// Package typeprint renders a TypeReference as a target-language type
// string using only information intrinsic to the reference itself (no
// renamer lookups). It backs PropertyOverrideUnifier's type-equality
// comparison (§4.5.5) and gives the planner's TypeNameResolver a
// starting point for positions that do not require alias/instance
// disambiguation.
package typeprint

import (
	"strconv"
	"strings"

	"github.com/dtsforge/dtsforge/internal/symbol"
	"github.com/dtsforge/dtsforge/internal/typemap"
)

// Render returns the target-language spelling of ref using a raw
// last-path-segment name for any Named/Nested type not covered by the
// built-in/container tables. Callers needing renamer-assigned final
// names (the emission-time common case) use planner.TypeNameResolver
// instead; Render exists for contexts — like PropertyOverrideUnifier's
// type-identity comparison — that only need a stable, deterministic
// string, not the emitted name.
func Render(ref symbol.TypeReference) string {
	var b strings.Builder
	write(&b, ref)
	return b.String()
}

// ContainsGenericParamFromDisjointScope reports whether ref mentions a
// GenericParam not present in allowed, the PropertyOverrideUnifier
// safety filter of §4.5.5 ("if any component type contains a generic
// parameter token from a disjoint scope, the unification is skipped").
func ContainsGenericParamFromDisjointScope(ref symbol.TypeReference, allowed map[int]bool) bool {
	switch t := ref.(type) {
	case symbol.GenericParam:
		return !allowed[t.Position]
	case symbol.Named:
		for _, a := range t.TypeArgs {
			if ContainsGenericParamFromDisjointScope(a, allowed) {
				return true
			}
		}
		return false
	case symbol.Nested:
		if ContainsGenericParamFromDisjointScope(t.Outer, allowed) {
			return true
		}
		for _, a := range t.TypeArgs {
			if ContainsGenericParamFromDisjointScope(a, allowed) {
				return true
			}
		}
		return false
	case symbol.Array:
		return ContainsGenericParamFromDisjointScope(t.Element, allowed)
	case symbol.Pointer:
		return ContainsGenericParamFromDisjointScope(t.Pointee, allowed)
	case symbol.ByRef:
		return ContainsGenericParamFromDisjointScope(t.Referent, allowed)
	default:
		return false
	}
}

func write(b *strings.Builder, ref symbol.TypeReference) {
	switch t := ref.(type) {
	case nil:
		b.WriteString("void")
	case symbol.Named:
		if builtin, ok := typemap.TryMapBuiltin(t.FullName); ok {
			b.WriteString(builtin)
			return
		}
		withArity := t.FullName
		if len(t.TypeArgs) > 0 {
			withArity = arityName(t.FullName, len(t.TypeArgs))
		}
		if tmpl, ok := typemap.TryMapContainer(withArity); ok && len(t.TypeArgs) == 1 {
			inner := Render(t.TypeArgs[0])
			fmtTemplate(b, tmpl, inner)
			return
		}
		b.WriteString(simpleName(t.FullName))
		if len(t.TypeArgs) > 0 {
			b.WriteByte('<')
			for i, a := range t.TypeArgs {
				if i > 0 {
					b.WriteString(", ")
				}
				write(b, a)
			}
			b.WriteByte('>')
		}
	case symbol.Nested:
		write(b, t.Outer)
		b.WriteByte('.')
		b.WriteString(t.NestedName)
	case symbol.GenericParam:
		b.WriteString(t.Name)
	case symbol.Array:
		write(b, t.Element)
		for i := 0; i < t.Rank; i++ {
			b.WriteString("[]")
		}
	case symbol.Pointer:
		write(b, t.Pointee)
	case symbol.ByRef:
		write(b, t.Referent)
	case symbol.Placeholder:
		b.WriteString("unknown")
	default:
		b.WriteString("unknown")
	}
}

func simpleName(fullName string) string {
	idx := strings.LastIndexByte(fullName, '.')
	if idx < 0 {
		return fullName
	}
	return fullName[idx+1:]
}

func arityName(fullName string, arity int) string {
	var b strings.Builder
	b.WriteString(fullName)
	b.WriteByte('`')
	b.WriteString(strconv.Itoa(arity))
	return b.String()
}

func fmtTemplate(b *strings.Builder, tmpl, arg string) {
	idx := strings.Index(tmpl, "%s")
	if idx < 0 {
		b.WriteString(tmpl)
		return
	}
	b.WriteString(tmpl[:idx])
	b.WriteString(arg)
	b.WriteString(tmpl[idx+2:])
}
