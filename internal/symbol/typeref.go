package symbol

import "github.com/dtsforge/dtsforge/internal/ident"

// TypeReference is a reference to a type from a signature, base clause,
// implements clause, field, or generic argument position. It is a
// closed sum type: only this package may implement it, via the
// unexported typeReference marker method, matching the teacher's
// TypeSyntax sum (internal/ast/syntax.go).
type TypeReference interface {
	typeReference()
}

// Named is a reference to a non-nested named type, with type arguments
// if the referenced type is generic.
type Named struct {
	Assembly string
	FullName string
	TypeArgs []TypeReference
}

func (Named) typeReference() {}

// Nested is a reference to a type nested inside another type.
type Nested struct {
	Outer      TypeReference
	NestedName string
	TypeArgs   []TypeReference
}

func (Nested) typeReference() {}

// GenericParamOwner distinguishes a type-level from a method-level
// generic parameter.
type GenericParamOwner int

const (
	OwnerType GenericParamOwner = iota
	OwnerMethod
)

// GenericParam is a reference to a generic parameter by position,
// resolved against the enclosing type or method's parameter list.
type GenericParam struct {
	Position int
	Owner    GenericParamOwner
	Name     string
}

func (GenericParam) typeReference() {}

// Array is a reference to an array of Element with the given rank
// (number of dimensions).
type Array struct {
	Element TypeReference
	Rank    int
}

func (Array) typeReference() {}

// Pointer is a reference to a pointer to Pointee.
type Pointer struct {
	Pointee TypeReference
}

func (Pointer) typeReference() {}

// ByRef is a reference passed by reference.
type ByRef struct {
	Referent TypeReference
}

func (ByRef) typeReference() {}

// Placeholder is used internally by rewrite passes during substitution;
// it must never survive into an EmissionPlan.
type Placeholder struct {
	Label string
}

func (Placeholder) typeReference() {}

// TypeId returns the StableId a Named or Nested reference points at, or
// the empty StableId for reference kinds with no single target type
// (GenericParam, Array, Pointer, ByRef, Placeholder).
func TypeId(ref TypeReference) ident.StableId {
	switch t := ref.(type) {
	case Named:
		return ident.Type(t.Assembly, t.FullName, len(t.TypeArgs))
	case Nested:
		// Nested StableIds are computed by the owning TypeSymbol at
		// construction time; callers needing identity for a Nested
		// reference should resolve through the graph instead.
		return ""
	default:
		return ""
	}
}
