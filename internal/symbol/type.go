package symbol

import "github.com/dtsforge/dtsforge/internal/ident"

// Kind is the TypeSymbol's declaration kind.
type Kind int

const (
	KindClass Kind = iota
	KindStruct
	KindInterface
	KindEnum
	KindDelegate
	KindStaticNamespace
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindStruct:
		return "struct"
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	case KindDelegate:
		return "delegate"
	case KindStaticNamespace:
		return "static-namespace"
	default:
		return "unknown"
	}
}

// Accessibility mirrors the source platform's declared accessibility.
// Only Public types may appear in the public API surface (invariant 4).
type Accessibility int

const (
	Public Accessibility = iota
	Internal
)

// GenericParameter is a type or method generic parameter declaration.
type GenericParameter struct {
	Name        string
	Constraints []TypeReference
	Variance    Variance
}

// Variance is the declared variance of a generic parameter.
type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

// EnumLiteral is a single enum member.
type EnumLiteral struct {
	Name  string
	Value int64
}

// ExplicitView is produced by StructuralConformance + ViewPlanner
// (§4.5.6) when a class/struct cannot structurally satisfy a claimed
// interface.
type ExplicitView struct {
	InterfaceRef      TypeReference
	ViewPropertyName  string
	ViewMembers       []ident.StableId // members with EmitScope == ViewOnly, SourceInterface == InterfaceRef
}

// TypeSymbol is an immutable-by-convention record for a class, struct,
// interface, enum, delegate, or static-namespace declaration. All
// mutation happens through Graph.WithType, which returns a new Graph
// value (§4.1).
type TypeSymbol struct {
	StableId      ident.StableId
	Assembly      string
	FullName      string
	ClrName       string
	Namespace     string
	Kind          Kind
	Accessibility Accessibility
	Abstract      bool
	Sealed        bool
	Static        bool

	GenericParameters []GenericParameter

	// Base is set only for classes (invariant: only classes have a
	// non-null base).
	Base *TypeReference

	// Implements carries the direct interface list for
	// classes/interfaces/structs. InterfaceInliner clears this for
	// interfaces after flattening their members; StructuralConformance
	// removes entries found structurally unsatisfiable.
	Implements []TypeReference

	Members []Member

	// ExplicitViews holds views synthesized by StructuralConformance.
	ExplicitViews []ExplicitView

	// Enum-only.
	EnumUnderlying TypeReference
	EnumLiterals   []EnumLiteral

	// Delegate-only.
	DelegateParameters []Parameter
	DelegateReturn     TypeReference
	DelegateHasReturn  bool

	OriginAssemblies []string
}

// MemberByStableId returns the index of the member with id, or -1.
func (t *TypeSymbol) MemberByStableId(id ident.StableId) int {
	for i := range t.Members {
		if t.Members[i].StableId == id {
			return i
		}
	}
	return -1
}

// InstanceMethods returns indices of non-static methods (used by
// BaseOverloadAdder).
func (t *TypeSymbol) InstanceMethods() []int {
	var out []int
	for i, m := range t.Members {
		if m.Kind == MemberMethod && !m.Static {
			out = append(out, i)
		}
	}
	return out
}

// HasOnlyStaticMembers reports whether t has at least one static member
// and no instance members, the StaticHierarchyFlattener predicate
// (§4.5.3).
func (t *TypeSymbol) HasOnlyStaticMembers() bool {
	sawStatic := false
	for _, m := range t.Members {
		if m.Static {
			sawStatic = true
		} else {
			return false
		}
	}
	return sawStatic
}
