package symbol

import "github.com/dtsforge/dtsforge/internal/ident"

// MemberKind distinguishes the member collections of §3.2.
type MemberKind int

const (
	MemberConstructor MemberKind = iota
	MemberMethod
	MemberProperty
	MemberField
	MemberEvent
)

func (k MemberKind) String() string {
	switch k {
	case MemberConstructor:
		return "constructor"
	case MemberMethod:
		return "method"
	case MemberProperty:
		return "property"
	case MemberField:
		return "field"
	case MemberEvent:
		return "event"
	default:
		return "member"
	}
}

// EmitScope is the role a member plays in emission.
type EmitScope int

const (
	ClassSurface EmitScope = iota
	ViewOnly
	Omitted
)

func (s EmitScope) String() string {
	switch s {
	case ClassSurface:
		return "class-surface"
	case ViewOnly:
		return "view-only"
	case Omitted:
		return "omitted"
	default:
		return "unknown"
	}
}

// Provenance is the rewrite reason attached to a member.
type Provenance int

const (
	Declared Provenance = iota
	Inherited
	FromInterface
	Synthesized
	BaseOverload
	DiamondResolved
	ExtensionMethod
)

func (p Provenance) String() string {
	switch p {
	case Declared:
		return "declared"
	case Inherited:
		return "inherited"
	case FromInterface:
		return "from-interface"
	case Synthesized:
		return "synthesized"
	case BaseOverload:
		return "base-overload"
	case DiamondResolved:
		return "diamond-resolved"
	case ExtensionMethod:
		return "extension-method"
	default:
		return "unknown"
	}
}

// Visibility mirrors the source platform's accessibility, already
// filtered to public-surface-only by the loader (see §3.3 invariant 4).
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityProtected
)

// Parameter is a single method/constructor/indexer parameter.
type Parameter struct {
	Name     string
	Type     TypeReference
	ByRef    bool
	Optional bool
	Variadic bool
}

// IndexParameter is an indexer's index-parameter list entry (for
// get/set index-parameter properties, §3.2).
type IndexParameter = Parameter

// Member is a constructor, method, property, field, or event on a
// TypeSymbol.
type Member struct {
	ClrName    string
	StableId   ident.StableId
	Kind       MemberKind
	EmitScope  EmitScope
	Provenance Provenance
	Static     bool
	Visibility Visibility

	// SourceInterface is required (non-nil) when EmitScope == ViewOnly
	// (invariant 2).
	SourceInterface *TypeReference

	// Signature, populated per-kind.
	Parameters    []Parameter
	ReturnType    TypeReference // methods, get-accessors; zero value for void
	HasReturn     bool
	FieldType     TypeReference // fields, get/set property type
	IndexParams   []IndexParameter
	HasGetter     bool
	HasSetter     bool
	MethodArity   int // generic method arity
	IsOverride    bool
	IsAbstract    bool
	IsVirtual     bool

	// CanonicalSignature is the deterministic encoding used both to
	// build StableId and to detect duplicate signatures during
	// shape passes (InterfaceInliner, DiamondResolver).
	CanonicalSignature string
}

// Clone returns a shallow copy of m suitable for mutation by a rewrite
// pass (e.g. BaseOverloadAdder cloning an ancestor method onto a
// descendant).
func (m Member) Clone() Member {
	clone := m
	clone.Parameters = append([]Parameter(nil), m.Parameters...)
	clone.IndexParams = append([]IndexParameter(nil), m.IndexParams...)
	if m.SourceInterface != nil {
		ref := *m.SourceInterface
		clone.SourceInterface = &ref
	}
	return clone
}
