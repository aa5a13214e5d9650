package loader

import (
	"encoding/json"
	"fmt"
)

// AssemblyDump is the on-disk JSON shape of one *.apidump.json file: a
// faithful mirror of one source-platform assembly's public API surface,
// grouped by namespace. This stands in for "the source platform's
// binary format" (spec §1 names that format out of scope).
type AssemblyDump struct {
	Assembly   string           `json:"assembly"`
	Namespaces []NamespaceDump  `json:"namespaces"`
}

// NamespaceDump is one namespace's type list within an assembly dump.
type NamespaceDump struct {
	Name  string     `json:"name"`
	Types []TypeDump `json:"types"`
}

// TypeDump mirrors symbol.TypeSymbol's declared (pre-rewrite) shape.
type TypeDump struct {
	FullName          string               `json:"fullName"`
	ClrName           string               `json:"clrName"`
	Kind              string               `json:"kind"`
	Accessibility     string               `json:"accessibility"`
	Abstract          bool                 `json:"abstract"`
	Sealed            bool                 `json:"sealed"`
	Static            bool                 `json:"static"`
	GenericParameters []GenericParamDump   `json:"genericParameters"`
	Base              *TypeRefDump         `json:"base"`
	Implements        []TypeRefDump        `json:"implements"`
	Members           []MemberDump         `json:"members"`
	EnumUnderlying    *TypeRefDump         `json:"enumUnderlying"`
	EnumLiterals      []EnumLiteralDump    `json:"enumLiterals"`
	DelegateParams    []ParameterDump      `json:"delegateParameters"`
	DelegateReturn    *TypeRefDump         `json:"delegateReturn"`
}

// GenericParamDump mirrors symbol.GenericParameter.
type GenericParamDump struct {
	Name        string        `json:"name"`
	Constraints []TypeRefDump `json:"constraints"`
	Variance    string        `json:"variance"`
}

// EnumLiteralDump mirrors symbol.EnumLiteral.
type EnumLiteralDump struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// ParameterDump mirrors symbol.Parameter.
type ParameterDump struct {
	Name     string      `json:"name"`
	Type     TypeRefDump `json:"type"`
	ByRef    bool        `json:"byRef"`
	Optional bool        `json:"optional"`
	Variadic bool        `json:"variadic"`
}

// MemberDump mirrors symbol.Member's declared (pre-StableId) shape. The
// loader computes CanonicalSignature and StableId itself rather than
// trusting dump-supplied identity, per §3.1's "StableId is derived
// exclusively from information intrinsic to the source declaration".
type MemberDump struct {
	ClrName         string          `json:"clrName"`
	Kind            string          `json:"kind"`
	Static          bool            `json:"static"`
	Visibility      string          `json:"visibility"`
	SourceInterface *TypeRefDump    `json:"sourceInterface"`
	Parameters      []ParameterDump `json:"parameters"`
	ReturnType      *TypeRefDump    `json:"returnType"`
	FieldType       *TypeRefDump    `json:"fieldType"`
	IndexParams     []ParameterDump `json:"indexParams"`
	HasGetter       bool            `json:"hasGetter"`
	HasSetter       bool            `json:"hasSetter"`
	MethodArity     int             `json:"methodArity"`
	IsOverride      bool            `json:"isOverride"`
	IsAbstract      bool            `json:"isAbstract"`
	IsVirtual       bool            `json:"isVirtual"`
}

// TypeRefDump is the tagged-union JSON encoding of symbol.TypeReference.
type TypeRefDump struct {
	Kind string `json:"kind"`

	// Named / Nested
	Assembly string        `json:"assembly,omitempty"`
	FullName string        `json:"fullName,omitempty"`
	TypeArgs []TypeRefDump `json:"typeArgs,omitempty"`
	Outer    *TypeRefDump  `json:"outer,omitempty"`
	NestedName string      `json:"nestedName,omitempty"`

	// GenericParam
	Position int    `json:"position,omitempty"`
	Owner    string `json:"owner,omitempty"`
	Name     string `json:"name,omitempty"`

	// Array
	Element *TypeRefDump `json:"element,omitempty"`
	Rank    int          `json:"rank,omitempty"`

	// Pointer / ByRef
	Pointee  *TypeRefDump `json:"pointee,omitempty"`
	Referent *TypeRefDump `json:"referent,omitempty"`
}

func decodeAssemblyDump(content []byte) (*AssemblyDump, error) {
	var dump AssemblyDump
	if err := json.Unmarshal(content, &dump); err != nil {
		return nil, fmt.Errorf("loader: malformed assembly dump: %w", err)
	}
	return &dump, nil
}
