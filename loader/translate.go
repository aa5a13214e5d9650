package loader

import (
	"github.com/dtsforge/dtsforge/internal/diagnostics"
	"github.com/dtsforge/dtsforge/internal/ident"
	"github.com/dtsforge/dtsforge/internal/symbol"
)

// translator turns one or more AssemblyDumps into a symbol.Graph,
// reporting diagnostics for anything it cannot faithfully represent
// rather than failing the whole load (§7: loader failures at the
// individual-declaration level are diagnostics, not operational
// errors).
type translator struct {
	sink *diagnostics.Sink
}

func (tr *translator) translateType(assembly, namespace string, d TypeDump) (symbol.TypeSymbol, bool) {
	kind, ok := parseKind(d.Kind)
	if !ok {
		tr.sink.Report(diagnostics.Diagnostic{
			Severity: diagnostics.SeverityWarning,
			Code:     diagnostics.CodeUnknownTypeReference,
			Message:  "unrecognized type kind \"" + d.Kind + "\"",
			Type:     d.FullName,
		})
		return symbol.TypeSymbol{}, false
	}

	accessibility := symbol.Public
	if d.Accessibility == "internal" {
		accessibility = symbol.Internal
	}
	if accessibility != symbol.Public {
		tr.sink.Report(diagnostics.Diagnostic{
			Severity: diagnostics.SeverityInfo,
			Code:     diagnostics.CodeNonPublicSkipped,
			Message:  "internal type retained for reference-resolution only",
			Type:     d.FullName,
		})
	}

	arity := len(d.GenericParameters)
	id := ident.Type(assembly, d.FullName, arity)

	t := symbol.TypeSymbol{
		StableId:          id,
		Assembly:          assembly,
		FullName:          d.FullName,
		ClrName:           d.ClrName,
		Namespace:         namespace,
		Kind:              kind,
		Accessibility:     accessibility,
		Abstract:          d.Abstract,
		Sealed:            d.Sealed,
		Static:            d.Static,
		GenericParameters: tr.translateGenericParams(d.GenericParameters),
		Implements:        tr.translateRefList(d.Implements),
		OriginAssemblies:  []string{assembly},
	}

	if d.Base != nil {
		ref := tr.translateRef(*d.Base)
		t.Base = &ref
	}
	if d.EnumUnderlying != nil {
		t.EnumUnderlying = tr.translateRef(*d.EnumUnderlying)
	}
	for _, lit := range d.EnumLiterals {
		t.EnumLiterals = append(t.EnumLiterals, symbol.EnumLiteral{Name: lit.Name, Value: lit.Value})
	}
	if len(d.DelegateParams) > 0 || d.DelegateReturn != nil {
		t.DelegateParameters = tr.translateParams(d.DelegateParams)
		if d.DelegateReturn != nil {
			t.DelegateReturn = tr.translateRef(*d.DelegateReturn)
			t.DelegateHasReturn = true
		}
	}

	for _, md := range d.Members {
		m, ok := tr.translateMember(assembly, d.FullName, md)
		if ok {
			t.Members = append(t.Members, m)
		}
	}

	return t, true
}

func (tr *translator) translateGenericParams(ds []GenericParamDump) []symbol.GenericParameter {
	out := make([]symbol.GenericParameter, 0, len(ds))
	for _, d := range ds {
		out = append(out, symbol.GenericParameter{
			Name:        d.Name,
			Constraints: tr.translateRefList(d.Constraints),
			Variance:    parseVariance(d.Variance),
		})
	}
	return out
}

func (tr *translator) translateParams(ds []ParameterDump) []symbol.Parameter {
	out := make([]symbol.Parameter, 0, len(ds))
	for _, d := range ds {
		out = append(out, symbol.Parameter{
			Name:     d.Name,
			Type:     tr.translateRef(d.Type),
			ByRef:    d.ByRef,
			Optional: d.Optional,
			Variadic: d.Variadic,
		})
	}
	return out
}

func (tr *translator) translateRefList(ds []TypeRefDump) []symbol.TypeReference {
	out := make([]symbol.TypeReference, 0, len(ds))
	for _, d := range ds {
		out = append(out, tr.translateRef(d))
	}
	return out
}

func (tr *translator) translateRef(d TypeRefDump) symbol.TypeReference {
	switch d.Kind {
	case "named":
		return symbol.Named{Assembly: d.Assembly, FullName: d.FullName, TypeArgs: tr.translateRefList(d.TypeArgs)}
	case "nested":
		var outer symbol.TypeReference
		if d.Outer != nil {
			outer = tr.translateRef(*d.Outer)
		}
		return symbol.Nested{Outer: outer, NestedName: d.NestedName, TypeArgs: tr.translateRefList(d.TypeArgs)}
	case "genericParam":
		owner := symbol.OwnerType
		if d.Owner == "method" {
			owner = symbol.OwnerMethod
		}
		return symbol.GenericParam{Position: d.Position, Owner: owner, Name: d.Name}
	case "array":
		var elem symbol.TypeReference
		if d.Element != nil {
			elem = tr.translateRef(*d.Element)
		}
		rank := d.Rank
		if rank == 0 {
			rank = 1
		}
		return symbol.Array{Element: elem, Rank: rank}
	case "pointer":
		var pointee symbol.TypeReference
		if d.Pointee != nil {
			pointee = tr.translateRef(*d.Pointee)
		}
		return symbol.Pointer{Pointee: pointee}
	case "byref":
		var referent symbol.TypeReference
		if d.Referent != nil {
			referent = tr.translateRef(*d.Referent)
		}
		return symbol.ByRef{Referent: referent}
	default:
		tr.sink.Report(diagnostics.Diagnostic{
			Severity: diagnostics.SeverityWarning,
			Code:     diagnostics.CodeUnknownTypeReference,
			Message:  "unrecognized type reference kind \"" + d.Kind + "\"",
		})
		return symbol.Named{Assembly: d.Assembly, FullName: d.FullName}
	}
}

func (tr *translator) translateMember(assembly, declaringFullName string, d MemberDump) (symbol.Member, bool) {
	kind, ok := parseMemberKind(d.Kind)
	if !ok {
		tr.sink.Report(diagnostics.Diagnostic{
			Severity: diagnostics.SeverityWarning,
			Code:     diagnostics.CodeUnknownMemberKind,
			Message:  "unrecognized member kind \"" + d.Kind + "\"",
			Type:     declaringFullName,
			Member:   d.ClrName,
		})
		return symbol.Member{}, false
	}

	if d.Visibility != "" && d.Visibility != "public" && d.Visibility != "protected" {
		tr.sink.Report(diagnostics.Diagnostic{
			Severity: diagnostics.SeverityInfo,
			Code:     diagnostics.CodeNonPublicSkipped,
			Message:  "non-public member skipped",
			Type:     declaringFullName,
			Member:   d.ClrName,
		})
		return symbol.Member{}, false
	}
	visibility := symbol.VisibilityPublic
	if d.Visibility == "protected" {
		visibility = symbol.VisibilityProtected
	}

	params := tr.translateParams(d.Parameters)
	var ret symbol.TypeReference
	hasReturn := d.ReturnType != nil
	if hasReturn {
		ret = tr.translateRef(*d.ReturnType)
	}

	sig := symbol.CanonicalSignature(kind, d.Static, d.MethodArity, params, ret, hasReturn)
	id := ident.Member(assembly, declaringFullName, d.ClrName, sig)

	m := symbol.Member{
		ClrName:            d.ClrName,
		StableId:           id,
		Kind:               kind,
		EmitScope:          symbol.ClassSurface,
		Provenance:         symbol.Declared,
		Static:             d.Static,
		Visibility:         visibility,
		Parameters:         params,
		ReturnType:         ret,
		HasReturn:          hasReturn,
		IndexParams:        tr.translateParams(d.IndexParams),
		HasGetter:          d.HasGetter,
		HasSetter:          d.HasSetter,
		MethodArity:        d.MethodArity,
		IsOverride:         d.IsOverride,
		IsAbstract:         d.IsAbstract,
		IsVirtual:          d.IsVirtual,
		CanonicalSignature: sig,
	}
	if d.FieldType != nil {
		m.FieldType = tr.translateRef(*d.FieldType)
	}
	if d.SourceInterface != nil {
		ref := tr.translateRef(*d.SourceInterface)
		m.SourceInterface = &ref
		m.EmitScope = symbol.ViewOnly
	}
	return m, true
}

func parseKind(s string) (symbol.Kind, bool) {
	switch s {
	case "class":
		return symbol.KindClass, true
	case "struct":
		return symbol.KindStruct, true
	case "interface":
		return symbol.KindInterface, true
	case "enum":
		return symbol.KindEnum, true
	case "delegate":
		return symbol.KindDelegate, true
	case "static-namespace":
		return symbol.KindStaticNamespace, true
	default:
		return 0, false
	}
}

func parseMemberKind(s string) (symbol.MemberKind, bool) {
	switch s {
	case "constructor":
		return symbol.MemberConstructor, true
	case "method":
		return symbol.MemberMethod, true
	case "property":
		return symbol.MemberProperty, true
	case "field":
		return symbol.MemberField, true
	case "event":
		return symbol.MemberEvent, true
	default:
		return 0, false
	}
}

func parseVariance(s string) symbol.Variance {
	switch s {
	case "covariant":
		return symbol.Covariant
	case "contravariant":
		return symbol.Contravariant
	default:
		return symbol.Invariant
	}
}
