package emitter

import (
	"strings"

	"github.com/dtsforge/dtsforge/internal/ident"
	"github.com/dtsforge/dtsforge/internal/planner"
	"github.com/dtsforge/dtsforge/internal/renamer"
	"github.com/dtsforge/dtsforge/internal/symbol"
)

// bindingsFile is the top-level shape of bindings.json (§6): the
// reflection-time binding table a host runtime consults to map a
// target-side call back onto the originating declaration.
type bindingsFile struct {
	Types []typeBindings `json:"types"`
}

type typeBindings struct {
	StableId   string `json:"stableId"`
	ClrName    string `json:"clrName"`
	TSEmitName string `json:"tsEmitName"`
	Assembly   string `json:"assembly"`

	// Definitions (V1): the member signatures this type itself declares,
	// before hierarchy flattening.
	Definitions memberDefinitionLists `json:"definitions"`

	// Exposures (V2): the member signatures this type's class surface
	// exposes after flattening, overrides, and conflict suppression —
	// one entry per final surface member, carrying the ultimate
	// declaring type for inherited members.
	Exposures []exposureEntry `json:"exposures"`
}

type memberDefinitionLists struct {
	Constructors []string `json:"constructors"`
	Methods      []string `json:"methods"`
	Properties   []string `json:"properties"`
	Fields       []string `json:"fields"`
	Events       []string `json:"events"`
}

type exposureEntry struct {
	Kind                string `json:"kind"`
	ClrName             string `json:"clrName"`
	TSEmitName          string `json:"tsEmitName"`
	NormalizedSignature string `json:"normalizedSignature"`
	DeclaringAssembly   string `json:"declaringAssembly"`
	DeclaringFullName   string `json:"declaringFullName"`
	Token               string `json:"token"`
}

// buildTypeBindings assembles the bindings.json entry for one type.
func buildTypeBindings(t symbol.TypeSymbol, r *renamer.Renamer) typeBindings {
	tb := typeBindings{
		StableId:   t.StableId.String(),
		ClrName:    t.ClrName,
		TSEmitName: r.FinalTypeName(t.StableId),
		Assembly:   t.Assembly,
	}

	for _, m := range t.Members {
		sigRef := m.ClrName + m.CanonicalSignature
		if m.Provenance == symbol.Declared {
			switch m.Kind {
			case symbol.MemberConstructor:
				tb.Definitions.Constructors = append(tb.Definitions.Constructors, sigRef)
			case symbol.MemberMethod:
				tb.Definitions.Methods = append(tb.Definitions.Methods, sigRef)
			case symbol.MemberProperty:
				tb.Definitions.Properties = append(tb.Definitions.Properties, sigRef)
			case symbol.MemberField:
				tb.Definitions.Fields = append(tb.Definitions.Fields, sigRef)
			case symbol.MemberEvent:
				tb.Definitions.Events = append(tb.Definitions.Events, sigRef)
			}
		}

		if m.EmitScope == symbol.Omitted {
			continue
		}

		tsName, _ := r.FinalMemberName(m.StableId, memberScope(t, m))

		declAssembly, declFullName := declaringTypeOf(m.StableId)
		tb.Exposures = append(tb.Exposures, exposureEntry{
			Kind:                m.Kind.String(),
			ClrName:             m.ClrName,
			TSEmitName:          tsName,
			NormalizedSignature: m.CanonicalSignature,
			DeclaringAssembly:   declAssembly,
			DeclaringFullName:   declFullName,
			Token:               m.StableId.String(),
		})
	}

	return tb
}

// declaringTypeOf parses a member StableId ("<assembly>:<fullName>::<name><sig>",
// see ident.Member) back into its declaring assembly and type full name,
// giving bindings.json the "ultimate declaring type" for an inherited
// exposure without requiring Member to carry a redundant field.
func declaringTypeOf(id ident.StableId) (assembly, fullName string) {
	s := id.String()
	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		return "", s
	}
	assembly = s[:colon]
	rest := s[colon+1:]
	if sep := strings.Index(rest, "::"); sep >= 0 {
		fullName = rest[:sep]
	} else {
		fullName = rest
	}
	return assembly, fullName
}

// buildNamespaceBindings assembles bindings.json for every public type
// in a namespace, via the same EmissionPlan used for metadata.json.
func buildNamespaceBindings(ns symbol.Namespace, plan *planner.EmissionPlan) bindingsFile {
	var out bindingsFile
	for _, id := range ns.Types {
		t, ok := plan.Graph.Type(id)
		if !ok || t.Accessibility != symbol.Public {
			continue
		}
		out.Types = append(out.Types, buildTypeBindings(t, plan.Renamer))
	}
	return out
}
