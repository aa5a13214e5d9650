package emitter

import (
	"github.com/dtsforge/dtsforge/internal/ident"
	"github.com/dtsforge/dtsforge/internal/planner"
	"github.com/dtsforge/dtsforge/internal/renamer"
	"github.com/dtsforge/dtsforge/internal/shape"
	"github.com/dtsforge/dtsforge/internal/symbol"
)

// namespaceMetadata is the top-level shape of internal/metadata.json
// (§6): one per namespace, listing every type with its full member
// inventory so downstream tooling never has to re-derive emission
// decisions from the declaration text.
type namespaceMetadata struct {
	Namespace              string         `json:"namespace"`
	ContributingAssemblies []string       `json:"contributingAssemblies"`
	Types                  []typeMetadata `json:"types"`
}

type typeMetadata struct {
	ClrName       string   `json:"clrName"`
	TSEmitName    string   `json:"tsEmitName"`
	Kind          string   `json:"kind"`
	Accessibility string   `json:"accessibility"`
	IsAbstract    bool     `json:"isAbstract"`
	IsSealed      bool     `json:"isSealed"`
	IsStatic      bool     `json:"isStatic"`
	Arity         int      `json:"arity"`

	Constructors []memberMetadata `json:"constructors"`
	Methods      []memberMetadata `json:"methods"`
	Properties   []memberMetadata `json:"properties"`
	Fields       []memberMetadata `json:"fields"`
	Events       []memberMetadata `json:"events"`

	UnsatisfiableInterfaces []unsatisfiableInterfaceMetadata `json:"unsatisfiableInterfaces,omitempty"`
}

type memberMetadata struct {
	ClrName             string `json:"clrName"`
	TSEmitName          string `json:"tsEmitName"`
	NormalizedSignature string `json:"normalizedSignature"`
	Provenance          string `json:"provenance"`
	EmitScope           string `json:"emitScope"`
	Static              bool   `json:"static"`
	IsOverride          bool   `json:"isOverride"`
	IsAbstract          bool   `json:"isAbstract"`
	IsVirtual           bool   `json:"isVirtual"`
	Arity               int    `json:"arity"`
	ParameterCount      int    `json:"parameterCount"`
	SourceInterface     string `json:"sourceInterface,omitempty"`
}

type unsatisfiableInterfaceMetadata struct {
	InterfaceClrName string `json:"interfaceClrName"`
	Reason           string `json:"reason"`
	IssueCount       int    `json:"issueCount"`
}

// buildNamespaceMetadata assembles the metadata.json payload for one
// namespace, reading member emission decisions straight off the graph
// and the renamer rather than re-deriving them, so metadata.json and
// the declaration file can never disagree about what was emitted.
func buildNamespaceMetadata(ns symbol.Namespace, plan *planner.EmissionPlan) namespaceMetadata {
	out := namespaceMetadata{
		Namespace:              ns.Name,
		ContributingAssemblies: ns.ContributingAssemblies,
		Types:                  make([]typeMetadata, 0, len(ns.Types)),
	}

	honest := plan.Shape.HonestEmission

	for _, id := range ns.Types {
		t, ok := plan.Graph.Type(id)
		if !ok || t.Accessibility != symbol.Public {
			continue
		}
		tm := typeMetadata{
			ClrName:       t.ClrName,
			TSEmitName:    plan.Renamer.FinalTypeName(id),
			Kind:          t.Kind.String(),
			Accessibility: "public",
			IsAbstract:    t.Abstract,
			IsSealed:      t.Sealed,
			IsStatic:      t.Static,
			Arity:         len(t.GenericParameters),
		}

		for _, m := range t.Members {
			if m.EmitScope == symbol.Omitted {
				continue
			}
			mm := buildMemberMetadata(t, m, plan.Renamer)
			switch m.Kind {
			case symbol.MemberConstructor:
				tm.Constructors = append(tm.Constructors, mm)
			case symbol.MemberMethod:
				tm.Methods = append(tm.Methods, mm)
			case symbol.MemberProperty:
				tm.Properties = append(tm.Properties, mm)
			case symbol.MemberField:
				tm.Fields = append(tm.Fields, mm)
			case symbol.MemberEvent:
				tm.Events = append(tm.Events, mm)
			}
		}

		if honest != nil {
			for _, u := range honest.UnsatisfiableInterfaces[id] {
				tm.UnsatisfiableInterfaces = append(tm.UnsatisfiableInterfaces, unsatisfiableInterfaceMetadata{
					InterfaceClrName: u.InterfaceClrName,
					Reason:           u.Reason,
					IssueCount:       u.IssueCount,
				})
			}
		}

		out.Types = append(out.Types, tm)
	}

	return out
}

func buildMemberMetadata(t symbol.TypeSymbol, m symbol.Member, r *renamer.Renamer) memberMetadata {
	tsName, _ := r.FinalMemberName(m.StableId, memberScope(t, m))

	mm := memberMetadata{
		ClrName:             m.ClrName,
		TSEmitName:          tsName,
		NormalizedSignature: m.CanonicalSignature,
		Provenance:          m.Provenance.String(),
		EmitScope:           m.EmitScope.String(),
		Static:              m.Static,
		IsOverride:          m.IsOverride,
		IsAbstract:          m.IsAbstract,
		IsVirtual:           m.IsVirtual,
		Arity:               m.MethodArity,
		ParameterCount:      len(m.Parameters),
	}
	if m.EmitScope == symbol.ViewOnly && m.SourceInterface != nil {
		mm.SourceInterface = symbol.TypeId(*m.SourceInterface).String()
	}
	return mm
}

// suppressedStaticReasons collects the StaticConflictPlan reasons for
// typeId: why each static member was suppressed from a derived type's
// surface (§4.5.4). It currently has no callers.
func suppressedStaticReasons(plan *shape.StaticConflictPlan, typeId ident.StableId) map[ident.StableId]string {
	if plan == nil {
		return nil
	}
	return plan.Reasons[typeId]
}
