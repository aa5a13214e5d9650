package shape

import "github.com/dtsforge/dtsforge/internal/ident"

// StaticMemberSet is the split collection of ancestor static members
// recorded by StaticHierarchyFlattener for a flattened type.
type StaticMemberSet struct {
	Methods    []ident.StableId
	Properties []ident.StableId
	Fields     []ident.StableId
}

// StaticFlatteningPlan is produced by StaticHierarchyFlattener (§4.5.3).
type StaticFlatteningPlan struct {
	Flatten          map[ident.StableId]bool
	InheritedStatics map[ident.StableId]StaticMemberSet
}

// NewStaticFlatteningPlan returns an empty plan.
func NewStaticFlatteningPlan() *StaticFlatteningPlan {
	return &StaticFlatteningPlan{
		Flatten:          make(map[ident.StableId]bool),
		InheritedStatics: make(map[ident.StableId]StaticMemberSet),
	}
}

// StaticConflictPlan is produced by StaticConflictDetector (§4.5.4).
type StaticConflictPlan struct {
	SuppressedMembersByType map[ident.StableId]map[ident.StableId]bool
	Reasons                 map[ident.StableId]map[ident.StableId]string
}

// NewStaticConflictPlan returns an empty plan.
func NewStaticConflictPlan() *StaticConflictPlan {
	return &StaticConflictPlan{
		SuppressedMembersByType: make(map[ident.StableId]map[ident.StableId]bool),
		Reasons:                 make(map[ident.StableId]map[ident.StableId]string),
	}
}

func (p *StaticConflictPlan) suppress(typeId, memberId ident.StableId, reason string) {
	if p.SuppressedMembersByType[typeId] == nil {
		p.SuppressedMembersByType[typeId] = make(map[ident.StableId]bool)
	}
	if p.Reasons[typeId] == nil {
		p.Reasons[typeId] = make(map[ident.StableId]string)
	}
	p.SuppressedMembersByType[typeId][memberId] = true
	p.Reasons[typeId][memberId] = reason
}

// PropertyOverridePlan maps (TypeStableId, PropertyStableId) to a
// rendered union string, produced by PropertyOverrideUnifier (§4.5.5).
type PropertyOverridePlan struct {
	Unions map[ident.StableId]map[ident.StableId]string
}

// NewPropertyOverridePlan returns an empty plan.
func NewPropertyOverridePlan() *PropertyOverridePlan {
	return &PropertyOverridePlan{Unions: make(map[ident.StableId]map[ident.StableId]string)}
}

func (p *PropertyOverridePlan) set(typeId, propId ident.StableId, union string) {
	if p.Unions[typeId] == nil {
		p.Unions[typeId] = make(map[ident.StableId]string)
	}
	p.Unions[typeId][propId] = union
}

// Union looks up the recorded union string for (typeId, propId).
func (p *PropertyOverridePlan) Union(typeId, propId ident.StableId) (string, bool) {
	m, ok := p.Unions[typeId]
	if !ok {
		return "", false
	}
	s, ok := m[propId]
	return s, ok
}

// UnsatisfiableInterface is one entry of HonestEmissionPlan for a type.
type UnsatisfiableInterface struct {
	InterfaceClrName string
	Reason           string
	IssueCount       int
}

// HonestEmissionPlan is produced by the honest-emission planner
// (§4.5.9).
type HonestEmissionPlan struct {
	UnsatisfiableInterfaces map[ident.StableId][]UnsatisfiableInterface // keyed by claiming type's StableId
}

// NewHonestEmissionPlan returns an empty plan.
func NewHonestEmissionPlan() *HonestEmissionPlan {
	return &HonestEmissionPlan{UnsatisfiableInterfaces: make(map[ident.StableId][]UnsatisfiableInterface)}
}

// ExtensionBucket groups extension methods by the canonical form of
// their receiver type (§4.5.8).
type ExtensionBucket struct {
	ReceiverCanonicalName string
	BucketInterfaceName   string
	Methods               []ident.StableId // extension method StableIds, declaring type unchanged
	RequiredImports       []string         // namespaces contributing a method to this bucket
}

// Id returns a synthetic StableId for the bucket's virtual interface,
// derived from the receiver canonical name so it is stable across runs
// without colliding with any in-graph type's StableId (those are always
// "<assembly>:<fullName>"; this has no assembly segment).
func (b ExtensionBucket) Id() ident.StableId {
	return ident.StableId("ext-bucket:" + b.ReceiverCanonicalName)
}

// HomeNamespace is the namespace the bucket's virtual interface is
// declared in: the first (lexicographically smallest, since
// ExtensionBucketer sorts RequiredImports) contributing namespace, so
// each bucket is emitted exactly once.
func (b ExtensionBucket) HomeNamespace() string {
	if len(b.RequiredImports) == 0 {
		return ""
	}
	return b.RequiredImports[0]
}

// Reason strings for UnsatisfiableInterface / StaticConflictPlan
// (§4.5.4, §4.5.6), centralized so tests and the planner share the same
// literal text.
const (
	ReasonMissingOrIncompatibleMembers = "MissingOrIncompatibleMembers"
	ReasonPropertyTypeDiffers          = "property type differs from base"
	ReasonNoIdenticalSignature         = "no identical-signature counterpart on base"
	ReasonFieldTypeDiffers             = "field type differs from base"
)
