package diagnostics

// Diagnostic codes emitted across loading, shaping, planning, and the
// phase gate. Centralized here, as in the teacher's diagcode.go, so a
// typo in a string literal cannot silently fork a code in two.

// Loader / input codes.
const (
	CodeAssemblyUnreadable   = "assembly-unreadable"
	CodeAssemblyMalformed    = "assembly-malformed"
	CodeDuplicateAssembly    = "duplicate-assembly"
	CodeNonPublicSkipped     = "non-public-member-skipped"
	CodeUnknownMemberKind    = "unknown-member-kind"
	CodeUnknownTypeReference = "unknown-type-reference-kind"
)

// Renamer codes (C3).
const (
	CodeReservedWord         = "reserved-word"
	CodeScopeMismatch        = "scope-mismatch"
	CodeDuplicateReservation = "duplicate-reservation"
	CodeNonMonotonicRename   = "non-monotonic-rename"
	CodeEmptyFinalName       = "empty-final-name"
)

// Type map codes (C4).
const (
	CodeUncoveredPrimitiveArg = "uncovered-primitive-generic-argument"
	CodeUnmappedBuiltin       = "unmapped-builtin"
)

// Shape pass codes (C5).
const (
	CodeInterfaceDuplicateMember   = "interface-duplicate-member-after-inline"
	CodeBaseOverloadCollision      = "base-overload-collision"
	CodeStaticFlattenConflict      = "static-flatten-conflict"
	CodeStaticMemberSuppressed     = "static-member-suppressed"
	CodePropertyUnionSkippedGeneric = "property-union-skipped-generic-scope"
	CodeUnsatisfiableInterface     = "unsatisfiable-interface"
	CodeViewNameCollision          = "view-name-collision"
	CodeDiamondConflict            = "diamond-conflict"
	CodeDiamondUnresolved          = "diamond-unresolved"
	CodeExtensionReceiverUnknown   = "extension-receiver-unknown"
	CodeHonestEmissionOmission     = "honest-emission-omission"
)

// Planner codes (C6).
const (
	CodeImportCycleBucketed   = "import-cycle-bucketed"
	CodeMissingExport         = "missing-export"
	CodeValueImportRequired   = "value-import-required-for-heritage"
	CodeUnresolvedStableId    = "unresolved-stable-id-in-plan"
	CodeAliasInstanceMismatch = "alias-instance-mismatch"
)

// PhaseGate codes (C7) — name rules.
const (
	CodeNameEmpty               = "name-empty"
	CodeNameDuplicateInScope    = "name-duplicate-in-scope"
	CodeNameNumericSuffixLeak   = "name-numeric-suffix-leak"
	CodeNameAliasInstancePair   = "name-alias-instance-inconsistent"
	CodeNameReservedUnhandled   = "name-reserved-word-unhandled"
)

// PhaseGate codes — integrity rules.
const (
	CodeViewOnlyMissingSource    = "view-only-missing-source-interface"
	CodeEmitScopeInvalid         = "emit-scope-invalid"
	CodeScopeLookupMismatch      = "scope-lookup-reservation-mismatch"
)

// PhaseGate codes — plan integrity.
const (
	CodePlanDanglingStableId       = "plan-dangling-stable-id"
	CodeSuppressedMemberMissing    = "suppressed-member-missing"
	CodeSuppressedStaticnessWrong  = "suppressed-member-staticness-mismatch"
	CodePropertyUnionBareGeneric   = "property-union-bare-generic-parameter"
	CodeExtensionBucketBadTarget   = "extension-bucket-bad-target"
)

// PhaseGate codes — reference rules.
const (
	CodeUnresolvedForeignReference = "unresolved-foreign-reference"
	CodeImportNotExported          = "import-not-exported"
	CodeHeritageNotValueImport     = "heritage-reference-not-value-import"
	CodeQualifiedExportUnresolved  = "qualified-export-path-unresolved"
)

// PhaseGate codes — public API surface.
const (
	CodePublicExposesInternal  = "public-exposes-internal-type"
	CodePublicExposesOmitted   = "public-exposes-omitted-member"
	CodePublicExposesNonPublic = "public-exposes-non-public-type"
)

// PhaseGate codes — generic arity.
const (
	CodeArityMismatch          = "generic-arity-mismatch"
	CodePrimitiveArgUncovered  = "primitive-generic-argument-uncovered"
)

// PhaseGate codes — library mode.
const (
	CodeLibraryModeOverlap        = "library-mode-emitted-overlaps-contract"
	CodeLibraryModeDanglingRef    = "library-mode-dangling-reference"
	CodeLibraryModeBindingMismatch = "library-mode-binding-mismatch"
)

// Cross-cutting internal-consistency codes. No pass reports these, but
// they are tabled here so the phase gate's strict-mode policy table has
// an entry for them.
const (
	CodeInternalDuplicateStableId = "internal-duplicate-stable-id"
)

// AllCodes lists every code known to the system, used to build the
// phase gate's strict-mode policy table (see phasegate.DefaultPolicy).
var AllCodes = []string{
	CodeAssemblyUnreadable, CodeAssemblyMalformed, CodeDuplicateAssembly,
	CodeNonPublicSkipped, CodeUnknownMemberKind, CodeUnknownTypeReference,

	CodeReservedWord, CodeScopeMismatch, CodeDuplicateReservation,
	CodeNonMonotonicRename, CodeEmptyFinalName,

	CodeUncoveredPrimitiveArg, CodeUnmappedBuiltin,

	CodeInterfaceDuplicateMember, CodeBaseOverloadCollision,
	CodeStaticFlattenConflict, CodeStaticMemberSuppressed,
	CodePropertyUnionSkippedGeneric, CodeUnsatisfiableInterface,
	CodeViewNameCollision, CodeDiamondConflict, CodeDiamondUnresolved,
	CodeExtensionReceiverUnknown, CodeHonestEmissionOmission,

	CodeImportCycleBucketed, CodeMissingExport, CodeValueImportRequired,
	CodeUnresolvedStableId, CodeAliasInstanceMismatch,

	CodeNameEmpty, CodeNameDuplicateInScope, CodeNameNumericSuffixLeak,
	CodeNameAliasInstancePair, CodeNameReservedUnhandled,

	CodeViewOnlyMissingSource, CodeEmitScopeInvalid, CodeScopeLookupMismatch,

	CodePlanDanglingStableId, CodeSuppressedMemberMissing,
	CodeSuppressedStaticnessWrong, CodePropertyUnionBareGeneric,
	CodeExtensionBucketBadTarget,

	CodeUnresolvedForeignReference, CodeImportNotExported,
	CodeHeritageNotValueImport, CodeQualifiedExportUnresolved,

	CodePublicExposesInternal, CodePublicExposesOmitted,
	CodePublicExposesNonPublic,

	CodeArityMismatch, CodePrimitiveArgUncovered,

	CodeLibraryModeOverlap, CodeLibraryModeDanglingRef,
	CodeLibraryModeBindingMismatch,

	CodeInternalDuplicateStableId,
}
