// Package phasegate implements the final validator (C7, §4.7): it
// consumes a completed EmissionPlan, runs the representative rule
// families, and reports every violation through the shared
// diagnostics.Sink. Strict mode is a pure policy-table lookup rather
// than a parallel code path, grounded on the teacher's
// mib.DiagnosticConfig decision logic generalized from a severity
// override table to a closed Forbidden/Informational classification.
package phasegate

import "github.com/dtsforge/dtsforge/internal/diagnostics"

// Classification is a code's strict-mode disposition: there is no
// "whitelisted warning" category (§4.7) — a code is either Forbidden
// (blocks strict validation the moment it's reported) or Informational
// (never blocks, regardless of mode).
type Classification int

const (
	Forbidden Classification = iota
	Informational
)

// Policy maps every known diagnostic code to its strict-mode
// classification.
type Policy map[string]Classification

// DefaultPolicy classifies every code in diagnostics.AllCodes.
// Unknown codes reported at runtime (a code absent from AllCodes, which
// should never happen in a consistent build) are treated as Forbidden
// by Classify, matching §4.7's "unknown warnings fail validation by
// default".
func DefaultPolicy() Policy {
	informational := map[string]bool{
		diagnostics.CodeNonPublicSkipped:            true,
		diagnostics.CodeReservedWord:                true,
		diagnostics.CodeStaticFlattenConflict:       true,
		diagnostics.CodeStaticMemberSuppressed:      true,
		diagnostics.CodeUnsatisfiableInterface:      true,
		diagnostics.CodeHonestEmissionOmission:      true,
		diagnostics.CodeImportCycleBucketed:         true,
		diagnostics.CodePropertyUnionSkippedGeneric: true,
		diagnostics.CodeDiamondConflict:             true,
	}
	p := make(Policy, len(diagnostics.AllCodes))
	for _, code := range diagnostics.AllCodes {
		if informational[code] {
			p[code] = Informational
		} else {
			p[code] = Forbidden
		}
	}
	return p
}

// Classify returns code's classification, defaulting to Forbidden for
// any code the policy doesn't recognize.
func (p Policy) Classify(code string) Classification {
	c, ok := p[code]
	if !ok {
		return Forbidden
	}
	return c
}
