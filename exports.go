package dtsforge

import (
	"github.com/dtsforge/dtsforge/internal/diagnostics"
)

// Diagnostic describes one issue reported during loading, shaping, or
// plan validation. Re-exported here since internal/diagnostics is not
// importable outside this module.
type Diagnostic = diagnostics.Diagnostic

// Severity ranks a Diagnostic from Fatal down to Info.
type Severity = diagnostics.Severity

const (
	SeverityFatal   = diagnostics.SeverityFatal
	SeverityError   = diagnostics.SeverityError
	SeverityWarning = diagnostics.SeverityWarning
	SeverityInfo    = diagnostics.SeverityInfo
)

// StrictnessLevel selects how aggressively Generate reports borderline
// conditions (§2.3's "strictness" key).
type StrictnessLevel = diagnostics.StrictnessLevel

const (
	StrictnessStrict     = diagnostics.StrictnessStrict
	StrictnessNormal     = diagnostics.StrictnessNormal
	StrictnessPermissive = diagnostics.StrictnessPermissive
	StrictnessSilent     = diagnostics.StrictnessSilent
)
