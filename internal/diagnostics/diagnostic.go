package diagnostics

import (
	"fmt"
	"slices"
	"strings"
)

// Diagnostic is an issue found during loading, shaping, planning, or
// phase-gate validation.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	// Location, all optional: the most specific non-empty field locates
	// the offending symbol.
	Namespace string
	Type      string
	Member    string
}

// String renders "[severity] code: namespace.type::member: message" with
// location parts omitted when empty.
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(d.Severity.String())
	b.WriteString("] ")
	b.WriteString(d.Code)
	b.WriteString(": ")
	if d.Namespace != "" || d.Type != "" || d.Member != "" {
		if d.Namespace != "" {
			b.WriteString(d.Namespace)
			if d.Type != "" {
				b.WriteByte('.')
			}
		}
		if d.Type != "" {
			b.WriteString(d.Type)
		}
		if d.Member != "" {
			b.WriteString("::")
			b.WriteString(d.Member)
		}
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	return b.String()
}

// Key identifies a diagnostic for deduplication: (code, message).
func (d Diagnostic) Key() string { return d.Code + "\x00" + d.Message }

// Config controls strictness and diagnostic filtering. It is the single
// policy object threaded through loading, shaping, planning, and the
// phase gate.
type Config struct {
	// Level sets the base strictness; diagnostics more permissive than
	// Level are suppressed unless an Override says otherwise.
	Level StrictnessLevel

	// FailAt is the severity threshold for aborting the run. Default
	// (zero value) fails only on Fatal.
	FailAt Severity

	// Overrides changes the effective severity for specific codes.
	Overrides map[string]Severity

	// Ignore lists codes to suppress entirely. Supports a leading or
	// trailing "*" glob.
	Ignore []string

	// Strict enables PhaseGate's "no whitelisted warning" policy: every
	// Warning-severity diagnostic becomes Forbidden (see phasegate).
	Strict bool
}

// DefaultConfig returns the default, normal-strictness configuration.
func DefaultConfig() Config {
	return Config{Level: StrictnessNormal, FailAt: SeverityError}
}

// StrictConfig returns a configuration for strict-mode validation.
func StrictConfig() Config {
	return Config{Level: StrictnessStrict, FailAt: SeverityError, Strict: true}
}

// PermissiveConfig returns a configuration that tolerates messy input
// metadata (common with auto-generated or legacy binding surfaces).
func PermissiveConfig() Config {
	return Config{Level: StrictnessPermissive, FailAt: SeverityFatal}
}

func (c Config) effectiveSeverity(code string, sev Severity) Severity {
	if override, ok := c.Overrides[code]; ok {
		return override
	}
	return sev
}

// ShouldReport reports whether a diagnostic with the given code and
// severity should be surfaced under this configuration: strict reports
// everything, normal reports up to Warning, permissive up to Error, and
// silent nothing.
func (c Config) ShouldReport(code string, sev Severity) bool {
	for _, pattern := range c.Ignore {
		if matchGlob(pattern, code) {
			return false
		}
	}
	sev = c.effectiveSeverity(code, sev)
	if c.Level >= StrictnessSilent {
		return false
	}
	if c.Level == StrictnessStrict {
		return true
	}
	return int(sev) <= int(StrictnessSilent)-int(c.Level)
}

// ShouldFail reports whether a diagnostic with the given severity should
// cause the run to abort.
func (c Config) ShouldFail(sev Severity) bool {
	return sev <= c.FailAt
}

func matchGlob(pattern, s string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(s, prefix)
	}
	if suffix, ok := strings.CutPrefix(pattern, "*"); ok {
		return strings.HasSuffix(s, suffix)
	}
	return pattern == s
}

// Sink collects diagnostics in insertion order, deduplicated by
// (code, message), and maintains a per-code count for summary reporting.
type Sink struct {
	cfg    Config
	seen   map[string]bool
	items  []Diagnostic
	counts map[string]int
}

// NewSink creates a Sink governed by cfg.
func NewSink(cfg Config) *Sink {
	return &Sink{cfg: cfg, seen: make(map[string]bool), counts: make(map[string]int)}
}

// Config returns the sink's configuration.
func (s *Sink) Config() Config { return s.cfg }

// Report records d if the configuration allows it and it has not already
// been recorded. Returns true if it was recorded.
func (s *Sink) Report(d Diagnostic) bool {
	if !s.cfg.ShouldReport(d.Code, d.Severity) {
		return false
	}
	d.Severity = s.cfg.effectiveSeverity(d.Code, d.Severity)
	key := d.Key()
	if s.seen[key] {
		return false
	}
	s.seen[key] = true
	s.items = append(s.items, d)
	s.counts[d.Code]++
	return true
}

// Diagnostics returns all recorded diagnostics in insertion order.
func (s *Sink) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(s.items))
	copy(out, s.items)
	return out
}

// CountByCode returns the number of recorded diagnostics for code.
func (s *Sink) CountByCode(code string) int { return s.counts[code] }

// CountBySeverity returns the number of recorded diagnostics with the
// given severity.
func (s *Sink) CountBySeverity(sev Severity) int {
	n := 0
	for _, d := range s.items {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// HasFailure reports whether any recorded diagnostic meets the
// configured failure threshold.
func (s *Sink) HasFailure() bool {
	for _, d := range s.items {
		if s.cfg.ShouldFail(d.Severity) {
			return true
		}
	}
	return false
}

// Summary renders a one-line-per-code count table, ordered by severity
// then code, matching the teacher's lint summary table.
func (s *Sink) Summary() string {
	var b strings.Builder
	for sev := SeverityFatal; sev <= SeverityInfo; sev++ {
		counts := make(map[string]int)
		for _, d := range s.items {
			if d.Severity == sev {
				counts[d.Code]++
			}
		}
		codes := make([]string, 0, len(counts))
		for code := range counts {
			codes = append(codes, code)
		}
		slices.Sort(codes)
		for _, code := range codes {
			fmt.Fprintf(&b, "%-8s %s %d\n", sev.String()+":", code, counts[code])
		}
	}
	return b.String()
}
