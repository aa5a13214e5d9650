package emitter

import "github.com/dtsforge/dtsforge/internal/diagnostics"

// validationSummary is the machine-readable counterpart of PhaseGate's
// text summary table (§6, §7: "a diagnostic-file and a summary-JSON are
// written even when emission is aborted"), grounded on the teacher's
// lintResult/lintSummary split.
type validationSummary struct {
	Summary     summaryCounts       `json:"summary"`
	Diagnostics []summaryDiagnostic `json:"diagnostics,omitempty"`
}

type summaryCounts struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

type summaryDiagnostic struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

func buildValidationSummary(sink *diagnostics.Sink) validationSummary {
	var out validationSummary
	out.Summary.Errors = sink.CountBySeverity(diagnostics.SeverityFatal) + sink.CountBySeverity(diagnostics.SeverityError)
	out.Summary.Warnings = sink.CountBySeverity(diagnostics.SeverityWarning)
	out.Summary.Infos = sink.CountBySeverity(diagnostics.SeverityInfo)

	for _, d := range sink.Diagnostics() {
		loc := d.Namespace
		if d.Type != "" {
			if loc != "" {
				loc += "."
			}
			loc += d.Type
		}
		if d.Member != "" {
			loc += "::" + d.Member
		}
		out.Diagnostics = append(out.Diagnostics, summaryDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code,
			Message:  d.Message,
			Location: loc,
		})
	}
	return out
}
