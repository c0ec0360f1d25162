package feluda

import "time"

// Report verdicts.
const (
	ReportPass = "pass"
	ReportFail = "fail"
)

// Summary holds aggregate finding counts for a report.
type Summary struct {
	Total       int `json:"total"`
	Allowed     int `json:"allowed"`
	Denied      int `json:"denied"`
	Unknown     int `json:"unknown"`
	Restrictive int `json:"restrictive"`
}

// Report is the final output of a scan: an ordered sequence of findings,
// warnings collected along the way, summary counts, and an overall verdict.
// A report serializes to JSON and parses back to an equal report.
type Report struct {
	// RunID uniquely identifies the scan run.
	RunID string `json:"runId"`

	// Path is the scanned root directory.
	Path string `json:"path"`

	// ProjectLicense is the detected or configured license of the scanned
	// project, if any.
	ProjectLicense string `json:"projectLicense,omitempty"`

	GeneratedAt time.Time `json:"generatedAt"`

	Findings []Finding `json:"findings"`
	Warnings []Warning `json:"warnings,omitempty"`
	Summary  Summary   `json:"summary"`

	// Verdict is "pass" or "fail".
	Verdict string `json:"verdict"`
}

// Summarize computes summary counts from a set of findings.
func Summarize(findings []Finding) Summary {
	s := Summary{Total: len(findings)}
	for _, f := range findings {
		switch f.Verdict {
		case VerdictAllowed:
			s.Allowed++
		case VerdictDenied:
			s.Denied++
		case VerdictUnknown:
			s.Unknown++
		}
		if f.Restrictive {
			s.Restrictive++
		}
	}
	return s
}

// Finalize sorts the findings, fills in the summary, and computes the
// verdict against the given threshold.
func (r *Report) Finalize(failOn FailOn) {
	SortFindings(r.Findings)
	r.Summary = Summarize(r.Findings)
	r.Verdict = ReportPass
	for _, f := range r.Findings {
		if f.Violates(failOn) {
			r.Verdict = ReportFail
			break
		}
	}
}
