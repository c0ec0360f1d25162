// Package report renders scan reports in the supported output formats:
// a colorized text table, JSON, YAML, and SARIF.
package report

import (
	"io"
	"strings"

	"github.com/feluda-dev/feluda"
)

// Format identifies a report output format.
type Format string

// Supported formats.
const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatSARIF Format = "sarif"
)

// Formatter renders a report to a writer.
type Formatter interface {
	Format(w io.Writer, r *feluda.Report) error
}

// ParseFormat parses a format name. Returns EINVALID for unrecognized
// names.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatSARIF:
		return FormatSARIF, nil
	}
	return "", feluda.Errorf(feluda.EINVALID, "unknown report format %q", name)
}

// New returns the formatter for a format.
func New(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatSARIF:
		return &SARIFFormatter{}
	default:
		return NewTextFormatter()
	}
}

// Strict returns a copy of the report narrowed to the findings that need
// attention: denied, unknown, or restrictive. Summary counts and the
// verdict are preserved from the full report.
func Strict(r *feluda.Report) *feluda.Report {
	narrowed := *r
	narrowed.Findings = nil
	for _, f := range r.Findings {
		if f.Verdict != feluda.VerdictAllowed || f.Restrictive {
			narrowed.Findings = append(narrowed.Findings, f)
		}
	}
	return &narrowed
}
