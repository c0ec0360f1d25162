package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/feluda-dev/feluda"
)

// Ensure TextFormatter implements Formatter at compile time.
var _ Formatter = (*TextFormatter)(nil)

// TextFormatter renders a report as a human-readable table with verdicts
// colorized for terminals.
type TextFormatter struct {
	green  *color.Color
	red    *color.Color
	yellow *color.Color
	bold   *color.Color
}

// NewTextFormatter creates a new TextFormatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		bold:   color.New(color.Bold),
	}
}

// Format implements Formatter.
func (f *TextFormatter) Format(w io.Writer, r *feluda.Report) error {
	if _, err := f.bold.Fprintf(w, "License scan of %s\n", r.Path); err != nil {
		return err
	}
	if r.ProjectLicense != "" {
		fmt.Fprintf(w, "Project license: %s\n", r.ProjectLicense)
	}
	fmt.Fprintln(w)

	if len(r.Findings) > 0 {
		f.writeTable(w, r.Findings)
		fmt.Fprintln(w)
	}

	if len(r.Warnings) > 0 {
		f.yellow.Fprintf(w, "Warnings (%d):\n", len(r.Warnings))
		for _, warning := range r.Warnings {
			if warning.Path != "" {
				fmt.Fprintf(w, "  %s: %s\n", warning.Path, warning.Message)
			} else {
				fmt.Fprintf(w, "  %s\n", warning.Message)
			}
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%d dependencies: %s allowed, %s denied, %s unknown, %d restrictive\n",
		r.Summary.Total,
		f.green.Sprint(r.Summary.Allowed),
		f.red.Sprint(r.Summary.Denied),
		f.yellow.Sprint(r.Summary.Unknown),
		r.Summary.Restrictive)

	if r.Verdict == feluda.ReportPass {
		f.green.Fprintln(w, "PASS")
	} else {
		f.red.Fprintln(w, "FAIL")
	}
	return nil
}

func (f *TextFormatter) writeTable(w io.Writer, findings []feluda.Finding) {
	headers := []string{"NAME", "VERSION", "ECOSYSTEM", "LICENSE", "CONFIDENCE", "VERDICT"}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}

	rows := make([][]string, 0, len(findings))
	for _, finding := range findings {
		license := finding.Resolution.License
		if license == "" {
			license = "-"
		}
		name := finding.Dependency.Name
		if finding.Restrictive {
			name += " !"
		}
		row := []string{
			name,
			finding.Dependency.Version,
			string(finding.Dependency.Ecosystem),
			license,
			string(finding.Resolution.Confidence),
			string(finding.Verdict),
		}
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
		rows = append(rows, row)
	}

	for i, h := range headers {
		fmt.Fprintf(w, "%-*s  ", widths[i], h)
	}
	fmt.Fprintln(w)

	for i, row := range rows {
		for col, cell := range row {
			padded := fmt.Sprintf("%-*s", widths[col], cell)
			if col == len(row)-1 {
				padded = strings.TrimRight(padded, " ")
				switch findings[i].Verdict {
				case feluda.VerdictAllowed:
					padded = f.green.Sprint(padded)
				case feluda.VerdictDenied:
					padded = f.red.Sprint(padded)
				default:
					padded = f.yellow.Sprint(padded)
				}
			}
			fmt.Fprintf(w, "%s  ", padded)
		}
		fmt.Fprintln(w)
	}
}
