package report

import (
	"encoding/json"
	"io"

	"github.com/feluda-dev/feluda"
)

// Ensure JSONFormatter implements Formatter at compile time.
var _ Formatter = (*JSONFormatter)(nil)

// JSONFormatter renders a report as indented JSON. The output parses back
// to an equal report.
type JSONFormatter struct{}

// Format implements Formatter.
func (f *JSONFormatter) Format(w io.Writer, r *feluda.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
