package report

import (
	"io"

	"github.com/feluda-dev/feluda"
	"gopkg.in/yaml.v3"
)

// Ensure YAMLFormatter implements Formatter at compile time.
var _ Formatter = (*YAMLFormatter)(nil)

// YAMLFormatter renders a report as YAML.
type YAMLFormatter struct{}

// Format implements Formatter.
func (f *YAMLFormatter) Format(w io.Writer, r *feluda.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}
