package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/feluda-dev/feluda"
)

// Ensure SARIFFormatter implements Formatter at compile time.
var _ Formatter = (*SARIFFormatter)(nil)

// SARIF rule identifiers.
const (
	RuleDeniedLicense      = "denied-license"
	RuleUnknownLicense     = "unknown-license"
	RuleRestrictiveLicense = "restrictive-license"
)

// SARIFFormatter renders a report as SARIF 2.1.0 for code-scanning
// integrations. Only findings that need attention produce results; allowed
// non-restrictive dependencies are omitted.
type SARIFFormatter struct{}

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

// Format implements Formatter.
func (f *SARIFFormatter) Format(w io.Writer, r *feluda.Report) error {
	results := make([]sarifResult, 0, len(r.Findings))
	for _, finding := range r.Findings {
		result, ok := toResult(finding)
		if !ok {
			continue
		}
		results = append(results, result)
	}

	log := sarifLog{
		Version: "2.1.0",
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:           "feluda",
				Version:        feluda.Version,
				InformationURI: "https://github.com/feluda-dev/feluda",
				Rules: []sarifRule{
					{ID: RuleDeniedLicense, ShortDescription: sarifMessage{Text: "Dependency license denied by policy"}},
					{ID: RuleUnknownLicense, ShortDescription: sarifMessage{Text: "Dependency license could not be resolved"}},
					{ID: RuleRestrictiveLicense, ShortDescription: sarifMessage{Text: "Dependency license imposes restrictive conditions"}},
				},
			}},
			Results: results,
		}},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}

func toResult(finding feluda.Finding) (sarifResult, bool) {
	var ruleID, level, text string
	switch {
	case finding.Verdict == feluda.VerdictDenied:
		ruleID = RuleDeniedLicense
		level = "error"
		text = fmt.Sprintf("%s has denied license %s",
			finding.Dependency.String(), finding.Resolution.License)
	case finding.Verdict == feluda.VerdictUnknown:
		ruleID = RuleUnknownLicense
		level = "warning"
		text = fmt.Sprintf("%s has an unresolved license", finding.Dependency.String())
	case finding.Restrictive:
		ruleID = RuleRestrictiveLicense
		level = "warning"
		text = fmt.Sprintf("%s has restrictive license %s",
			finding.Dependency.String(), finding.Resolution.License)
	default:
		return sarifResult{}, false
	}

	result := sarifResult{
		RuleID:  ruleID,
		Level:   level,
		Message: sarifMessage{Text: text},
	}
	if finding.Dependency.ManifestPath != "" {
		result.Locations = []sarifLocation{{
			PhysicalLocation: sarifPhysicalLocation{
				ArtifactLocation: sarifArtifactLocation{URI: finding.Dependency.ManifestPath},
			},
		}}
	}
	return result, true
}
