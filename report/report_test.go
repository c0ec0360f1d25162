package report_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/feluda-dev/feluda"
	"github.com/feluda-dev/feluda/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() *feluda.Report {
	r := &feluda.Report{
		RunID:          "7d444840-9dc0-11d1-b245-5ffdce74fad2",
		Path:           "/work/app",
		ProjectLicense: "MIT",
		GeneratedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Findings: []feluda.Finding{
			{
				Dependency: feluda.Dependency{
					Name: "express", Version: "4.18.2", Ecosystem: feluda.EcosystemNpm,
					Direct: true, ManifestPath: "package.json",
				},
				Resolution:    feluda.Resolution{Expression: "MIT", License: "MIT", Confidence: feluda.ConfidenceDeclared},
				Compatibility: feluda.CompatibilityCompatible,
				Verdict:       feluda.VerdictAllowed,
			},
			{
				Dependency: feluda.Dependency{
					Name: "gpl-thing", Version: "1.0.0", Ecosystem: feluda.EcosystemNpm,
					ManifestPath: "package.json",
				},
				Resolution:    feluda.Resolution{Expression: "GPL-3.0", License: "GPL-3.0", Confidence: feluda.ConfidenceInferred},
				Restrictive:   true,
				Compatibility: feluda.CompatibilityIncompatible,
				Verdict:       feluda.VerdictDenied,
			},
			{
				Dependency: feluda.Dependency{
					Name: "mystery", Version: "0.1.0", Ecosystem: feluda.EcosystemNpm,
					ManifestPath: "package.json",
				},
				Resolution:    feluda.Resolution{Confidence: feluda.ConfidenceUnknown},
				Restrictive:   true,
				Compatibility: feluda.CompatibilityUnknown,
				Verdict:       feluda.VerdictUnknown,
			},
		},
		Warnings: []feluda.Warning{{Path: "legacy/pom.xml", Message: "parse failed"}},
	}
	r.Finalize(feluda.FailOnDenied)
	return r
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]report.Format{
		"text":  report.FormatText,
		"":      report.FormatText,
		"JSON":  report.FormatJSON,
		"yaml":  report.FormatYAML,
		"yml":   report.FormatYAML,
		"sarif": report.FormatSARIF,
	} {
		got, err := report.ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := report.ParseFormat("xml")
	require.Error(t, err)
	assert.Equal(t, feluda.EINVALID, feluda.ErrorCode(err))
}

func TestStrict(t *testing.T) {
	t.Parallel()

	narrowed := report.Strict(sampleReport())
	require.Len(t, narrowed.Findings, 2)
	assert.Equal(t, "gpl-thing", narrowed.Findings[0].Dependency.Name)
	assert.Equal(t, "mystery", narrowed.Findings[1].Dependency.Name)

	// Summary still reflects the full scan.
	assert.Equal(t, 3, narrowed.Summary.Total)
	assert.Equal(t, feluda.ReportFail, narrowed.Verdict)
}

func TestTextFormatter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, report.NewTextFormatter().Format(&buf, sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "License scan of /work/app")
	assert.Contains(t, out, "Project license: MIT")
	assert.Contains(t, out, "express")
	assert.Contains(t, out, "gpl-thing !")
	assert.Contains(t, out, "legacy/pom.xml: parse failed")
	assert.Contains(t, out, "3 dependencies")
	assert.Contains(t, out, "FAIL")
}

func TestJSONFormatter_RoundTrip(t *testing.T) {
	t.Parallel()

	original := sampleReport()
	var buf bytes.Buffer
	require.NoError(t, (&report.JSONFormatter{}).Format(&buf, original))

	var decoded feluda.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *original, decoded)
}

func TestYAMLFormatter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, (&report.YAMLFormatter{}).Format(&buf, sampleReport()))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "fail", decoded["verdict"])
}

func TestSARIFFormatter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, (&report.SARIFFormatter{}).Format(&buf, sampleReport()))

	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name string `json:"name"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID string `json:"ruleId"`
				Level  string `json:"level"`
			} `json:"results"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &log))

	assert.Equal(t, "2.1.0", log.Version)
	require.Len(t, log.Runs, 1)
	assert.Equal(t, "feluda", log.Runs[0].Tool.Driver.Name)

	// The allowed finding produces no result; denied and unknown do.
	require.Len(t, log.Runs[0].Results, 2)
	assert.Equal(t, report.RuleDeniedLicense, log.Runs[0].Results[0].RuleID)
	assert.Equal(t, "error", log.Runs[0].Results[0].Level)
	assert.Equal(t, report.RuleUnknownLicense, log.Runs[0].Results[1].RuleID)
}

func TestNew(t *testing.T) {
	t.Parallel()

	assert.IsType(t, &report.JSONFormatter{}, report.New(report.FormatJSON))
	assert.IsType(t, &report.YAMLFormatter{}, report.New(report.FormatYAML))
	assert.IsType(t, &report.SARIFFormatter{}, report.New(report.FormatSARIF))
	assert.IsType(t, &report.TextFormatter{}, report.New(report.FormatText))
}
