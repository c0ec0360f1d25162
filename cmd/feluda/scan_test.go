package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/feluda-dev/feluda"
	main "github.com/feluda-dev/feluda/cmd/feluda"
	"github.com/feluda-dev/feluda/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scanDeps wires a Dependencies for ScanCmd tests: a locator reporting one
// Cargo lockfile, a parser producing the given dependencies, and a resolver
// answering from the licenses map.
func scanDeps(stdout, stderr *bytes.Buffer, deps []feluda.Dependency, licenses map[string]string) *main.Dependencies {
	locator := &mock.Locator{
		LocateFn: func(ctx context.Context, root string) ([]feluda.Manifest, []feluda.Warning, error) {
			return []feluda.Manifest{{Path: filepath.Join(root, "Cargo.lock"), Ecosystem: feluda.EcosystemCargo}}, nil, nil
		},
	}

	parser := &mock.Parser{
		EcosystemFn: func() feluda.Ecosystem { return feluda.EcosystemCargo },
		ParseFn: func(ctx context.Context, m feluda.Manifest) (*feluda.Graph, error) {
			g := feluda.NewGraph()
			for _, dep := range deps {
				g.AddNode(dep)
			}
			return g, nil
		},
	}

	resolver := &mock.Resolver{
		ResolveFn: func(ctx context.Context, dep feluda.Dependency) (feluda.Resolution, error) {
			license, ok := licenses[dep.Name]
			if !ok {
				return feluda.Resolution{Confidence: feluda.ConfidenceUnknown}, nil
			}
			return feluda.Resolution{Expression: license, License: license, Confidence: feluda.ConfidenceInferred}, nil
		},
	}

	return &main.Dependencies{
		Ctx:      context.Background(),
		Stdout:   stdout,
		Stderr:   stderr,
		Config:   feluda.DefaultConfig(),
		Locator:  locator,
		Parsers:  []feluda.Parser{parser},
		Resolver: resolver,
	}
}

func cargoDep(name, version string) feluda.Dependency {
	return feluda.Dependency{Name: name, Version: version, Ecosystem: feluda.EcosystemCargo, Direct: true}
}

func TestScanCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("renders a passing text report", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := scanDeps(stdout, stderr,
			[]feluda.Dependency{cargoDep("serde", "1.0.210")},
			map[string]string{"serde": "MIT"},
		)

		cmd := &main.ScanCmd{Path: t.TempDir(), FailOn: "denied"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "serde")
		assert.Contains(t, output, "MIT")
		assert.Contains(t, output, "PASS")
	})

	t.Run("denied license returns violations error", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := scanDeps(stdout, stderr,
			[]feluda.Dependency{cargoDep("gpl-thing", "2.0.0")},
			map[string]string{"gpl-thing": "GPL-3.0"},
		)
		deps.Policy = feluda.Policy{Deny: []string{"GPL-3.0"}}

		cmd := &main.ScanCmd{Path: t.TempDir(), FailOn: "denied"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.True(t, errors.Is(err, main.ErrViolations))
		assert.Contains(t, stdout.String(), "FAIL")
	})

	t.Run("json format emits a parseable report", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := scanDeps(stdout, stderr,
			[]feluda.Dependency{cargoDep("serde", "1.0.210")},
			map[string]string{"serde": "MIT"},
		)

		cmd := &main.ScanCmd{Path: t.TempDir(), FailOn: "denied", Format: "json"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		var report feluda.Report
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &report))
		assert.Equal(t, feluda.ReportPass, report.Verdict)
		require.Len(t, report.Findings, 1)
		assert.Equal(t, "MIT", report.Findings[0].Resolution.License)
	})

	t.Run("strict omits allowed findings", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := scanDeps(stdout, stderr,
			[]feluda.Dependency{cargoDep("serde", "1.0.210"), cargoDep("gpl-thing", "2.0.0")},
			map[string]string{"serde": "MIT", "gpl-thing": "GPL-3.0"},
		)
		deps.Policy = feluda.Policy{Deny: []string{"GPL-3.0"}}

		cmd := &main.ScanCmd{Path: t.TempDir(), FailOn: "denied", Strict: true}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.True(t, errors.Is(err, main.ErrViolations))
		output := stdout.String()
		assert.Contains(t, output, "gpl-thing")
		assert.NotContains(t, output, "serde")
		// Summary counts stay those of the full report.
		assert.Contains(t, output, "2 dependencies")
	})

	t.Run("writes report to a file", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := scanDeps(stdout, stderr,
			[]feluda.Dependency{cargoDep("serde", "1.0.210")},
			map[string]string{"serde": "MIT"},
		)

		path := filepath.Join(t.TempDir(), "report.json")
		cmd := &main.ScanCmd{Path: t.TempDir(), FailOn: "denied", Format: "json", Output: path}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Empty(t, stdout.String())
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), `"verdict"`)
	})

	t.Run("unknown format is invalid", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := scanDeps(stdout, stderr, nil, nil)

		cmd := &main.ScanCmd{Path: t.TempDir(), FailOn: "denied", Format: "pdf"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, feluda.EINVALID, feluda.ErrorCode(err))
		assert.Contains(t, stderr.String(), "pdf")
		assert.Empty(t, stdout.String())
	})

	t.Run("project license override lands in the report", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := scanDeps(stdout, stderr,
			[]feluda.Dependency{cargoDep("serde", "1.0.210")},
			map[string]string{"serde": "MIT"},
		)

		cmd := &main.ScanCmd{Path: t.TempDir(), FailOn: "denied", Format: "json", ProjectLicense: "Apache-2.0"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		var report feluda.Report
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &report))
		assert.Equal(t, "Apache-2.0", report.ProjectLicense)
	})

	t.Run("fail-on unknown fails unresolved dependencies", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := scanDeps(stdout, stderr,
			[]feluda.Dependency{cargoDep("mystery", "0.1.0")},
			nil, // resolver answers unknown
		)
		deps.Policy = feluda.Policy{AllowUnknown: true}

		cmd := &main.ScanCmd{Path: t.TempDir(), FailOn: "unknown"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.True(t, errors.Is(err, main.ErrViolations))
	})
}
