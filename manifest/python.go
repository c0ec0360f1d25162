package manifest

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/feluda-dev/feluda"
)

// Compile-time interface verification.
var _ feluda.Parser = (*PythonParser)(nil)

// PythonParser parses Python dependency files: Pipfile.lock and
// requirements.txt.
type PythonParser struct{}

// NewPythonParser creates a new PythonParser.
func NewPythonParser() *PythonParser {
	return &PythonParser{}
}

// Ecosystem implements feluda.Parser.
func (p *PythonParser) Ecosystem() feluda.Ecosystem { return feluda.EcosystemPyPI }

type pipfileLock struct {
	Default map[string]pipfileEntry `json:"default"`
	Develop map[string]pipfileEntry `json:"develop"`
}

type pipfileEntry struct {
	Version string `json:"version"`
}

// Parse implements feluda.Parser.
func (p *PythonParser) Parse(ctx context.Context, m feluda.Manifest) (*feluda.Graph, error) {
	if filepath.Base(m.Path) == "Pipfile.lock" {
		return p.parsePipfileLock(m)
	}
	return p.parseRequirements(m)
}

func (p *PythonParser) parsePipfileLock(m feluda.Manifest) (*feluda.Graph, error) {
	data, err := os.ReadFile(m.Path)
	if err != nil {
		return nil, err
	}
	var lock pipfileLock
	if err := json.Unmarshal(data, &lock); err != nil {
		return nil, feluda.Errorf(feluda.EINVALID, "parse %s: %v", m.Path, err)
	}

	g := feluda.NewGraph()
	add := func(entries map[string]pipfileEntry) {
		for name, entry := range entries {
			g.AddNode(feluda.Dependency{
				Name:         name,
				Version:      strings.TrimPrefix(entry.Version, "=="),
				Ecosystem:    feluda.EcosystemPyPI,
				Direct:       true,
				ManifestPath: m.Path,
			})
		}
	}
	add(lock.Default)
	add(lock.Develop)
	return g, nil
}

func (p *PythonParser) parseRequirements(m feluda.Manifest) (*feluda.Graph, error) {
	f, err := os.Open(m.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g := feluda.NewGraph()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name, version, ok := parseRequirementLine(scanner.Text())
		if !ok {
			continue
		}
		g.AddNode(feluda.Dependency{
			Name:         name,
			Version:      version,
			Ecosystem:    feluda.EcosystemPyPI,
			Direct:       true,
			ManifestPath: m.Path,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, feluda.Errorf(feluda.EINVALID, "parse %s: %v", m.Path, err)
	}
	return g, nil
}

// parseRequirementLine parses a single requirements.txt line such as
// "requests==2.28.1" or "flask>=2.0; python_version > '3.8'". Comments,
// blank lines, and pip options are skipped.
func parseRequirementLine(line string) (name, version string, ok bool) {
	if idx := strings.Index(line, "#"); idx != -1 {
		line = line[:idx]
	}
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "-") {
		return "", "", false
	}

	// Drop environment markers.
	if idx := strings.Index(line, ";"); idx != -1 {
		line = strings.TrimSpace(line[:idx])
	}

	if name, version, found := strings.Cut(line, "=="); found {
		return trimExtras(name), strings.TrimSpace(version), true
	}

	// Range requirements pin no exact version.
	name = line
	for _, op := range []string{">=", "<=", "~=", "!=", ">", "<"} {
		if before, _, found := strings.Cut(name, op); found {
			name = before
			break
		}
	}
	name = trimExtras(name)
	if name == "" {
		return "", "", false
	}
	return name, "", true
}

// trimExtras strips extras such as "requests[security]" down to the bare
// package name.
func trimExtras(name string) string {
	name = strings.TrimSpace(name)
	if idx := strings.Index(name, "["); idx != -1 {
		name = name[:idx]
	}
	return strings.TrimSpace(name)
}
