package manifest

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/feluda-dev/feluda"
)

// Compile-time interface verification.
var _ feluda.Parser = (*NpmParser)(nil)

// NpmParser parses package.json manifests. When a sibling package-lock.json
// (lockfile version 2 or 3) is present the installed tree with exact
// versions and declared licenses is used.
type NpmParser struct{}

// NewNpmParser creates a new NpmParser.
func NewNpmParser() *NpmParser {
	return &NpmParser{}
}

// Ecosystem implements feluda.Parser.
func (p *NpmParser) Ecosystem() feluda.Ecosystem { return feluda.EcosystemNpm }

type packageJSON struct {
	Name            string            `json:"name"`
	License         any               `json:"license"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

type packageLock struct {
	LockfileVersion int                    `json:"lockfileVersion"`
	Packages        map[string]lockPackage `json:"packages"`
}

type lockPackage struct {
	Version      string            `json:"version"`
	License      any               `json:"license"`
	Dependencies map[string]string `json:"dependencies"`
}

// Parse implements feluda.Parser.
func (p *NpmParser) Parse(ctx context.Context, m feluda.Manifest) (*feluda.Graph, error) {
	data, err := os.ReadFile(m.Path)
	if err != nil {
		return nil, err
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, feluda.Errorf(feluda.EINVALID, "parse %s: %v", m.Path, err)
	}

	direct := make(map[string]bool)
	for name := range pkg.Dependencies {
		direct[name] = true
	}
	for name := range pkg.DevDependencies {
		direct[name] = true
	}

	g := feluda.NewGraph()

	lockPath := filepath.Join(filepath.Dir(m.Path), "package-lock.json")
	if lockData, err := os.ReadFile(lockPath); err == nil {
		var lock packageLock
		if err := json.Unmarshal(lockData, &lock); err != nil {
			return nil, feluda.Errorf(feluda.EINVALID, "parse %s: %v", lockPath, err)
		}
		if len(lock.Packages) > 0 {
			return p.parseLock(g, m, lock, direct), nil
		}
	}

	// No usable lockfile: fall back to declared ranges.
	for name, req := range pkg.Dependencies {
		g.AddNode(feluda.Dependency{
			Name:         name,
			Version:      trimRequirement(req),
			Ecosystem:    feluda.EcosystemNpm,
			Direct:       true,
			ManifestPath: m.Path,
		})
	}
	for name, req := range pkg.DevDependencies {
		g.AddNode(feluda.Dependency{
			Name:         name,
			Version:      trimRequirement(req),
			Ecosystem:    feluda.EcosystemNpm,
			Direct:       true,
			ManifestPath: m.Path,
		})
	}
	return g, nil
}

func (p *NpmParser) parseLock(g *feluda.Graph, m feluda.Manifest, lock packageLock, direct map[string]bool) *feluda.Graph {
	// Top-level installed versions resolve dependency edges; nested
	// node_modules trees fall back to the hoisted version.
	topLevel := make(map[string]string)
	for path, entry := range lock.Packages {
		name, ok := packageName(path)
		if !ok {
			continue
		}
		if path == "node_modules/"+name {
			topLevel[name] = entry.Version
		}
	}

	for path, entry := range lock.Packages {
		name, ok := packageName(path)
		if !ok || entry.Version == "" {
			continue
		}
		dep := feluda.Dependency{
			Name:         name,
			Version:      entry.Version,
			Ecosystem:    feluda.EcosystemNpm,
			Declared:     licenseString(entry.License),
			Direct:       direct[name],
			ManifestPath: m.Path,
		}
		g.AddNode(dep)

		for child := range entry.Dependencies {
			if version, ok := topLevel[child]; ok {
				to := feluda.Dependency{Name: child, Version: version, Ecosystem: feluda.EcosystemNpm}
				g.AddEdge(dep.Key(), to.Key())
			}
		}
	}
	return g
}

// packageName extracts the package name from a lockfile packages key such
// as "node_modules/@scope/name" or "node_modules/a/node_modules/b". The
// empty key is the root project itself.
func packageName(path string) (string, bool) {
	const marker = "node_modules/"
	idx := strings.LastIndex(path, marker)
	if idx == -1 {
		return "", false
	}
	name := path[idx+len(marker):]
	if name == "" {
		return "", false
	}
	return name, true
}

// licenseString coerces the various shapes the license field takes in npm
// metadata: a string, an object with a type field, or a list of such
// objects.
func licenseString(v any) string {
	switch license := v.(type) {
	case string:
		return license
	case map[string]any:
		if t, ok := license["type"].(string); ok {
			return t
		}
	case []any:
		var parts []string
		for _, entry := range license {
			if s := licenseString(entry); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " OR ")
	}
	return ""
}
