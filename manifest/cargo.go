package manifest

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/feluda-dev/feluda"
)

// Compile-time interface verification.
var _ feluda.Parser = (*CargoParser)(nil)

// CargoParser parses Cargo.toml manifests. When a sibling Cargo.lock is
// present the full transitive graph with exact versions is used; otherwise
// only the directly declared dependencies are returned with their version
// requirements.
type CargoParser struct{}

// NewCargoParser creates a new CargoParser.
func NewCargoParser() *CargoParser {
	return &CargoParser{}
}

// Ecosystem implements feluda.Parser.
func (p *CargoParser) Ecosystem() feluda.Ecosystem { return feluda.EcosystemCargo }

type cargoManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Dependencies    map[string]any `toml:"dependencies"`
	DevDependencies map[string]any `toml:"dev-dependencies"`
}

type cargoLock struct {
	Package []struct {
		Name         string   `toml:"name"`
		Version      string   `toml:"version"`
		Dependencies []string `toml:"dependencies"`
	} `toml:"package"`
}

// Parse implements feluda.Parser.
func (p *CargoParser) Parse(ctx context.Context, m feluda.Manifest) (*feluda.Graph, error) {
	var manifest cargoManifest
	if _, err := toml.DecodeFile(m.Path, &manifest); err != nil {
		return nil, feluda.Errorf(feluda.EINVALID, "parse %s: %v", m.Path, err)
	}

	direct := make(map[string]bool)
	for name := range manifest.Dependencies {
		direct[name] = true
	}
	for name := range manifest.DevDependencies {
		direct[name] = true
	}

	g := feluda.NewGraph()

	lockPath := filepath.Join(filepath.Dir(m.Path), "Cargo.lock")
	if _, err := os.Stat(lockPath); err == nil {
		return p.parseLock(g, m, lockPath, manifest.Package.Name, direct)
	}

	// No lockfile: fall back to declared requirements.
	addRequirement := func(name string, value any) {
		g.AddNode(feluda.Dependency{
			Name:         name,
			Version:      cargoRequirementVersion(value),
			Ecosystem:    feluda.EcosystemCargo,
			Direct:       true,
			ManifestPath: m.Path,
		})
	}
	for name, value := range manifest.Dependencies {
		addRequirement(name, value)
	}
	for name, value := range manifest.DevDependencies {
		addRequirement(name, value)
	}
	return g, nil
}

func (p *CargoParser) parseLock(g *feluda.Graph, m feluda.Manifest, lockPath, rootName string, direct map[string]bool) (*feluda.Graph, error) {
	var lock cargoLock
	if _, err := toml.DecodeFile(lockPath, &lock); err != nil {
		return nil, feluda.Errorf(feluda.EINVALID, "parse %s: %v", lockPath, err)
	}

	// Versions by name let us resolve unversioned lock edges when the
	// name is unambiguous.
	versions := make(map[string][]string)
	for _, pkg := range lock.Package {
		versions[pkg.Name] = append(versions[pkg.Name], pkg.Version)
	}

	for _, pkg := range lock.Package {
		if pkg.Name == rootName {
			continue
		}
		dep := feluda.Dependency{
			Name:         pkg.Name,
			Version:      pkg.Version,
			Ecosystem:    feluda.EcosystemCargo,
			Direct:       direct[pkg.Name],
			ManifestPath: m.Path,
		}
		g.AddNode(dep)

		for _, ref := range pkg.Dependencies {
			if to, ok := resolveLockRef(ref, versions); ok {
				g.AddEdge(dep.Key(), to)
			}
		}
	}
	return g, nil
}

// resolveLockRef resolves a Cargo.lock dependency reference, which is either
// "name" or "name version", to a dependency key.
func resolveLockRef(ref string, versions map[string][]string) (string, bool) {
	name, version, found := strings.Cut(ref, " ")
	if !found {
		candidates := versions[name]
		if len(candidates) != 1 {
			return "", false
		}
		version = candidates[0]
	}
	dep := feluda.Dependency{Name: name, Version: version, Ecosystem: feluda.EcosystemCargo}
	return dep.Key(), true
}

// cargoRequirementVersion extracts a displayable version from a Cargo.toml
// dependency value, which is either a requirement string or a table.
func cargoRequirementVersion(value any) string {
	switch v := value.(type) {
	case string:
		return trimRequirement(v)
	case map[string]any:
		if version, ok := v["version"].(string); ok {
			return trimRequirement(version)
		}
	}
	return ""
}

// trimRequirement strips range operators from a version requirement so that
// "^1.0.210" reads as "1.0.210".
func trimRequirement(req string) string {
	return strings.TrimSpace(strings.TrimLeft(req, "^~=<>! "))
}
