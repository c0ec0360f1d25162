// Package manifest discovers and parses dependency manifests across
// ecosystems. The Locator walks a project tree looking for marker files;
// each parser turns one manifest (plus its sibling lockfile, when present)
// into a dependency graph fragment.
package manifest

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/feluda-dev/feluda"
)

// Compile-time interface verification.
var _ feluda.Locator = (*Locator)(nil)

// markerEcosystems maps manifest marker file names to their ecosystem.
// Pipfile.lock sorts before requirements.txt, so in directories carrying
// both the lockfile wins.
var markerEcosystems = map[string]feluda.Ecosystem{
	"Cargo.toml":       feluda.EcosystemCargo,
	"package.json":     feluda.EcosystemNpm,
	"go.mod":           feluda.EcosystemGo,
	"Pipfile.lock":     feluda.EcosystemPyPI,
	"requirements.txt": feluda.EcosystemPyPI,
	"pom.xml":          feluda.EcosystemMaven,
	"vcpkg.json":       feluda.EcosystemCpp,
	"conanfile.txt":    feluda.EcosystemCpp,
	"conanfile.py":     feluda.EcosystemCpp,
	"CMakeLists.txt":   feluda.EcosystemCpp,
	"MODULE.bazel":     feluda.EcosystemCpp,
	"WORKSPACE":        feluda.EcosystemCpp,
}

// ignoredDirs are skipped entirely during the walk. They hold installed
// artifacts rather than project manifests.
var ignoredDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"target":       {},
	"vendor":       {},
	"venv":         {},
	".venv":        {},
	"__pycache__":  {},
}

// Locator discovers dependency manifests under a root directory.
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Locate walks root and returns all recognized manifests in stable path
// order. Unreadable subdirectories are skipped with a warning; an
// unreadable or missing root, or a walk yielding zero manifests, is
// ENOTFOUND.
func (l *Locator) Locate(ctx context.Context, root string) ([]feluda.Manifest, []feluda.Warning, error) {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, nil, feluda.Errorf(feluda.ENOTFOUND, "scan root %q does not exist", root)
	} else if err != nil {
		return nil, nil, err
	}
	if !info.IsDir() {
		return nil, nil, feluda.Errorf(feluda.EINVALID, "scan root %q is not a directory", root)
	}

	var manifests []feluda.Manifest
	var warnings []feluda.Warning
	seen := make(map[string]struct{})

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			warnings = append(warnings, feluda.Warning{Path: path, Message: walkErr.Error()})
			return nil
		}
		if d.IsDir() {
			if _, ok := ignoredDirs[d.Name()]; ok {
				return filepath.SkipDir
			}
			return nil
		}

		eco, ok := markerEcosystems[d.Name()]
		if !ok {
			return nil
		}

		// One manifest per (directory, ecosystem): the first marker in
		// lexical walk order wins.
		key := filepath.Dir(path) + "\x00" + string(eco)
		if _, ok := seen[key]; ok {
			return nil
		}
		seen[key] = struct{}{}

		manifests = append(manifests, feluda.Manifest{Path: path, Ecosystem: eco})
		return nil
	})
	if err != nil {
		return nil, warnings, err
	}

	if len(manifests) == 0 {
		return nil, warnings, feluda.Errorf(feluda.ENOTFOUND, "no manifests found under %q", root)
	}

	sort.Slice(manifests, func(i, j int) bool { return manifests[i].Path < manifests[j].Path })
	return manifests, warnings, nil
}
