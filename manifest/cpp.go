package manifest

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/feluda-dev/feluda"
)

// Compile-time interface verification.
var _ feluda.Parser = (*CppParser)(nil)

// CppParser parses C/C++ dependency declarations. C++ has no single
// manifest convention, so the parser probes the manifest's directory for
// known build files in precedence order: vcpkg.json, then conanfile.txt or
// conanfile.py, then CMakeLists.txt, then MODULE.bazel or WORKSPACE. The
// first source present wins. Versions are best effort: vcpkg entries
// without a version constraint read "latest", FetchContent targets "git",
// find_package targets without a version "system", and WORKSPACE archives
// "archive".
type CppParser struct{}

// NewCppParser creates a new CppParser.
func NewCppParser() *CppParser {
	return &CppParser{}
}

// Ecosystem implements feluda.Parser.
func (p *CppParser) Ecosystem() feluda.Ecosystem { return feluda.EcosystemCpp }

// Parse implements feluda.Parser. The locator records one cpp manifest per
// directory regardless of which marker file it saw first; Parse re-probes
// the directory so precedence does not depend on walk order.
func (p *CppParser) Parse(ctx context.Context, m feluda.Manifest) (*feluda.Graph, error) {
	dir := filepath.Dir(m.Path)

	for _, source := range []struct {
		file  string
		parse func(path string) ([]cppDependency, error)
	}{
		{"vcpkg.json", parseVcpkg},
		{"conanfile.txt", parseConanfileTxt},
		{"conanfile.py", parseConanfilePy},
		{"CMakeLists.txt", parseCMakeLists},
		{"MODULE.bazel", parseModuleBazel},
		{"WORKSPACE", parseWorkspace},
	} {
		path := filepath.Join(dir, source.file)
		if _, err := os.Stat(path); err != nil {
			continue
		}

		deps, err := source.parse(path)
		if err != nil {
			return nil, err
		}

		g := feluda.NewGraph()
		for _, dep := range deps {
			g.AddNode(feluda.Dependency{
				Name:         dep.name,
				Version:      dep.version,
				Ecosystem:    feluda.EcosystemCpp,
				Direct:       true,
				ManifestPath: path,
			})
		}
		return g, nil
	}

	return feluda.NewGraph(), nil
}

type cppDependency struct {
	name    string
	version string
}

// parseVcpkg reads a vcpkg.json manifest. Dependencies are either bare name
// strings or objects with name and an optional version pin.
func parseVcpkg(path string) ([]cppDependency, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var manifest struct {
		Dependencies []json.RawMessage `json:"dependencies"`
	}
	if err := json.Unmarshal(content, &manifest); err != nil {
		return nil, feluda.Errorf(feluda.EINVALID, "parse %s: %v", path, err)
	}

	var deps []cppDependency
	for _, raw := range manifest.Dependencies {
		var name string
		if err := json.Unmarshal(raw, &name); err == nil {
			deps = append(deps, cppDependency{name: name, version: "latest"})
			continue
		}

		var entry struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		}
		if err := json.Unmarshal(raw, &entry); err != nil || entry.Name == "" {
			continue
		}
		version := entry.Version
		if version == "" {
			version = "latest"
		}
		deps = append(deps, cppDependency{name: entry.Name, version: version})
	}
	return deps, nil
}

// parseConanfileTxt reads the [requires] section of a conanfile.txt. Each
// entry is name/version with an optional @user/channel suffix.
func parseConanfileTxt(path string) ([]cppDependency, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var deps []cppDependency
	inRequires := false
	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			inRequires = trimmed == "[requires]"
			continue
		}
		if !inRequires || trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if dep, ok := conanReference(trimmed); ok {
			deps = append(deps, dep)
		}
	}
	return deps, nil
}

var conanRequiresRe = regexp.MustCompile(`(?s)requires\s*=\s*\[(.*?)\]`)
var conanEntryRe = regexp.MustCompile(`"([^"]+)"`)

// parseConanfilePy extracts the requires list from a conanfile.py recipe.
func parseConanfilePy(path string) ([]cppDependency, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	match := conanRequiresRe.FindSubmatch(content)
	if match == nil {
		return nil, nil
	}

	var deps []cppDependency
	for _, entry := range conanEntryRe.FindAllSubmatch(match[1], -1) {
		if dep, ok := conanReference(string(entry[1])); ok {
			deps = append(deps, dep)
		}
	}
	return deps, nil
}

// conanReference splits a "name/version@user/channel" reference, dropping
// the user/channel suffix.
func conanReference(ref string) (cppDependency, bool) {
	name, rest, found := strings.Cut(ref, "/")
	if !found || name == "" {
		return cppDependency{}, false
	}
	version, _, _ := strings.Cut(rest, "@")
	return cppDependency{name: name, version: version}, true
}

var fetchContentRe = regexp.MustCompile(`FetchContent_Declare\s*\(\s*(\w+)`)
var findPackageRe = regexp.MustCompile(`find_package\s*\(\s*(\w+)(?:\s+([^)]+))?\)`)

// parseCMakeLists scans a CMakeLists.txt for FetchContent_Declare and
// find_package calls.
func parseCMakeLists(path string) ([]cppDependency, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var deps []cppDependency
	for _, match := range fetchContentRe.FindAllSubmatch(content, -1) {
		deps = append(deps, cppDependency{name: string(match[1]), version: "git"})
	}
	for _, match := range findPackageRe.FindAllSubmatch(content, -1) {
		deps = append(deps, cppDependency{
			name:    string(match[1]),
			version: findPackageVersion(string(match[2])),
		})
	}
	return deps, nil
}

// findPackageVersion extracts the version argument of a find_package call,
// if any. Keyword arguments like REQUIRED or COMPONENTS are not versions.
func findPackageVersion(args string) string {
	args = strings.TrimSpace(args)
	if args == "" || strings.HasPrefix(args, "REQUIRED") || strings.HasPrefix(args, "COMPONENTS") {
		return "system"
	}
	if version, _, _ := strings.Cut(args, " "); version != "" {
		return version
	}
	return "system"
}

var bazelDepRe = regexp.MustCompile(`bazel_dep\s*\(\s*name\s*=\s*"([^"]+)"\s*,\s*version\s*=\s*"([^"]+)"`)
var httpArchiveRe = regexp.MustCompile(`http_archive\s*\(\s*name\s*=\s*"([^"]+)"`)

// parseModuleBazel reads bazel_dep entries from a MODULE.bazel file.
func parseModuleBazel(path string) ([]cppDependency, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var deps []cppDependency
	for _, match := range bazelDepRe.FindAllSubmatch(content, -1) {
		deps = append(deps, cppDependency{name: string(match[1]), version: string(match[2])})
	}
	return deps, nil
}

// parseWorkspace reads http_archive entries from a Bazel WORKSPACE file.
func parseWorkspace(path string) ([]cppDependency, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var deps []cppDependency
	for _, match := range httpArchiveRe.FindAllSubmatch(content, -1) {
		deps = append(deps, cppDependency{name: string(match[1]), version: "archive"})
	}
	return deps, nil
}
