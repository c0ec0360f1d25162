package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/feluda-dev/feluda"
	"github.com/feluda-dev/feluda/spdx"
)

// Parsers returns one parser per supported ecosystem.
func Parsers() []feluda.Parser {
	return []feluda.Parser{
		NewCargoParser(),
		NewNpmParser(),
		NewGoModParser(),
		NewPythonParser(),
		NewMavenParser(),
		NewCppParser(),
	}
}

// DetectProjectLicense determines the license of the project rooted at dir.
// It checks conventional license files first, then manifest metadata
// (package.json, Cargo.toml, pyproject.toml). Returns an empty string when
// no license could be detected.
func DetectProjectLicense(dir string) string {
	for _, name := range spdx.LicenseFileNames {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		if id, ok := spdx.DetectText(string(content)); ok {
			return id
		}
	}

	if id := packageJSONLicense(filepath.Join(dir, "package.json")); id != "" {
		return id
	}
	if id := cargoTomlLicense(filepath.Join(dir, "Cargo.toml")); id != "" {
		return id
	}
	if id := pyprojectLicense(filepath.Join(dir, "pyproject.toml")); id != "" {
		return id
	}
	return ""
}

func packageJSONLicense(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return ""
	}
	if license := licenseString(pkg.License); license != "" {
		return spdx.Normalize(license)
	}
	return ""
}

func cargoTomlLicense(path string) string {
	var manifest struct {
		Package struct {
			License string `toml:"license"`
		} `toml:"package"`
	}
	if _, err := toml.DecodeFile(path, &manifest); err != nil {
		return ""
	}
	if manifest.Package.License == "" {
		return ""
	}
	return spdx.Normalize(manifest.Package.License)
}

func pyprojectLicense(path string) string {
	var pyproject struct {
		Project struct {
			License any `toml:"license"`
		} `toml:"project"`
	}
	if _, err := toml.DecodeFile(path, &pyproject); err != nil {
		return ""
	}
	switch license := pyproject.Project.License.(type) {
	case string:
		return spdx.Normalize(license)
	case map[string]any:
		if text, ok := license["text"].(string); ok {
			return spdx.Normalize(text)
		}
	}
	return ""
}
