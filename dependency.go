package feluda

import "fmt"

// Ecosystem identifies the package ecosystem a dependency belongs to.
type Ecosystem string

// Supported ecosystems.
const (
	EcosystemCargo Ecosystem = "cargo"
	EcosystemNpm   Ecosystem = "npm"
	EcosystemGo    Ecosystem = "go"
	EcosystemPyPI  Ecosystem = "pypi"
	EcosystemMaven Ecosystem = "maven"
	EcosystemCpp   Ecosystem = "cpp"
)

// Ecosystems returns all supported ecosystems in stable order.
func Ecosystems() []Ecosystem {
	return []Ecosystem{
		EcosystemCargo,
		EcosystemNpm,
		EcosystemGo,
		EcosystemPyPI,
		EcosystemMaven,
		EcosystemCpp,
	}
}

// Dependency represents a single package dependency discovered in a
// manifest. A Dependency is immutable once constructed.
type Dependency struct {
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	Ecosystem Ecosystem `json:"ecosystem"`

	// Declared is the license expression declared in the manifest or
	// lockfile, if any. Empty when the manifest carries no license metadata.
	Declared string `json:"declared,omitempty"`

	// Direct reports whether the dependency is required directly by the
	// scanned project, as opposed to being pulled in transitively.
	Direct bool `json:"direct"`

	// ManifestPath is the manifest file the dependency was found in.
	ManifestPath string `json:"manifestPath,omitempty"`
}

// Key returns the unique identity of the dependency. Findings are keyed by
// (name, version, ecosystem); two dependencies with equal keys are the same
// dependency.
func (d Dependency) Key() string {
	return fmt.Sprintf("%s/%s@%s", d.Ecosystem, d.Name, d.Version)
}

// String returns a human-readable representation.
func (d Dependency) String() string {
	if d.Version == "" {
		return d.Name
	}
	return d.Name + "@" + d.Version
}

// Validate returns an error if the dependency contains invalid fields.
func (d Dependency) Validate() error {
	if d.Name == "" {
		return Errorf(EINVALID, "dependency name required")
	}
	if d.Ecosystem == "" {
		return Errorf(EINVALID, "dependency ecosystem required")
	}
	return nil
}
