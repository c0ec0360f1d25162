package feluda

import "context"

// Manifest is an ecosystem-specific dependency declaration file discovered
// under the scan root.
type Manifest struct {
	// Path is the location of the marker file, e.g. ".../Cargo.toml".
	// Parsers may consult sibling lockfiles next to it.
	Path      string    `json:"path"`
	Ecosystem Ecosystem `json:"ecosystem"`
}

// Warning records a recovered, non-fatal problem encountered during a scan:
// an unreadable subdirectory, a manifest that failed to parse, or a license
// lookup that timed out. Warnings never abort the run.
type Warning struct {
	// Path is the file or directory the warning refers to, or a dependency
	// key for resolution warnings.
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Locator discovers dependency manifests under a root directory.
type Locator interface {
	// Locate walks root and returns all recognized manifests plus warnings
	// for subtrees it had to skip. Returns ENOTFOUND when root does not
	// exist or no manifests were detected.
	Locate(ctx context.Context, root string) ([]Manifest, []Warning, error)
}

// Parser parses manifests of a single ecosystem into a dependency graph.
type Parser interface {
	// Ecosystem returns the ecosystem this parser handles.
	Ecosystem() Ecosystem

	// Parse reads the manifest (and its sibling lockfile where available)
	// and returns the dependencies it declares.
	Parse(ctx context.Context, m Manifest) (*Graph, error)
}
