package feluda

import "context"

// Confidence is the degree of certainty in a resolved license attribution.
type Confidence string

// Confidence levels, from strongest to weakest.
const (
	// ConfidenceDeclared means the license came from manifest metadata.
	ConfidenceDeclared Confidence = "declared"
	// ConfidenceInferred means the license was inferred from a license file
	// or a remote registry lookup.
	ConfidenceInferred Confidence = "inferred"
	// ConfidenceUnknown means the license could not be resolved.
	ConfidenceUnknown Confidence = "unknown"
)

// Resolution is the outcome of resolving a single dependency's license.
type Resolution struct {
	// Expression is the raw license expression as found, e.g.
	// "MIT OR Apache-2.0". Empty when nothing was found.
	Expression string `json:"expression,omitempty"`

	// License is the single normalized SPDX identifier chosen from the
	// expression. Empty when Confidence is unknown.
	License string `json:"license,omitempty"`

	Confidence Confidence `json:"confidence"`
}

// License holds SPDX license metadata as published by the GitHub
// Licenses API.
type License struct {
	SPDXID      string   `json:"spdxId"`
	Title       string   `json:"title"`
	Permissions []string `json:"permissions"`
	Conditions  []string `json:"conditions"`
	Limitations []string `json:"limitations"`
}

// Resolver resolves the license of a dependency. Implementations must treat
// context cancellation as an unknown-confidence result rather than a failure
// of the overall run.
type Resolver interface {
	Resolve(ctx context.Context, dep Dependency) (Resolution, error)
}

// RegistryClient fetches a raw license expression for a dependency from a
// remote package registry. Returns ENOTFOUND when the registry has no
// license data for the dependency.
type RegistryClient interface {
	// FetchLicense returns the raw license expression for the dependency.
	FetchLicense(ctx context.Context, dep Dependency) (string, error)

	// Host returns the registry host that will serve the lookup, used for
	// per-host rate limiting.
	Host(dep Dependency) string
}

// ResolutionCache stores resolved licenses keyed by dependency identity.
type ResolutionCache interface {
	// Get returns the cached resolution and true if a fresh entry exists.
	Get(ctx context.Context, dep Dependency) (Resolution, bool, error)

	// Put stores a resolution for the dependency.
	Put(ctx context.Context, dep Dependency, res Resolution) error
}

// LicenseSource fetches SPDX license metadata keyed by SPDX identifier.
type LicenseSource interface {
	FetchLicenses(ctx context.Context) (map[string]License, error)
}

// LicenseStore persists SPDX license metadata between runs.
type LicenseStore interface {
	// Licenses returns the stored metadata, or ok=false when the store is
	// empty or stale.
	Licenses(ctx context.Context) (map[string]License, bool, error)

	// SaveLicenses replaces the stored metadata.
	SaveLicenses(ctx context.Context, licenses map[string]License) error
}

// HostLimiter rate-limits outbound requests per registry host.
type HostLimiter interface {
	// Wait blocks until the rate limit allows a request to the host.
	Wait(ctx context.Context, host string) error
}
