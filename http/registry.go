package http

import (
	"context"

	"github.com/feluda-dev/feluda"
)

// Ensure Registry implements feluda.RegistryClient at compile time.
var _ feluda.RegistryClient = (*Registry)(nil)

// Registry routes license lookups to the right registry client by
// ecosystem: crates.io for cargo, the npm registry for npm, PyPI for pypi,
// deps.dev for go and maven, and vcpkg/Conan Center for cpp.
type Registry struct {
	clients map[feluda.Ecosystem]feluda.RegistryClient
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithClient overrides the client used for an ecosystem. Used in tests to
// substitute local servers.
func WithClient(eco feluda.Ecosystem, client feluda.RegistryClient) RegistryOption {
	return func(r *Registry) {
		r.clients[eco] = client
	}
}

// NewRegistry creates a Registry with production clients for every
// supported ecosystem.
func NewRegistry(opts ...RegistryOption) *Registry {
	depsDev := NewDepsDevClient()
	r := &Registry{
		clients: map[feluda.Ecosystem]feluda.RegistryClient{
			feluda.EcosystemCargo: NewCratesClient(),
			feluda.EcosystemNpm:   NewNpmClient(),
			feluda.EcosystemPyPI:  NewPyPIClient(),
			feluda.EcosystemGo:    depsDev,
			feluda.EcosystemMaven: depsDev,
			feluda.EcosystemCpp:   NewCppClient(),
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FetchLicense implements feluda.RegistryClient.
func (r *Registry) FetchLicense(ctx context.Context, dep feluda.Dependency) (string, error) {
	client, ok := r.clients[dep.Ecosystem]
	if !ok {
		return "", feluda.Errorf(feluda.EINVALID, "unsupported ecosystem %q", dep.Ecosystem)
	}
	return client.FetchLicense(ctx, dep)
}

// Host implements feluda.RegistryClient.
func (r *Registry) Host(dep feluda.Dependency) string {
	client, ok := r.clients[dep.Ecosystem]
	if !ok {
		return ""
	}
	return client.Host(dep)
}
