package mock

import (
	"context"

	"github.com/feluda-dev/feluda"
)

var _ feluda.RegistryClient = (*RegistryClient)(nil)

// RegistryClient is a mock implementation of feluda.RegistryClient.
type RegistryClient struct {
	FetchLicenseFn func(ctx context.Context, dep feluda.Dependency) (string, error)
	HostFn         func(dep feluda.Dependency) string
}

func (c *RegistryClient) FetchLicense(ctx context.Context, dep feluda.Dependency) (string, error) {
	return c.FetchLicenseFn(ctx, dep)
}

func (c *RegistryClient) Host(dep feluda.Dependency) string {
	if c.HostFn == nil {
		return "registry.test"
	}
	return c.HostFn(dep)
}
