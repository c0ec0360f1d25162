package http

import (
	"context"
	"fmt"
	"net/url"

	"github.com/feluda-dev/feluda"
)

// DefaultCratesBaseURL is the production crates.io API endpoint.
const DefaultCratesBaseURL = "https://crates.io"

// Ensure CratesClient implements feluda.RegistryClient at compile time.
var _ feluda.RegistryClient = (*CratesClient)(nil)

// CratesClient looks up crate licenses on crates.io.
type CratesClient struct {
	settings settings
}

// NewCratesClient creates a new crates.io client.
func NewCratesClient(opts ...Option) *CratesClient {
	return &CratesClient{settings: newSettings(DefaultCratesBaseURL, opts...)}
}

// FetchLicense implements feluda.RegistryClient.
func (c *CratesClient) FetchLicense(ctx context.Context, dep feluda.Dependency) (string, error) {
	if dep.Version == "" {
		return "", feluda.Errorf(feluda.ENOTFOUND, "no pinned version for crate %q", dep.Name)
	}

	var body struct {
		Version struct {
			License string `json:"license"`
		} `json:"version"`
	}
	u := fmt.Sprintf("%s/api/v1/crates/%s/%s",
		c.settings.baseURL, url.PathEscape(dep.Name), url.PathEscape(dep.Version))
	if err := c.settings.getJSON(ctx, u, &body); err != nil {
		return "", err
	}

	if body.Version.License == "" {
		return "", feluda.Errorf(feluda.ENOTFOUND, "crate %s@%s has no license metadata", dep.Name, dep.Version)
	}
	return body.Version.License, nil
}

// Host implements feluda.RegistryClient.
func (c *CratesClient) Host(feluda.Dependency) string {
	return hostOf(c.settings.baseURL, "crates.io")
}
