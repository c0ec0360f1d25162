package http

import (
	"context"
	"fmt"
	"strings"

	"github.com/feluda-dev/feluda"
)

// DefaultNpmBaseURL is the production npm registry endpoint.
const DefaultNpmBaseURL = "https://registry.npmjs.org"

// Ensure NpmClient implements feluda.RegistryClient at compile time.
var _ feluda.RegistryClient = (*NpmClient)(nil)

// NpmClient looks up package licenses on the npm registry.
type NpmClient struct {
	settings settings
}

// NewNpmClient creates a new npm registry client.
func NewNpmClient(opts ...Option) *NpmClient {
	return &NpmClient{settings: newSettings(DefaultNpmBaseURL, opts...)}
}

// FetchLicense implements feluda.RegistryClient.
func (c *NpmClient) FetchLicense(ctx context.Context, dep feluda.Dependency) (string, error) {
	if dep.Version == "" {
		return "", feluda.Errorf(feluda.ENOTFOUND, "no pinned version for npm package %q", dep.Name)
	}

	var body struct {
		License  any `json:"license"`
		Licenses any `json:"licenses"`
	}
	// Scoped names keep their slash unescaped; the registry expects
	// /@scope/name/version.
	u := fmt.Sprintf("%s/%s/%s", c.settings.baseURL, dep.Name, dep.Version)
	if err := c.settings.getJSON(ctx, u, &body); err != nil {
		return "", err
	}

	license := coerceLicense(body.License)
	if license == "" {
		license = coerceLicense(body.Licenses)
	}
	if license == "" {
		return "", feluda.Errorf(feluda.ENOTFOUND, "npm package %s@%s has no license metadata", dep.Name, dep.Version)
	}
	return license, nil
}

// Host implements feluda.RegistryClient.
func (c *NpmClient) Host(feluda.Dependency) string {
	return hostOf(c.settings.baseURL, "registry.npmjs.org")
}

// coerceLicense flattens the shapes npm metadata uses for license fields: a
// string, an object with a type field, or a list of such objects.
func coerceLicense(v any) string {
	switch license := v.(type) {
	case string:
		return license
	case map[string]any:
		if t, ok := license["type"].(string); ok {
			return t
		}
	case []any:
		var parts []string
		for _, entry := range license {
			if s := coerceLicense(entry); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " OR ")
	}
	return ""
}
