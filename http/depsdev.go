package http

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/feluda-dev/feluda"
)

// DefaultDepsDevBaseURL is the production deps.dev API endpoint.
const DefaultDepsDevBaseURL = "https://api.deps.dev"

// Ensure DepsDevClient implements feluda.RegistryClient at compile time.
var _ feluda.RegistryClient = (*DepsDevClient)(nil)

// depsDevSystems maps ecosystems to deps.dev system identifiers.
var depsDevSystems = map[feluda.Ecosystem]string{
	feluda.EcosystemGo:    "go",
	feluda.EcosystemMaven: "maven",
	feluda.EcosystemCargo: "cargo",
	feluda.EcosystemNpm:   "npm",
	feluda.EcosystemPyPI:  "pypi",
}

// DepsDevClient looks up package licenses on deps.dev. It covers every
// ecosystem and serves as the registry for Go modules and Maven artifacts,
// which have no first-party license API.
type DepsDevClient struct {
	settings settings
}

// NewDepsDevClient creates a new deps.dev client.
func NewDepsDevClient(opts ...Option) *DepsDevClient {
	return &DepsDevClient{settings: newSettings(DefaultDepsDevBaseURL, opts...)}
}

// FetchLicense implements feluda.RegistryClient.
func (c *DepsDevClient) FetchLicense(ctx context.Context, dep feluda.Dependency) (string, error) {
	system, ok := depsDevSystems[dep.Ecosystem]
	if !ok {
		return "", feluda.Errorf(feluda.EINVALID, "unsupported ecosystem %q", dep.Ecosystem)
	}
	if dep.Version == "" {
		return "", feluda.Errorf(feluda.ENOTFOUND, "no pinned version for %s", dep.Name)
	}

	var body struct {
		Licenses []string `json:"licenses"`
	}
	// Go module paths contain slashes and must be escaped into a single
	// path segment.
	u := fmt.Sprintf("%s/v3alpha/systems/%s/packages/%s/versions/%s",
		c.settings.baseURL, system, url.PathEscape(dep.Name), url.PathEscape(dep.Version))
	if err := c.settings.getJSON(ctx, u, &body); err != nil {
		return "", err
	}

	if len(body.Licenses) == 0 {
		return "", feluda.Errorf(feluda.ENOTFOUND, "%s@%s has no license metadata", dep.Name, dep.Version)
	}
	return strings.Join(body.Licenses, " AND "), nil
}

// Host implements feluda.RegistryClient.
func (c *DepsDevClient) Host(feluda.Dependency) string {
	return hostOf(c.settings.baseURL, "api.deps.dev")
}
