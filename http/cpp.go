package http

import (
	"context"
	"fmt"
	"net/url"

	"github.com/feluda-dev/feluda"
)

// DefaultVcpkgBaseURL is the raw file endpoint of the vcpkg ports registry.
const DefaultVcpkgBaseURL = "https://raw.githubusercontent.com/microsoft/vcpkg/master"

// DefaultConanBaseURL is the production Conan Center endpoint.
const DefaultConanBaseURL = "https://conan.io/center"

// Ensure CppClient implements feluda.RegistryClient at compile time.
var _ feluda.RegistryClient = (*CppClient)(nil)

// CppClient looks up C/C++ package licenses. C++ has no single registry, so
// the lookup routes on the version recorded by the manifest parser: vcpkg
// and FetchContent targets ("latest", "git") resolve against the vcpkg
// ports registry, pinned versions against Conan Center. System and archive
// targets have no registry to ask and resolve as not found.
type CppClient struct {
	vcpkg settings
	conan settings
}

// NewCppClient creates a new C/C++ registry client. Options apply to both
// endpoints.
func NewCppClient(opts ...Option) *CppClient {
	return &CppClient{
		vcpkg: newSettings(DefaultVcpkgBaseURL, opts...),
		conan: newSettings(DefaultConanBaseURL, opts...),
	}
}

// FetchLicense implements feluda.RegistryClient.
func (c *CppClient) FetchLicense(ctx context.Context, dep feluda.Dependency) (string, error) {
	switch {
	case dep.Version == "latest" || dep.Version == "git":
		return c.fromVcpkg(ctx, dep)
	case pinnedVersion(dep.Version):
		return c.fromConan(ctx, dep)
	}
	return "", feluda.Errorf(feluda.ENOTFOUND, "no registry serves %s@%s", dep.Name, dep.Version)
}

// fromVcpkg reads the package's port manifest from the vcpkg registry.
func (c *CppClient) fromVcpkg(ctx context.Context, dep feluda.Dependency) (string, error) {
	var body struct {
		License string `json:"license"`
	}
	u := fmt.Sprintf("%s/ports/%s/vcpkg.json", c.vcpkg.baseURL, url.PathEscape(dep.Name))
	if err := c.vcpkg.getJSON(ctx, u, &body); err != nil {
		return "", err
	}

	if body.License == "" {
		return "", feluda.Errorf(feluda.ENOTFOUND, "vcpkg port %s has no license metadata", dep.Name)
	}
	return body.License, nil
}

// fromConan queries Conan Center for a pinned package version.
func (c *CppClient) fromConan(ctx context.Context, dep feluda.Dependency) (string, error) {
	var body struct {
		License string `json:"license"`
	}
	u := fmt.Sprintf("%s/api/packages/%s/%s",
		c.conan.baseURL, url.PathEscape(dep.Name), url.PathEscape(dep.Version))
	if err := c.conan.getJSON(ctx, u, &body); err != nil {
		return "", err
	}

	if body.License == "" {
		return "", feluda.Errorf(feluda.ENOTFOUND, "conan package %s@%s has no license metadata", dep.Name, dep.Version)
	}
	return body.License, nil
}

// Host implements feluda.RegistryClient.
func (c *CppClient) Host(dep feluda.Dependency) string {
	if pinnedVersion(dep.Version) {
		return hostOf(c.conan.baseURL, "conan.io")
	}
	return hostOf(c.vcpkg.baseURL, "raw.githubusercontent.com")
}

// pinnedVersion reports whether a version string is an exact release number
// rather than a parser placeholder like "latest" or "system".
func pinnedVersion(version string) bool {
	return version != "" && version[0] >= '0' && version[0] <= '9'
}
