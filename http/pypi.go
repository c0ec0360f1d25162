package http

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/feluda-dev/feluda"
)

// DefaultPyPIBaseURL is the production PyPI JSON API endpoint.
const DefaultPyPIBaseURL = "https://pypi.org"

// Ensure PyPIClient implements feluda.RegistryClient at compile time.
var _ feluda.RegistryClient = (*PyPIClient)(nil)

// PyPIClient looks up package licenses on PyPI.
type PyPIClient struct {
	settings settings
}

// NewPyPIClient creates a new PyPI client.
func NewPyPIClient(opts ...Option) *PyPIClient {
	return &PyPIClient{settings: newSettings(DefaultPyPIBaseURL, opts...)}
}

// FetchLicense implements feluda.RegistryClient. PyPI license metadata is
// unreliable: the free-form license field is preferred when it looks like an
// identifier, with the trove classifiers as fallback.
func (c *PyPIClient) FetchLicense(ctx context.Context, dep feluda.Dependency) (string, error) {
	if dep.Version == "" {
		return "", feluda.Errorf(feluda.ENOTFOUND, "no pinned version for PyPI package %q", dep.Name)
	}

	var body struct {
		Info struct {
			License     string   `json:"license"`
			Classifiers []string `json:"classifiers"`
		} `json:"info"`
	}
	u := fmt.Sprintf("%s/pypi/%s/%s/json",
		c.settings.baseURL, url.PathEscape(dep.Name), url.PathEscape(dep.Version))
	if err := c.settings.getJSON(ctx, u, &body); err != nil {
		return "", err
	}

	license := strings.TrimSpace(body.Info.License)
	if license != "" && !strings.EqualFold(license, "UNKNOWN") && len(license) < 64 {
		return license, nil
	}
	if license := classifierLicense(body.Info.Classifiers); license != "" {
		return license, nil
	}
	return "", feluda.Errorf(feluda.ENOTFOUND, "PyPI package %s@%s has no license metadata", dep.Name, dep.Version)
}

// Host implements feluda.RegistryClient.
func (c *PyPIClient) Host(feluda.Dependency) string {
	return hostOf(c.settings.baseURL, "pypi.org")
}

// classifierLicense extracts a license name from trove classifiers such as
// "License :: OSI Approved :: MIT License".
func classifierLicense(classifiers []string) string {
	for _, classifier := range classifiers {
		if !strings.HasPrefix(classifier, "License ::") {
			continue
		}
		parts := strings.Split(classifier, "::")
		name := strings.TrimSpace(parts[len(parts)-1])
		name = strings.TrimSuffix(name, " License")
		if name != "" && name != "OSI Approved" {
			return name
		}
	}
	return ""
}
