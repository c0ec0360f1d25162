package http

import (
	"context"
	"fmt"
	"net/url"

	"github.com/feluda-dev/feluda"
)

// DefaultGitHubBaseURL is the production GitHub API endpoint.
const DefaultGitHubBaseURL = "https://api.github.com"

// Ensure GitHubLicenses implements feluda.LicenseSource at compile time.
var _ feluda.LicenseSource = (*GitHubLicenses)(nil)

// GitHubLicenses fetches SPDX license metadata from the GitHub Licenses
// API: the permissions, conditions, and limitations of each commonly used
// license. The conditions drive restrictive-license classification.
type GitHubLicenses struct {
	settings settings
}

// NewGitHubLicenses creates a new GitHub Licenses API client.
func NewGitHubLicenses(opts ...Option) *GitHubLicenses {
	return &GitHubLicenses{settings: newSettings(DefaultGitHubBaseURL, opts...)}
}

// FetchLicenses implements feluda.LicenseSource. It lists the commonly used
// licenses and fetches the full metadata of each, keyed by SPDX identifier.
func (g *GitHubLicenses) FetchLicenses(ctx context.Context) (map[string]feluda.License, error) {
	var index []struct {
		Key    string `json:"key"`
		SPDXID string `json:"spdx_id"`
	}
	if err := g.settings.getJSON(ctx, g.settings.baseURL+"/licenses", &index); err != nil {
		return nil, err
	}

	licenses := make(map[string]feluda.License, len(index))
	for _, entry := range index {
		var detail struct {
			SPDXID      string   `json:"spdx_id"`
			Name        string   `json:"name"`
			Permissions []string `json:"permissions"`
			Conditions  []string `json:"conditions"`
			Limitations []string `json:"limitations"`
		}
		u := fmt.Sprintf("%s/licenses/%s", g.settings.baseURL, url.PathEscape(entry.Key))
		if err := g.settings.getJSON(ctx, u, &detail); err != nil {
			return nil, err
		}
		licenses[detail.SPDXID] = feluda.License{
			SPDXID:      detail.SPDXID,
			Title:       detail.Name,
			Permissions: detail.Permissions,
			Conditions:  detail.Conditions,
			Limitations: detail.Limitations,
		}
	}
	return licenses, nil
}
