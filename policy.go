package feluda

import "strings"

// Preference selects how ambiguous multi-license expressions are resolved.
type Preference string

// Preference values. The default is PreferRestrictive: a dual-licensed
// dependency is judged by its most restrictive alternative.
const (
	PreferRestrictive Preference = "restrictive"
	PreferPermissive  Preference = "permissive"
)

// Policy is an allow/deny license policy. The zero value allows every
// resolved license and denies unknowns.
type Policy struct {
	// Allow lists SPDX identifiers that are permitted. When non-empty, any
	// resolved license not on the list is denied.
	Allow []string `json:"allow,omitempty"`

	// Deny lists SPDX identifiers that are always denied. Deny wins over
	// Allow.
	Deny []string `json:"deny,omitempty"`

	// AllowUnknown permits dependencies whose license could not be
	// resolved. When false, unknown licenses are denied.
	AllowUnknown bool `json:"allowUnknown,omitempty"`

	// Restrictive holds extra substring patterns that mark a license as
	// restrictive in addition to the built-in condition rules.
	Restrictive []string `json:"restrictive,omitempty"`

	// Prefer controls multi-license expression resolution.
	Prefer Preference `json:"prefer,omitempty"`
}

// Validate returns an error if the policy contains invalid fields.
func (p *Policy) Validate() error {
	for _, id := range p.Allow {
		if strings.TrimSpace(id) == "" {
			return Errorf(EINVALID, "policy allow list contains an empty identifier")
		}
	}
	for _, id := range p.Deny {
		if strings.TrimSpace(id) == "" {
			return Errorf(EINVALID, "policy deny list contains an empty identifier")
		}
	}
	switch p.Prefer {
	case "", PreferRestrictive, PreferPermissive:
	default:
		return Errorf(EINVALID, "policy prefer must be %q or %q", PreferRestrictive, PreferPermissive)
	}
	return nil
}

// Evaluate applies the policy to a resolution and returns a verdict. It is
// a pure function: identical inputs always produce identical verdicts.
// Identifiers are compared case-insensitively and are expected to be
// normalized by the resolver.
func (p *Policy) Evaluate(res Resolution) Verdict {
	if res.License == "" || res.Confidence == ConfidenceUnknown {
		if p.AllowUnknown {
			return VerdictUnknown
		}
		return VerdictDenied
	}

	if containsFold(p.Deny, res.License) {
		return VerdictDenied
	}
	if len(p.Allow) > 0 && !containsFold(p.Allow, res.License) {
		return VerdictDenied
	}
	return VerdictAllowed
}

func containsFold(ids []string, id string) bool {
	for _, candidate := range ids {
		if strings.EqualFold(candidate, id) {
			return true
		}
	}
	return false
}
