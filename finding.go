package feluda

import "sort"

// Verdict is the policy outcome for a single finding.
type Verdict string

// Verdict values.
const (
	VerdictAllowed Verdict = "allowed"
	VerdictDenied  Verdict = "denied"
	VerdictUnknown Verdict = "unknown"
)

// Compatibility describes whether a dependency license can be included in a
// project under the project's own license.
type Compatibility string

// Compatibility values. CompatibilityUnknown is also used when no project
// license was detected or given.
const (
	CompatibilityCompatible   Compatibility = "compatible"
	CompatibilityIncompatible Compatibility = "incompatible"
	CompatibilityUnknown      Compatibility = "unknown"
)

// Finding is the analysis result for a single dependency. Every dependency
// in the graph yields exactly one finding.
type Finding struct {
	Dependency Dependency `json:"dependency"`
	Resolution Resolution `json:"resolution"`

	// Restrictive reports whether the resolved license imposes
	// source-disclosure style conditions or matches a configured
	// restrictive pattern.
	Restrictive bool `json:"restrictive"`

	Compatibility Compatibility `json:"compatibility"`
	Verdict       Verdict       `json:"verdict"`
}

// Violates reports whether the finding fails the given threshold.
// With FailOnDenied only denied findings count; with FailOnUnknown both
// denied and unknown findings count.
func (f Finding) Violates(failOn FailOn) bool {
	switch f.Verdict {
	case VerdictDenied:
		return true
	case VerdictUnknown:
		return failOn == FailOnUnknown
	}
	return false
}

// FailOn selects which verdicts fail a scan.
type FailOn string

// FailOn values.
const (
	FailOnDenied  FailOn = "denied"
	FailOnUnknown FailOn = "unknown"
)

// SortFindings orders findings by dependency name, then version, then
// ecosystem. Report output depends on this order being stable.
func SortFindings(findings []Finding) {
	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i].Dependency, findings[j].Dependency
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Version != b.Version {
			return a.Version < b.Version
		}
		return a.Ecosystem < b.Ecosystem
	})
}
