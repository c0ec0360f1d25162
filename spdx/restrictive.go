package spdx

import (
	"strings"

	"github.com/feluda-dev/feluda"
)

// restrictiveConditions are the license conditions that make a license
// restrictive for the purposes of this tool.
var restrictiveConditions = []string{
	"source-disclosure",
	"network-use-disclosure",
}

// IsRestrictive reports whether a resolved license is restrictive. A license
// is restrictive when its metadata conditions require source or network-use
// disclosure, or when the identifier matches one of the configured patterns.
// A dependency with no resolved license at all is treated as restrictive.
func IsRestrictive(id string, known map[string]feluda.License, patterns []string) bool {
	if id == "" {
		return true
	}

	if meta, ok := known[Normalize(id)]; ok {
		for _, condition := range restrictiveConditions {
			for _, c := range meta.Conditions {
				if c == condition {
					return true
				}
			}
		}
		return matchesPattern(id, patterns)
	}

	// Without metadata, fall back to configured patterns and the built-in
	// restrictiveness ranking.
	if matchesPattern(id, patterns) {
		return true
	}
	return Rank(id) >= 1 && Rank(id) < 3
}

func matchesPattern(id string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if strings.Contains(strings.ToUpper(id), strings.ToUpper(pattern)) {
			return true
		}
	}
	return false
}
