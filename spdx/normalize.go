package spdx

import "strings"

// Normalize maps common license identifier variations and aliases to their
// canonical SPDX form. Unrecognized identifiers are returned unchanged.
func Normalize(id string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(id))

	switch trimmed {
	case "MIT", "MIT LICENSE":
		return "MIT"
	case "ISC", "ISC LICENSE":
		return "ISC"
	case "0BSD", "BSD-ZERO-CLAUSE", "BSD ZERO CLAUSE":
		return "0BSD"
	case "UNLICENSE", "THE UNLICENSE":
		return "Unlicense"
	case "WTFPL":
		return "WTFPL"
	case "ZLIB", "ZLIB LICENSE":
		return "Zlib"
	case "AGPL-3.0", "AGPL-3.0-ONLY", "AGPL-3.0-OR-LATER":
		return "AGPL-3.0"
	}

	switch {
	case strings.Contains(trimmed, "APACHE") && (strings.Contains(trimmed, "2.0") || strings.Contains(trimmed, "2")):
		return "Apache-2.0"
	case strings.Contains(trimmed, "LGPL") && strings.Contains(trimmed, "3"):
		return "LGPL-3.0"
	case strings.Contains(trimmed, "LGPL") && strings.Contains(trimmed, "2"):
		return "LGPL-2.1"
	case strings.Contains(trimmed, "GPL") && strings.Contains(trimmed, "3"):
		return "GPL-3.0"
	case strings.Contains(trimmed, "GPL") && strings.Contains(trimmed, "2"):
		return "GPL-2.0"
	case strings.Contains(trimmed, "MPL") && strings.Contains(trimmed, "2.0"):
		return "MPL-2.0"
	case strings.Contains(trimmed, "BSD") && (strings.Contains(trimmed, "3") || strings.Contains(trimmed, "THREE")):
		return "BSD-3-Clause"
	case strings.Contains(trimmed, "BSD") && (strings.Contains(trimmed, "2") || strings.Contains(trimmed, "TWO")):
		return "BSD-2-Clause"
	}

	return strings.TrimSpace(id)
}
