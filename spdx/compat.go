package spdx

import "github.com/feluda-dev/feluda"

// compatibilityMatrix maps a project license to the dependency licenses that
// may be included under it.
var compatibilityMatrix = map[string][]string{
	"MIT": {
		"MIT", "BSD-2-Clause", "BSD-3-Clause", "Apache-2.0", "ISC",
		"0BSD", "Zlib", "Unlicense", "WTFPL",
	},
	"Apache-2.0": {
		"MIT", "BSD-2-Clause", "BSD-3-Clause", "Apache-2.0", "ISC",
		"0BSD", "Zlib", "Unlicense", "WTFPL",
	},
	"GPL-3.0": {
		"MIT", "BSD-2-Clause", "BSD-3-Clause", "Apache-2.0", "LGPL-2.1",
		"LGPL-3.0", "GPL-2.0", "GPL-3.0", "ISC", "0BSD", "Zlib",
		"Unlicense", "WTFPL",
	},
	// GPL-2.0 is stricter than GPL-3.0 and cannot include Apache-2.0.
	"GPL-2.0": {
		"MIT", "BSD-2-Clause", "BSD-3-Clause", "LGPL-2.1", "GPL-2.0",
		"ISC", "0BSD", "Zlib", "Unlicense", "WTFPL",
	},
	"LGPL-3.0": {
		"MIT", "BSD-2-Clause", "BSD-3-Clause", "Apache-2.0", "LGPL-2.1",
		"LGPL-3.0", "ISC", "0BSD",
	},
	"LGPL-2.1": {
		"MIT", "BSD-2-Clause", "BSD-3-Clause", "LGPL-2.1", "ISC", "0BSD",
	},
	"MPL-2.0": {
		"MIT", "BSD-2-Clause", "BSD-3-Clause", "MPL-2.0", "ISC", "0BSD",
	},
	"BSD-3-Clause": {"MIT", "BSD-2-Clause", "BSD-3-Clause", "ISC", "0BSD"},
	"BSD-2-Clause": {"MIT", "BSD-2-Clause", "ISC", "0BSD"},
	"ISC":          {"MIT", "ISC", "0BSD"},
	"0BSD":         {"0BSD"},
	"Unlicense":    {"Unlicense", "0BSD"},
	"WTFPL":        {"WTFPL", "0BSD", "Unlicense"},
}

// Compatible reports whether a dependency under depLicense may be included
// in a project licensed under projectLicense. Projects with a license
// outside the matrix yield CompatibilityUnknown.
func Compatible(depLicense, projectLicense string) feluda.Compatibility {
	if depLicense == "" {
		return feluda.CompatibilityUnknown
	}
	allowed, ok := compatibilityMatrix[Normalize(projectLicense)]
	if !ok {
		return feluda.CompatibilityUnknown
	}
	norm := Normalize(depLicense)
	for _, id := range allowed {
		if id == norm {
			return feluda.CompatibilityCompatible
		}
	}
	return feluda.CompatibilityIncompatible
}
