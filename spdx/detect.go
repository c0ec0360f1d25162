package spdx

import "strings"

// DetectText inspects the contents of a license file and returns the SPDX
// identifier it most likely represents. Returns ok=false when the text
// matches none of the known licenses.
func DetectText(content string) (string, bool) {
	switch {
	case strings.Contains(content, "MIT License") ||
		strings.Contains(content, "Permission is hereby granted, free of charge"):
		return "MIT", true
	case strings.Contains(content, "GNU AFFERO GENERAL PUBLIC LICENSE") &&
		strings.Contains(content, "Version 3"):
		return "AGPL-3.0", true
	case strings.Contains(content, "GNU LESSER GENERAL PUBLIC LICENSE") &&
		strings.Contains(content, "Version 3"):
		return "LGPL-3.0", true
	case strings.Contains(content, "GNU GENERAL PUBLIC LICENSE") &&
		strings.Contains(content, "Version 3"):
		return "GPL-3.0", true
	case strings.Contains(content, "GNU GENERAL PUBLIC LICENSE") &&
		strings.Contains(content, "Version 2"):
		return "GPL-2.0", true
	case strings.Contains(content, "Apache License") &&
		strings.Contains(content, "Version 2.0"):
		return "Apache-2.0", true
	case strings.Contains(content, "BSD") &&
		strings.Contains(content, "Redistribution and use") &&
		strings.Contains(content, "Neither the name"):
		return "BSD-3-Clause", true
	case strings.Contains(content, "BSD") &&
		strings.Contains(content, "Redistribution and use"):
		return "BSD-2-Clause", true
	case strings.Contains(content, "Mozilla Public License") &&
		strings.Contains(content, "Version 2.0"):
		return "MPL-2.0", true
	case strings.Contains(content, "ISC License") ||
		(strings.Contains(content, "Permission to use, copy, modify") &&
			strings.Contains(content, "copyright notice")):
		return "ISC", true
	case strings.Contains(content, "This is free and unencumbered software released into the public domain"):
		return "Unlicense", true
	}
	return "", false
}

// LicenseFileNames are the conventional file names checked when detecting a
// license from a directory, in order of preference.
var LicenseFileNames = []string{
	"LICENSE",
	"LICENSE.txt",
	"LICENSE.md",
	"LICENSE-MIT",
	"license",
	"COPYING",
}
