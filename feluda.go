// Package feluda provides a CLI-based dependency license auditor.
// It locates dependency manifests across ecosystems, builds a normalized
// dependency graph, resolves each dependency to an SPDX license identifier,
// evaluates the result against an allow/deny policy, and renders a
// deterministic report.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., sqlite/, http/, scan/).
package feluda

// Version is the feluda release version. Cached data written by a
// different version is discarded on open.
const Version = "1.0.0"
