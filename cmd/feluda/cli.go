package main

import (
	"context"
	"io"
	"time"

	"github.com/feluda-dev/feluda"
	"github.com/feluda-dev/feluda/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	DB     *sqlite.DB
	Config feluda.Config
	Policy feluda.Policy

	Locator  feluda.Locator
	Parsers  []feluda.Parser
	Resolver feluda.Resolver
	Licenses feluda.LicenseSource
	Store    feluda.LicenseStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scan  ScanCmd  `cmd:"" help:"Scan a project's dependencies for license issues"`
	Cache CacheCmd `cmd:"" help:"Inspect or clear the license cache"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	Path           string        `arg:"" optional:"" default:"." help:"Project directory to scan"`
	Format         string        `short:"f" help:"Report format: text, json, yaml, or sarif"`
	Policy         string        `short:"p" type:"path" help:"Policy file (YAML)"`
	FailOn         string        `name:"fail-on" default:"denied" enum:"denied,unknown" help:"Verdicts that fail the scan"`
	Strict         bool          `help:"Report only findings that need attention"`
	Output         string        `short:"o" type:"path" help:"Write the report to a file instead of stdout"`
	Concurrency    int           `short:"c" help:"Concurrent resolution limit"`
	Timeout        time.Duration `help:"Overall resolution timeout"`
	ProjectLicense string        `name:"project-license" help:"Override the detected project license"`
	Debug          bool          `help:"Log discovery and resolution to stderr"`
}

// CacheCmd is the "cache" subcommand.
type CacheCmd struct {
	Status CacheStatusCmd `cmd:"" default:"1" help:"Show cache location, size, and contents"`
	Clear  CacheClearCmd  `cmd:"" help:"Remove all cached entries"`
}

// CacheStatusCmd is the "cache status" subcommand.
type CacheStatusCmd struct{}

// CacheClearCmd is the "cache clear" subcommand.
type CacheClearCmd struct{}
