package main

import (
	"fmt"
	"os"

	"github.com/feluda-dev/feluda"
	"github.com/feluda-dev/feluda/manifest"
	"github.com/feluda-dev/feluda/report"
	"github.com/feluda-dev/feluda/scan"
)

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	name := c.Format
	if name == "" {
		name = deps.Config.Format
	}
	format, err := report.ParseFormat(name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", feluda.ErrorMessage(err))
		return err
	}

	policy := deps.Policy
	policy.Restrictive = append(policy.Restrictive, deps.Config.Restrictive...)

	projectLicense := c.ProjectLicense
	if projectLicense == "" {
		projectLicense = manifest.DetectProjectLicense(c.Path)
	}

	concurrency := c.Concurrency
	if concurrency == 0 {
		concurrency = deps.Config.Concurrency
	}
	timeout := c.Timeout
	if timeout == 0 {
		timeout = deps.Config.Timeout
	}

	scanner := &scan.Scanner{
		Locator:     deps.Locator,
		Parsers:     deps.Parsers,
		Resolver:    deps.Resolver,
		Licenses:    deps.Licenses,
		Store:       deps.Store,
		Concurrency: concurrency,
		Timeout:     timeout,
	}

	// Progress goes to stderr so stdout stays valid for machine-readable
	// formats.
	progress := func(event scan.ProgressEvent) {
		switch event.Type {
		case scan.ProgressStarted:
			fmt.Fprintf(deps.Stderr, "Resolving %d dependencies\n", event.Total)
		case scan.ProgressCompleted:
			fmt.Fprintf(deps.Stderr, "\r  [%d/%d] %s", event.Completed, event.Total, event.Key)
		case scan.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "\r  skip %s: %v\n", event.Key, event.Error)
		case scan.ProgressFinished:
			fmt.Fprint(deps.Stderr, "\n")
		}
	}

	result, err := scanner.Scan(deps.Ctx, scan.Request{
		Root:           c.Path,
		Policy:         policy,
		ProjectLicense: projectLicense,
		FailOn:         feluda.FailOn(c.FailOn),
	}, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", feluda.ErrorMessage(err))
		return err
	}

	if c.Strict {
		result = report.Strict(result)
	}

	out := deps.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: cannot write report to %q: %v\n", c.Output, err)
			return err
		}
		defer f.Close()
		out = f
	}

	if err := report.New(format).Format(out, result); err != nil {
		return err
	}

	if result.Verdict == feluda.ReportFail {
		return ErrViolations
	}
	return nil
}
