package main

import (
	"fmt"
	"time"

	"github.com/feluda-dev/feluda"
	"github.com/feluda-dev/feluda/sqlite"
)

// Run executes the cache status command.
func (c *CacheStatusCmd) Run(deps *Dependencies) error {
	status, err := deps.DB.Status(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", feluda.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Cache: %s (%s)\n", status.Path, sqlite.FormatSize(status.SizeBytes))
	fmt.Fprintf(deps.Stdout, "  %d resolutions, %d licenses\n", status.Resolutions, status.Licenses)
	fmt.Fprintf(deps.Stdout, "  oldest entry: %s\n", sqlite.FormatAge(status.OldestEntry, time.Now().UTC()))
	return nil
}

// Run executes the cache clear command.
func (c *CacheClearCmd) Run(deps *Dependencies) error {
	if err := deps.DB.Clear(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", feluda.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, "Cache cleared.")
	return nil
}
