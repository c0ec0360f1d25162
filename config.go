package feluda

import "time"

// Default scan settings.
const (
	DefaultConcurrency = 10
	DefaultTimeout     = 2 * time.Minute
)

// Config holds scan settings shared across stages. Defaults are passed
// explicitly rather than held as ambient state; flags override the config
// file, which overrides the defaults.
type Config struct {
	// Concurrency bounds the remote resolution worker pool.
	Concurrency int

	// Timeout aborts outstanding remote lookups for the whole run.
	// Timed-out dependencies resolve with unknown confidence.
	Timeout time.Duration

	// Format is the default report format.
	Format string

	// Restrictive holds extra license patterns treated as restrictive.
	Restrictive []string

	// CachePath is the SQLite cache database location.
	CachePath string
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Concurrency: DefaultConcurrency,
		Timeout:     DefaultTimeout,
		Format:      "text",
	}
}
