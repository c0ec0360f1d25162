package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/feluda-dev/feluda"
	feludahttp "github.com/feluda-dev/feluda/http"
	"github.com/feluda-dev/feluda/manifest"
	"github.com/feluda-dev/feluda/scan"
	feludaslog "github.com/feluda-dev/feluda/slog"
	"github.com/feluda-dev/feluda/sqlite"
	"github.com/feluda-dev/feluda/toml"
	"github.com/feluda-dev/feluda/yaml"
)

// ErrViolations signals that the scan completed but the report failed the
// policy. It maps to exit code 1; every other error maps to exit code 2.
var ErrViolations = errors.New("license violations found")

// registryRequestsPerSecond bounds lookups per registry host.
const registryRequestsPerSecond = 2.0

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, ErrViolations) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

// Main represents the program.
type Main struct {
	// Cache database path. Set before calling Run() to override the
	// FELUDA_CACHE / config file / platform default resolution.
	CachePath string

	// SQLite database backing the resolution cache and license store.
	DB *sqlite.DB

	// Services for end-to-end testing. Any left nil is wired with its
	// production implementation in Run().
	Locator  feluda.Locator
	Resolver feluda.Resolver
	Licenses feluda.LicenseSource
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("feluda"),
		kong.Description("Audit project dependencies for license compliance."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help and version flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'feluda --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}
	if cmd == "version" || cmd == "--version" {
		fmt.Fprintf(stdout, "feluda %s\n", feluda.Version)
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Configuration comes from the scanned project's directory for scans and
	// the working directory otherwise.
	configDir := "."
	if cmd == "scan" {
		configDir = cli.Scan.Path
	}
	config, err := toml.LoadConfig(configDir)
	if err != nil {
		return err
	}
	deps.Config = config

	if cmd == "scan" && cli.Scan.Policy != "" {
		policy, err := yaml.LoadPolicy(cli.Scan.Policy)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", feluda.ErrorMessage(err))
			return err
		}
		deps.Policy = policy
	}

	// Open cache database
	m.DB = sqlite.NewDB(m.cachePath(config))
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set FELUDA_CACHE to use a different cache path\n")
		return fmt.Errorf("failed to open cache at %q: %w", m.cachePath(config), err)
	}
	defer m.Close()
	deps.DB = m.DB

	// Wire scan dependencies
	if cmd == "scan" {
		var logger *slog.Logger
		if cli.Scan.Debug {
			logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}

		if m.Locator == nil {
			m.Locator = manifest.NewLocator()
		}
		if m.Resolver == nil {
			var registry feluda.RegistryClient = feludahttp.NewRegistry()
			if logger != nil {
				registry = feludaslog.NewLoggingRegistryClient(registry, logger)
			}
			m.Resolver = &scan.Resolver{
				Registry: registry,
				Cache:    sqlite.NewResolutionCache(m.DB),
				Limiter:  scan.NewHostLimiter(registryRequestsPerSecond),
				Prefer:   deps.Policy.Prefer,
			}
		}
		if m.Licenses == nil {
			m.Licenses = feludahttp.NewGitHubLicenses()
		}

		deps.Locator = m.Locator
		deps.Resolver = m.Resolver
		deps.Parsers = manifest.Parsers()
		deps.Licenses = m.Licenses
		deps.Store = sqlite.NewLicenseStore(m.DB)

		if logger != nil {
			deps.Locator = feludaslog.NewLoggingLocator(deps.Locator, logger)
			deps.Resolver = feludaslog.NewLoggingResolver(deps.Resolver, logger)
		}
	}

	return kongCtx.Run(deps)
}

// cachePath resolves the cache database location: an explicit override on
// Main wins, then the config file, then the platform default.
func (m *Main) cachePath(config feluda.Config) string {
	if m.CachePath != "" {
		return m.CachePath
	}
	if config.CachePath != "" {
		return config.CachePath
	}
	return defaultCachePath()
}

func defaultCachePath() string {
	if path := os.Getenv("FELUDA_CACHE"); path != "" {
		return path
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "feluda.db"
	}
	dir := filepath.Join(base, "feluda")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "cache.db")
}
