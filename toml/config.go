// Package toml loads feluda configuration from .feluda.toml files.
package toml

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/feluda-dev/feluda"
)

// ConfigFileName is the conventional configuration file name, looked up in
// the scanned project root.
const ConfigFileName = ".feluda.toml"

// configFile is the on-disk configuration shape.
type configFile struct {
	Concurrency int      `toml:"concurrency"`
	TimeoutSecs int      `toml:"timeout_seconds"`
	Format      string   `toml:"format"`
	Restrictive []string `toml:"restrictive"`
	CachePath   string   `toml:"cache_path"`
}

// LoadConfig reads configuration from dir/.feluda.toml, layered over the
// built-in defaults. A missing file yields the defaults; a malformed file
// is EINVALID. Zero-valued fields keep their defaults, so a config file
// only needs to name what it changes.
func LoadConfig(dir string) (feluda.Config, error) {
	config := feluda.DefaultConfig()

	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	} else if err != nil {
		return feluda.Config{}, err
	}

	var file configFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return feluda.Config{}, feluda.Errorf(feluda.EINVALID, "parse %s: %v", path, err)
	}

	if file.Concurrency > 0 {
		config.Concurrency = file.Concurrency
	}
	if file.TimeoutSecs > 0 {
		config.Timeout = time.Duration(file.TimeoutSecs) * time.Second
	}
	if file.Format != "" {
		config.Format = file.Format
	}
	if len(file.Restrictive) > 0 {
		config.Restrictive = file.Restrictive
	}
	if file.CachePath != "" {
		config.CachePath = file.CachePath
	}
	return config, nil
}
