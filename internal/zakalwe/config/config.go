// Package config reads the user-level configuration and the persisted
// revset history from the platform config directory.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// AppDir is the directory name under the user config root.
const AppDir = "zakalwe"

type Config struct {
	PageSize      int    `toml:"page_size"`
	DefaultRevset string `toml:"default_revset"`
	Watch         bool   `toml:"watch"`
	LogLevel      string `toml:"log_level"`
	LogFile       string `toml:"log_file"`
}

const DefaultConfigToml = `# zakalwe configuration

# Revisions fetched per page. Scrolling near the end loads more.
page_size = 100

# Revset applied on startup. Empty shows everything.
default_revset = ""

# Reload automatically when another jj process changes the repo.
watch = true

# One of: debug, info, warn, error.
log_level = "warn"

# Log destination. The terminal belongs to the UI, so logs go to a
# file; empty means <config dir>/zakalwe.log.
log_file = ""
`

// Default returns the built-in configuration.
func Default() Config {
	return Config{PageSize: 100, Watch: true, LogLevel: "warn"}
}

// Dir returns the zakalwe config directory, creating nothing.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppDir), nil
}

// Load reads config.toml over the defaults. A missing file is not an
// error; a malformed one is, with defaults returned so the caller can
// keep going.
func Load() (Config, error) {
	cfg := Default()
	dir, err := Dir()
	if err != nil {
		return cfg, nil
	}
	raw, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	if err != nil {
		return cfg, nil
	}
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return Default(), err
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = Default().PageSize
	}
	return cfg, nil
}

// EnsureDefault writes the commented default config if none exists and
// returns its path.
func EnsureDefault() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(DefaultConfigToml), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
