package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// recentFilters is the on-disk shape of the revset history.
type recentFilters struct {
	Filters []string `toml:"filters"`
}

const recentFile = "recent_filters.toml"

// LoadRecentFilters returns the persisted revset history, newest first.
// Any failure yields an empty history; the file is a cache, not state
// worth failing over.
func LoadRecentFilters() []string {
	dir, err := Dir()
	if err != nil {
		return nil
	}
	raw, err := os.ReadFile(filepath.Join(dir, recentFile))
	if err != nil {
		return nil
	}
	var rf recentFilters
	if err := toml.Unmarshal(raw, &rf); err != nil {
		return nil
	}
	return rf.Filters
}

// SaveRecentFilters persists the revset history, creating the config
// directory on first use.
func SaveRecentFilters(filters []string) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(recentFilters{Filters: filters}); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, recentFile), buf.Bytes(), 0o644)
}
