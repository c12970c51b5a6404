package tui

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mistakeknot/zakalwe/internal/zakalwe/config"
)

// SessionState is the UI state carried across runs: the active filter,
// the cursor position, and whether the diff pane was open. Unlike the
// config it is written by the program, not the user.
type SessionState struct {
	Revset     string `yaml:"revset,omitempty"`
	SelectedID string `yaml:"selected_id,omitempty"`
	ShowDiff   bool   `yaml:"show_diff,omitempty"`
}

// SessionPath returns the session file location under the config dir.
func SessionPath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.yaml"), nil
}

// LoadSession reads the previous session. A missing or unreadable file
// is a fresh session, not an error.
func LoadSession(path string) SessionState {
	var st SessionState
	data, err := os.ReadFile(path)
	if err != nil {
		return st
	}
	if err := yaml.Unmarshal(data, &st); err != nil {
		return SessionState{}
	}
	return st
}

// SaveSession writes the session file, creating the directory if
// needed.
func SaveSession(path string, st SessionState) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(st)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
