// Package jj drives a Jujutsu repository through the jj command line.
// Reads go through log templates that emit unit-separated records;
// mutations shell out to the matching subcommand and surface trimmed
// stderr so callers can classify the failure.
package jj

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/mistakeknot/zakalwe/internal/zakalwe/domain"
)

// Engine is the full surface the UI needs from a repository backend.
type Engine interface {
	// Load returns a consistent snapshot of the visible log. revset may
	// be empty for the unfiltered view; limit bounds the page size.
	Load(ctx context.Context, revset string, limit int) (*domain.RepoStatus, error)
	// Diff renders one revision's changes as displayable text.
	Diff(ctx context.Context, revisionID string) (string, error)

	Describe(ctx context.Context, revisionID, message string) error
	Edit(ctx context.Context, revisionID string) error
	NewChild(ctx context.Context, revisionID string) error
	Commit(ctx context.Context, message string) error
	Snapshot(ctx context.Context) error
	Abandon(ctx context.Context, revisionID string) error
	Squash(ctx context.Context, revisionID string) error
	SetBookmark(ctx context.Context, name, revisionID string) error
	DeleteBookmark(ctx context.Context, name string) error
	Undo(ctx context.Context) error
	Redo(ctx context.Context) error
	Fetch(ctx context.Context) error
	Push(ctx context.Context) error

	// ResolveCmd and SplitCmd build invocations that take over the
	// terminal while the UI is suspended.
	ResolveCmd(path string) *exec.Cmd
	SplitCmd(revisionID string) *exec.Cmd

	// Root is the absolute workspace root.
	Root() string
}

// CheckVersion verifies the jj binary is reachable and returns its
// version line.
func CheckVersion(ctx context.Context, r Runner) (string, error) {
	if r == nil {
		r = ExecRunner{}
	}
	out, _, err := r.Run(ctx, "", "--version")
	if err != nil {
		return "", fmt.Errorf("cannot run 'jj --version'; is jj installed and on your PATH?")
	}
	return strings.TrimSpace(out), nil
}
