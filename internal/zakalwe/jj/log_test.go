package jj

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mistakeknot/zakalwe/internal/zakalwe/domain"
)

type fakeRunner struct {
	calls   [][]string
	respond func(args []string) (string, string, error)
}

func (f *fakeRunner) Run(ctx context.Context, dir string, args ...string) (string, string, error) {
	f.calls = append(f.calls, args)
	if f.respond == nil {
		return "", "", nil
	}
	return f.respond(args)
}

// subcommand skips the global flags the engine prepends.
func subcommand(args []string) string {
	for _, a := range args {
		switch a {
		case "--no-pager", "--color", "never", "--ignore-working-copy":
			continue
		}
		return a
	}
	return ""
}

func record(fields ...string) string {
	return strings.Join(fields, "\x1f") + "\x1e"
}

func testCLI(r Runner) *CLI {
	return &CLI{root: "/work/repo", workspace: "default", runner: r}
}

func noConflicts(args []string) (string, string, bool) {
	if subcommand(args) == "resolve" {
		return "", "error: No conflicts found at this revision", true
	}
	return "", "", false
}

func TestLoadParsesLog(t *testing.T) {
	f := &fakeRunner{}
	f.respond = func(args []string) (string, string, error) {
		if out, errOut, ok := noConflicts(args); ok {
			return out, errOut, errors.New("exit status 2")
		}
		switch subcommand(args) {
		case "log":
			return record(
				"c1commit", "c1commit", "zkwqpmlo", "c0commit", "dev@example.com",
				"2026-08-20 11:42", "main,feature", "1", "0", "0", "feat: add lanes\n\nbody\n",
			) + record(
				"c0commit", "c0commit", "yxwvutsr", "", "dev@example.com",
				"2026-08-19 09:00", "", "0", "1", "0", "init\n",
			), "", nil
		case "op":
			return "f00dfeedabcd1234\n", "", nil
		case "diff":
			return "M main.go\nA docs/new.md\n", "", nil
		}
		return "", "", nil
	}

	st, err := testCLI(f).Load(context.Background(), "", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Revisions) != 2 {
		t.Fatalf("expected 2 revisions, got %d", len(st.Revisions))
	}
	top := st.Revisions[0]
	if top.ID != "c1commit" || top.ChangeID != "zkwqpmlo" {
		t.Fatalf("unexpected ids: %+v", top)
	}
	if top.Description != "feat: add lanes\n\nbody" {
		t.Fatalf("description not preserved: %q", top.Description)
	}
	if len(top.Parents) != 1 || top.Parents[0].ID != "c0commit" || top.Parents[0].Elided {
		t.Fatalf("unexpected parents: %+v", top.Parents)
	}
	if len(top.Bookmarks) != 2 || top.Bookmarks[0] != "main" {
		t.Fatalf("unexpected bookmarks: %v", top.Bookmarks)
	}
	if !top.WorkingCopy || top.Immutable {
		t.Fatalf("flags misparsed: %+v", top)
	}
	if !st.Revisions[1].Immutable {
		t.Fatal("expected bottom revision immutable")
	}
	if st.WorkingCopy != "c1commit" {
		t.Fatalf("working copy = %q", st.WorkingCopy)
	}
	if st.OperationID != "f00dfeedabcd1234" {
		t.Fatalf("operation id = %q", st.OperationID)
	}
	if st.RepoName != "repo" || st.WorkspaceID != "default" {
		t.Fatalf("identity fields: %+v", st)
	}
	if len(st.Files) != 2 || st.Files[0].Status != domain.StatusModified || st.Files[1].Status != domain.StatusAdded {
		t.Fatalf("unexpected files: %+v", st.Files)
	}
	if st.HasMore {
		t.Fatal("unexpected HasMore")
	}
}

func TestLoadHasMoreTrimsToLimit(t *testing.T) {
	f := &fakeRunner{}
	f.respond = func(args []string) (string, string, error) {
		if out, errOut, ok := noConflicts(args); ok {
			return out, errOut, errors.New("exit status 2")
		}
		switch subcommand(args) {
		case "log":
			var sawLimit bool
			for i, a := range args {
				if a == "-n" && i+1 < len(args) && args[i+1] == "2" {
					sawLimit = true
				}
			}
			if !sawLimit {
				t.Fatalf("expected -n 2, got %v", args)
			}
			return record("c1", "c1", "z", "c0", "a@b", "2026-01-01 00:00", "", "0", "0", "0", "one") +
				record("c0", "c0", "y", "", "a@b", "2026-01-01 00:00", "", "0", "0", "0", "two"), "", nil
		case "op":
			return "op1", "", nil
		}
		return "", "", nil
	}

	st, err := testCLI(f).Load(context.Background(), "", 1)
	if err != nil {
		t.Fatal(err)
	}
	if !st.HasMore {
		t.Fatal("expected HasMore")
	}
	if len(st.Revisions) != 1 || st.Revisions[0].ID != "c1" {
		t.Fatalf("expected trimmed page, got %+v", st.Revisions)
	}
}

func TestLoadMarksConflictedFiles(t *testing.T) {
	f := &fakeRunner{}
	f.respond = func(args []string) (string, string, error) {
		switch subcommand(args) {
		case "log":
			return record("c0", "c0", "z", "", "a@b", "2026-01-01 00:00", "", "1", "0", "1", "wip"), "", nil
		case "op":
			return "op1", "", nil
		case "diff":
			return "M main.go\n", "", nil
		case "resolve":
			return "main.go    2-sided conflict\nlib/util.go    2-sided conflict\n", "", nil
		}
		return "", "", nil
	}

	st, err := testCLI(f).Load(context.Background(), "", 10)
	if err != nil {
		t.Fatal(err)
	}
	if !st.HasConflicts() {
		t.Fatal("expected conflicts")
	}
	paths := st.ConflictedPaths()
	if len(paths) != 2 || paths[0] != "main.go" || paths[1] != "lib/util.go" {
		t.Fatalf("unexpected conflicted paths: %v", paths)
	}
}

func TestLoadRewritesHiddenParents(t *testing.T) {
	f := &fakeRunner{}
	var headQueries int
	f.respond = func(args []string) (string, string, error) {
		if out, errOut, ok := noConflicts(args); ok {
			return out, errOut, errors.New("exit status 2")
		}
		switch subcommand(args) {
		case "log":
			for i, a := range args {
				if a == "-r" && strings.HasPrefix(args[i+1], "heads(") {
					headQueries++
					if args[i+1] != "heads(::hidden1 & (mine()))" {
						t.Fatalf("unexpected ancestor query: %q", args[i+1])
					}
					return "c0\n", "", nil
				}
			}
			return record("c2", "c2", "z", "hidden1", "a@b", "2026-01-01 00:00", "", "0", "0", "0", "top") +
				record("c1", "c1", "y", "hidden1", "a@b", "2026-01-01 00:00", "", "0", "0", "0", "mid") +
				record("c0", "c0", "x", "", "a@b", "2026-01-01 00:00", "", "0", "0", "0", "base"), "", nil
		case "op":
			return "op1", "", nil
		}
		return "", "", nil
	}

	st, err := testCLI(f).Load(context.Background(), "mine()", 10)
	if err != nil {
		t.Fatal(err)
	}
	for _, i := range []int{0, 1} {
		p := st.Revisions[i].Parents
		if len(p) != 1 || p[0].ID != "c0" || !p[0].Elided {
			t.Fatalf("row %d parents not rewritten: %+v", i, p)
		}
	}
	if headQueries != 1 {
		t.Fatalf("expected one cached ancestor query, got %d", headQueries)
	}
}

func TestLoadKeepsPageBoundaryParent(t *testing.T) {
	f := &fakeRunner{}
	f.respond = func(args []string) (string, string, error) {
		if out, errOut, ok := noConflicts(args); ok {
			return out, errOut, errors.New("exit status 2")
		}
		switch subcommand(args) {
		case "log":
			for i, a := range args {
				if a == "-r" && strings.HasPrefix(args[i+1], "heads(") {
					// The parent is in the revset, just beyond the page.
					return "below1\n", "", nil
				}
			}
			return record("c1", "c1", "z", "below1", "a@b", "2026-01-01 00:00", "", "0", "0", "0", "top"), "", nil
		case "op":
			return "op1", "", nil
		}
		return "", "", nil
	}

	st, err := testCLI(f).Load(context.Background(), "mine()", 10)
	if err != nil {
		t.Fatal(err)
	}
	p := st.Revisions[0].Parents
	if len(p) != 1 || p[0].ID != "below1" || p[0].Elided {
		t.Fatalf("boundary parent should stay as-is: %+v", p)
	}
}

func TestLoadSurfacesRevsetError(t *testing.T) {
	f := &fakeRunner{}
	f.respond = func(args []string) (string, string, error) {
		if subcommand(args) == "log" {
			return "", `Error: Failed to parse revset: Syntax error`, errors.New("exit status 1")
		}
		return "", "", nil
	}

	_, err := testCLI(f).Load(context.Background(), "mine(", 10)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "jj log failed") ||
		!strings.Contains(err.Error(), "Failed to parse revset") {
		t.Fatalf("stderr not surfaced: %v", err)
	}
}

func TestParseLogRejectsShortRecords(t *testing.T) {
	if _, err := parseLog("only\x1ffour\x1ffields\x1fhere\x1e"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParseSummarySkipsSuspiciousPaths(t *testing.T) {
	files := parseSummary("M ok.go\nM ../escape.go\nM -flag.go\nQ unknown.go\n")
	if len(files) != 1 || files[0].Path != "ok.go" {
		t.Fatalf("unexpected files: %+v", files)
	}
}
