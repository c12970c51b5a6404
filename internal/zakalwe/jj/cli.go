package jj

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// CLI implements Engine by shelling out to jj.
type CLI struct {
	root      string
	workspace string
	runner    Runner
}

// Open locates the workspace containing dir and returns an engine
// rooted there.
func Open(ctx context.Context, dir string, r Runner) (*CLI, error) {
	if r == nil {
		r = ExecRunner{}
	}
	c := &CLI{root: dir, workspace: "default", runner: r}
	out, err := c.read(ctx, "workspace", "root")
	if err != nil {
		return nil, err
	}
	if root := strings.TrimSpace(out); root != "" {
		c.root = root
	}
	if name, err := c.workspaceName(ctx); err == nil && name != "" {
		c.workspace = name
	}
	return c, nil
}

func (c *CLI) Root() string { return c.root }

func (c *CLI) workspaceName(ctx context.Context) (string, error) {
	out, err := c.read(ctx, "workspace", "list")
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(out, "\n")
	name, _, ok := strings.Cut(line, ":")
	if !ok {
		return "", fmt.Errorf("unexpected workspace list output: %q", line)
	}
	return strings.TrimSpace(name), nil
}

// exec runs a mutating subcommand. jj snapshots the working copy as a
// side effect, which is wanted here and unwanted for reads.
func (c *CLI) exec(ctx context.Context, args ...string) (string, error) {
	return c.run(ctx, append([]string{"--no-pager", "--color", "never"}, args...), args)
}

// read runs a query without touching the working copy, so reloads never
// create operations of their own.
func (c *CLI) read(ctx context.Context, args ...string) (string, error) {
	global := []string{"--no-pager", "--color", "never", "--ignore-working-copy"}
	return c.run(ctx, append(global, args...), args)
}

func (c *CLI) run(ctx context.Context, argv, args []string) (string, error) {
	stdout, stderr, err := c.runner.Run(ctx, c.root, argv...)
	if err != nil {
		msg := strings.TrimSpace(stderr)
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("jj %s failed: %s", verb(args), msg)
	}
	return stdout, nil
}

// verb names the subcommand for error messages, keeping two-word forms
// like "git push" and "bookmark set" intact.
func verb(args []string) string {
	if len(args) == 0 {
		return "command"
	}
	switch args[0] {
	case "git", "bookmark", "op", "workspace":
		if len(args) > 1 {
			return args[0] + " " + args[1]
		}
	}
	return args[0]
}

var revisionIDPattern = regexp.MustCompile(`^[0-9a-zA-Z]{1,64}$`)

func validateRevisionID(id string) error {
	if !revisionIDPattern.MatchString(id) {
		return fmt.Errorf("invalid revision id: %q", id)
	}
	return nil
}

var bookmarkPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._/-]*$`)

func validateBookmark(name string) error {
	if !bookmarkPattern.MatchString(name) {
		return fmt.Errorf("invalid bookmark name: %q", name)
	}
	return nil
}

// validPath rejects arguments that could escape the workspace or be
// parsed as flags.
func validPath(path string) bool {
	return path != "" && !strings.HasPrefix(path, "-") && !strings.Contains(path, "..")
}
