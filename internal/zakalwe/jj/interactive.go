package jj

import "os/exec"

// ResolveCmd builds the invocation that opens the external merge tool.
// The command inherits the terminal, so it keeps color and paging.
// An invalid path falls back to letting jj pick the first conflict.
func (c *CLI) ResolveCmd(path string) *exec.Cmd {
	args := []string{"resolve"}
	if validPath(path) {
		args = append(args, path)
	}
	cmd := exec.Command("jj", args...)
	cmd.Dir = c.root
	return cmd
}

// SplitCmd builds the interactive split invocation for one revision.
func (c *CLI) SplitCmd(revisionID string) *exec.Cmd {
	cmd := exec.Command("jj", "split", "-r", revisionID, "-i")
	cmd.Dir = c.root
	return cmd
}
