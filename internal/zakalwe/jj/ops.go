package jj

import "context"

func (c *CLI) Describe(ctx context.Context, revisionID, message string) error {
	if err := validateRevisionID(revisionID); err != nil {
		return err
	}
	_, err := c.exec(ctx, "describe", revisionID, "-m", message)
	return err
}

func (c *CLI) Edit(ctx context.Context, revisionID string) error {
	if err := validateRevisionID(revisionID); err != nil {
		return err
	}
	_, err := c.exec(ctx, "edit", revisionID)
	return err
}

func (c *CLI) NewChild(ctx context.Context, revisionID string) error {
	if err := validateRevisionID(revisionID); err != nil {
		return err
	}
	_, err := c.exec(ctx, "new", revisionID)
	return err
}

func (c *CLI) Commit(ctx context.Context, message string) error {
	_, err := c.exec(ctx, "commit", "-m", message)
	return err
}

// Snapshot records pending working-copy changes. jj does this as a side
// effect of any non-readonly command; status is the cheapest one.
func (c *CLI) Snapshot(ctx context.Context) error {
	_, err := c.exec(ctx, "status")
	return err
}

func (c *CLI) Abandon(ctx context.Context, revisionID string) error {
	if err := validateRevisionID(revisionID); err != nil {
		return err
	}
	_, err := c.exec(ctx, "abandon", "-r", revisionID)
	return err
}

func (c *CLI) Squash(ctx context.Context, revisionID string) error {
	if err := validateRevisionID(revisionID); err != nil {
		return err
	}
	_, err := c.exec(ctx, "squash", "-r", revisionID)
	return err
}

func (c *CLI) SetBookmark(ctx context.Context, name, revisionID string) error {
	if err := validateBookmark(name); err != nil {
		return err
	}
	if err := validateRevisionID(revisionID); err != nil {
		return err
	}
	_, err := c.exec(ctx, "bookmark", "set", name, "-r", revisionID)
	return err
}

func (c *CLI) DeleteBookmark(ctx context.Context, name string) error {
	if err := validateBookmark(name); err != nil {
		return err
	}
	_, err := c.exec(ctx, "bookmark", "delete", name)
	return err
}

func (c *CLI) Undo(ctx context.Context) error {
	_, err := c.exec(ctx, "undo")
	return err
}

func (c *CLI) Redo(ctx context.Context) error {
	_, err := c.exec(ctx, "redo")
	return err
}

func (c *CLI) Fetch(ctx context.Context) error {
	_, err := c.exec(ctx, "git", "fetch")
	return err
}

func (c *CLI) Push(ctx context.Context) error {
	_, err := c.exec(ctx, "git", "push")
	return err
}
