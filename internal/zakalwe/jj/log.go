package jj

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mistakeknot/zakalwe/internal/zakalwe/domain"
)

const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
	logFields = 11
)

// logTemplate emits one record per revision. The description comes
// last so embedded newlines cannot split a record, and separators are
// control bytes that never occur in ids, emails, or bookmark names.
const logTemplate = `commit_id ++ "\x1f" ++` +
	` commit_id.short(8) ++ "\x1f" ++` +
	` change_id.short(8) ++ "\x1f" ++` +
	` parents.map(|p| p.commit_id()).join(",") ++ "\x1f" ++` +
	` author.email() ++ "\x1f" ++` +
	` author.timestamp().local().format("%Y-%m-%d %H:%M") ++ "\x1f" ++` +
	` bookmarks.join(",") ++ "\x1f" ++` +
	` if(current_working_copy, "1", "0") ++ "\x1f" ++` +
	` if(immutable, "1", "0") ++ "\x1f" ++` +
	` if(conflict, "1", "0") ++ "\x1f" ++` +
	` description ++ "\x1e"`

const defaultPageSize = 100

// Load queries one page of the log plus working-copy state and returns
// them as a single snapshot. It asks for one row beyond the limit to
// learn whether deeper history exists.
func (c *CLI) Load(ctx context.Context, revset string, limit int) (*domain.RepoStatus, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	expr := revset
	if expr == "" {
		expr = "all()"
	}
	out, err := c.read(ctx, "log", "-r", expr, "--no-graph",
		"-n", strconv.Itoa(limit+1), "-T", logTemplate)
	if err != nil {
		return nil, err
	}
	revs, err := parseLog(out)
	if err != nil {
		return nil, err
	}
	hasMore := len(revs) > limit
	if hasMore {
		revs = revs[:limit]
	}
	if revset != "" {
		c.resolveHiddenParents(ctx, revset, revs)
	}

	opID, err := c.operationID(ctx)
	if err != nil {
		return nil, err
	}
	files, err := c.workingCopyFiles(ctx)
	if err != nil {
		return nil, err
	}

	status := &domain.RepoStatus{
		RepoName:    filepath.Base(c.root),
		OperationID: opID,
		WorkspaceID: c.workspace,
		Revisions:   revs,
		Files:       files,
		HasMore:     hasMore,
	}
	for _, r := range revs {
		if r.WorkingCopy {
			status.WorkingCopy = r.ID
			break
		}
	}
	return status, nil
}

func parseLog(out string) ([]domain.Revision, error) {
	var revs []domain.Revision
	for _, record := range strings.Split(out, recordSep) {
		if strings.TrimSpace(record) == "" {
			continue
		}
		fields := strings.SplitN(record, fieldSep, logFields)
		if len(fields) != logFields {
			return nil, fmt.Errorf("malformed log record (%d fields)", len(fields))
		}
		rev := domain.Revision{
			ID:          strings.TrimSpace(fields[0]),
			ShortID:     fields[1],
			ChangeID:    fields[2],
			Author:      fields[4],
			Timestamp:   fields[5],
			WorkingCopy: fields[7] == "1",
			Immutable:   fields[8] == "1",
			Conflict:    fields[9] == "1",
			Description: strings.TrimRight(fields[10], "\n"),
		}
		if rev.ID == "" {
			return nil, fmt.Errorf("malformed log record: empty commit id")
		}
		for _, p := range strings.Split(fields[3], ",") {
			if p = strings.TrimSpace(p); p != "" {
				rev.Parents = append(rev.Parents, domain.Parent{ID: p})
			}
		}
		for _, b := range strings.Split(fields[6], ",") {
			if b = strings.TrimSpace(b); b != "" {
				rev.Bookmarks = append(rev.Bookmarks, b)
			}
		}
		revs = append(revs, rev)
	}
	return revs, nil
}

// resolveHiddenParents rewrites parents the filter excluded to their
// nearest visible ancestors, marking the rewritten references so the
// graph can draw them as elided. Parents that are merely beyond the
// page boundary resolve to themselves and stay untouched; resolution
// failures leave the reference as-is and the lane ends.
func (c *CLI) resolveHiddenParents(ctx context.Context, revset string, revs []domain.Revision) {
	visible := make(map[string]bool, len(revs))
	for _, r := range revs {
		visible[r.ID] = true
	}
	cache := make(map[string][]string)
	for i := range revs {
		rewritten := make([]domain.Parent, 0, len(revs[i].Parents))
		changed := false
		for _, p := range revs[i].Parents {
			if visible[p.ID] {
				rewritten = append(rewritten, p)
				continue
			}
			anc, ok := cache[p.ID]
			if !ok {
				anc = c.visibleAncestors(ctx, revset, p.ID)
				cache[p.ID] = anc
			}
			if len(anc) == 0 || (len(anc) == 1 && anc[0] == p.ID) {
				rewritten = append(rewritten, p)
				continue
			}
			changed = true
			for _, id := range anc {
				rewritten = append(rewritten, domain.Parent{ID: id, Elided: true})
			}
		}
		if changed {
			revs[i].Parents = dedupeParents(rewritten)
		}
	}
}

func (c *CLI) visibleAncestors(ctx context.Context, revset, id string) []string {
	if validateRevisionID(id) != nil {
		return nil
	}
	expr := fmt.Sprintf("heads(::%s & (%s))", id, revset)
	out, err := c.read(ctx, "log", "-r", expr, "--no-graph", "-n", "8",
		"-T", `commit_id ++ "\n"`)
	if err != nil {
		slog.Warn("ancestor resolution failed", "revision", id, "error", err)
		return nil
	}
	var ids []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			ids = append(ids, line)
		}
	}
	return ids
}

// dedupeParents keeps the first reference to each id. Two hidden
// parents can resolve to the same visible ancestor.
func dedupeParents(parents []domain.Parent) []domain.Parent {
	seen := make(map[string]bool, len(parents))
	out := parents[:0]
	for _, p := range parents {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}

// workingCopyFiles lists changed paths in the working copy and marks
// the conflicted ones.
func (c *CLI) workingCopyFiles(ctx context.Context) ([]domain.FileChange, error) {
	out, err := c.read(ctx, "diff", "--summary")
	if err != nil {
		return nil, err
	}
	return c.markConflicts(ctx, parseSummary(out)), nil
}

func parseSummary(out string) []domain.FileChange {
	var files []domain.FileChange
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if len(line) < 3 {
			continue
		}
		path := strings.TrimSpace(line[2:])
		if !validPath(path) {
			continue
		}
		var status domain.FileStatus
		switch line[0] {
		case 'M':
			status = domain.StatusModified
		case 'A':
			status = domain.StatusAdded
		case 'D':
			status = domain.StatusDeleted
		case 'R', 'C':
			status = domain.StatusModified
		default:
			continue
		}
		files = append(files, domain.FileChange{Path: path, Status: status})
	}
	return files
}

// markConflicts overlays `jj resolve --list` onto the file list. The
// command exits nonzero when nothing is conflicted, so its failure
// means a clean working copy.
func (c *CLI) markConflicts(ctx context.Context, files []domain.FileChange) []domain.FileChange {
	out, _, err := c.runner.Run(ctx, c.root,
		"--no-pager", "--color", "never", "--ignore-working-copy", "resolve", "--list")
	if err != nil {
		return files
	}
	for _, line := range strings.Split(out, "\n") {
		parts := strings.Fields(line)
		if len(parts) == 0 || !validPath(parts[0]) {
			continue
		}
		path := parts[0]
		found := false
		for i := range files {
			if files[i].Path == path {
				files[i].Status = domain.StatusConflicted
				found = true
				break
			}
		}
		if !found {
			files = append(files, domain.FileChange{Path: path, Status: domain.StatusConflicted})
		}
	}
	return files
}

func (c *CLI) operationID(ctx context.Context) (string, error) {
	out, err := c.read(ctx, "op", "log", "-n", "1", "--no-graph", "-T", "id.short(16)")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Diff renders one revision's description and changes.
func (c *CLI) Diff(ctx context.Context, revisionID string) (string, error) {
	if err := validateRevisionID(revisionID); err != nil {
		return "", err
	}
	return c.read(ctx, "show", revisionID, "--git")
}
