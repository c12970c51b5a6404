package app

import (
	"fmt"

	"github.com/mistakeknot/zakalwe/internal/zakalwe/domain"
	"github.com/mistakeknot/zakalwe/internal/zakalwe/recovery"
)

// reduceVcs owns the pending-operation flag and every VCS intent. The
// safety guards run before any command is stamped: nothing mutating is
// emitted while another exclusive command is outstanding or while the
// working copy has unresolved conflicts. Interactive intents are exempt
// from the conflict gate (resolve exists to fix conflicts) but not from
// exclusivity.
func reduceVcs(s AppState, a Action) (AppState, []Command, bool) {
	name, interactive, ok := intentInfo(a)
	if !ok {
		return s, nil, false
	}
	if s.Mode != ModeNormal {
		return s, nil, true
	}

	if s.Busy() {
		s.Err = &ErrorState{
			Message:     fmt.Sprintf("Cannot %s: %q is still running.", name, s.PendingOpName),
			Kind:        recovery.KindGeneric,
			Severity:    recovery.SeverityError,
			Suggestions: []string{"Wait for the running operation, or press Esc to cancel it"},
		}
		return s, nil, true
	}
	if !interactive && s.Repo.HasConflicts() {
		s.Err = &ErrorState{
			Message:     fmt.Sprintf("Cannot %s: there are unresolved merge conflicts.", name),
			Kind:        recovery.KindConflict,
			Severity:    recovery.SeverityError,
			Suggestions: []string{"Resolve conflicts using 'm' (or 'jj resolve') first."},
		}
		return s, nil, true
	}

	switch a := a.(type) {
	case DescribeIntent:
		sel := s.SelectedRevision()
		if sel == nil {
			return noSelection(s)
		}
		cmd := s.runOp(OpDescribe, name, sel.ID, a.Message)
		return s, []Command{cmd}, true

	case EditIntent:
		sel := s.SelectedRevision()
		if sel == nil {
			return noSelection(s)
		}
		cmd := s.runOp(OpEdit, name, sel.ID)
		return s, []Command{cmd}, true

	case NewChildIntent:
		sel := s.SelectedRevision()
		if sel == nil {
			return noSelection(s)
		}
		cmd := s.runOp(OpNewChild, name, sel.ID)
		return s, []Command{cmd}, true

	case CommitIntent:
		cmd := s.runOp(OpCommit, name, a.Message)
		return s, []Command{cmd}, true

	case SnapshotIntent:
		cmd := s.runOp(OpSnapshot, name)
		return s, []Command{cmd}, true

	case AbandonIntent:
		sel := s.SelectedRevision()
		if sel == nil {
			return noSelection(s)
		}
		if !a.Confirmed {
			s.Mode = ModeConfirm
			s.Confirm = &Confirm{
				Message: fmt.Sprintf("Abandon %s?", revLabel(sel)),
				Action:  AbandonIntent{Confirmed: true},
			}
			return s, nil, true
		}
		cmd := s.runOp(OpAbandon, name, sel.ID)
		return s, []Command{cmd}, true

	case SquashIntent:
		sel := s.SelectedRevision()
		if sel == nil {
			return noSelection(s)
		}
		if len(sel.Parents) == 0 {
			s.Err = &ErrorState{
				Message:  "Cannot squash: the root revision has no parent.",
				Severity: recovery.SeverityWarning,
			}
			return s, nil, true
		}
		if !a.Confirmed {
			s.Mode = ModeConfirm
			s.Confirm = &Confirm{
				Message: fmt.Sprintf("Squash %s into its parent?", revLabel(sel)),
				Action:  SquashIntent{Confirmed: true},
			}
			return s, nil, true
		}
		cmd := s.runOp(OpSquash, name, sel.ID)
		return s, []Command{cmd}, true

	case BookmarkSetIntent:
		sel := s.SelectedRevision()
		if sel == nil {
			return noSelection(s)
		}
		if a.Name == "" {
			return s, nil, true
		}
		cmd := s.runOp(OpBookmarkSet, name, a.Name, sel.ID)
		return s, []Command{cmd}, true

	case BookmarkDeleteIntent:
		if a.Name == "" {
			return s, nil, true
		}
		if !a.Confirmed {
			s.Mode = ModeConfirm
			s.Confirm = &Confirm{
				Message: fmt.Sprintf("Delete bookmark %q?", a.Name),
				Action:  BookmarkDeleteIntent{Name: a.Name, Confirmed: true},
			}
			return s, nil, true
		}
		cmd := s.runOp(OpBookmarkDelete, name, a.Name)
		return s, []Command{cmd}, true

	case UndoIntent:
		cmd := s.runOp(OpUndo, name)
		return s, []Command{cmd}, true
	case RedoIntent:
		cmd := s.runOp(OpRedo, name)
		return s, []Command{cmd}, true
	case FetchIntent:
		cmd := s.runOp(OpFetch, name)
		return s, []Command{cmd}, true

	case PushIntent:
		if !hasBookmarks(s) {
			s.Err = &ErrorState{
				Message:     "Nothing to push: no bookmarks in view.",
				Severity:    recovery.SeverityWarning,
				Suggestions: []string{"Set a bookmark on a revision first ('b')"},
			}
			return s, nil, true
		}
		cmd := s.runOp(OpPush, name)
		return s, []Command{cmd}, true

	case ResolveIntent:
		paths := s.Repo.ConflictedPaths()
		if len(paths) == 0 {
			s.Err = &ErrorState{
				Message:  "No conflicts to resolve.",
				Severity: recovery.SeverityInfo,
			}
			return s, nil, true
		}
		cmd := s.runInteractive(InteractiveResolve, name, paths[0])
		return s, []Command{cmd}, true

	case SplitIntent:
		sel := s.SelectedRevision()
		if sel == nil {
			return noSelection(s)
		}
		cmd := s.runInteractive(InteractiveSplit, name, sel.ID)
		return s, []Command{cmd}, true
	}
	return s, nil, false
}

func intentInfo(a Action) (name string, interactive, ok bool) {
	switch a.(type) {
	case DescribeIntent:
		return "describe", false, true
	case EditIntent:
		return "edit", false, true
	case NewChildIntent:
		return "new", false, true
	case CommitIntent:
		return "commit", false, true
	case SnapshotIntent:
		return "snapshot", false, true
	case AbandonIntent:
		return "abandon", false, true
	case SquashIntent:
		return "squash", false, true
	case BookmarkSetIntent:
		return "bookmark set", false, true
	case BookmarkDeleteIntent:
		return "bookmark delete", false, true
	case UndoIntent:
		return "undo", false, true
	case RedoIntent:
		return "redo", false, true
	case FetchIntent:
		return "fetch", false, true
	case PushIntent:
		return "push", false, true
	case ResolveIntent:
		return "resolve", true, true
	case SplitIntent:
		return "split", true, true
	}
	return "", false, false
}

func noSelection(s AppState) (AppState, []Command, bool) {
	s.Err = &ErrorState{Message: "No revision selected.", Severity: recovery.SeverityWarning}
	return s, nil, true
}

func revLabel(r *domain.Revision) string {
	if r.ShortID != "" {
		return r.ShortID
	}
	return r.ID
}

func hasBookmarks(s AppState) bool {
	if s.Repo == nil {
		return false
	}
	for _, r := range s.Repo.Revisions {
		if len(r.Bookmarks) > 0 {
			return true
		}
	}
	return false
}
