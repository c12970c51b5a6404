package app

import (
	"strings"

	"github.com/mistakeknot/zakalwe/internal/zakalwe/recovery"
)

// Reduce is the single pure state transition. It dispatches each action
// to the feature sub-reducer owning it, then handles completions, ticks,
// and mode transitions itself. Identical inputs always produce identical
// outputs: no clocks, randomness, or I/O in here.
func Reduce(s AppState, a Action) (AppState, []Command) {
	if next, cmds, handled := reduceNavigation(s, a); handled {
		return next, cmds
	}
	if next, cmds, handled := reduceVcs(s, a); handled {
		return next, cmds
	}
	if next, cmds, handled := reduceFilter(s, a); handled {
		return next, cmds
	}
	if next, cmds, handled := reduceErrors(s, a); handled {
		return next, cmds
	}

	switch a := a.(type) {
	case Start:
		s.Revset = a.Revset
		cmd := s.load(a.Revset, s.PageSize, a.Preserve)
		return s, []Command{cmd}
	case EnterInput:
		return enterInput(s, a.Kind)
	case SubmitInput:
		return submitInput(s, a.Text)
	case CancelInput:
		if s.Mode == ModeInput {
			s.Mode = ModeNormal
			s.Input = InputNone
			s.InputSeed = ""
		}
		return s, nil
	case ConfirmAccept:
		if s.Mode != ModeConfirm || s.Confirm == nil {
			return s, nil
		}
		follow := s.Confirm.Action
		s.Confirm = nil
		s.Mode = ModeNormal
		return Reduce(s, follow)
	case ConfirmCancel:
		if s.Mode == ModeConfirm {
			s.Confirm = nil
			s.Mode = ModeNormal
		}
		return s, nil

	case RepoLoaded:
		return repoLoaded(s, a)
	case DiffLoaded:
		if a.Seq != s.ActiveDiff {
			return s, nil
		}
		s.ActiveDiff = 0
		s.Diff = a.Text
		s.DiffFor = a.RevisionID
		return s, nil
	case OperationCompleted:
		return operationCompleted(s, a)

	case CancelPending:
		if s.PendingOp == 0 {
			return s, nil
		}
		s.CancelledOp = s.PendingOp
		s.PendingOp = 0
		s.PendingOpName = ""
		if s.Mode == ModeSuspended {
			s.Mode = ModeNormal
		}
		return s, nil

	case ExternalChange:
		if s.Busy() || s.Mode == ModeSuspended {
			return s, nil
		}
		cmd := s.reload()
		return s, []Command{cmd}
	case Refresh:
		cmd := s.reload()
		return s, []Command{cmd}
	case LoadMore:
		return loadMore(s)
	case Tick:
		return tick(s, a)
	}
	return s, nil
}

func enterInput(s AppState, kind InputKind) (AppState, []Command) {
	if s.Mode != ModeNormal {
		return s, nil
	}
	seed := ""
	switch kind {
	case InputDescribe:
		sel := s.SelectedRevision()
		if sel == nil {
			return s, nil
		}
		seed = sel.Description
	case InputCommitMessage:
		if s.Repo != nil {
			if idx := s.Repo.FindRevision(s.Repo.WorkingCopy); idx >= 0 {
				seed = s.Repo.Revisions[idx].Description
			}
		}
	case InputFilter:
		seed = s.Revset
	case InputBookmarkSet:
	default:
		return s, nil
	}
	s.Mode = ModeInput
	s.Input = kind
	s.InputSeed = seed
	return s, nil
}

func submitInput(s AppState, text string) (AppState, []Command) {
	if s.Mode != ModeInput {
		return s, nil
	}
	kind := s.Input
	s.Mode = ModeNormal
	s.Input = InputNone
	s.InputSeed = ""

	text = strings.TrimSpace(text)
	switch kind {
	case InputDescribe:
		if text == "" {
			return s, nil
		}
		return Reduce(s, DescribeIntent{Message: text})
	case InputCommitMessage:
		if text == "" {
			return s, nil
		}
		return Reduce(s, CommitIntent{Message: text})
	case InputBookmarkSet:
		if text == "" {
			return s, nil
		}
		return Reduce(s, BookmarkSetIntent{Name: text})
	case InputFilter:
		if text == "" {
			return Reduce(s, ClearFilter{})
		}
		return Reduce(s, ApplyFilter{Expr: text})
	}
	return s, nil
}

func repoLoaded(s AppState, a RepoLoaded) (AppState, []Command) {
	// Last request wins: anything but the newest load is stale.
	if a.Seq != s.ActiveLoad {
		return s, nil
	}
	s.ActiveLoad = 0
	s.Loading = false

	if a.Err != nil {
		s.Err = a.Err
		if next, cmds, reverted := revertFilter(s, a.Err); reverted {
			return next, cmds
		}
		return s, nil
	}

	status := a.Status
	s.Repo = &status
	s.Layout = a.Layout
	s.LayoutNote = a.LayoutNote

	switch {
	case a.Preserve != "":
		if idx := status.FindRevision(a.Preserve); idx >= 0 {
			s.Selected = idx
		} else {
			s.Selected = clampIndex(s.Selected, len(status.Revisions))
		}
	case len(status.Revisions) > 0:
		s.Selected = 0
	default:
		s.Selected = -1
	}

	var cmds []Command
	if sel := s.SelectedRevision(); sel != nil && sel.ID != s.DiffFor {
		cmds = append(cmds, s.loadDiff(sel.ID))
	}
	return s, cmds
}

func operationCompleted(s AppState, a OperationCompleted) (AppState, []Command) {
	if a.Seq != 0 && a.Seq == s.CancelledOp {
		s.CancelledOp = 0
		return s, nil
	}
	if a.Seq != s.PendingOp {
		return s, nil
	}
	s.PendingOp = 0
	s.PendingOpName = ""
	if s.Mode == ModeSuspended {
		s.Mode = ModeNormal
	}

	if a.Err != nil {
		s.Err = a.Err
		// The operation may have partially changed the repo before
		// failing.
		cmd := s.reload()
		return s, []Command{cmd}
	}

	s.Status = a.Name + " done"
	s.StatusUntil = a.At.Add(statusTTL)
	cmd := s.reload()
	return s, []Command{cmd}
}

func loadMore(s AppState) (AppState, []Command) {
	if s.Repo == nil || !s.Repo.HasMore || s.ActiveLoad != 0 || s.Busy() {
		return s, nil
	}
	preserve := ""
	if sel := s.SelectedRevision(); sel != nil {
		preserve = sel.ID
	}
	cmd := s.load(s.Revset, len(s.Repo.Revisions)+s.PageSize, preserve)
	return s, []Command{cmd}
}

func tick(s AppState, a Tick) (AppState, []Command) {
	if s.Status != "" && a.Now.After(s.StatusUntil) {
		s.Status = ""
	}
	if s.Err != nil && s.Err.Severity == recovery.SeverityWarning &&
		!s.Err.At.IsZero() && a.Now.After(s.Err.At.Add(warningTTL)) {
		s.Err = nil
	}

	// Pull more history when the cursor approaches the loaded bottom.
	if s.Repo != nil && s.Repo.HasMore && s.ActiveLoad == 0 && !s.Busy() &&
		s.Selected >= 0 && len(s.Repo.Revisions)-s.Selected <= autoLoadThreshold {
		return loadMore(s)
	}
	return s, nil
}
