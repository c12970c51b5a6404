package app

import (
	"reflect"
	"testing"

	"github.com/mistakeknot/zakalwe/internal/zakalwe/domain"
	"github.com/mistakeknot/zakalwe/internal/zakalwe/recovery"
)

func conflicted(t *testing.T) AppState {
	t.Helper()
	s := loaded(t, 3)
	repo := *s.Repo
	repo.Files = []domain.FileChange{
		{Path: "main.go", Status: domain.StatusConflicted},
		{Path: "go.mod", Status: domain.StatusModified},
	}
	s.Repo = &repo
	return s
}

func TestMutatingIntentsBlockedByConflicts(t *testing.T) {
	intents := []Action{
		DescribeIntent{Message: "x"},
		EditIntent{},
		NewChildIntent{},
		CommitIntent{Message: "x"},
		SnapshotIntent{},
		AbandonIntent{Confirmed: true},
		SquashIntent{Confirmed: true},
		BookmarkSetIntent{Name: "feat"},
		BookmarkDeleteIntent{Name: "feat", Confirmed: true},
		UndoIntent{},
		RedoIntent{},
		FetchIntent{},
		PushIntent{},
	}
	base := conflicted(t)
	for _, intent := range intents {
		s, cmds := Reduce(base, intent)
		if len(cmds) != 0 {
			t.Fatalf("%T emitted commands over conflicts: %v", intent, cmds)
		}
		if s.Err == nil || s.Err.Kind != recovery.KindConflict {
			t.Fatalf("%T: expected conflict rejection, got %+v", intent, s.Err)
		}
		if s.Busy() {
			t.Fatalf("%T: rejection must not set the pending flag", intent)
		}
	}
}

func TestResolveAllowedOverConflicts(t *testing.T) {
	s := conflicted(t)
	s, cmds := Reduce(s, ResolveIntent{})
	cmd := singleCommand(t, cmds).(RunInteractive)
	if cmd.Kind != InteractiveResolve || cmd.Target != "main.go" {
		t.Fatalf("resolve = %+v", cmd)
	}
	if !cmd.Exclusive() {
		t.Fatalf("interactive commands are exclusive")
	}
	if s.Mode != ModeSuspended {
		t.Fatalf("mode = %v, want suspended", s.Mode)
	}
}

func TestResolveWithoutConflicts(t *testing.T) {
	s := loaded(t, 3)
	s, cmds := Reduce(s, ResolveIntent{})
	if len(cmds) != 0 {
		t.Fatalf("resolve without conflicts emitted %v", cmds)
	}
	if s.Err == nil || s.Err.Severity != recovery.SeverityInfo {
		t.Fatalf("expected informational notice, got %+v", s.Err)
	}
}

func TestSecondMutatingIntentRejected(t *testing.T) {
	s := loaded(t, 3)
	s, cmds := Reduce(s, DescribeIntent{Message: "first"})
	if len(cmds) != 1 {
		t.Fatalf("first intent should emit one command")
	}

	s, cmds = Reduce(s, NewChildIntent{})
	if len(cmds) != 0 {
		t.Fatalf("second intent ran concurrently: %v", cmds)
	}
	if s.Err == nil {
		t.Fatalf("second intent should be rejected with an error")
	}
	if s.PendingOpName != "describe" {
		t.Fatalf("pending op overwritten: %q", s.PendingOpName)
	}
}

func TestInteractiveBlockedWhileBusy(t *testing.T) {
	s := conflicted(t)
	s, _ = Reduce(s, ResolveIntent{})
	s.Mode = ModeNormal // simulate an odd key path; exclusivity must still hold
	s, cmds := Reduce(s, SplitIntent{})
	if len(cmds) != 0 || s.Err == nil {
		t.Fatalf("split must be rejected while resolve is pending")
	}
}

func TestSplitSuspendsOnSelection(t *testing.T) {
	s := loaded(t, 3)
	s, _ = Reduce(s, MoveSelection{Delta: 1})
	s, cmds := Reduce(s, SplitIntent{})
	cmd := singleCommand(t, cmds).(RunInteractive)
	if cmd.Kind != InteractiveSplit || cmd.Target != "c1" {
		t.Fatalf("split = %+v", cmd)
	}
	if s.Mode != ModeSuspended || !s.Busy() {
		t.Fatalf("split should suspend and mark pending")
	}
}

func TestBookmarkSetTargetsSelection(t *testing.T) {
	s := loaded(t, 3)
	s, _ = Reduce(s, MoveSelection{Delta: 2})
	_, cmds := Reduce(s, BookmarkSetIntent{Name: "release"})
	op := singleCommand(t, cmds).(RunOp)
	if op.Op != OpBookmarkSet {
		t.Fatalf("op = %v", op.Op)
	}
	if want := []string{"release", "c0"}; !reflect.DeepEqual(op.Args, want) {
		t.Fatalf("args = %v", op.Args)
	}
}

func TestBookmarkDeleteNeedsConfirm(t *testing.T) {
	s := loaded(t, 3)
	s, cmds := Reduce(s, BookmarkDeleteIntent{Name: "old"})
	if len(cmds) != 0 || s.Mode != ModeConfirm {
		t.Fatalf("delete should ask first")
	}
	_, cmds = Reduce(s, ConfirmAccept{})
	op := singleCommand(t, cmds).(RunOp)
	if op.Op != OpBookmarkDelete || op.Args[0] != "old" {
		t.Fatalf("confirmed delete = %+v", op)
	}
}

func TestPushWithoutBookmarksWarns(t *testing.T) {
	s := loaded(t, 3)
	s, cmds := Reduce(s, PushIntent{})
	if len(cmds) != 0 {
		t.Fatalf("push emitted %v", cmds)
	}
	if s.Err == nil || s.Err.Severity != recovery.SeverityWarning {
		t.Fatalf("expected warning, got %+v", s.Err)
	}
}

func TestPushWithBookmark(t *testing.T) {
	s := loaded(t, 3)
	repo := *s.Repo
	revs := append([]domain.Revision(nil), repo.Revisions...)
	revs[1].Bookmarks = []string{"main"}
	repo.Revisions = revs
	s.Repo = &repo

	_, cmds := Reduce(s, PushIntent{})
	op := singleCommand(t, cmds).(RunOp)
	if op.Op != OpPush {
		t.Fatalf("op = %v", op.Op)
	}
}

func TestIntentWithoutSelection(t *testing.T) {
	s := New(DefaultPageSize)
	s, cmds := Reduce(s, EditIntent{})
	if len(cmds) != 0 || s.Err == nil {
		t.Fatalf("edit without a repo should be rejected")
	}
}

func TestSquashRootRejected(t *testing.T) {
	s := loaded(t, 3)
	s, _ = Reduce(s, SelectLast{})
	s, cmds := Reduce(s, SquashIntent{Confirmed: true})
	if len(cmds) != 0 || s.Err == nil {
		t.Fatalf("squashing the root must be rejected")
	}
}
