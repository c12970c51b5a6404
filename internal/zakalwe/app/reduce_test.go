package app

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/mistakeknot/zakalwe/internal/zakalwe/domain"
	"github.com/mistakeknot/zakalwe/internal/zakalwe/graph"
	"github.com/mistakeknot/zakalwe/internal/zakalwe/recovery"
)

func linearStatus(n int) domain.RepoStatus {
	revs := make([]domain.Revision, 0, n)
	for i := n - 1; i >= 0; i-- {
		r := domain.Revision{ID: fmt.Sprintf("c%d", i), ShortID: fmt.Sprintf("c%d", i)}
		if i > 0 {
			r.Parents = []domain.Parent{{ID: fmt.Sprintf("c%d", i-1)}}
		}
		revs = append(revs, r)
	}
	return domain.RepoStatus{
		RepoName:    "demo",
		WorkingCopy: revs[0].ID,
		Revisions:   revs,
	}
}

// loaded returns a state with n linear revisions installed and the
// cursor on row 0.
func loaded(t *testing.T, n int) AppState {
	t.Helper()
	s := New(DefaultPageSize)
	s, _ = Reduce(s, Refresh{})
	status := linearStatus(n)
	layout, err := graph.Compute(status.Revisions)
	if err != nil {
		t.Fatal(err)
	}
	s, _ = Reduce(s, RepoLoaded{Seq: s.ActiveLoad, Status: status, Layout: layout})
	if s.Repo == nil || s.Selected != 0 {
		t.Fatalf("fixture not loaded: sel=%d", s.Selected)
	}
	return s
}

func singleCommand(t *testing.T, cmds []Command) Command {
	t.Helper()
	if len(cmds) != 1 {
		t.Fatalf("expected exactly one command, got %d (%v)", len(cmds), cmds)
	}
	return cmds[0]
}

func TestStartSeedsRevsetWithoutHistory(t *testing.T) {
	s := New(DefaultPageSize)
	s, cmds := Reduce(s, Start{Revset: "mine()", Preserve: "c7"})
	load := singleCommand(t, cmds).(LoadRepo)
	if load.Revset != "mine()" || load.Preserve != "c7" {
		t.Fatalf("initial load = %+v", load)
	}
	if s.Revset != "mine()" {
		t.Fatalf("revset = %q", s.Revset)
	}
	if len(s.Recent) != 0 {
		t.Fatalf("startup must not touch the filter history: %v", s.Recent)
	}
	if !s.Loading || s.ActiveLoad != load.Seq() {
		t.Fatalf("load bookkeeping: loading=%v active=%d", s.Loading, s.ActiveLoad)
	}
}

func TestReducePurity(t *testing.T) {
	s := loaded(t, 5)
	actions := []Action{
		MoveSelection{Delta: 2},
		DescribeIntent{Message: "msg"},
		ApplyFilter{Expr: "mine()"},
		Tick{Now: time.Unix(100, 0)},
	}
	for _, a := range actions {
		s1, c1 := Reduce(s, a)
		s2, c2 := Reduce(s, a)
		if !reflect.DeepEqual(s1, s2) {
			t.Fatalf("%T: states differ across identical calls", a)
		}
		if !reflect.DeepEqual(c1, c2) {
			t.Fatalf("%T: commands differ across identical calls", a)
		}
	}
}

func TestRepoLoadedLastRequestWins(t *testing.T) {
	s := loaded(t, 3)

	s, _ = Reduce(s, ApplyFilter{Expr: "mine()"})
	first := s.ActiveLoad
	s, _ = Reduce(s, ApplyFilter{Expr: "trunk()"})
	second := s.ActiveLoad
	if first == second {
		t.Fatalf("loads share a sequence number")
	}

	mine := linearStatus(1)
	mine.RepoName = "mine-result"
	trunk := linearStatus(2)
	trunk.RepoName = "trunk-result"

	// The superseded result arrives after the newer request was issued.
	s, cmds := Reduce(s, RepoLoaded{Seq: first, Status: mine})
	if len(cmds) != 0 {
		t.Fatalf("stale load produced commands: %v", cmds)
	}
	if s.Repo.RepoName != "demo" {
		t.Fatalf("stale load was applied: %q", s.Repo.RepoName)
	}

	s, _ = Reduce(s, RepoLoaded{Seq: second, Status: trunk})
	if s.Repo.RepoName != "trunk-result" {
		t.Fatalf("final state should reflect the newest request, got %q", s.Repo.RepoName)
	}
	if s.Revset != "trunk()" {
		t.Fatalf("revset = %q", s.Revset)
	}
}

func TestOperationCompletedForCancelledSeqIsNoop(t *testing.T) {
	s := loaded(t, 3)
	s, cmds := Reduce(s, UndoIntent{})
	singleCommand(t, cmds)
	seq := s.PendingOp

	s, _ = Reduce(s, CancelPending{})
	if s.PendingOp != 0 || s.CancelledOp != seq {
		t.Fatalf("cancel bookkeeping: pending=%d cancelled=%d", s.PendingOp, s.CancelledOp)
	}

	before := s
	s, cmds = Reduce(s, OperationCompleted{Seq: seq, Name: "undo", At: time.Unix(50, 0)})
	if len(cmds) != 0 {
		t.Fatalf("cancelled completion emitted commands: %v", cmds)
	}
	if s.Status != "" || s.Err != nil {
		t.Fatalf("cancelled completion changed visible state")
	}
	before.CancelledOp = 0
	if !reflect.DeepEqual(s, before) {
		t.Fatalf("cancelled completion should only clear the cancel mark")
	}
}

func TestOperationCompletedReloadsAndSetsStatus(t *testing.T) {
	s := loaded(t, 4)
	s, _ = Reduce(s, MoveSelection{Delta: 1})
	s, cmds := Reduce(s, DescribeIntent{Message: "work"})
	op := singleCommand(t, cmds).(RunOp)
	if !op.Exclusive() {
		t.Fatalf("describe must be exclusive")
	}

	at := time.Unix(200, 0)
	s, cmds = Reduce(s, OperationCompleted{Seq: op.Seq(), Name: "describe", At: at})
	load, okCmd := singleCommand(t, cmds).(LoadRepo)
	if !okCmd {
		t.Fatalf("expected a reload command")
	}
	if load.Preserve != "c2" {
		t.Fatalf("reload should preserve the selection, got %q", load.Preserve)
	}
	if s.Status != "describe done" {
		t.Fatalf("status = %q", s.Status)
	}
	if !s.StatusUntil.Equal(at.Add(5 * time.Second)) {
		t.Fatalf("status expiry = %v", s.StatusUntil)
	}
	if s.Busy() {
		t.Fatalf("pending flag should clear on completion")
	}
}

func TestOperationFailureKeepsReloading(t *testing.T) {
	s := loaded(t, 3)
	s, cmds := Reduce(s, FetchIntent{})
	op := singleCommand(t, cmds).(RunOp)

	failure := &ErrorState{
		Message:  "connection timed out",
		Kind:     recovery.KindNetworkRemote,
		Severity: recovery.SeverityWarning,
		At:       time.Unix(300, 0),
	}
	s, cmds = Reduce(s, OperationCompleted{Seq: op.Seq(), Name: "fetch", Err: failure, At: time.Unix(300, 0)})
	if _, okCmd := singleCommand(t, cmds).(LoadRepo); !okCmd {
		t.Fatalf("failed op must still trigger a reload")
	}
	if s.Err == nil || s.Err.Kind != recovery.KindNetworkRemote {
		t.Fatalf("error not installed: %+v", s.Err)
	}
}

func TestSelectionPreservedAcrossReload(t *testing.T) {
	s := loaded(t, 5)
	s, _ = Reduce(s, MoveSelection{Delta: 2})
	if s.SelectedRevision().ID != "c2" {
		t.Fatalf("fixture: selected %q", s.SelectedRevision().ID)
	}

	s, cmds := Reduce(s, Refresh{})
	load := cmds[0].(LoadRepo)
	if load.Preserve != "c2" {
		t.Fatalf("preserve = %q", load.Preserve)
	}

	// c2 was abandoned meanwhile; the cursor clamps instead of jumping
	// to the top.
	shrunk := domain.RepoStatus{
		RepoName:    "demo",
		WorkingCopy: "c4",
		Revisions: []domain.Revision{
			{ID: "c4", Parents: []domain.Parent{{ID: "c3"}}},
			{ID: "c3", Parents: []domain.Parent{{ID: "c1"}}},
			{ID: "c1", Parents: []domain.Parent{{ID: "c0"}}},
			{ID: "c0"},
		},
	}
	s, _ = Reduce(s, RepoLoaded{Seq: load.Seq(), Status: shrunk, Preserve: load.Preserve})
	if s.Selected != 2 {
		t.Fatalf("selection = %d, want clamped 2", s.Selected)
	}

	// Present ids restore exactly.
	s, cmds = Reduce(s, Refresh{})
	load = cmds[0].(LoadRepo)
	grown := linearStatus(5)
	s, _ = Reduce(s, RepoLoaded{Seq: load.Seq(), Status: grown, Preserve: load.Preserve})
	if s.SelectedRevision().ID != load.Preserve {
		t.Fatalf("selection moved to %q, want %q", s.SelectedRevision().ID, load.Preserve)
	}
}

func TestExternalChangeIgnoredWhileBusy(t *testing.T) {
	s := loaded(t, 3)
	s, _ = Reduce(s, UndoIntent{})
	_, cmds := Reduce(s, ExternalChange{})
	if len(cmds) != 0 {
		t.Fatalf("external change must not reload over a pending op")
	}
}

func TestExternalChangeReloads(t *testing.T) {
	s := loaded(t, 3)
	_, cmds := Reduce(s, ExternalChange{})
	load, okCmd := singleCommand(t, cmds).(LoadRepo)
	if !okCmd || load.Preserve != "c2" {
		t.Fatalf("expected preserving reload, got %+v", cmds)
	}
}

func TestTickExpiresStatusAndWarning(t *testing.T) {
	s := loaded(t, 3)
	s, cmds := Reduce(s, SnapshotIntent{})
	op := cmds[0].(RunOp)
	at := time.Unix(400, 0)
	s, _ = Reduce(s, OperationCompleted{Seq: op.Seq(), Name: "snapshot", At: at})

	s, _ = Reduce(s, Tick{Now: at.Add(2 * time.Second)})
	if s.Status == "" {
		t.Fatalf("status expired early")
	}
	s, _ = Reduce(s, Tick{Now: at.Add(6 * time.Second)})
	if s.Status != "" {
		t.Fatalf("status should expire, got %q", s.Status)
	}

	s.Err = &ErrorState{Message: "net down", Severity: recovery.SeverityWarning, At: at}
	s, _ = Reduce(s, Tick{Now: at.Add(6 * time.Second)})
	if s.Err != nil {
		t.Fatalf("timed warnings auto-dismiss")
	}

	s.Err = &ErrorState{Message: "blocked", Severity: recovery.SeverityError, At: at}
	s, _ = Reduce(s, Tick{Now: at.Add(time.Hour)})
	if s.Err == nil {
		t.Fatalf("errors never auto-dismiss")
	}
}

func TestTickAutoPaginatesNearBottom(t *testing.T) {
	s := loaded(t, 12)
	repo := *s.Repo
	repo.HasMore = true
	s.Repo = &repo

	s, _ = Reduce(s, SelectLast{})
	next, cmds := Reduce(s, Tick{Now: time.Unix(500, 0)})
	load, okCmd := singleCommand(t, cmds).(LoadRepo)
	if !okCmd {
		t.Fatalf("expected pagination load")
	}
	if load.Limit != 12+next.PageSize {
		t.Fatalf("limit = %d", load.Limit)
	}
	if load.Preserve != "c0" {
		t.Fatalf("preserve = %q", load.Preserve)
	}

	// No double-issue while the load is outstanding.
	if _, again := Reduce(next, Tick{Now: time.Unix(501, 0)}); len(again) != 0 {
		t.Fatalf("pagination re-issued while in flight")
	}
}

func TestDiffLoadedStaleGuard(t *testing.T) {
	s := loaded(t, 3)
	s, _ = Reduce(s, MoveSelection{Delta: 1})
	current := s.ActiveDiff

	s, _ = Reduce(s, DiffLoaded{Seq: current - 1, RevisionID: "c2", Text: "OLD"})
	if s.Diff != "" {
		t.Fatalf("stale diff applied")
	}
	s, _ = Reduce(s, DiffLoaded{Seq: current, RevisionID: "c1", Text: "NEW"})
	if s.Diff != "NEW" || s.DiffFor != "c1" {
		t.Fatalf("diff = %q for %q", s.Diff, s.DiffFor)
	}
}

func TestInputModeRoutesSubmit(t *testing.T) {
	s := loaded(t, 3)
	s, _ = Reduce(s, EnterInput{Kind: InputDescribe})
	if s.Mode != ModeInput || s.Input != InputDescribe {
		t.Fatalf("mode = %v input = %v", s.Mode, s.Input)
	}

	s, cmds := Reduce(s, SubmitInput{Text: "  better message  "})
	if s.Mode != ModeNormal {
		t.Fatalf("mode after submit = %v", s.Mode)
	}
	op := singleCommand(t, cmds).(RunOp)
	if op.Op != OpDescribe {
		t.Fatalf("op = %v", op.Op)
	}
	want := []string{"c2", "better message"}
	if !reflect.DeepEqual(op.Args, want) {
		t.Fatalf("args = %v", op.Args)
	}
}

func TestInputCancelRestoresNormal(t *testing.T) {
	s := loaded(t, 3)
	s, _ = Reduce(s, EnterInput{Kind: InputFilter})
	s, cmds := Reduce(s, CancelInput{})
	if s.Mode != ModeNormal || s.Input != InputNone || len(cmds) != 0 {
		t.Fatalf("cancel left mode=%v input=%v cmds=%v", s.Mode, s.Input, cmds)
	}
}

func TestConfirmFlow(t *testing.T) {
	s := loaded(t, 3)
	s, cmds := Reduce(s, AbandonIntent{})
	if len(cmds) != 0 {
		t.Fatalf("unconfirmed abandon emitted commands")
	}
	if s.Mode != ModeConfirm || s.Confirm == nil {
		t.Fatalf("expected confirm mode")
	}

	// Declining returns to normal without a command.
	declined, cmds := Reduce(s, ConfirmCancel{})
	if declined.Mode != ModeNormal || declined.Confirm != nil || len(cmds) != 0 {
		t.Fatalf("decline misbehaved")
	}

	s, cmds = Reduce(s, ConfirmAccept{})
	op := singleCommand(t, cmds).(RunOp)
	if op.Op != OpAbandon || op.Args[0] != "c2" {
		t.Fatalf("confirmed abandon = %+v", op)
	}
	if s.Mode != ModeNormal || s.Confirm != nil {
		t.Fatalf("confirm not cleared")
	}
}

func TestNavigationClampsAndLoadsDiff(t *testing.T) {
	s := loaded(t, 3)
	s, _ = Reduce(s, MoveSelection{Delta: -5})
	if s.Selected != 0 {
		t.Fatalf("clamped top = %d", s.Selected)
	}
	s, cmds := Reduce(s, MoveSelection{Delta: 99})
	if s.Selected != 2 {
		t.Fatalf("clamped bottom = %d", s.Selected)
	}
	diff, okCmd := singleCommand(t, cmds).(LoadDiff)
	if !okCmd || diff.RevisionID != "c0" {
		t.Fatalf("diff load = %+v", cmds)
	}
	if diff.Exclusive() {
		t.Fatalf("diff loads must not be exclusive")
	}
}

func TestDegradedLayoutNoteInstalled(t *testing.T) {
	s := New(DefaultPageSize)
	s, _ = Reduce(s, Refresh{})
	status := linearStatus(2)
	s, _ = Reduce(s, RepoLoaded{
		Seq:        s.ActiveLoad,
		Status:     status,
		Layout:     graph.Layout{Rows: make([]graph.Row, 2), Lanes: 1},
		LayoutNote: "graph layout: revision \"x\": duplicate id",
	})
	if s.LayoutNote == "" {
		t.Fatalf("degraded note lost")
	}
}
