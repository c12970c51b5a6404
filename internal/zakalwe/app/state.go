// Package app holds the application state machine: one value of AppState,
// a closed union of Actions, and a pure reducer that turns (state, action)
// into (state, commands). All side effects live in the orchestrator that
// executes the returned commands.
package app

import (
	"time"

	"github.com/mistakeknot/zakalwe/internal/zakalwe/domain"
	"github.com/mistakeknot/zakalwe/internal/zakalwe/graph"
	"github.com/mistakeknot/zakalwe/internal/zakalwe/recovery"
)

// Mode is the fixed UI state machine. Transitions happen only inside the
// reducer.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInput
	ModeConfirm
	ModeSuspended
)

// InputKind selects what the input line is collecting.
type InputKind int

const (
	InputNone InputKind = iota
	InputDescribe
	InputCommitMessage
	InputBookmarkSet
	InputFilter
)

// Confirm is a pending destructive action awaiting a yes/no answer.
type Confirm struct {
	Message string
	Action  Action
}

// ErrorState is the currently displayed failure. At is zero for
// rejections produced inside the reducer; boundary errors carry their
// arrival time so transient warnings can expire.
type ErrorState struct {
	Message     string
	Kind        recovery.Kind
	Severity    recovery.Severity
	Suggestions []string
	At          time.Time
}

const (
	statusTTL         = 5 * time.Second
	warningTTL        = 5 * time.Second
	autoLoadThreshold = 10
	// DefaultPageSize bounds the initial log query.
	DefaultPageSize = 100
	// MaxRecentFilters bounds the persisted filter history.
	MaxRecentFilters = 10
)

// AppState is the single application state value. The event loop owns it
// exclusively; everything else sees read-only copies.
type AppState struct {
	Repo   *domain.RepoStatus
	Layout graph.Layout
	// LayoutNote is a degraded-layout notice, empty when the layout is
	// exact.
	LayoutNote string

	Selected  int
	Mode      Mode
	Input     InputKind
	InputSeed string
	Confirm   *Confirm

	// Revset is the active filter expression, empty when unfiltered.
	Revset string
	// Recent is the most-recent-first filter history, bounded.
	Recent []string

	Err         *ErrorState
	Status      string
	StatusUntil time.Time

	Diff    string
	DiffFor string

	PageSize int
	Loading  bool

	// Request bookkeeping. NextSeq is the monotonic command counter;
	// ActiveLoad/ActiveDiff hold the newest outstanding read sequence
	// (stale results are discarded); PendingOp is the outstanding
	// exclusive sequence, zero when none.
	NextSeq       uint64
	ActiveLoad    uint64
	ActiveDiff    uint64
	PendingOp     uint64
	PendingOpName string
	CancelledOp   uint64
}

// New returns the initial state before the first load.
func New(pageSize int) AppState {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return AppState{Selected: -1, PageSize: pageSize}
}

// SelectedRevision returns the revision under the cursor, or nil.
func (s *AppState) SelectedRevision() *domain.Revision {
	if s.Repo == nil || s.Selected < 0 || s.Selected >= len(s.Repo.Revisions) {
		return nil
	}
	return &s.Repo.Revisions[s.Selected]
}

// Busy reports whether an exclusive operation is outstanding.
func (s *AppState) Busy() bool { return s.PendingOp != 0 }

func (s *AppState) nextSeq() uint64 {
	s.NextSeq++
	return s.NextSeq
}

// load stamps and registers a repository reload. The newest load always
// wins; older in-flight results are dropped on arrival.
func (s *AppState) load(revset string, limit int, preserve string) LoadRepo {
	if limit <= 0 {
		limit = s.PageSize
	}
	seq := s.nextSeq()
	s.ActiveLoad = seq
	s.Loading = true
	return LoadRepo{meta: meta{seq: seq}, Revset: revset, Limit: limit, Preserve: preserve}
}

// reload keeps the current filter and depth and preserves the selection.
func (s *AppState) reload() LoadRepo {
	limit := s.PageSize
	if s.Repo != nil && len(s.Repo.Revisions) > limit {
		limit = len(s.Repo.Revisions)
	}
	preserve := ""
	if sel := s.SelectedRevision(); sel != nil {
		preserve = sel.ID
	}
	return s.load(s.Revset, limit, preserve)
}

func (s *AppState) loadDiff(revisionID string) LoadDiff {
	seq := s.nextSeq()
	s.ActiveDiff = seq
	return LoadDiff{meta: meta{seq: seq}, RevisionID: revisionID}
}

// runOp stamps and registers an exclusive mutating operation. Callers
// must have passed the safety guards first.
func (s *AppState) runOp(op Op, name string, args ...string) RunOp {
	seq := s.nextSeq()
	s.PendingOp = seq
	s.PendingOpName = name
	return RunOp{meta: meta{seq: seq}, Op: op, Name: name, Args: args}
}

func (s *AppState) runInteractive(kind InteractiveKind, name, target string) RunInteractive {
	seq := s.nextSeq()
	s.PendingOp = seq
	s.PendingOpName = name
	s.Mode = ModeSuspended
	return RunInteractive{meta: meta{seq: seq}, Kind: kind, Target: target}
}

func clampIndex(idx, length int) int {
	if length <= 0 {
		return -1
	}
	if idx < 0 {
		return 0
	}
	if idx >= length {
		return length - 1
	}
	return idx
}
