package app

import (
	"time"

	"github.com/mistakeknot/zakalwe/internal/zakalwe/domain"
	"github.com/mistakeknot/zakalwe/internal/zakalwe/graph"
)

// Action is the closed union of every event the reducer handles:
// navigation, mode transitions, VCS intents, filter operations,
// orchestrator completions, errors, and ticks.
type Action interface{ isAction() }

// Navigation.
type (
	// MoveSelection moves the cursor by Delta rows, clamped.
	MoveSelection struct{ Delta int }
	SelectFirst   struct{}
	SelectLast    struct{}
)

// Mode transitions.
type (
	// EnterInput opens the input line for the given kind; the reducer
	// seeds it from the current state.
	EnterInput struct{ Kind InputKind }
	// SubmitInput closes the input line and routes the text to the
	// intent the input kind stands for.
	SubmitInput struct{ Text string }
	CancelInput struct{}
	// ConfirmAccept re-dispatches the action stashed by a confirm-gated
	// intent.
	ConfirmAccept struct{}
	ConfirmCancel struct{}
)

// VCS intents. Mutating intents are rejected while the working copy has
// conflicts or another exclusive operation is pending.
type (
	DescribeIntent    struct{ Message string }
	EditIntent        struct{}
	NewChildIntent    struct{}
	CommitIntent      struct{ Message string }
	SnapshotIntent    struct{}
	AbandonIntent     struct{ Confirmed bool }
	SquashIntent      struct{ Confirmed bool }
	BookmarkSetIntent struct{ Name string }
	BookmarkDeleteIntent struct {
		Name      string
		Confirmed bool
	}
	UndoIntent  struct{}
	RedoIntent  struct{}
	FetchIntent struct{}
	PushIntent  struct{}
	// ResolveIntent suspends into the interactive merge tool for the
	// first conflicted path.
	ResolveIntent struct{}
	// SplitIntent suspends into the interactive split editor for the
	// selected revision.
	SplitIntent struct{}
)

// Filter operations.
type (
	ApplyFilter struct{ Expr string }
	ClearFilter struct{}
)

// Completions posted by the orchestrator.
type (
	// RepoLoaded delivers a snapshot and its layout atomically. Stale
	// sequences (superseded loads) are discarded unchanged.
	RepoLoaded struct {
		Seq        uint64
		Status     domain.RepoStatus
		Layout     graph.Layout
		LayoutNote string
		// Preserve restores the selection to this revision id when
		// present in the new snapshot.
		Preserve string
		Err      *ErrorState
	}
	DiffLoaded struct {
		Seq        uint64
		RevisionID string
		Text       string
	}
	// OperationCompleted reports an exclusive command's outcome. At is
	// the completion time, used for the transient status expiry.
	OperationCompleted struct {
		Seq  uint64
		Name string
		Err  *ErrorState
		At   time.Time
	}
)

// Errors and housekeeping.
type (
	// Start triggers the first load. Revset seeds the active filter
	// without touching the history; Preserve restores the last session's
	// selection.
	Start struct {
		Revset   string
		Preserve string
	}
	ErrorOccurred struct{ Err ErrorState }
	DismissError  struct{}
	// CancelPending marks the outstanding exclusive command cancelled;
	// its eventual completion is discarded.
	CancelPending struct{}
	// ExternalChange signals an out-of-band repository change.
	ExternalChange struct{}
	Refresh        struct{}
	LoadMore       struct{}
	Tick           struct{ Now time.Time }
)

func (MoveSelection) isAction()        {}
func (SelectFirst) isAction()          {}
func (SelectLast) isAction()           {}
func (EnterInput) isAction()           {}
func (SubmitInput) isAction()          {}
func (CancelInput) isAction()          {}
func (ConfirmAccept) isAction()        {}
func (ConfirmCancel) isAction()        {}
func (DescribeIntent) isAction()       {}
func (EditIntent) isAction()           {}
func (NewChildIntent) isAction()       {}
func (CommitIntent) isAction()         {}
func (SnapshotIntent) isAction()       {}
func (AbandonIntent) isAction()        {}
func (SquashIntent) isAction()         {}
func (BookmarkSetIntent) isAction()    {}
func (BookmarkDeleteIntent) isAction() {}
func (UndoIntent) isAction()           {}
func (RedoIntent) isAction()           {}
func (FetchIntent) isAction()          {}
func (PushIntent) isAction()           {}
func (ResolveIntent) isAction()        {}
func (SplitIntent) isAction()          {}
func (ApplyFilter) isAction()          {}
func (ClearFilter) isAction()          {}
func (Start) isAction()                {}
func (RepoLoaded) isAction()           {}
func (DiffLoaded) isAction()           {}
func (OperationCompleted) isAction()   {}
func (ErrorOccurred) isAction()        {}
func (DismissError) isAction()         {}
func (CancelPending) isAction()        {}
func (ExternalChange) isAction()       {}
func (Refresh) isAction()              {}
func (LoadMore) isAction()             {}
func (Tick) isAction()                 {}
