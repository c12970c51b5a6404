package app

// Command is the closed union of side effects the orchestrator performs.
// Every command carries the monotonic sequence number it was stamped
// with; Exclusive commands mutate the repository and never run
// concurrently with each other.
type Command interface {
	Seq() uint64
	Exclusive() bool
	isCommand()
}

type meta struct{ seq uint64 }

func (m meta) Seq() uint64 { return m.seq }

// Op names a mutating engine call.
type Op int

const (
	OpDescribe Op = iota
	OpEdit
	OpNewChild
	OpCommit
	OpSnapshot
	OpAbandon
	OpSquash
	OpBookmarkSet
	OpBookmarkDelete
	OpUndo
	OpRedo
	OpFetch
	OpPush
)

func (o Op) String() string {
	switch o {
	case OpDescribe:
		return "describe"
	case OpEdit:
		return "edit"
	case OpNewChild:
		return "new"
	case OpCommit:
		return "commit"
	case OpSnapshot:
		return "snapshot"
	case OpAbandon:
		return "abandon"
	case OpSquash:
		return "squash"
	case OpBookmarkSet:
		return "bookmark set"
	case OpBookmarkDelete:
		return "bookmark delete"
	case OpUndo:
		return "undo"
	case OpRedo:
		return "redo"
	case OpFetch:
		return "fetch"
	case OpPush:
		return "push"
	default:
		return "operation"
	}
}

// InteractiveKind selects which external tool takes over the terminal.
type InteractiveKind int

const (
	InteractiveResolve InteractiveKind = iota
	InteractiveSplit
)

// LoadRepo reloads the snapshot (and recomputes the layout) off the
// event loop. Non-exclusive: newer loads supersede older ones.
type LoadRepo struct {
	meta
	Revset string
	Limit  int
	// Preserve asks the completion to restore the selection to this
	// revision id.
	Preserve string
}

// LoadDiff fetches the diff text for one revision. Non-exclusive.
type LoadDiff struct {
	meta
	RevisionID string
}

// RunOp executes one mutating engine call. Args are positional per Op:
// describe/edit/new/abandon/squash take the target revision id first,
// describe and commit carry the message, bookmark ops carry the name.
type RunOp struct {
	meta
	Op   Op
	Name string
	Args []string
}

// RunInteractive suspends the UI and hands the terminal to an external
// interactive tool.
type RunInteractive struct {
	meta
	Kind   InteractiveKind
	Target string
}

// PersistFilters writes the recent-filter history; kept as a command so
// the reducer stays free of file I/O.
type PersistFilters struct {
	meta
	Filters []string
}

func (LoadRepo) Exclusive() bool       { return false }
func (LoadDiff) Exclusive() bool       { return false }
func (RunOp) Exclusive() bool          { return true }
func (RunInteractive) Exclusive() bool { return true }
func (PersistFilters) Exclusive() bool { return false }

func (LoadRepo) isCommand()       {}
func (LoadDiff) isCommand()       {}
func (RunOp) isCommand()          {}
func (RunInteractive) isCommand() {}
func (PersistFilters) isCommand() {}
