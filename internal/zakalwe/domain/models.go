package domain

// FileStatus classifies a path in the working copy.
type FileStatus string

const (
	StatusClean      FileStatus = "clean"
	StatusModified   FileStatus = "modified"
	StatusAdded      FileStatus = "added"
	StatusDeleted    FileStatus = "deleted"
	StatusConflicted FileStatus = "conflicted"
)

// FileChange is one working-copy path and its status.
type FileChange struct {
	Path   string
	Status FileStatus
}

// Parent is an ordered parent reference of a revision. Elided marks a
// reference the engine rewrote to the nearest visible ancestor because the
// direct parent was filtered out of the view.
type Parent struct {
	ID     string
	Elided bool
}

// Revision is one row of the log, newest first.
type Revision struct {
	ID          string
	ShortID     string
	ChangeID    string
	Parents     []Parent
	Description string
	Author      string
	Timestamp   string
	Bookmarks   []string
	WorkingCopy bool
	Immutable   bool
	Conflict    bool
}

// IsMerge reports whether the revision has more than one parent.
func (r Revision) IsMerge() bool { return len(r.Parents) > 1 }

// RepoStatus is a consistent snapshot of the repository: the visible
// revision sequence plus working-copy file state. It is replaced wholesale
// on every reload, never patched in place.
type RepoStatus struct {
	RepoName    string
	OperationID string
	WorkspaceID string
	WorkingCopy string
	Revisions   []Revision
	Files       []FileChange
	// HasMore is set when the log query filled its limit, so deeper
	// history may exist past the last row.
	HasMore bool
}

// HasConflicts reports whether any working-copy file is conflicted.
func (s *RepoStatus) HasConflicts() bool {
	if s == nil {
		return false
	}
	for _, f := range s.Files {
		if f.Status == StatusConflicted {
			return true
		}
	}
	return false
}

// ConflictedPaths returns the conflicted file paths in order.
func (s *RepoStatus) ConflictedPaths() []string {
	if s == nil {
		return nil
	}
	var out []string
	for _, f := range s.Files {
		if f.Status == StatusConflicted {
			out = append(out, f.Path)
		}
	}
	return out
}

// FindRevision returns the row index of a revision id, or -1.
func (s *RepoStatus) FindRevision(id string) int {
	if s == nil || id == "" {
		return -1
	}
	for i, r := range s.Revisions {
		if r.ID == id {
			return i
		}
	}
	return -1
}
