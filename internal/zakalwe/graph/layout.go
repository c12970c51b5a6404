// Package graph lays out a topologically ordered revision sequence
// (newest first) into lanes and edge segments for textual rendering.
package graph

import (
	"fmt"
	"sort"

	"github.com/mistakeknot/zakalwe/internal/zakalwe/domain"
)

// EdgeKind distinguishes how an edge segment is drawn.
type EdgeKind int

const (
	// EdgeNormal connects a revision to a direct parent.
	EdgeNormal EdgeKind = iota
	// EdgeMerge is a parent edge of a revision with two or more parents.
	EdgeMerge
	// EdgeElided connects a revision to a non-adjacent ancestor because
	// the revisions in between are hidden by the active filter.
	EdgeElided
)

// Edge is one segment between a row and a lane below it.
type Edge struct {
	FromLane int
	ToLane   int
	Kind     EdgeKind
}

// Row is the lane geometry of one revision.
type Row struct {
	ID   string
	Lane int
	// Active marks the lanes occupied at this row, own lane included.
	Active []bool
	// Connectors marks the lanes occupied between this row and the next.
	Connectors []bool
	// Incoming is the segment arriving from the lane that awaited this
	// revision, empty for a head nothing pointed at.
	Incoming []Edge
	// Outgoing holds one segment per parent, in parent order.
	Outgoing  []Edge
	ParentMin int
	ParentMax int
}

// Layout is the computed geometry for one RepoStatus. Rows match the
// input revisions one to one, in order.
type Layout struct {
	Rows []Row
	// Lanes is the peak number of concurrently open lanes.
	Lanes int
	// Terminal lists lanes still awaiting a revision absent from the
	// input, normal for bounded or filtered views.
	Terminal []int
}

// LayoutError reports structurally malformed input: duplicate or empty
// ids, a revision naming itself as parent, or a parent appearing above
// its child in the newest-first order.
type LayoutError struct {
	RevisionID string
	Reason     string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("graph layout: revision %q: %s", e.RevisionID, e.Reason)
}

// await tracks which revision a lane is waiting for. elided is sticky:
// once any child reaches the lane through a filtered-out ancestor, the
// eventual incoming edge renders elided.
type await struct {
	id     string
	elided bool
}

// Compute assigns lanes and edges to revs. Lanes are reused left-packed:
// a continuing single-parent line keeps its origin lane, new lines take
// the lowest free index, merges collapse onto the lowest parent lane.
// Malformed input returns a degraded single-lane layout alongside a
// *LayoutError so the caller can always render.
func Compute(revs []domain.Revision) (Layout, error) {
	if len(revs) == 0 {
		return Layout{}, nil
	}

	lanes := make([]*await, 0, 4)
	laneFor := make(map[string]int, len(revs))
	seen := make(map[string]struct{}, len(revs))
	rows := make([]Row, 0, len(revs))

	for _, rev := range revs {
		if err := checkRow(rev, seen); err != nil {
			return fallback(revs), err
		}
		seen[rev.ID] = struct{}{}

		row := Row{ID: rev.ID}

		lane, awaited := laneFor[rev.ID]
		if awaited {
			kind := EdgeNormal
			if lanes[lane].elided {
				kind = EdgeElided
			}
			row.Incoming = []Edge{{FromLane: lane, ToLane: lane, Kind: kind}}
		} else {
			lane = claimLane(&lanes, rev.ID, false)
		}
		row.Lane = lane

		row.Active = occupancy(lanes)

		// The row consumes its lane before parents are placed.
		lanes[lane] = nil
		delete(laneFor, rev.ID)

		row.ParentMin, row.ParentMax = lane, lane
		for _, p := range rev.Parents {
			pl, ok := laneFor[p.ID]
			if ok {
				if p.Elided {
					lanes[pl].elided = true
				}
			} else {
				if lanes[lane] == nil {
					lanes[lane] = &await{id: p.ID, elided: p.Elided}
					pl = lane
				} else {
					pl = claimLane(&lanes, p.ID, p.Elided)
				}
				laneFor[p.ID] = pl
			}
			row.Outgoing = append(row.Outgoing, Edge{
				FromLane: lane,
				ToLane:   pl,
				Kind:     edgeKind(rev, p),
			})
			if pl < row.ParentMin {
				row.ParentMin = pl
			}
			if pl > row.ParentMax {
				row.ParentMax = pl
			}
		}

		row.Connectors = occupancy(lanes)
		rows = append(rows, row)
	}

	layout := Layout{Rows: rows, Lanes: len(lanes)}
	for i, l := range lanes {
		if l != nil {
			layout.Terminal = append(layout.Terminal, i)
		}
	}
	sort.Ints(layout.Terminal)
	return layout, nil
}

func checkRow(rev domain.Revision, seen map[string]struct{}) *LayoutError {
	if rev.ID == "" {
		return &LayoutError{RevisionID: rev.ID, Reason: "empty id"}
	}
	if _, dup := seen[rev.ID]; dup {
		return &LayoutError{RevisionID: rev.ID, Reason: "duplicate id"}
	}
	for _, p := range rev.Parents {
		if p.ID == rev.ID {
			return &LayoutError{RevisionID: rev.ID, Reason: "revision is its own parent"}
		}
		if _, above := seen[p.ID]; above {
			return &LayoutError{RevisionID: rev.ID, Reason: fmt.Sprintf("parent %q appears above its child", p.ID)}
		}
	}
	return nil
}

// claimLane places id on the lowest free lane, growing the lane set only
// when every lane is busy.
func claimLane(lanes *[]*await, id string, elided bool) int {
	for i, l := range *lanes {
		if l == nil {
			(*lanes)[i] = &await{id: id, elided: elided}
			return i
		}
	}
	*lanes = append(*lanes, &await{id: id, elided: elided})
	return len(*lanes) - 1
}

func occupancy(lanes []*await) []bool {
	out := make([]bool, len(lanes))
	for i, l := range lanes {
		out[i] = l != nil
	}
	return out
}

func edgeKind(rev domain.Revision, p domain.Parent) EdgeKind {
	switch {
	case p.Elided:
		return EdgeElided
	case len(rev.Parents) > 1:
		return EdgeMerge
	default:
		return EdgeNormal
	}
}

// fallback keeps every revision renderable on a single lane when the
// input cannot be laid out properly.
func fallback(revs []domain.Revision) Layout {
	rows := make([]Row, len(revs))
	for i, rev := range revs {
		row := Row{
			ID:         rev.ID,
			Lane:       0,
			Active:     []bool{true},
			Connectors: []bool{i < len(revs)-1},
		}
		if i > 0 {
			row.Incoming = []Edge{{FromLane: 0, ToLane: 0, Kind: EdgeNormal}}
		}
		if i < len(revs)-1 {
			row.Outgoing = []Edge{{FromLane: 0, ToLane: 0, Kind: EdgeNormal}}
		}
		rows[i] = row
	}
	return Layout{Rows: rows, Lanes: 1}
}
