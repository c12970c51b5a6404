package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mistakeknot/zakalwe/internal/zakalwe/domain"
	"github.com/mistakeknot/zakalwe/internal/zakalwe/graph"
	pkgtui "github.com/mistakeknot/zakalwe/pkg/tui"
)

// Node and edge glyphs. Pipes and forks follow jj's own log drawing;
// dotted pipes mark edges that skip filtered-out revisions, and "~"
// marks lanes whose history continues past the loaded page.
const (
	glyphWorking   = "◉"
	glyphImmutable = "◆"
	glyphMutable   = "○"
	glyphPipe      = "│"
	glyphElided    = "┊"
	glyphTerminal  = "~"
	normalPrefix   = "  "
)

// renderGraphRows flattens the layout into styled lines: two per
// revision (node plus connector), the working-copy file list under the
// selected row when the diff pane is open, and a trailing marker line
// for terminal lanes.
func (m Model) renderGraphRows(width int) []string {
	repo := m.state.Repo
	lay := m.state.Layout
	lines := make([]string, 0, len(repo.Revisions)*2+1)
	elided := make(map[int]bool)

	for i, rev := range repo.Revisions {
		if i >= len(lay.Rows) {
			break
		}
		row := lay.Rows[i]
		selected := i == m.state.Selected

		// The arriving revision ends its lane's elided stretch.
		delete(elided, row.Lane)

		lines = append(lines, truncate(m.nodeLine(rev, row, selected, elided), width))
		for _, e := range row.Outgoing {
			if e.Kind == graph.EdgeElided {
				elided[e.ToLane] = true
			}
		}
		lines = append(lines, truncate(m.connectorLine(rev, row, selected, elided), width))
		if selected && m.showDiff && rev.WorkingCopy {
			for _, f := range visibleFiles(repo.Files) {
				lines = append(lines, truncate(fileRow(f, row, selected, elided), width))
			}
		}
	}
	if len(lay.Terminal) > 0 {
		lines = append(lines, truncate(terminalLine(lay), width))
	}
	return lines
}

func (m Model) nodeLine(rev domain.Revision, row graph.Row, selected bool, elided map[int]bool) string {
	laneCount := max(len(row.Active), len(row.Connectors))
	var b strings.Builder
	b.WriteString(prefix(selected))
	for lane := 0; lane < laneCount; lane++ {
		switch {
		case lane == row.Lane:
			b.WriteString(nodeGlyph(rev))
		case laneActive(row.Active, lane) && elided[lane]:
			b.WriteString(pkgtui.LaneStyle(lane).Render(glyphElided))
		case laneActive(row.Active, lane):
			b.WriteString(pkgtui.LaneStyle(lane).Render(glyphPipe))
		default:
			b.WriteString(" ")
		}
	}
	b.WriteString("  ")
	b.WriteString(metaLine(rev))
	return b.String()
}

// connectorLine draws the fork row under a node: the cell at the node
// column shows how edges leave it, parent cells show where they land,
// and lanes crossed in between are bridged.
func (m Model) connectorLine(rev domain.Revision, row graph.Row, selected bool, elided map[int]bool) string {
	laneCount := max(len(row.Active), len(row.Connectors))
	parentLanes := make(map[int]bool, len(row.Outgoing))
	var hasLeft, hasRight, hasDown bool
	for _, e := range row.Outgoing {
		parentLanes[e.ToLane] = true
		switch {
		case e.ToLane < row.Lane:
			hasLeft = true
		case e.ToLane > row.Lane:
			hasRight = true
		default:
			hasDown = true
		}
	}

	var b strings.Builder
	b.WriteString(prefix(selected))
	for lane := 0; lane < laneCount; lane++ {
		activeAbove := laneActive(row.Active, lane)
		activeBelow := laneActive(row.Connectors, lane)

		glyph := " "
		if activeBelow {
			glyph = glyphPipe
			if elided[lane] {
				glyph = glyphElided
			}
		}

		switch {
		case lane == row.Lane:
			glyph = nodeConnector(len(row.Outgoing), hasLeft, hasRight, hasDown)
			if glyph == glyphPipe && elided[lane] {
				glyph = glyphElided
			}
		case parentLanes[lane]:
			if activeAbove {
				if lane < row.Lane {
					glyph = "┤"
				} else {
					glyph = "├"
				}
			} else {
				if lane < row.Lane {
					glyph = "╭"
				} else {
					glyph = "╮"
				}
			}
		case lane > row.ParentMin && lane < row.ParentMax:
			if activeAbove {
				glyph = "┼"
			} else {
				glyph = "─"
			}
		}
		b.WriteString(pkgtui.LaneStyle(lane).Render(glyph))
	}
	b.WriteString("  ")
	b.WriteString(descriptionLine(rev))
	return b.String()
}

// nodeConnector picks the glyph at the node's own column from where its
// parent edges go.
func nodeConnector(parents int, hasLeft, hasRight, hasDown bool) string {
	if parents == 0 {
		return " "
	}
	if parents == 1 {
		switch {
		case hasLeft:
			return "╮"
		case hasRight:
			return "╭"
		default:
			return glyphPipe
		}
	}
	switch {
	case hasLeft && hasRight && hasDown:
		return "┼"
	case hasLeft && hasRight:
		return "┬"
	case hasLeft && hasDown:
		return "┤"
	case hasRight && hasDown:
		return "├"
	case hasLeft:
		return "╮"
	case hasRight:
		return "╭"
	case hasDown:
		return glyphPipe
	}
	return " "
}

func nodeGlyph(rev domain.Revision) string {
	style := pkgtui.NodeMutableStyle
	g := glyphMutable
	switch {
	case rev.WorkingCopy:
		style, g = pkgtui.NodeWorkingStyle, glyphWorking
	case rev.Immutable:
		style, g = pkgtui.NodeImmutableStyle, glyphImmutable
	}
	if rev.Conflict {
		style = pkgtui.NodeConflictStyle
	}
	return style.Render(g)
}

func metaLine(rev domain.Revision) string {
	idStyle := pkgtui.NodeMutableStyle
	switch {
	case rev.WorkingCopy:
		idStyle = pkgtui.NodeWorkingStyle
	case rev.Immutable:
		idStyle = pkgtui.NodeImmutableStyle
	}
	parts := []string{idStyle.Render(rev.ChangeID)}
	if rev.Author != "" {
		parts = append(parts, pkgtui.AuthorStyle.Render(rev.Author))
	}
	if rev.Timestamp != "" {
		parts = append(parts, pkgtui.TimestampStyle.Render(rev.Timestamp))
	}
	for _, bm := range rev.Bookmarks {
		parts = append(parts, pkgtui.BookmarkStyle.Render(bm))
	}
	if rev.Conflict {
		parts = append(parts, pkgtui.NodeConflictStyle.Render("conflict"))
	}
	parts = append(parts, pkgtui.CommitIDStyle.Render(rev.ShortID))
	return strings.Join(parts, " ")
}

func descriptionLine(rev domain.Revision) string {
	desc := strings.TrimSpace(strings.SplitN(rev.Description, "\n", 2)[0])
	if desc == "" {
		return pkgtui.TimestampStyle.Render("(no description set)")
	}
	return desc
}

func fileRow(f domain.FileChange, row graph.Row, selected bool, elided map[int]bool) string {
	laneCount := max(len(row.Active), len(row.Connectors))
	var b strings.Builder
	b.WriteString(prefix(selected))
	for lane := 0; lane < laneCount; lane++ {
		if laneActive(row.Connectors, lane) {
			g := glyphPipe
			if elided[lane] {
				g = glyphElided
			}
			b.WriteString(pkgtui.LaneStyle(lane).Render(g))
		} else {
			b.WriteString(" ")
		}
	}
	b.WriteString("  ")
	glyph, style := fileGlyph(f.Status)
	b.WriteString(style.Render(glyph + " " + f.Path))
	return b.String()
}

func fileGlyph(status domain.FileStatus) (string, lipgloss.Style) {
	switch status {
	case domain.StatusAdded:
		return "+", pkgtui.DiffAddStyle
	case domain.StatusDeleted:
		return "-", pkgtui.DiffRemoveStyle
	case domain.StatusConflicted:
		return "!", pkgtui.DiffConflictStyle
	default:
		return "~", pkgtui.DiffModifyStyle
	}
}

func visibleFiles(files []domain.FileChange) []domain.FileChange {
	out := make([]domain.FileChange, 0, len(files))
	for _, f := range files {
		if f.Status != domain.StatusClean {
			out = append(out, f)
		}
	}
	return out
}

func terminalLine(lay graph.Layout) string {
	cells := make([]string, lay.Lanes)
	for i := range cells {
		cells[i] = " "
	}
	for _, lane := range lay.Terminal {
		if lane < len(cells) {
			cells[lane] = pkgtui.LaneStyle(lane).Render(glyphTerminal)
		}
	}
	return normalPrefix + strings.Join(cells, "")
}

func prefix(selected bool) string {
	if selected {
		return pkgtui.TitleStyle.Render("▌") + " "
	}
	return normalPrefix
}

func laneActive(lanes []bool, i int) bool {
	return i >= 0 && i < len(lanes) && lanes[i]
}

// truncate cuts a styled line to width without breaking ANSI sequences.
func truncate(line string, width int) string {
	if width <= 0 {
		return line
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

// rowHeight is the number of lines revision i occupies in the flat view.
func (m Model) rowHeight(i int) int {
	h := 2
	if i == m.state.Selected && m.showDiff && m.state.Repo.Revisions[i].WorkingCopy {
		h += len(visibleFiles(m.state.Repo.Files))
	}
	return h
}

// selectedBlockBounds locates the selected revision's line range in the
// flat view, for scroll clamping.
func (m Model) selectedBlockBounds() (start, end, total int) {
	if m.state.Repo == nil {
		return 0, 0, 0
	}
	for i := range m.state.Repo.Revisions {
		h := m.rowHeight(i)
		if i == m.state.Selected {
			start = total
			end = total + h - 1
		}
		total += h
	}
	if len(m.state.Layout.Terminal) > 0 {
		total++
	}
	return start, end, total
}

// clampScroll keeps the selected block fully visible while bounding the
// offset to the content.
func clampScroll(blockStart, blockEnd, offset, height, total int) int {
	if total <= height || height <= 0 {
		return 0
	}
	if blockStart < offset {
		offset = blockStart
	}
	if blockEnd >= offset+height {
		offset = blockEnd - height + 1
	}
	if offset < 0 {
		offset = 0
	}
	if maxOff := total - height; offset > maxOff {
		offset = maxOff
	}
	return offset
}
