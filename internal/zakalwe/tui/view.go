package tui

import (
	"fmt"
	"strings"

	"github.com/mistakeknot/zakalwe/internal/zakalwe/app"
	"github.com/mistakeknot/zakalwe/internal/zakalwe/recovery"
	pkgtui "github.com/mistakeknot/zakalwe/pkg/tui"
)

func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	header := m.renderHeader()
	footer := m.renderFooter()

	var body string
	switch {
	case m.help.Visible:
		body = m.help.Render(m.keys, m.helpExtras(), m.width)
	case m.overlay == overlayPresets:
		body = m.renderPresetsOverlay()
	case m.overlay == overlayReference:
		body = m.renderReferenceOverlay()
	case m.state.Mode == app.ModeConfirm && m.state.Confirm != nil:
		body = renderConfirmOverlay(m.state.Confirm.Message)
	case m.state.Err != nil && m.state.Err.Severity >= recovery.SeverityError:
		body = renderErrorCard(m.state.Err, m.width)
	default:
		body = m.renderMain()
	}

	body = padBodyToHeight(body, m.contentHeight())
	return renderFrame(header, body, footer)
}

func (m Model) renderMain() string {
	contentHeight := m.contentHeight()
	panelWidth := m.width - 2
	graphContent := m.renderGraphContent(m.graphHeight(), m.graphWidth())

	if !m.showDiff || layoutMode(m.width) == LayoutModeSingle {
		return renderSingleColumnLayout(m.graphTitle(), graphContent, panelWidth, contentHeight)
	}

	diffContent := m.renderDiffContent(m.diffHeight(), m.diffWidth())
	if layoutMode(m.width) == LayoutModeStacked {
		return renderStackedLayout(m.graphTitle(), graphContent, m.diffTitle(), diffContent,
			panelWidth, contentHeight, m.focus)
	}
	return renderDualColumnLayout(m.graphTitle(), graphContent, m.diffTitle(), diffContent,
		panelWidth, contentHeight, m.focus)
}

func (m Model) renderGraphContent(height, width int) string {
	repo := m.state.Repo
	if repo == nil {
		if m.state.Err != nil {
			return ""
		}
		return "\n " + m.spin.View() + " Loading repository..."
	}
	if len(repo.Revisions) == 0 {
		return "\n " + pkgtui.SubtitleStyle.Render(emptyMessage(m.state.Revset))
	}
	lines := m.renderGraphRows(width)
	start := m.viewOffset
	if start > len(lines) {
		start = len(lines)
	}
	end := min(start+height, len(lines))
	return strings.Join(lines[start:end], "\n")
}

func emptyMessage(revset string) string {
	switch revset {
	case "":
		return "Repository is empty"
	case "conflicts()":
		return "🎉 No Conflicts Found"
	default:
		return "No results for: " + revset
	}
}

func (m Model) renderDiffContent(height, width int) string {
	sel := m.state.SelectedRevision()
	if sel == nil {
		return pkgtui.SubtitleStyle.Render("No revision selected.")
	}
	if m.state.DiffFor != sel.ID {
		return m.spin.View() + " loading diff..."
	}
	text := m.state.Diff
	if strings.TrimSpace(text) == "" {
		return pkgtui.SubtitleStyle.Render("(no changes)")
	}
	lines := strings.Split(text, "\n")
	start := min(m.diffOffset, max(0, len(lines)-height))
	end := min(start+height, len(lines))
	out := make([]string, 0, end-start)
	for _, line := range lines[start:end] {
		out = append(out, truncate(diffLine(line), width))
	}
	return strings.Join(out, "\n")
}

func diffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "+"):
		return pkgtui.DiffAddStyle.Render(line)
	case strings.HasPrefix(line, "-"):
		return pkgtui.DiffRemoveStyle.Render(line)
	case strings.HasPrefix(line, "@@"),
		strings.HasPrefix(line, "diff "),
		strings.HasPrefix(line, "Modified "),
		strings.HasPrefix(line, "Added "),
		strings.HasPrefix(line, "Removed "):
		return pkgtui.TitleStyle.Render(line)
	default:
		return line
	}
}

func (m Model) graphTitle() string {
	if m.state.Repo == nil {
		return "LOG"
	}
	n := len(m.state.Repo.Revisions)
	if m.state.Repo.HasMore {
		return fmt.Sprintf("LOG (%d+)", n)
	}
	return fmt.Sprintf("LOG (%d)", n)
}

func (m Model) diffTitle() string {
	if sel := m.state.SelectedRevision(); sel != nil {
		return "DIFF " + sel.ChangeID
	}
	return "DIFF"
}

// diffHeight estimates the visible line count inside the diff panel.
func (m Model) diffHeight() int {
	h := m.contentHeight()
	if layoutMode(m.width) == LayoutModeStacked {
		h = h - (h*60)/100 - 1
	}
	h -= 4
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) diffWidth() int {
	w := m.width
	if layoutMode(m.width) == LayoutModeDual {
		w -= int(float64(m.width)*0.45) + 3
	}
	w -= 4
	if w < 10 {
		w = 10
	}
	return w
}

func (m Model) diffLineCount() int {
	if m.state.Diff == "" {
		return 0
	}
	return strings.Count(m.state.Diff, "\n") + 1
}
