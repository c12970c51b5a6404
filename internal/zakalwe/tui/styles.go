package tui

import (
	"strings"

	"github.com/mistakeknot/zakalwe/internal/zakalwe/app"
	"github.com/mistakeknot/zakalwe/internal/zakalwe/recovery"
	pkgtui "github.com/mistakeknot/zakalwe/pkg/tui"
)

func (m Model) renderHeader() string {
	label := "ZAKALWE"
	if repo := m.state.Repo; repo != nil {
		label += " | " + repo.RepoName
		if repo.OperationID != "" {
			label += " @ " + shortID(repo.OperationID)
		}
		if repo.WorkspaceID != "" && repo.WorkspaceID != "default" {
			label += " (" + repo.WorkspaceID + ")"
		}
	}
	if m.state.Revset != "" {
		label += " | " + m.state.Revset
	}
	label += " | [" + m.currentFocus() + "]"
	return pkgtui.TitleStyle.Render(label)
}

func (m Model) currentFocus() string {
	switch {
	case m.help.Visible:
		return "HELP"
	case m.overlay == overlayPresets:
		return "PRESETS"
	case m.overlay == overlayReference:
		return "REFERENCE"
	}
	switch m.state.Mode {
	case app.ModeConfirm:
		return "CONFIRM"
	case app.ModeInput:
		return "INPUT"
	case app.ModeSuspended:
		return "SUSPENDED"
	}
	return m.focus
}

// renderFooter shows key hints and the status slot; in input mode the
// whole line belongs to the input widget.
func (m Model) renderFooter() string {
	if m.state.Mode == app.ModeInput {
		return m.input.View()
	}
	keys := pkgtui.HelpDescStyle.Render("KEYS: " + m.footerKeys() + " | ")
	return keys + m.footerStatus()
}

func (m Model) footerKeys() string {
	if m.state.Mode == app.ModeConfirm {
		return "enter confirm  esc cancel"
	}
	switch m.overlay {
	case overlayPresets:
		return "j/k move  enter apply  esc close"
	case overlayReference:
		return "j/k scroll  esc close"
	}
	return "j/k move  enter diff  tab focus  / filter  d describe  n new  s snapshot  u undo  ? help  q quit"
}

func (m Model) footerStatus() string {
	switch {
	case m.state.Busy():
		return m.spin.View() + " " + pkgtui.StatusWaiting.Render(m.state.PendingOpName+"...")
	case m.state.Loading:
		return m.spin.View() + " " + pkgtui.LabelStyle.Render("loading")
	case m.state.Err != nil && m.state.Err.Severity < recovery.SeverityError:
		return pkgtui.StatusWaiting.Render(m.state.Err.Message)
	case m.state.Status != "":
		return pkgtui.StatusRunning.Render(m.state.Status)
	case m.state.LayoutNote != "":
		return pkgtui.StatusWaiting.Render(m.state.LayoutNote)
	}
	return pkgtui.StatusIdle.Render("ready")
}

func renderPanelTitle(title string, width int, focused bool) string {
	style := pkgtui.TitleStyle
	if !focused {
		style = pkgtui.LabelStyle
	}
	line := strings.Repeat("─", max(0, width))
	return style.Render(title) + "\n" + pkgtui.LabelStyle.Render(line)
}

func shortID(id string) string {
	runes := []rune(id)
	if len(runes) <= 8 {
		return id
	}
	return string(runes[:8])
}
