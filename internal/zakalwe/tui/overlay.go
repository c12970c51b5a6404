package tui

import (
	"strings"

	"github.com/mistakeknot/zakalwe/internal/zakalwe/app"
	"github.com/mistakeknot/zakalwe/internal/zakalwe/recovery"
	"github.com/mistakeknot/zakalwe/internal/zakalwe/revset"
	pkgtui "github.com/mistakeknot/zakalwe/pkg/tui"
)

func renderConfirmOverlay(message string) string {
	lines := []string{
		pkgtui.TitleStyle.Render("⚠  Confirm"),
		"",
		pkgtui.HelpDescStyle.Render(message),
		"",
		pkgtui.HelpKeyStyle.Render("enter") + pkgtui.HelpDescStyle.Render(" confirm") +
			pkgtui.HelpDescStyle.Render(" • ") +
			pkgtui.HelpKeyStyle.Render("esc") + pkgtui.HelpDescStyle.Render(" cancel"),
	}
	return pkgtui.CardFocusedStyle.Width(50).Render(strings.Join(lines, "\n"))
}

func renderErrorCard(errState *app.ErrorState, width int) string {
	title := "Error"
	if errState.Severity == recovery.SeverityCritical {
		title = "Critical"
	}
	lines := []string{
		pkgtui.StatusError.Render("✗ " + title + " (" + errState.Kind.String() + ")"),
		"",
		pkgtui.HelpDescStyle.Render(errState.Message),
	}
	if len(errState.Suggestions) > 0 {
		lines = append(lines, "")
		for _, s := range errState.Suggestions {
			lines = append(lines, pkgtui.HelpDescStyle.Render("• "+s))
		}
	}
	lines = append(lines, "",
		pkgtui.HelpKeyStyle.Render("esc")+pkgtui.HelpDescStyle.Render(" dismiss"))
	w := min(70, max(30, width-10))
	return pkgtui.CardFocusedStyle.Width(w).Render(strings.Join(lines, "\n"))
}

func (m Model) renderPresetsOverlay() string {
	return pkgtui.CardStyle.Render(m.presets.View())
}

func referenceLines() []string {
	lines := []string{pkgtui.TitleStyle.Render("Revset Reference"), ""}
	for _, cat := range revset.Reference() {
		lines = append(lines, pkgtui.SubtitleStyle.Render(cat.Name))
		for _, e := range cat.Entries {
			lines = append(lines, "  "+
				pkgtui.HelpKeyStyle.Render(padRight(e.Name, 24))+" "+
				pkgtui.HelpDescStyle.Render(e.Description))
		}
		lines = append(lines, "")
	}
	lines = append(lines, pkgtui.HelpDescStyle.Render("j/k scroll • esc close"))
	return lines
}

func (m Model) renderReferenceOverlay() string {
	lines := referenceLines()
	height := m.contentHeight() - 4
	if height < 3 {
		height = 3
	}
	start := min(m.refOffset, max(0, len(lines)-height))
	end := min(start+height, len(lines))
	w := min(76, max(40, m.width-8))
	return pkgtui.CardStyle.Width(w).Render(strings.Join(lines[start:end], "\n"))
}
