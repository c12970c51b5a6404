package tui

import "github.com/charmbracelet/lipgloss"

// Base styles
var (
	// Container styles
	BaseStyle = lipgloss.NewStyle().
			Background(ColorBg).
			Foreground(ColorFg)

	// Full screen container - fills entire terminal with background
	FullScreenStyle = lipgloss.NewStyle().
			Background(ColorBg).
			Foreground(ColorFg)

	// Content container with padding
	ContentStyle = lipgloss.NewStyle().
			Background(ColorBg).
			Foreground(ColorFg).
			Padding(1, 3)

	// Card/Panel style with border and background
	CardStyle = lipgloss.NewStyle().
			Background(ColorBgLight).
			Foreground(ColorFg).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(1, 2)

	// Focused card
	CardFocusedStyle = lipgloss.NewStyle().
				Background(ColorBgLight).
				Foreground(ColorFg).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(1, 2)

	// Header bar style
	HeaderStyle = lipgloss.NewStyle().
			Background(ColorBgDark).
			Foreground(ColorFg).
			Bold(true)

	// Footer bar style
	FooterStyle = lipgloss.NewStyle().
			Background(ColorBgDark).
			Foreground(ColorMuted)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	// Pane focus styles - for two-pane layouts
	PaneFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder()).
				BorderForeground(ColorPrimary)

	PaneUnfocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorMuted)

	// Text styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorFgDim)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Status styles
	StatusRunning = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	StatusWaiting = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	StatusIdle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	// List item styles
	SelectedStyle = lipgloss.NewStyle().
			Background(ColorBgLight).
			Foreground(ColorFg).
			Bold(true)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(ColorFgDim)

	// Help styles
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Revision graph styles
var (
	NodeWorkingStyle = lipgloss.NewStyle().
				Foreground(ColorNodeWorking).
				Bold(true)

	NodeMutableStyle = lipgloss.NewStyle().
				Foreground(ColorNodeMutable).
				Bold(true)

	NodeImmutableStyle = lipgloss.NewStyle().
				Foreground(ColorNodeImmutable).
				Bold(true)

	NodeConflictStyle = lipgloss.NewStyle().
				Foreground(ColorConflict).
				Bold(true)

	BookmarkStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	AuthorStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	CommitIDStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Faint(true)

	DiffAddStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	DiffModifyStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	DiffRemoveStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	DiffConflictStyle = lipgloss.NewStyle().
				Foreground(ColorConflict).
				Bold(true)
)

// LaneStyle returns the style for graph lane i, cycling the palette.
func LaneStyle(i int) lipgloss.Style {
	if i < 0 {
		i = 0
	}
	return lipgloss.NewStyle().Foreground(LaneColors[i%len(LaneColors)])
}
