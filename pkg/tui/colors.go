// Package tui provides the shared terminal UI kit for zakalwe: the
// color palette, base styles, common keybindings, and the help overlay.
package tui

import "github.com/charmbracelet/lipgloss"

// Tokyo Night inspired color palette
var (
	ColorPrimary   = lipgloss.Color("#7aa2f7") // Blue
	ColorSecondary = lipgloss.Color("#bb9af7") // Purple
	ColorSuccess   = lipgloss.Color("#9ece6a") // Green
	ColorWarning   = lipgloss.Color("#e0af68") // Yellow
	ColorError     = lipgloss.Color("#f7768e") // Red
	ColorMuted     = lipgloss.Color("#565f89") // Gray
	ColorBg        = lipgloss.Color("#1a1b26") // Dark background
	ColorBgDark    = lipgloss.Color("#16161e") // Darker background (bars)
	ColorBgLight   = lipgloss.Color("#24283b") // Lighter background
	ColorFg        = lipgloss.Color("#c0caf5") // Foreground
	ColorFgDim     = lipgloss.Color("#a9b1d6") // Dimmed foreground

	// Revision graph colors
	ColorNodeWorking   = lipgloss.Color("#7aa2f7") // Working copy node
	ColorNodeMutable   = lipgloss.Color("#bb9af7") // Ordinary node
	ColorNodeImmutable = lipgloss.Color("#565f89") // Immutable node
	ColorConflict      = lipgloss.Color("#f7768e") // Conflicted node
)

// LaneColors is the cycling palette for graph lanes. Lane i renders
// with LaneColors[i % len(LaneColors)].
var LaneColors = []lipgloss.Color{
	lipgloss.Color("#f7768e"), // Red
	lipgloss.Color("#9ece6a"), // Green
	lipgloss.Color("#e0af68"), // Yellow
	lipgloss.Color("#7aa2f7"), // Blue
	lipgloss.Color("#bb9af7"), // Purple
	lipgloss.Color("#73daca"), // Teal
	lipgloss.Color("#ff9e64"), // Orange
}
