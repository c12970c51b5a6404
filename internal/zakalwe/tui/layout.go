package tui

import (
	"regexp"
	"strings"
	"unicode/utf8"

	pkgtui "github.com/mistakeknot/zakalwe/pkg/tui"
)

const (
	layoutBreakpointSingle  = 50
	layoutBreakpointStacked = 80
)

const (
	LayoutModeSingle  = "single"
	LayoutModeStacked = "stacked"
	LayoutModeDual    = "dual"
)

func layoutMode(width int) string {
	switch {
	case width < layoutBreakpointSingle:
		return LayoutModeSingle
	case width < layoutBreakpointStacked:
		return LayoutModeStacked
	default:
		return LayoutModeDual
	}
}

func renderFrame(header, body, footer string) string {
	return strings.Join([]string{header, body, footer}, "\n")
}

func ensureExactHeight(content string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) > n {
		lines = lines[:n]
	} else if len(lines) < n {
		for len(lines) < n {
			lines = append(lines, "")
		}
	}
	return strings.Join(lines, "\n")
}

func ensureExactWidth(content string, width int) string {
	if width <= 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	result := make([]string, len(lines))
	for i, line := range lines {
		lineWidth := visibleWidth(line)
		if lineWidth == width {
			result[i] = line
			continue
		}
		if lineWidth < width {
			result[i] = line + strings.Repeat(" ", width-lineWidth)
			continue
		}
		result[i] = padRight(truncate(line, width), width)
	}
	return strings.Join(result, "\n")
}

// renderDualColumnLayout places the graph left and the diff right. The
// graph keeps a fixed share so deep descriptions cannot squeeze it out.
func renderDualColumnLayout(leftTitle, leftContent, rightTitle, rightContent string, width, height int, focus string) string {
	if height <= 0 {
		return ""
	}
	leftWidth := int(float64(width) * 0.45)
	rightWidth := width - leftWidth - 3
	if rightWidth < 1 {
		rightWidth = 1
	}
	panelTitleLines := 2
	panelContentHeight := height - panelTitleLines
	if panelContentHeight < 1 {
		panelContentHeight = 1
	}

	leftPanel := renderPanelTitle(leftTitle, leftWidth, focus == focusGraph) + "\n" +
		ensureExactHeight(leftContent, panelContentHeight)
	rightPanel := renderPanelTitle(rightTitle, rightWidth, focus == focusDiff) + "\n" +
		ensureExactHeight(rightContent, panelContentHeight)
	leftPanel = stylePanel(leftPanel, leftWidth, height, focus == focusGraph)
	rightPanel = stylePanel(rightPanel, rightWidth, height, focus == focusDiff)

	leftPanel = ensureExactHeight(leftPanel, height)
	rightPanel = ensureExactHeight(rightPanel, height)

	separatorLines := make([]string, height)
	for i := range separatorLines {
		separatorLines[i] = " │ "
	}
	separator := strings.Join(separatorLines, "\n")

	return joinHorizontal(leftPanel, separator, rightPanel, height)
}

func renderStackedLayout(listTitle, listContent, detailTitle, detailContent string, width, height int, focus string) string {
	if height <= 0 {
		return ""
	}
	listHeight := (height * 60) / 100
	previewHeight := height - listHeight - 1
	if listHeight < 3 {
		listHeight = 3
	}
	if previewHeight < 3 {
		previewHeight = 3
	}
	listPanel := renderPanelTitle(listTitle, width, focus == focusGraph) + "\n" +
		ensureExactHeight(listContent, listHeight-2)
	previewPanel := renderPanelTitle(detailTitle, width, focus == focusDiff) + "\n" +
		ensureExactHeight(detailContent, previewHeight-2)
	listPanel = stylePanel(listPanel, width, listHeight, focus == focusGraph)
	previewPanel = stylePanel(previewPanel, width, previewHeight, focus == focusDiff)
	return listPanel + "\n" + previewPanel
}

func renderSingleColumnLayout(listTitle, listContent string, width, height int) string {
	if height <= 0 {
		return ""
	}
	listPanel := renderPanelTitle(listTitle, width, true) + "\n" +
		ensureExactHeight(listContent, height-2)
	return stylePanel(listPanel, width, height, true)
}

func joinHorizontal(left, separator, right string, height int) string {
	if height <= 0 {
		return ""
	}
	leftLines := strings.Split(left, "\n")
	rightLines := strings.Split(right, "\n")
	sepLines := strings.Split(separator, "\n")
	for len(leftLines) < height {
		leftLines = append(leftLines, "")
	}
	for len(rightLines) < height {
		rightLines = append(rightLines, "")
	}
	for len(sepLines) < height {
		sepLines = append(sepLines, " │ ")
	}
	var b strings.Builder
	for i := 0; i < height; i++ {
		b.WriteString(leftLines[i])
		b.WriteString(sepLines[i])
		b.WriteString(rightLines[i])
		if i < height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func stylePanel(content string, width, height int, focused bool) string {
	style := pkgtui.PanelStyle
	if focused {
		style = pkgtui.PaneFocusedStyle.Padding(0, 1)
	}
	if width > 0 {
		style = style.Width(width)
	}
	if height > 0 {
		style = style.Height(height)
	}
	return style.Render(content)
}

// contentHeight is the body height between the header and footer bars.
func (m Model) contentHeight() int {
	if m.height <= 2 {
		return 0
	}
	return m.height - 2
}

// graphHeight estimates the visible line count inside the graph panel,
// used for scroll clamping. Panel chrome eats two border rows and two
// title rows.
func (m Model) graphHeight() int {
	h := m.contentHeight()
	if m.showDiff && layoutMode(m.width) == LayoutModeStacked {
		h = (h * 60) / 100
	}
	h -= 4
	if h < 1 {
		h = 1
	}
	return h
}

// graphWidth estimates the usable line width inside the graph panel.
func (m Model) graphWidth() int {
	w := m.width
	if m.showDiff && layoutMode(m.width) == LayoutModeDual {
		w = int(float64(m.width) * 0.45)
	}
	w -= 4
	if w < 10 {
		w = 10
	}
	return w
}

func padBodyToHeight(body string, height int) string {
	if height <= 0 {
		return body
	}
	lines := []string{""}
	if strings.TrimSpace(body) != "" {
		lines = strings.Split(body, "\n")
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func padRight(s string, width int) string {
	if visibleWidth(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visibleWidth(s))
}

func visibleWidth(s string) int {
	plain := ansiRegex.ReplaceAllString(s, "")
	return utf8.RuneCountInString(plain)
}
