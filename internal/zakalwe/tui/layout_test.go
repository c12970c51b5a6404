package tui

import (
	"strings"
	"testing"
)

func TestLayoutModeSelection(t *testing.T) {
	if got := layoutMode(40); got != LayoutModeSingle {
		t.Fatalf("width 40 = %q", got)
	}
	if got := layoutMode(60); got != LayoutModeStacked {
		t.Fatalf("width 60 = %q", got)
	}
	if got := layoutMode(120); got != LayoutModeDual {
		t.Fatalf("width 120 = %q", got)
	}
}

func TestLayoutModeBoundaries(t *testing.T) {
	if got := layoutMode(layoutBreakpointSingle - 1); got != LayoutModeSingle {
		t.Fatalf("just under single = %q", got)
	}
	if got := layoutMode(layoutBreakpointSingle); got != LayoutModeStacked {
		t.Fatalf("at single breakpoint = %q", got)
	}
	if got := layoutMode(layoutBreakpointStacked - 1); got != LayoutModeStacked {
		t.Fatalf("just under stacked = %q", got)
	}
	if got := layoutMode(layoutBreakpointStacked); got != LayoutModeDual {
		t.Fatalf("at stacked breakpoint = %q", got)
	}
}

func TestRenderDualColumnLayoutJoinsHorizontally(t *testing.T) {
	out := renderDualColumnLayout("LOG (3)", "left body", "DIFF zaaaa", "right body", 100, 8, focusGraph)
	plain := stripAnsi(out)
	found := false
	for _, line := range strings.Split(plain, "\n") {
		if strings.Contains(line, "LOG (3)") && strings.Contains(line, "DIFF zaaaa") {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("titles not on one line:\n%s", plain)
	}
	if !strings.Contains(plain, " │ ") {
		t.Fatalf("column separator missing:\n%s", plain)
	}
}

func TestDualColumnLayoutMarksFocusedPane(t *testing.T) {
	out := stripAnsi(renderDualColumnLayout("LOG", "l", "DIFF", "d", 100, 8, focusGraph))
	if !strings.Contains(out, "┏") {
		t.Fatalf("focused pane needs a thick border:\n%s", out)
	}
	if !strings.Contains(out, "╭") {
		t.Fatalf("unfocused pane needs a rounded border:\n%s", out)
	}
}

func TestStackedLayoutOrdersPanels(t *testing.T) {
	out := stripAnsi(renderStackedLayout("LOG", "list", "DIFF", "detail", 60, 14, focusDiff))
	logAt := strings.Index(out, "LOG")
	diffAt := strings.Index(out, "DIFF")
	if logAt < 0 || diffAt < 0 || logAt > diffAt {
		t.Fatalf("panel order wrong (LOG at %d, DIFF at %d):\n%s", logAt, diffAt, out)
	}
}

func TestEnsureExactHeight(t *testing.T) {
	if got := ensureExactHeight("a\nb\nc\nd", 2); got != "a\nb" {
		t.Fatalf("truncate = %q", got)
	}
	got := ensureExactHeight("a", 3)
	if lines := strings.Split(got, "\n"); len(lines) != 3 {
		t.Fatalf("pad = %q", got)
	}
	if got := ensureExactHeight("anything", 0); got != "" {
		t.Fatalf("zero height = %q", got)
	}
}

func TestEnsureExactWidthIgnoresAnsiCodes(t *testing.T) {
	styled := "\x1b[31mred\x1b[0m"
	got := ensureExactWidth(styled, 8)
	if w := visibleWidth(got); w != 8 {
		t.Fatalf("width = %d, want 8: %q", w, got)
	}
	if !strings.Contains(got, "\x1b[31m") {
		t.Fatalf("styling stripped: %q", got)
	}
}

func TestPadBodyToHeight(t *testing.T) {
	got := padBodyToHeight("one\ntwo", 5)
	if lines := strings.Split(got, "\n"); len(lines) != 5 {
		t.Fatalf("padded to %d lines", len(lines))
	}
	got = padBodyToHeight("1\n2\n3\n4\n5\n6", 3)
	if lines := strings.Split(got, "\n"); len(lines) != 3 {
		t.Fatalf("truncated to %d lines", len(lines))
	}
}

func TestPadRightAndVisibleWidth(t *testing.T) {
	if got := padRight("ab", 5); got != "ab   " {
		t.Fatalf("padRight = %q", got)
	}
	if got := visibleWidth("\x1b[1m◉ node\x1b[0m"); got != 6 {
		t.Fatalf("visibleWidth = %d", got)
	}
	if got := padRight("already wide", 4); got != "already wide" {
		t.Fatalf("padRight should not cut: %q", got)
	}
}

func TestJoinHorizontalPadsShortColumns(t *testing.T) {
	sep := " │ \n │ \n │ "
	out := joinHorizontal("a\nb", sep, "x", 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d", len(lines))
	}
	for i, l := range lines {
		if !strings.Contains(l, "│") {
			t.Fatalf("line %d lost the separator: %q", i, l)
		}
	}
}
