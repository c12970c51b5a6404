// Package tui is the bubbletea front end: it owns presentation state,
// translates key presses into actions, renders the state the reducer
// produces, and executes the commands it returns.
package tui

import (
	"log/slog"
	"os/exec"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mistakeknot/zakalwe/internal/zakalwe/app"
	"github.com/mistakeknot/zakalwe/internal/zakalwe/config"
	"github.com/mistakeknot/zakalwe/internal/zakalwe/jj"
	"github.com/mistakeknot/zakalwe/internal/zakalwe/recovery"
	"github.com/mistakeknot/zakalwe/internal/zakalwe/revset"
	pkgtui "github.com/mistakeknot/zakalwe/pkg/tui"
)

const (
	focusGraph = "LOG"
	focusDiff  = "DIFF"
)

const (
	overlayNone      = ""
	overlayPresets   = "presets"
	overlayReference = "reference"
)

// Messages
type actionMsg struct{ action app.Action }
type externalMsg struct{ ok bool }
type tickMsg time.Time

// Model is the main TUI model. Repository state lives in m.state and
// changes only through app.Reduce; the model owns presentation state
// (sizes, offsets, focus, overlays) and runs the commands the reducer
// emits.
type Model struct {
	state  app.AppState
	engine jj.Engine

	keys pkgtui.CommonKeys
	ops  opKeys
	help pkgtui.HelpOverlay

	input   textinput.Model
	presets list.Model
	spin    spinner.Model

	width  int
	height int

	focus      string
	showDiff   bool
	overlay    string
	viewOffset int
	diffOffset int
	refOffset  int
	lastDiff   string

	external <-chan struct{}

	// execProcess is swappable so tests can intercept the terminal
	// handoff.
	execProcess func(*exec.Cmd, tea.ExecCallback) tea.Cmd
	sessionPath string
	startAction app.Start
}

// New builds the model. The previous session's filter and selection
// seed the first load; external, when non-nil, delivers repository
// change notifications from the filesystem watcher.
func New(engine jj.Engine, cfg config.Config, external <-chan struct{}) Model {
	st := app.New(cfg.PageSize)
	st.Recent = config.LoadRecentFilters()

	sessionPath, _ := SessionPath()
	session := LoadSession(sessionPath)
	rv := session.Revset
	if rv == "" {
		rv = cfg.DefaultRevset
	}

	input := textinput.New()
	input.CharLimit = 256

	sp := spinner.New()
	sp.Spinner = spinner.Pulse

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = pkgtui.SelectedStyle
	delegate.Styles.NormalTitle = pkgtui.UnselectedStyle
	presets := list.New(nil, delegate, 0, 0)
	presets.Title = "Revset Presets"
	presets.SetShowStatusBar(false)
	presets.SetFilteringEnabled(false)

	return Model{
		state:       st,
		engine:      engine,
		keys:        pkgtui.NewCommonKeys(),
		ops:         newOpKeys(),
		help:        pkgtui.NewHelpOverlay(),
		input:       input,
		presets:     presets,
		spin:        sp,
		focus:       focusGraph,
		showDiff:    session.ShowDiff,
		external:    external,
		execProcess: tea.ExecProcess,
		sessionPath: sessionPath,
		startAction: app.Start{Revset: rv, Preserve: session.SelectedID},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.dispatch(m.startAction),
		m.tick(),
		m.spin.Tick,
		m.waitExternal(),
	)
}

func (m Model) dispatch(a app.Action) tea.Cmd {
	return func() tea.Msg { return actionMsg{action: a} }
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// waitExternal blocks on the watcher channel and re-arms after every
// message. A closed channel stops the loop.
func (m Model) waitExternal() tea.Cmd {
	if m.external == nil {
		return nil
	}
	ch := m.external
	return func() tea.Msg {
		_, ok := <-ch
		return externalMsg{ok: ok}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		if msg.Height > 0 {
			m.height = msg.Height
		}
		m.presets.SetSize(min(70, max(20, m.width-8)), max(10, m.height-8))
		m.input.Width = max(20, m.width-4)
		return m, nil

	case tickMsg:
		next, cmd := m.apply(app.Tick{Now: time.Time(msg)})
		return next, tea.Batch(cmd, next.tick())

	case externalMsg:
		if !msg.ok {
			return m, nil
		}
		next, cmd := m.apply(app.ExternalChange{})
		return next, tea.Batch(cmd, next.waitExternal())

	case actionMsg:
		return m.apply(msg.action)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case pkgtui.ToggleHelpMsg:
		m.help.Toggle()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// apply runs one action through the reducer, then reconciles the
// widgets that mirror reducer-owned state.
func (m Model) apply(a app.Action) (Model, tea.Cmd) {
	prevMode := m.state.Mode
	next, cmds := app.Reduce(m.state, a)
	m.state = next
	m.syncInput(prevMode)
	m.syncScroll()
	return m, m.runCommands(cmds)
}

func (m *Model) syncInput(prevMode app.Mode) {
	entering := m.state.Mode == app.ModeInput && prevMode != app.ModeInput
	leaving := m.state.Mode != app.ModeInput && prevMode == app.ModeInput
	if entering {
		m.input.Prompt = inputPrompt(m.state.Input)
		m.input.SetValue(m.state.InputSeed)
		m.input.CursorEnd()
		m.input.Focus()
	}
	if leaving {
		m.input.Blur()
		m.input.SetValue("")
	}
}

func inputPrompt(kind app.InputKind) string {
	switch kind {
	case app.InputDescribe:
		return "describe: "
	case app.InputCommitMessage:
		return "commit: "
	case app.InputBookmarkSet:
		return "bookmark: "
	case app.InputFilter:
		return "revset: "
	}
	return "> "
}

func (m *Model) syncScroll() {
	if m.state.DiffFor != m.lastDiff {
		m.lastDiff = m.state.DiffFor
		m.diffOffset = 0
	}
	start, end, total := m.selectedBlockBounds()
	m.viewOffset = clampScroll(start, end, m.viewOffset, m.graphHeight(), total)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, even while an input line owns the letters.
	if msg.Type == tea.KeyCtrlC {
		m.saveSession()
		return m, tea.Quit
	}
	if m.help.Visible {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back) ||
			key.Matches(msg, m.keys.Quit) {
			m.help.Toggle()
		}
		return m, nil
	}
	switch m.overlay {
	case overlayPresets:
		return m.handlePresetsKey(msg)
	case overlayReference:
		return m.handleReferenceKey(msg)
	}
	switch m.state.Mode {
	case app.ModeInput:
		return m.handleInputKey(msg)
	case app.ModeConfirm:
		switch {
		case key.Matches(msg, m.keys.Select):
			return m.apply(app.ConfirmAccept{})
		case key.Matches(msg, m.keys.Back):
			return m.apply(app.ConfirmCancel{})
		}
		return m, nil
	case app.ModeSuspended:
		// The external tool owns the terminal.
		return m, nil
	}
	return m.handleNormalKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.apply(app.CancelInput{})
	case tea.KeyEnter:
		return m.apply(app.SubmitInput{Text: m.input.Value()})
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd := pkgtui.HandleCommon(msg, m.keys); cmd != nil {
		if key.Matches(msg, m.keys.Quit) {
			m.saveSession()
		}
		return m, cmd
	}
	switch {
	case key.Matches(msg, m.keys.Back):
		if m.state.Err != nil {
			return m.apply(app.DismissError{})
		}
		if m.state.Busy() {
			return m.apply(app.CancelPending{})
		}
		return m, nil

	case key.Matches(msg, m.keys.NavUp):
		if m.focus == focusDiff {
			m.diffOffset = max(m.diffOffset-1, 0)
			return m, nil
		}
		return m.apply(app.MoveSelection{Delta: -1})
	case key.Matches(msg, m.keys.NavDown):
		if m.focus == focusDiff {
			m.diffOffset = min(m.diffOffset+1, max(0, m.diffLineCount()-1))
			return m, nil
		}
		return m.apply(app.MoveSelection{Delta: 1})
	case key.Matches(msg, m.keys.Top):
		if m.focus == focusDiff {
			m.diffOffset = 0
			return m, nil
		}
		return m.apply(app.SelectFirst{})
	case key.Matches(msg, m.keys.Bottom):
		if m.focus == focusDiff {
			m.diffOffset = max(0, m.diffLineCount()-m.diffHeight())
			return m, nil
		}
		return m.apply(app.SelectLast{})

	case key.Matches(msg, m.keys.Refresh):
		return m.apply(app.Refresh{})
	case key.Matches(msg, m.keys.TabCycle):
		if m.showDiff {
			if m.focus == focusGraph {
				m.focus = focusDiff
			} else {
				m.focus = focusGraph
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.Select):
		m.showDiff = !m.showDiff
		if !m.showDiff {
			m.focus = focusGraph
		}
		return m, nil
	case key.Matches(msg, m.keys.Search):
		return m.apply(app.EnterInput{Kind: app.InputFilter})

	case key.Matches(msg, m.ops.Describe):
		return m.apply(app.EnterInput{Kind: app.InputDescribe})
	case key.Matches(msg, m.ops.Commit):
		return m.apply(app.EnterInput{Kind: app.InputCommitMessage})
	case key.Matches(msg, m.ops.BookmarkSet):
		return m.apply(app.EnterInput{Kind: app.InputBookmarkSet})
	case key.Matches(msg, m.ops.BookmarkDelete):
		return m.deleteBookmark()
	case key.Matches(msg, m.ops.Edit):
		return m.apply(app.EditIntent{})
	case key.Matches(msg, m.ops.New):
		return m.apply(app.NewChildIntent{})
	case key.Matches(msg, m.ops.Snapshot):
		return m.apply(app.SnapshotIntent{})
	case key.Matches(msg, m.ops.Abandon):
		return m.apply(app.AbandonIntent{})
	case key.Matches(msg, m.ops.Squash):
		return m.apply(app.SquashIntent{})
	case key.Matches(msg, m.ops.Split):
		return m.apply(app.SplitIntent{})
	case key.Matches(msg, m.ops.Resolve):
		return m.apply(app.ResolveIntent{})
	case key.Matches(msg, m.ops.Undo):
		return m.apply(app.UndoIntent{})
	case key.Matches(msg, m.ops.Redo):
		return m.apply(app.RedoIntent{})
	case key.Matches(msg, m.ops.Fetch):
		return m.apply(app.FetchIntent{})
	case key.Matches(msg, m.ops.Push):
		return m.apply(app.PushIntent{})

	case key.Matches(msg, m.ops.FilterMine):
		return m.apply(app.ApplyFilter{Expr: "mine()"})
	case key.Matches(msg, m.ops.FilterTrunk):
		return m.apply(app.ApplyFilter{Expr: "trunk()"})
	case key.Matches(msg, m.ops.FilterConflict):
		return m.apply(app.ApplyFilter{Expr: "conflicts()"})
	case key.Matches(msg, m.ops.Presets):
		m.openPresets()
		return m, nil
	case key.Matches(msg, m.ops.Reference):
		m.overlay = overlayReference
		m.refOffset = 0
		return m, nil
	}
	return m, nil
}

// deleteBookmark resolves the bookmark name from the selection before
// dispatching; the confirm gate runs in the reducer.
func (m Model) deleteBookmark() (tea.Model, tea.Cmd) {
	sel := m.state.SelectedRevision()
	if sel == nil || len(sel.Bookmarks) == 0 {
		return m.apply(app.ErrorOccurred{Err: app.ErrorState{
			Message:  "No bookmark on the selected revision.",
			Severity: recovery.SeverityWarning,
			At:       time.Now(),
		}})
	}
	return m.apply(app.BookmarkDeleteIntent{Name: sel.Bookmarks[0]})
}

func (m Model) handlePresetsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.overlay = overlayNone
		return m, nil
	case key.Matches(msg, m.keys.Select):
		item, ok := m.presets.SelectedItem().(presetItem)
		m.overlay = overlayNone
		if !ok {
			return m, nil
		}
		return m.apply(app.ApplyFilter{Expr: item.expr})
	}
	var cmd tea.Cmd
	m.presets, cmd = m.presets.Update(msg)
	return m, cmd
}

func (m Model) handleReferenceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.ops.Reference):
		m.overlay = overlayNone
	case key.Matches(msg, m.keys.NavDown):
		m.refOffset = min(m.refOffset+1, max(0, len(referenceLines())-3))
	case key.Matches(msg, m.keys.NavUp):
		if m.refOffset > 0 {
			m.refOffset--
		}
	case key.Matches(msg, m.keys.Top):
		m.refOffset = 0
	}
	return m, nil
}

// openPresets rebuilds the overlay list: recent filters first, then
// the built-in catalog.
func (m *Model) openPresets() {
	items := make([]list.Item, 0, len(m.state.Recent)+len(revset.Presets()))
	for _, r := range m.state.Recent {
		items = append(items, presetItem{expr: r, desc: "recent"})
	}
	for _, p := range revset.Presets() {
		items = append(items, presetItem{expr: p.Expr, desc: p.Description})
	}
	m.presets.SetItems(items)
	m.presets.ResetSelected()
	m.overlay = overlayPresets
}

type presetItem struct{ expr, desc string }

func (i presetItem) Title() string       { return i.expr }
func (i presetItem) Description() string { return i.desc }
func (i presetItem) FilterValue() string { return i.expr + " " + i.desc }

func (m Model) saveSession() {
	sel := ""
	if r := m.state.SelectedRevision(); r != nil {
		sel = r.ID
	}
	st := SessionState{Revset: m.state.Revset, SelectedID: sel, ShowDiff: m.showDiff}
	if err := SaveSession(m.sessionPath, st); err != nil {
		slog.Warn("session save failed", "error", err)
	}
}
