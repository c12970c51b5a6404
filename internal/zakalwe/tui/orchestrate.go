package tui

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mistakeknot/zakalwe/internal/zakalwe/app"
	"github.com/mistakeknot/zakalwe/internal/zakalwe/config"
	"github.com/mistakeknot/zakalwe/internal/zakalwe/graph"
	"github.com/mistakeknot/zakalwe/internal/zakalwe/jj"
	"github.com/mistakeknot/zakalwe/internal/zakalwe/recovery"
)

const (
	loadTimeout = 30 * time.Second
	opTimeout   = 2 * time.Minute
)

// runCommands turns reducer commands into bubbletea commands. Every
// completion comes back as an actionMsg, so results re-enter the
// reducer on the event loop like any other action.
func (m Model) runCommands(cmds []app.Command) tea.Cmd {
	if len(cmds) == 0 {
		return nil
	}
	out := make([]tea.Cmd, 0, len(cmds))
	for _, c := range cmds {
		switch c := c.(type) {
		case app.LoadRepo:
			out = append(out, m.loadRepo(c))
		case app.LoadDiff:
			out = append(out, m.loadDiff(c))
		case app.RunOp:
			out = append(out, m.runOp(c))
		case app.RunInteractive:
			out = append(out, m.runInteractive(c))
		case app.PersistFilters:
			out = append(out, persistFilters(c))
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return tea.Batch(out...)
}

// loadRepo fetches the snapshot and computes its layout off the event
// loop, so RepoLoaded lands atomically: revisions and geometry always
// match.
func (m Model) loadRepo(c app.LoadRepo) tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		status, err := engine.Load(ctx, c.Revset, c.Limit)
		if err != nil {
			return actionMsg{app.RepoLoaded{Seq: c.Seq(), Err: classify(err)}}
		}
		layout, layoutErr := graph.Compute(status.Revisions)
		note := ""
		if layoutErr != nil {
			note = "graph degraded: " + layoutErr.Error()
			slog.Warn("graph layout failed", "error", layoutErr)
		}
		return actionMsg{app.RepoLoaded{
			Seq:        c.Seq(),
			Status:     *status,
			Layout:     layout,
			LayoutNote: note,
			Preserve:   c.Preserve,
		}}
	}
}

// loadDiff renders failure text into the pane instead of raising an
// error card; a missing diff should not interrupt navigation.
func (m Model) loadDiff(c app.LoadDiff) tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		text, err := engine.Diff(ctx, c.RevisionID)
		if err != nil {
			text = "diff unavailable: " + err.Error()
		}
		return actionMsg{app.DiffLoaded{Seq: c.Seq(), RevisionID: c.RevisionID, Text: text}}
	}
}

func (m Model) runOp(c app.RunOp) tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		err := dispatchOp(ctx, engine, c)
		done := app.OperationCompleted{Seq: c.Seq(), Name: c.Name, At: time.Now()}
		if err != nil {
			done.Err = classify(err)
		}
		return actionMsg{done}
	}
}

func dispatchOp(ctx context.Context, engine jj.Engine, c app.RunOp) error {
	arg := func(i int) string {
		if i < len(c.Args) {
			return c.Args[i]
		}
		return ""
	}
	switch c.Op {
	case app.OpDescribe:
		return engine.Describe(ctx, arg(0), arg(1))
	case app.OpEdit:
		return engine.Edit(ctx, arg(0))
	case app.OpNewChild:
		return engine.NewChild(ctx, arg(0))
	case app.OpCommit:
		return engine.Commit(ctx, arg(0))
	case app.OpSnapshot:
		return engine.Snapshot(ctx)
	case app.OpAbandon:
		return engine.Abandon(ctx, arg(0))
	case app.OpSquash:
		return engine.Squash(ctx, arg(0))
	case app.OpBookmarkSet:
		return engine.SetBookmark(ctx, arg(0), arg(1))
	case app.OpBookmarkDelete:
		return engine.DeleteBookmark(ctx, arg(0))
	case app.OpUndo:
		return engine.Undo(ctx)
	case app.OpRedo:
		return engine.Redo(ctx)
	case app.OpFetch:
		return engine.Fetch(ctx)
	case app.OpPush:
		return engine.Push(ctx)
	}
	return fmt.Errorf("unknown operation %q", c.Name)
}

// runInteractive hands the terminal to the external tool. The callback
// fires on both exit and spawn failure, so the suspended state always
// resolves.
func (m Model) runInteractive(c app.RunInteractive) tea.Cmd {
	var cmd *exec.Cmd
	name := "interactive"
	switch c.Kind {
	case app.InteractiveResolve:
		cmd = m.engine.ResolveCmd(c.Target)
		name = "resolve"
	case app.InteractiveSplit:
		cmd = m.engine.SplitCmd(c.Target)
		name = "split"
	}
	seq := c.Seq()
	if cmd == nil {
		return func() tea.Msg {
			return actionMsg{app.OperationCompleted{
				Seq: seq, Name: name, At: time.Now(),
				Err: &app.ErrorState{
					Message:  fmt.Sprintf("%s is not available", name),
					Severity: recovery.SeverityError,
					At:       time.Now(),
				},
			}}
		}
	}
	return m.execProcess(cmd, func(err error) tea.Msg {
		done := app.OperationCompleted{Seq: seq, Name: name, At: time.Now()}
		if err != nil {
			done.Err = classify(err)
		}
		return actionMsg{done}
	})
}

func persistFilters(c app.PersistFilters) tea.Cmd {
	return func() tea.Msg {
		if err := config.SaveRecentFilters(c.Filters); err != nil {
			slog.Warn("filter history save failed", "error", err)
		}
		return nil
	}
}

// classify turns engine failure text into a displayable ErrorState.
func classify(err error) *app.ErrorState {
	msg := strings.TrimSpace(err.Error())
	res := recovery.Classify(msg)
	return &app.ErrorState{
		Message:     msg,
		Kind:        res.Kind,
		Severity:    res.Severity,
		Suggestions: res.Suggestions,
		At:          time.Now(),
	}
}
