package tui

import (
	"github.com/charmbracelet/bubbles/key"

	pkgtui "github.com/mistakeknot/zakalwe/pkg/tui"
)

// opKeys are the repository operation bindings. Shared navigation and
// overlay keys come from pkgtui.CommonKeys; everything jj-specific
// lives here.
type opKeys struct {
	Describe       key.Binding
	Edit           key.Binding
	New            key.Binding
	Commit         key.Binding
	Snapshot       key.Binding
	Abandon        key.Binding
	Squash         key.Binding
	Split          key.Binding
	Resolve        key.Binding
	BookmarkSet    key.Binding
	BookmarkDelete key.Binding
	Undo           key.Binding
	Redo           key.Binding
	Fetch          key.Binding
	Push           key.Binding
	FilterMine     key.Binding
	FilterTrunk    key.Binding
	FilterConflict key.Binding
	Presets        key.Binding
	Reference      key.Binding
}

func newOpKeys() opKeys {
	return opKeys{
		Describe: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "describe"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new child"),
		),
		Commit: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "commit"),
		),
		Snapshot: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "snapshot"),
		),
		Abandon: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "abandon"),
		),
		Squash: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "squash"),
		),
		Split: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "split"),
		),
		Resolve: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "resolve conflicts"),
		),
		BookmarkSet: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "set bookmark"),
		),
		BookmarkDelete: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "delete bookmark"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("U"),
			key.WithHelp("U", "redo"),
		),
		Fetch: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "git fetch"),
		),
		Push: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "git push"),
		),
		FilterMine: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mine()"),
		),
		FilterTrunk: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "trunk()"),
		),
		FilterConflict: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "conflicts()"),
		),
		Presets: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "filter presets"),
		),
		Reference: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "revset reference"),
		),
	}
}

func (m Model) helpExtras() []pkgtui.HelpBinding {
	return []pkgtui.HelpBinding{
		pkgtui.HelpBindingFromKey(m.ops.Describe),
		pkgtui.HelpBindingFromKey(m.ops.Edit),
		pkgtui.HelpBindingFromKey(m.ops.New),
		pkgtui.HelpBindingFromKey(m.ops.Commit),
		pkgtui.HelpBindingFromKey(m.ops.Snapshot),
		pkgtui.HelpBindingFromKey(m.ops.Abandon),
		pkgtui.HelpBindingFromKey(m.ops.Squash),
		pkgtui.HelpBindingFromKey(m.ops.Split),
		pkgtui.HelpBindingFromKey(m.ops.Resolve),
		pkgtui.HelpBindingFromKey(m.ops.BookmarkSet),
		pkgtui.HelpBindingFromKey(m.ops.BookmarkDelete),
		pkgtui.HelpBindingFromKey(m.ops.Undo),
		pkgtui.HelpBindingFromKey(m.ops.Redo),
		pkgtui.HelpBindingFromKey(m.ops.Fetch),
		pkgtui.HelpBindingFromKey(m.ops.Push),
		pkgtui.HelpBindingFromKey(m.ops.FilterMine),
		pkgtui.HelpBindingFromKey(m.ops.FilterTrunk),
		pkgtui.HelpBindingFromKey(m.ops.FilterConflict),
		pkgtui.HelpBindingFromKey(m.ops.Presets),
		pkgtui.HelpBindingFromKey(m.ops.Reference),
	}
}
