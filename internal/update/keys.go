package update

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit      key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Command   key.Binding
	ForceQuit key.Binding

	Down     key.Binding
	Up       key.Binding
	PrevList key.Binding
	NextList key.Binding
	Add      key.Binding
	AddSub   key.Binding
	Edit     key.Binding
	Mark     key.Binding
	Delete   key.Binding
	Expand   key.Binding
	Yank     key.Binding

	ToggleDelete key.Binding
	MoreTime     key.Binding
	LessTime     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		NextTab:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next tab")),
		PrevTab:   key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "prev tab")),
		Command:   key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),

		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		PrevList: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "prev list")),
		NextList: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "next list")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		AddSub:   key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add sub-task")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Mark:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mark")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Expand:   key.NewBinding(key.WithKeys("right", " "), key.WithHelp("→/space", "expand")),
		Yank:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yank")),

		ToggleDelete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete on completion")),
		MoreTime:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "longer errors")),
		LessTime:     key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "shorter errors")),
	}
}

// tabHelp lists the global bindings followed by the ones of a single tab.
type tabHelp struct {
	global []key.Binding
	local  []key.Binding
}

var _ help.KeyMap = tabHelp{}

func (h tabHelp) ShortHelp() []key.Binding {
	out := make([]key.Binding, 0, len(h.global)+len(h.local))
	out = append(out, h.global...)
	return append(out, h.local...)
}

func (h tabHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.global, h.local}
}

func (k keyMap) forTab(tab Tab) tabHelp {
	h := tabHelp{global: []key.Binding{k.Quit, k.NextTab, k.Command}}
	switch tab {
	case TabTasks:
		h.local = []key.Binding{k.Down, k.Up, k.PrevList, k.NextList, k.Add, k.AddSub, k.Edit, k.Mark, k.Delete, k.Expand, k.Yank}
	case TabOptions:
		h.local = []key.Binding{k.ToggleDelete, k.MoreTime, k.LessTime}
	}
	return h
}
