package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Add        key.Binding
	Toggle     key.Binding
	Today      key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Completed  key.Binding
	Filter     key.Binding
	Reload     key.Binding
	ClearOrEsc key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	NextTab:    key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next tab")),
	PrevTab:    key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev tab")),
	Add:        key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "add")),
	Toggle:     key.NewBinding(key.WithKeys("enter", " ", "x"), key.WithHelp("x", "done")),
	Today:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	Completed:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "completed")),
	Filter:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	ClearOrEsc: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Today, k.Edit, k.Delete, k.Completed, k.Filter, k.NextTab, k.Quit}
}
