package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	DragLeft  key.Binding
	DragRight key.Binding
	Release   key.Binding
	Cancel    key.Binding
	Open      key.Binding
	Toggle    key.Binding
	Reload    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		DragLeft:  key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "swipe left")),
		DragRight: key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "swipe right")),
		Release:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "release")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel swipe")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Toggle:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "read/unread")),
		Reload:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.DragLeft, k.Release, k.Toggle, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Toggle},
		{k.DragLeft, k.DragRight, k.Release, k.Cancel},
		{k.Reload, k.Help, k.Quit},
	}
}
