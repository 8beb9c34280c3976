package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Accept key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "accept"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("C-u", "clear"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "abort"),
	),
}
