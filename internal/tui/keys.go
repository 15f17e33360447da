package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application-wide key bindings
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Movies key.Binding
	TV     key.Binding
	Search key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Movies: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "movies"),
		),
		TV: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "tv shows"),
		),
		Search: key.NewBinding(
			key.WithKeys("/", "s"),
			key.WithHelp("/", "search"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Keys is the global keymap instance
var Keys = DefaultKeyMap()
