package components

import "github.com/charmbracelet/bubbles/key"

// RowKeyMap defines key bindings for a focused row
type RowKeyMap struct {
	Left     key.Binding
	Right    key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Home     key.Binding
	End      key.Binding
	Select   key.Binding
	Filter   key.Binding
	Escape   key.Binding
}

// DefaultRowKeyMap returns the default row key bindings
func DefaultRowKeyMap() RowKeyMap {
	return RowKeyMap{
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "prev poster"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next poster"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "<", "shift+left"),
			key.WithHelp("[", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", ">", "shift+right"),
			key.WithHelp("]", "next page"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first poster"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last poster"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", "i"),
			key.WithHelp("enter", "details"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter row"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear filter"),
		),
	}
}

// OverlayKeyMap defines key bindings for the details overlay and trailer
type OverlayKeyMap struct {
	Close key.Binding
	Play  key.Binding
	Mute  key.Binding
}

// DefaultOverlayKeyMap returns the default overlay key bindings
func DefaultOverlayKeyMap() OverlayKeyMap {
	return OverlayKeyMap{
		Close: key.NewBinding(
			key.WithKeys("esc", "q", "x", "backspace"),
			key.WithHelp("esc", "close"),
		),
		Play: key.NewBinding(
			key.WithKeys("p", "enter"),
			key.WithHelp("p", "play trailer"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute/unmute"),
		),
	}
}

// SearchKeyMap defines key bindings for the search results grid
type SearchKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Select   key.Binding
	LoadMore key.Binding
}

// DefaultSearchKeyMap returns the default search grid key bindings
func DefaultSearchKeyMap() SearchKeyMap {
	return SearchKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "right"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", "i"),
			key.WithHelp("enter", "details"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "load more"),
		),
	}
}

var (
	rowKeys     = DefaultRowKeyMap()
	overlayKeys = DefaultOverlayKeyMap()
	searchKeys  = DefaultSearchKeyMap()
)
