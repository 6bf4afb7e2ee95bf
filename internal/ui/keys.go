package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the application
type KeyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Selection
	Select key.Binding

	// Task actions
	InsertBelow key.Binding
	InsertAbove key.Binding
	Edit        key.Binding
	Toggle      key.Binding
	Delete      key.Binding

	// Insert mode
	NextField key.Binding
	PrevField key.Binding
	Commit    key.Binding
	Cancel    key.Binding

	// General
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),

		Select: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "select"),
		),

		InsertBelow: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "new below"),
		),
		InsertAbove: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "new above"),
		),
		Edit: key.NewBinding(
			key.WithKeys("i", "enter"),
			key.WithHelp("i", "edit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("!"),
			key.WithHelp("!", "toggle done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev field"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "discard"),
		),

		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns short help bindings (for status bar)
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns full help bindings (for help view)
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Select, k.Toggle, k.Delete},
		{k.InsertBelow, k.InsertAbove, k.Edit},
		{k.NextField, k.PrevField, k.Commit, k.Cancel},
		{k.Help, k.Quit},
	}
}
