package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the TUI.
type KeyMap struct {
	// Timer
	StartPause key.Binding // Start, resume or pause the timer
	Stop       key.Binding // Stop and save the interval

	// Tags
	NextTag key.Binding
	PrevTag key.Binding

	// General
	Reload key.Binding // Re-read state from storage
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		StartPause: key.NewBinding(
			key.WithKeys(" ", "s"),
			key.WithHelp("space/s", "start/pause"),
		),
		Stop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "stop & save"),
		),
		NextTag: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tag"),
		),
		PrevTag: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tag"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
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

// ShortHelp returns the bindings shown in the compact help bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.StartPause, k.Stop, k.NextTag, k.Help, k.Quit}
}

// FullHelp returns the bindings shown when help is expanded.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.StartPause, k.Stop},
		{k.NextTag, k.PrevTag},
		{k.Reload, k.Help, k.Quit},
	}
}
