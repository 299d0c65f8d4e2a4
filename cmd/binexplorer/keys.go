package main

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	NextDiff key.Binding
	PrevDiff key.Binding

	// View
	ToggleMode key.Binding
	CycleWidth key.Binding
	Tab        key.Binding

	// Editing
	Select    key.Binding
	Edit      key.Binding
	CopyToB   key.Binding
	CopyToA   key.Binding
	Revert    key.Binding
	Save      key.Binding
	Export    key.Binding
	Clipboard key.Binding

	// Prompt
	Enter key.Binding
	Esc   key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "go to bottom"),
		),
		NextDiff: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next difference"),
		),
		PrevDiff: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "prev difference"),
		),

		ToggleMode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "hex/binary"),
		),
		CycleWidth: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "row width"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch side"),
		),

		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select row"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit rows"),
		),
		CopyToB: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "copy rows A→B"),
		),
		CopyToA: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "copy rows B→A"),
		),
		Revert: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "revert side"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save side"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export report"),
		),
		Clipboard: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy row hex"),
		),

		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Esc: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
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

// ShortHelp returns key bindings for the status line
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.NextDiff,
		k.Tab,
		k.Select,
		k.Edit,
		k.CopyToB,
		k.Save,
		k.Help,
		k.Quit,
	}
}

// FullHelp returns all key bindings grouped for the help overlay
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End, k.NextDiff, k.PrevDiff},
		{k.ToggleMode, k.CycleWidth, k.Tab},
		{k.Select, k.Edit, k.CopyToB, k.CopyToA, k.Revert, k.Save, k.Export, k.Clipboard},
		{k.Help, k.Quit},
	}
}
