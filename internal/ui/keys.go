package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the client's keyboard bindings.
type KeyMap struct {
	Draw     key.Binding
	Undo     key.Binding
	Hint     key.Binding
	Collect  key.Binding
	New      key.Binding
	Solvable key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() KeyMap {
	return KeyMap{
		Draw: key.NewBinding(
			key.WithKeys("d", " "),
			key.WithHelp("d/space", "draw"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		Hint: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "hint"),
		),
		Collect: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "collect"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new game"),
		),
		Solvable: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "new solvable game"),
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

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Draw, k.Undo, k.Hint, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Draw, k.Undo, k.Hint, k.Collect},
		{k.New, k.Solvable, k.Help, k.Quit},
	}
}
