package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the shell-level keybindings. Panes and the menu add their
// own while they have focus.
type KeyMap struct {
	Quit          key.Binding
	Menu          key.Binding
	Tab           key.Binding
	ToggleConsole key.Binding
	Help          key.Binding
	Up            key.Binding
	Down          key.Binding
	Select        key.Binding
	Back          key.Binding
	Filter        key.Binding
	Copy          key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
		Menu: key.NewBinding(
			key.WithKeys("f10", "m"),
			key.WithHelp("f10/m", "menu"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "menu/content"),
		),
		ToggleConsole: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "toggle log"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear/close"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter staff"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy details"),
		),
	}
}

// ShortHelp implements help.KeyMap for the application key bindings.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Menu, k.ToggleConsole, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap for the application key bindings.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Menu, k.Tab, k.ToggleConsole},
		{k.Up, k.Down, k.Select, k.Back},
		{k.Filter, k.Copy},
		{k.Help, k.Quit},
	}
}
