package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines key bindings for the controller screen
type keyMap struct {
	PlayPause  key.Binding
	Next       key.Binding
	Previous   key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Equalizer  key.Binding
	Mode       key.Binding
	Refresh    key.Binding
	Command    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.Next, k.VolumeUp, k.VolumeDown, k.Command, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.Next, k.Previous},
		{k.VolumeUp, k.VolumeDown, k.Equalizer, k.Mode},
		{k.Refresh, k.Command, k.Help, k.Quit},
	}
}

func newKeyMap() keyMap {
	return keyMap{
		PlayPause: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "play/pause"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n/→", "next"),
		),
		Previous: key.NewBinding(
			key.WithKeys("b", "left"),
			key.WithHelp("b/←", "previous"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "volume up"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "volume down"),
		),
		Equalizer: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "next eq"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "next mode"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// commandKeyMap is shown while the command prompt is open
type commandKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

func (k commandKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}

func (k commandKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Submit, k.Cancel}}
}

func newCommandKeyMap() commandKeyMap {
	return commandKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
