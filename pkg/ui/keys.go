package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
)

// KeyMap holds the reader's bindings. Page turns come from nav.KeyAction and
// are listed here only so the help overlay can show them.
type KeyMap struct {
	Next  key.Binding
	Prev  key.Binding
	Start key.Binding

	ScrollUp   key.Binding
	ScrollDown key.Binding
	PageUp     key.Binding
	PageDown   key.Binding

	Copy key.Binding
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:  key.NewBinding(key.WithKeys("right", "l", " "), key.WithHelp("→/l/space", "next page")),
		Prev:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous page")),
		Start: key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "back to cover")),

		ScrollUp:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		PageUp:     key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup/b", "scroll a screen up")),
		PageDown:   key.NewBinding(key.WithKeys("pgdown", "f"), key.WithHelp("pgdn/f", "scroll a screen down")),

		Copy: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy page text")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/esc", "quit")),
	}
}

// viewportKeys returns the viewport's default keymap with our scroll keys.
// Space is left out: it turns the page.
func (k KeyMap) viewportKeys() viewport.KeyMap {
	vk := viewport.DefaultKeyMap()
	vk.Up = k.ScrollUp
	vk.Down = k.ScrollDown
	vk.PageUp = k.PageUp
	vk.PageDown = k.PageDown
	vk.HalfPageUp = key.NewBinding(key.WithKeys("ctrl+u"))
	vk.HalfPageDown = key.NewBinding(key.WithKeys("ctrl+d"))
	return vk
}

// helpGroups lists bindings for the help overlay, in display order.
func (k KeyMap) helpGroups() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Start},
		{k.ScrollUp, k.ScrollDown, k.PageUp, k.PageDown},
		{k.Copy, k.Help, k.Quit},
	}
}
