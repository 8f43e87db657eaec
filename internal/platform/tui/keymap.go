package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/liberty/internal/window"
)

// KeyMap holds the bindings the host itself reacts to. Every other key is
// forwarded to the loop as a KeyPress.
type KeyMap struct {
	Quit key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// MapMsg translates a Bubble Tea message to a window event.
// Returns nil for messages that carry no event.
func (k KeyMap) MapMsg(msg tea.Msg) window.Event {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, k.Quit) {
			return window.Close{}
		}
		return window.KeyPress{Key: msg.String()}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		return window.MouseClick{X: float32(msg.X), Y: float32(msg.Y)}
	case tea.WindowSizeMsg:
		return window.Resize{Width: msg.Width, Height: msg.Height}
	}
	return nil
}
