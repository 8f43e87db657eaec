// Package tui provides the Bubble Tea host for the frame loop.
// It maps terminal input and resizes to window events and drives ticks.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg fires one frame tick of the hosted loop.
type TickMsg time.Time

// tickCmd schedules the next frame tick; framesPerSecond must be positive.
func tickCmd(framesPerSecond int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(framesPerSecond), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
