// Package tui provides the Bubble Tea front end for the snake engine.
// It maps keys to actions, drives the engine on a tick, and renders snapshots.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger one engine step.
// Gen identifies the tick chain; ticks from an older chain are dropped, so
// pausing and resuming never leaves two chains running.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// tickCmd returns a Bubble Tea command that fires one tick after interval.
func tickCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
