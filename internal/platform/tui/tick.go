// Package tui provides the Bubble Tea front end for dodge: the game view,
// the menu and scoreboard, and an SSH server that serves them.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game frame. ID names the tick loop it
// belongs to, so a tick still in flight from a finished game is ignored.
type TickMsg struct {
	ID   int64
	Time time.Time
}

var lastLoopID atomic.Int64

func nextLoopID() int64 {
	return lastLoopID.Add(1)
}

// tickCmd schedules the next frame. The game measures the real elapsed
// time itself, so a late tick only makes that frame longer.
func tickCmd(id int64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}
