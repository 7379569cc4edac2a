// Package tui runs a game in the terminal with Bubble Tea, locally or over SSH.
// It owns the tick loop, key mapping and screen rendering.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bomberman/internal/core"
)

// TickMsg triggers one simulation step.
type TickMsg time.Time

// tickInterval is the wall time between steps at the given rate.
// Non-positive rates fall back to the default rate.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd schedules the next TickMsg.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
