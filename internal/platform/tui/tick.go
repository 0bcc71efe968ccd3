// Package tui provides the Bubble Tea host for Block Breaker.
// It handles the terminal UI loop, mouse and key mapping, and the wallet
// connect flow around the game.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends one tick after 1/tickRate seconds.
// The model schedules the next one only while the game is running.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
