package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/block-breaker/internal/wallet"
)

// toastDuration is how long a notification stays on the status line.
const toastDuration = 3 * time.Second

type toastKind int

const (
	toastInfo toastKind = iota
	toastSuccess
	toastError
)

// Toast is a short-lived notification.
type Toast struct {
	Text string
	Kind toastKind
	id   int
}

var toastStyles = map[toastKind]lipgloss.Style{
	toastInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
	toastSuccess: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("42")).Padding(0, 1),
	toastError:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("160")).Padding(0, 1),
}

// Render returns the styled toast text.
func (t Toast) Render() string {
	return toastStyles[t.Kind].Render(t.Text)
}

// toastExpiredMsg clears the toast with the matching id.
type toastExpiredMsg struct{ id int }

func expireToastCmd(id int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// connectResultMsg carries the outcome of a wallet connect back into Update.
type connectResultMsg struct {
	result wallet.Result
	err    error
}

// connectCmd runs the gate's connect action off the update loop.
// ctx is cancelled when the program or SSH session ends.
func connectCmd(ctx context.Context, gate wallet.Gate) tea.Cmd {
	return func() tea.Msg {
		res, err := gate.Connect(ctx)
		return connectResultMsg{result: res, err: err}
	}
}
