package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusRefresh is how often the status bar's sign-in age is redrawn.
const statusRefresh = 30 * time.Second

// statusTickMsg redraws the status bar. Ticks from an earlier sign-in are
// dropped by comparing the session id.
type statusTickMsg struct {
	At      time.Time
	Session string
}

// scheduleStatusTick returns a tea.Tick command for the next status redraw.
// A non-positive interval disables the refresh.
func scheduleStatusTick(interval time.Duration, session string) tea.Cmd {
	if interval <= 0 {
		return nil
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return statusTickMsg{At: t, Session: session}
	})
}
