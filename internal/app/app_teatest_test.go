package app

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/tnguyen21/securedesk/internal/menu"
)

const waitDuration = 3 * time.Second

func waitForContains(t *testing.T, tm *teatest.TestModel, s string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte(s))
	}, teatest.WithDuration(waitDuration), teatest.WithCheckInterval(20*time.Millisecond))
}

func TestShellSignInFlow(t *testing.T) {
	tm := teatest.NewTestModel(t, testModel(), teatest.WithInitialTermSize(100, 30))
	waitForContains(t, tm, "Sign in")

	tm.Type("admin")
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Type("password123")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitForContains(t, tm, "Database check: OK")

	tm.Send(menu.ActionMsg{Section: menu.Employees, Action: menu.Open})
	waitForContains(t, tm, "Staff loaded: 4 employees.")

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	final := tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration)).(Shell)

	if final.State() != Terminated {
		t.Errorf("state = %s, want terminated", final.State())
	}
	if final.User() != "admin" {
		t.Errorf("user = %q, want admin", final.User())
	}
}

func TestShellCancelQuits(t *testing.T) {
	tm := teatest.NewTestModel(t, testModel(), teatest.WithInitialTermSize(100, 30))
	waitForContains(t, tm, "Sign in")

	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	tm.WaitFinished(t, teatest.WithFinalTimeout(waitDuration))

	final := tm.FinalModel(t).(Shell)
	if final.State() != Terminated {
		t.Errorf("state = %s, want terminated", final.State())
	}
}
