package dialog

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestDismissKeys(t *testing.T) {
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyEnter},
		{Type: tea.KeyEsc},
		{Type: tea.KeySpace, Runes: []rune(" ")},
	} {
		m := New(Info, "Download", "Start downloading data for section 'Reports' (stub).")
		_, cmd := m.Update(k)
		if cmd == nil {
			t.Fatalf("%q should dismiss", k.String())
		}
		if got, ok := cmd().(ClosedMsg); !ok || got.Title != "Download" {
			t.Errorf("cmd() = %#v, want ClosedMsg{Download}", got)
		}
	}
}

func TestOtherKeysSwallowed(t *testing.T) {
	m := New(Error, "Error", "boom")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd != nil {
		t.Error("non-dismiss keys should not produce a command")
	}
}

func TestView(t *testing.T) {
	tests := []struct {
		kind Kind
		body string
	}{
		{Info, "Start downloading data for section 'Employees' (stub)."},
		{Warning, "Enter a username."},
		{Error, "Could not connect to the database."},
		{Window, "Edit: Customers (stub)"},
	}
	for _, tt := range tests {
		view := New(tt.kind, "Title", tt.body).View()
		if !strings.Contains(view, "Title") {
			t.Errorf("kind %d: View should contain the title", tt.kind)
		}
		if !strings.Contains(view, "enter close") {
			t.Errorf("kind %d: View should contain the close hint", tt.kind)
		}
	}
}
