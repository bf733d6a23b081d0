package pane

import (
	"strings"
	"testing"
)

func TestTruncateWithEllipsis(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{"short string", "hello", 10, "hello"},
		{"exact length", "hello", 5, "hello"},
		{"truncated", "hello world", 5, "hell…"},
		{"maxLen 1", "hello", 1, "…"},
		{"maxLen 0", "hello", 0, ""},
		{"negative maxLen", "hello", -1, ""},
		{"empty string", "", 5, ""},
		{"cyrillic", "Иванов Иван", 7, "Иванов…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateWithEllipsis(tt.s, tt.maxLen)
			if got != tt.want {
				t.Errorf("TruncateWithEllipsis(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestCenterPad(t *testing.T) {
	got := centerPad("STAFF", 15)
	if !strings.Contains(got, " STAFF ") {
		t.Errorf("centerPad = %q, want title surrounded by spaces", got)
	}
	if n := len([]rune(got)); n != 17 {
		t.Errorf("centerPad width = %d, want 17", n)
	}
	if got := centerPad("TOO LONG", 3); got != "TOO LONG" {
		t.Errorf("centerPad narrow = %q, want unchanged", got)
	}
}

func TestPaneIDValues(t *testing.T) {
	if PaneWelcome != 0 {
		t.Errorf("PaneWelcome = %d, want 0", PaneWelcome)
	}
	if PaneEmployees != 1 {
		t.Errorf("PaneEmployees = %d, want 1", PaneEmployees)
	}
}

func TestWelcomeView(t *testing.T) {
	w := NewWelcome([]string{"Employees", "Customers"})
	if w.View() != "" {
		t.Error("View with zero size should be empty")
	}
	w.SetSize(60, 12)
	view := w.View()
	for _, want := range []string{"SECURITY AGENCY", "Employees", "Customers", "f10"} {
		if !strings.Contains(view, want) {
			t.Errorf("View should contain %q", want)
		}
	}
	if w.ID() != PaneWelcome || w.Title() != "Main menu" {
		t.Errorf("ID/Title = %d/%q", w.ID(), w.Title())
	}
}
