package pane

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// PaneID identifies each content pane.
type PaneID int

const (
	PaneWelcome PaneID = iota
	PaneEmployees
)

// Pane is the interface that all content panes implement.
type Pane interface {
	tea.Model
	ID() PaneID
	Title() string    // shown in the status bar and pane header
	SetSize(w, h int) // called on resize and when mounted
}

// InputCapturer is implemented by panes that sometimes need every key,
// e.g. while a text field is focused.
type InputCapturer interface {
	Capturing() bool
}

// TruncateWithEllipsis truncates s to maxLen, appending "…" if truncated.
// If maxLen < 1, returns an empty string.
func TruncateWithEllipsis(s string, maxLen int) string {
	if maxLen < 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen == 1 {
		return "…"
	}
	return string(runes[:maxLen-1]) + "…"
}

// centerPad centers s in a rule of the given width: "──── s ────".
func centerPad(s string, width int) string {
	sLen := len([]rune(s))
	if sLen >= width {
		return s
	}
	left := (width - sLen) / 2
	right := width - sLen - left
	return strings.Repeat("─", left) + " " + s + " " + strings.Repeat("─", right)
}
