// Package dialog renders modal notices over the shell content.
package dialog

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tnguyen21/securedesk/internal/theme"
)

// Kind selects the notice icon and title color.
type Kind int

const (
	Info Kind = iota
	Warning
	Error
	Window // placeholder window for a section without a real form yet
)

// ClosedMsg is emitted when the notice is dismissed.
type ClosedMsg struct {
	Title string
}

// Model is a single modal notice. It has no state beyond its text.
type Model struct {
	Kind  Kind
	Title string
	Body  string

	dismiss key.Binding
}

// New returns a notice that closes on enter or esc.
func New(kind Kind, title, body string) *Model {
	return &Model{
		Kind:    kind,
		Title:   title,
		Body:    body,
		dismiss: key.NewBinding(key.WithKeys("enter", "esc", " "), key.WithHelp("enter", "close")),
	}
}

func (m *Model) Init() tea.Cmd { return nil }

// Update closes the notice on a dismiss key. Other input is swallowed.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.dismiss) {
		title := m.Title
		return m, func() tea.Msg { return ClosedMsg{Title: title} }
	}
	return m, nil
}

func (m *Model) icon() string {
	switch m.Kind {
	case Warning:
		return theme.IconWarning
	case Error:
		return theme.IconError
	case Window:
		return theme.IconWindow
	default:
		return theme.IconInfo
	}
}

// View renders the bordered box. maxWidth bounds the body; the caller
// centers the result.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.icon() + " " + theme.DialogTitleStyle.Render(m.Title))
	b.WriteString("\n\n")
	body := lipgloss.NewStyle().Width(min(48, max(20, lipgloss.Width(m.Body)))).Render(m.Body)
	b.WriteString(body)
	b.WriteString("\n\n")
	b.WriteString(theme.MutedStyle.Render("enter close"))
	return theme.DialogStyle.Render(b.String())
}

var _ tea.Model = (*Model)(nil)
