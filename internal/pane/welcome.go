package pane

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tnguyen21/securedesk/internal/theme"
)

// Welcome fills the content region until a section is opened.
type Welcome struct {
	width    int
	height   int
	viewport viewport.Model
	sections []string
}

// NewWelcome creates the welcome pane listing the menu sections.
func NewWelcome(sections []string) *Welcome {
	return &Welcome{
		viewport: viewport.New(0, 0),
		sections: sections,
	}
}

func (w *Welcome) ID() PaneID     { return PaneWelcome }
func (w *Welcome) Title() string { return "Main menu" }

func (w *Welcome) SetSize(width, height int) {
	w.width = width
	w.height = height
	w.viewport.Width = width
	w.viewport.Height = height
	w.viewport.SetContent(w.renderContent())
}

func (w *Welcome) Init() tea.Cmd {
	return nil
}

func (w *Welcome) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	w.viewport, cmd = w.viewport.Update(msg)
	return w, cmd
}

func (w *Welcome) View() string {
	if w.width == 0 || w.height == 0 {
		return ""
	}
	return w.viewport.View()
}

func (w *Welcome) renderContent() string {
	if w.width == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(theme.PaneHeaderStyle.Render(centerPad("SECURITY AGENCY", w.width)))
	b.WriteString("\n\n")
	b.WriteString("Choose a section from the menu:\n\n")
	for _, s := range w.sections {
		b.WriteString("  " + theme.AccentStyle.Render("•") + " " + s + "\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.MutedStyle.Render("f10 opens the menu · ctrl+l toggles the log console"))
	return b.String()
}

var _ Pane = (*Welcome)(nil)
