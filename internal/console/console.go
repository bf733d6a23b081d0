// Package console is the shell's append-only log console.
package console

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/tnguyen21/securedesk/internal/theme"
)

// Entry is one console line.
type Entry struct {
	Time    time.Time
	Message string
}

// String formats the entry as "[HH:MM:SS] message".
func (e Entry) String() string {
	return e.Time.Format("[15:04:05]") + " " + e.Message
}

// AppendMsg asks the owner of the console to append a line.
type AppendMsg struct {
	Text string
}

// Append returns a command that delivers an AppendMsg.
func Append(text string) tea.Cmd {
	return func() tea.Msg { return AppendMsg{Text: text} }
}

// Console keeps log entries in arrival order and renders the most recent
// ones. It can be collapsed to its toggle bar; expanding restores the height
// it had before collapsing.
type Console struct {
	entries []Entry

	width         int
	height        int
	defaultHeight int
	minHeight     int
	remembered    *int

	viewport viewport.Model
	logger   *zap.Logger
	now      func() time.Time
}

// New returns an expanded console. Entries are mirrored to logger.
func New(defaultHeight, minHeight int, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Console{
		height:        defaultHeight,
		defaultHeight: defaultHeight,
		minHeight:     minHeight,
		viewport:      viewport.New(0, max(0, defaultHeight-1)),
		logger:        logger,
		now:           time.Now,
	}
	return c
}

// SetLogger replaces the logger entries are mirrored to.
func (c *Console) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger
}

// SetClock overrides the time source for new entries.
func (c *Console) SetClock(now func() time.Time) { c.now = now }

// Append adds a line and scrolls to it.
func (c *Console) Append(message string) Entry {
	e := Entry{Time: c.now(), Message: message}
	c.entries = append(c.entries, e)
	c.logger.Info(message, zap.String("component", "console"))
	c.refresh()
	return e
}

// Entries returns a copy of all entries.
func (c *Console) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Height is the number of rows the console occupies, toggle bar included.
func (c *Console) Height() int { return c.height }

// Collapsed reports whether only the toggle bar is visible.
func (c *Console) Collapsed() bool { return c.height <= c.minHeight }

// Toggle collapses or expands the console and logs the change.
func (c *Console) Toggle() {
	if c.height > c.minHeight {
		h := c.height
		c.remembered = &h
		c.height = c.minHeight
		c.resizeViewport()
		c.Append("Log console hidden.")
		return
	}
	c.height = c.defaultHeight
	if c.remembered != nil {
		c.height = *c.remembered
	}
	c.resizeViewport()
	c.Append("Log console shown.")
}

// SetWidth sets the render width.
func (c *Console) SetWidth(w int) {
	c.width = w
	c.viewport.Width = w
	c.refresh()
}

// Update forwards scrolling input to the viewport.
func (c *Console) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return cmd
}

func (c *Console) resizeViewport() {
	c.viewport.Height = max(0, c.height-1)
	c.refresh()
}

func (c *Console) refresh() {
	lines := make([]string, len(c.entries))
	for i, e := range c.entries {
		lines[i] = e.String()
		if c.width > 0 {
			lines[i] = ansi.Truncate(lines[i], c.width, "…")
		}
	}
	c.viewport.SetContent(strings.Join(lines, "\n"))
	c.viewport.GotoBottom()
}

// View renders the toggle bar followed by the visible entries.
func (c *Console) View() string {
	if c.width == 0 {
		return ""
	}
	label := "ctrl+l hide console"
	if c.Collapsed() {
		label = "ctrl+l show console"
	}
	bar := theme.ConsoleBarStyle.Width(c.width).Render("Log  " + theme.MutedStyle.Render(label))
	if c.height <= 1 {
		return bar
	}
	body := theme.ConsoleStyle.Width(c.width).Height(c.height - 1).MaxHeight(c.height - 1).Render(c.viewport.View())
	return bar + "\n" + body
}
