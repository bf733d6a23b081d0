// Package menu is the shell's menu bar: one dropdown per business section
// plus a Logout entry.
package menu

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/tnguyen21/securedesk/internal/theme"
)

// Action is a command offered by every section's dropdown.
type Action int

const (
	Open Action = iota
	Edit
	Download
	Logout
)

func (a Action) String() string {
	switch a {
	case Open:
		return "Open"
	case Edit:
		return "Edit"
	case Download:
		return "Download"
	case Logout:
		return "Logout"
	}
	return "?"
}

// Section names in menu order.
const (
	Employees = "Employees"
	Customers = "Customers"
	Contracts = "Contracts"
	Reports   = "Reports"
)

// Sections lists the business sections shown in the bar.
var Sections = []string{Employees, Customers, Contracts, Reports}

var sectionActions = []Action{Open, Edit, Download}

const logoutLabel = "Logout"

// ActionMsg reports an activated menu command. Section is empty for Logout.
type ActionMsg struct {
	Section string
	Action  Action
}

// KeyMap defines the bindings used while the menu has focus.
type KeyMap struct {
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Close  key.Binding
}

// DefaultKeyMap returns the menu bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "section")),
		Right:  key.NewBinding(key.WithKeys("right", "l")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "command")),
		Down:   key.NewBinding(key.WithKeys("down", "j")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// Model holds the menu bar state. Item len(Sections) is Logout.
type Model struct {
	active  int
	cursor  int
	open    bool
	focused bool
	enabled bool
	width   int
	keys    KeyMap
}

// New returns a disabled menu; the shell enables it once unlocked.
func New() *Model {
	return &Model{keys: DefaultKeyMap()}
}

// Keys returns the menu bindings for help rendering.
func (m *Model) Keys() KeyMap { return m.keys }

// SetEnabled turns interaction on or off. Disabling also closes the menu.
func (m *Model) SetEnabled(on bool) {
	m.enabled = on
	if !on {
		m.Blur()
	}
}

// Enabled reports whether the menu accepts input.
func (m *Model) Enabled() bool { return m.enabled }

// Focus gives the menu the keyboard without opening a dropdown.
func (m *Model) Focus() {
	if m.enabled {
		m.focused = true
	}
}

// Blur closes any dropdown and releases the keyboard.
func (m *Model) Blur() {
	m.focused = false
	m.open = false
	m.cursor = 0
}

// Focused reports whether the menu has the keyboard.
func (m *Model) Focused() bool { return m.focused }

// IsOpen reports whether a dropdown is showing.
func (m *Model) IsOpen() bool { return m.open }

// Active returns the highlighted bar item.
func (m *Model) Active() int { return m.active }

// SetWidth sets the bar width.
func (m *Model) SetWidth(w int) { m.width = w }

func itemCount() int { return len(Sections) + 1 }

func label(i int) string {
	if i == len(Sections) {
		return logoutLabel
	}
	return Sections[i]
}

// Update handles a key while the menu is focused.
func (m *Model) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.enabled || !m.focused {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Close):
		if m.open {
			m.open = false
			return nil
		}
		m.Blur()
	case key.Matches(msg, m.keys.Left):
		m.move(-1)
	case key.Matches(msg, m.keys.Right):
		m.move(1)
	case key.Matches(msg, m.keys.Up):
		if m.open {
			m.cursor = (m.cursor - 1 + len(sectionActions)) % len(sectionActions)
		}
	case key.Matches(msg, m.keys.Down):
		if !m.open {
			return m.openActive()
		}
		m.cursor = (m.cursor + 1) % len(sectionActions)
	case key.Matches(msg, m.keys.Select):
		if !m.open {
			return m.openActive()
		}
		return m.activate(m.active, sectionActions[m.cursor])
	}
	return nil
}

func (m *Model) move(delta int) {
	m.active = (m.active + delta + itemCount()) % itemCount()
	m.cursor = 0
	if m.active == len(Sections) {
		m.open = false
	}
}

// openActive opens the active section's dropdown, or runs Logout.
func (m *Model) openActive() tea.Cmd {
	if m.active == len(Sections) {
		return m.activate(m.active, Logout)
	}
	m.open = true
	m.cursor = 0
	return nil
}

func (m *Model) activate(item int, a Action) tea.Cmd {
	msg := ActionMsg{Action: a}
	if a != Logout {
		msg.Section = Sections[item]
	}
	m.Blur()
	return func() tea.Msg { return msg }
}

// itemX returns the starting column of bar item i.
func itemX(i int) int {
	x := 0
	for j := 0; j < i; j++ {
		x += lipgloss.Width(label(j)) + 2
	}
	return x
}

// ItemAt returns the bar item under column x.
func ItemAt(x int) (int, bool) {
	if x < 0 {
		return 0, false
	}
	for i := 0; i < itemCount(); i++ {
		if x < itemX(i+1) {
			return i, true
		}
	}
	return 0, false
}

// Click handles a left click at (x, y) relative to the menu bar's top-left
// corner. A click on a section opens its dropdown, a click on a dropdown
// row runs that command. It reports whether the click hit the menu.
func (m *Model) Click(x, y int) (tea.Cmd, bool) {
	if !m.enabled {
		return nil, false
	}
	if y == 0 {
		i, ok := ItemAt(x)
		if !ok {
			return nil, false
		}
		m.focused = true
		m.active = i
		if m.open && i != len(Sections) {
			m.Blur()
			return nil, true
		}
		return m.openActive(), true
	}
	if !m.open {
		return nil, false
	}
	// Dropdown rows start below its top border.
	row := y - 2
	left := itemX(m.active)
	if row < 0 || row >= len(sectionActions) || x < left || x >= left+dropdownWidth() {
		return nil, false
	}
	return m.activate(m.active, sectionActions[row]), true
}

func dropdownWidth() int {
	w := 0
	for _, a := range sectionActions {
		w = max(w, lipgloss.Width(a.String()))
	}
	// padding plus border
	return w + 4
}

// View renders the one-line menu bar.
func (m *Model) View() string {
	var items []string
	for i := 0; i < itemCount(); i++ {
		style := theme.MenuInactiveStyle
		switch {
		case !m.enabled:
			style = theme.MenuDisabledStyle
		case m.focused && i == m.active:
			style = theme.MenuActiveStyle
		}
		items = append(items, style.Render(label(i)))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, items...)
	if m.width > 0 {
		bar = theme.MenuBarStyle.Width(m.width).Render(ansi.Truncate(bar, m.width, ""))
	}
	return bar
}

// Dropdown renders the open dropdown and the column it belongs at. It
// returns "" when no dropdown is open.
func (m *Model) Dropdown() (string, int) {
	if !m.open {
		return "", 0
	}
	rows := make([]string, len(sectionActions))
	inner := dropdownWidth() - 2
	for i, a := range sectionActions {
		style := theme.DropdownRowStyle
		if i == m.cursor {
			style = theme.DropdownActiveRowStyle
		}
		rows[i] = style.Width(inner).Render(a.String())
	}
	return theme.DropdownStyle.Render(strings.Join(rows, "\n")), itemX(m.active)
}
