package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tnguyen21/securedesk/internal/auth"
	"github.com/tnguyen21/securedesk/internal/config"
	"github.com/tnguyen21/securedesk/internal/console"
	"github.com/tnguyen21/securedesk/internal/dialog"
	"github.com/tnguyen21/securedesk/internal/employee"
	"github.com/tnguyen21/securedesk/internal/layout"
	"github.com/tnguyen21/securedesk/internal/menu"
	"github.com/tnguyen21/securedesk/internal/pane"
	"github.com/tnguyen21/securedesk/internal/theme"
)

// State is the shell's lock state.
type State int

const (
	Locked State = iota
	Unlocked
	Terminated
)

func (s State) String() string {
	switch s {
	case Locked:
		return "locked"
	case Unlocked:
		return "unlocked"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// StaffSource lists employees for the Employees pane.
type StaffSource interface {
	List(ctx context.Context) ([]*employee.Record, error)
}

// Deps are the collaborators a Shell needs. Over SSH they are shared by all
// sessions.
type Deps struct {
	Validator    auth.Validator
	Prober       auth.Prober // nil skips the connectivity check
	Staff        StaffSource // nil lists the built-in sample staff
	Logger       *zap.Logger
	Layout       config.Layout
	ProbeTimeout time.Duration
}

// focusArea is the region receiving keys while unlocked.
type focusArea int

const (
	focusContent focusArea = iota
	focusMenu
)

// Shell is the root bubbletea model: menu bar, content region, log console
// and status bar, locked behind the sign-in gate.
type Shell struct {
	deps Deps

	state      State
	focus      focusArea
	width      int
	height     int
	layoutMode LayoutMode
	keys       KeyMap
	help       help.Model
	showHelp   bool

	menu      *menu.Model
	console   *console.Console
	gate      *auth.Gate
	dialog    *dialog.Model
	welcome   *pane.Welcome
	employees *pane.EmployeesPane
	content   pane.Pane

	user      string
	signedIn  time.Time
	sessionID string
	loggedOut bool

	refreshEvery time.Duration
	now          func() time.Time
}

// New creates a locked Shell showing the sign-in gate.
func New(deps Deps) Shell {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Layout == (config.Layout{}) {
		deps.Layout = config.Default().Layout
	}

	con := console.New(deps.Layout.ConsoleHeight, deps.Layout.ConsoleMinHeight, deps.Logger)
	welcome := pane.NewWelcome(menu.Sections)
	m := Shell{
		deps:    deps,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		menu:    menu.New(),
		console: con,
		welcome: welcome,
		content: welcome,

		refreshEvery: statusRefresh,
		now:          time.Now,
	}
	m.gate = m.newGate()
	con.Append("Application started. Waiting for sign-in...")
	return m
}

func (m Shell) newGate() *auth.Gate {
	return auth.NewGate(m.deps.Validator,
		auth.WithProber(m.deps.Prober),
		auth.WithTimeout(m.deps.ProbeTimeout),
	)
}

// State returns the lock state.
func (m Shell) State() State { return m.state }

// Console returns the log console.
func (m Shell) Console() *console.Console { return m.console }

// Content returns the pane mounted in the content region.
func (m Shell) Content() pane.Pane { return m.content }

// User returns the signed-in username, "" while locked.
func (m Shell) User() string { return m.user }

// SessionID returns the id of the current sign-in, "" while locked.
func (m Shell) SessionID() string { return m.sessionID }

// Init starts the gate's cursor blink.
func (m Shell) Init() tea.Cmd {
	return m.gate.Init()
}

// Update handles all incoming messages.
func (m Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutMode = GetLayoutMode(msg.Width)
		m.help.Width = msg.Width
		m.menu.SetWidth(msg.Width)
		m.console.SetWidth(msg.Width)
		m.resizeContent()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case console.AppendMsg:
		m.console.Append(msg.Text)
		return m, nil

	case auth.ResultMsg:
		return m.handleAuthResult(msg)

	case menu.ActionMsg:
		return m.handleMenuAction(msg)

	case dialog.ClosedMsg:
		m.dialog = nil
		return m, nil

	case statusTickMsg:
		if m.state != Unlocked || msg.Session != m.sessionID {
			return m, nil
		}
		return m, scheduleStatusTick(m.refreshEvery, m.sessionID)

	case pane.EmployeesLoadedMsg:
		if m.employees == nil {
			return m, nil
		}
		if msg.Err != nil {
			m.console.Append(fmt.Sprintf("Could not load staff: %v", msg.Err))
		} else {
			m.console.Append(fmt.Sprintf("Staff loaded: %d employees.", len(msg.Records)))
		}
		_, cmd := m.employees.Update(msg)
		return m, cmd
	}

	if m.state == Locked && m.gate != nil {
		_, cmd := m.gate.Update(msg)
		return m, cmd
	}
	return m.updateContent(msg)
}

func (m Shell) handleAuthResult(msg auth.ResultMsg) (tea.Model, tea.Cmd) {
	if m.state != Locked {
		return m, nil
	}
	m.gate = nil
	if !msg.Accepted {
		if m.loggedOut {
			m.console.Append("Sign-in cancelled after logout. Shutting down.")
		} else {
			m.console.Append("Sign-in cancelled. Shutting down.")
		}
		m.state = Terminated
		return m, tea.Quit
	}

	m.state = Unlocked
	m.user = msg.Username
	m.signedIn = m.now()
	m.sessionID = uuid.NewString()
	m.console.SetLogger(m.deps.Logger.With(
		zap.String("session", m.sessionID),
		zap.String("user", m.user),
	))
	m.console.Append(fmt.Sprintf("User '%s' signed in.", m.user))
	m.menu.SetEnabled(true)
	m.focus = focusContent
	m.mount(m.welcome)
	return m, scheduleStatusTick(m.refreshEvery, m.sessionID)
}

func (m Shell) logout() (tea.Model, tea.Cmd) {
	m.console.Append("User signed out. Waiting for sign-in...")
	m.console.SetLogger(m.deps.Logger)
	m.state = Locked
	m.loggedOut = true
	m.user = ""
	m.sessionID = ""
	m.signedIn = time.Time{}
	m.menu.SetEnabled(false)
	m.dialog = nil
	m.showHelp = false
	m.employees = nil
	m.mount(m.welcome)
	m.gate = m.newGate()
	return m, m.gate.Init()
}

func (m Shell) handleMenuAction(msg menu.ActionMsg) (tea.Model, tea.Cmd) {
	m.focus = focusContent
	if m.state != Unlocked {
		return m, nil
	}
	switch msg.Action {
	case menu.Logout:
		return m.logout()

	case menu.Open:
		m.console.Append(openMessage(msg.Section))
		if msg.Section != menu.Employees {
			return m, nil
		}
		l := m.deps.Layout
		m.employees = pane.NewEmployeesPane(layout.NewSplitter(l.PreferredOffset, l.LeftMin, l.RightMin))
		m.mount(m.employees)
		return m, loadStaffCmd(m.deps.Staff)

	case menu.Edit:
		m.console.Append(fmt.Sprintf("Selected: 'Edit' -> %s.", msg.Section))
		m.dialog = dialog.New(dialog.Window, "Edit: "+msg.Section,
			fmt.Sprintf("Edit: %s (stub)", msg.Section))

	case menu.Download:
		m.console.Append(fmt.Sprintf("Download requested: '%s'.", msg.Section))
		m.dialog = dialog.New(dialog.Info, "Download",
			fmt.Sprintf("Start downloading data for section '%s' (stub).", msg.Section))
	}
	return m, nil
}

// openMessage is the console line logged for Open on a section.
func openMessage(section string) string {
	var what string
	switch section {
	case menu.Employees:
		what = "staff management"
	case menu.Customers:
		what = "customer management"
	case menu.Contracts:
		what = "contract registration"
	case menu.Reports:
		what = "reports"
	default:
		what = strings.ToLower(section)
	}
	return fmt.Sprintf("Command: 'Open -> %s'. Loading %s...", section, what)
}

// mount places p in the content region and sizes it. A pane with a split
// gets a fresh layout request since its width may have changed.
func (m *Shell) mount(p pane.Pane) {
	if e, ok := p.(*pane.EmployeesPane); ok {
		e.Splitter().Request()
	}
	m.content = p
	m.resizeContent()
}

func (m *Shell) resizeContent() {
	if m.content == nil {
		return
	}
	m.content.SetSize(m.width, ContentHeight(m.height, m.console.Height()))
}

// loadStaffCmd reads the staff list and attaches placeholder photos.
func loadStaffCmd(src StaffSource) tea.Cmd {
	return func() tea.Msg {
		if src == nil {
			records := employee.SampleRecords()
			return pane.EmployeesLoadedMsg{Records: records, Err: employee.AttachPlaceholders(records)}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		records, err := src.List(ctx)
		if err != nil {
			return pane.EmployeesLoadedMsg{Err: err}
		}
		if err := employee.AttachPlaceholders(records); err != nil {
			return pane.EmployeesLoadedMsg{Err: err}
		}
		return pane.EmployeesLoadedMsg{Records: records}
	}
}

// contentCaptures reports whether the mounted pane wants every key.
func (m Shell) contentCaptures() bool {
	c, ok := m.content.(pane.InputCapturer)
	return ok && c.Capturing()
}

// handleKey routes keys: global bindings first, then the topmost layer
// (dialog, gate, menu) and finally the content pane.
func (m Shell) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if key.Matches(msg, m.keys.ToggleConsole) {
		m.console.Toggle()
		m.resizeContent()
		return m, nil
	}

	if m.dialog != nil {
		_, cmd := m.dialog.Update(msg)
		return m, cmd
	}

	switch m.state {
	case Locked:
		if m.gate == nil {
			return m, nil
		}
		_, cmd := m.gate.Update(msg)
		return m, cmd
	case Terminated:
		return m, nil
	}

	if m.contentCaptures() {
		return m.updateContent(msg)
	}

	if m.focus == focusMenu {
		if key.Matches(msg, m.keys.Tab) {
			m.menu.Blur()
			m.focus = focusContent
			return m, nil
		}
		cmd := m.menu.Update(msg)
		if !m.menu.Focused() {
			m.focus = focusContent
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Menu), key.Matches(msg, m.keys.Tab):
		m.menu.Focus()
		m.focus = focusMenu
		return m, nil

	case m.showHelp && key.Matches(msg, m.keys.Back):
		m.showHelp = false
		return m, nil
	}

	return m.updateContent(msg)
}

func (m Shell) quit() (tea.Model, tea.Cmd) {
	m.console.Append("Application closed.")
	m.state = Terminated
	return m, tea.Quit
}

// handleMouse handles clicks on the menu bar and the console toggle bar,
// and wheel scrolling over the console.
func (m Shell) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	consoleTop := MenuBarHeight() + ContentHeight(m.height, m.console.Height())
	inConsole := msg.Y >= consoleTop && msg.Y < consoleTop+m.console.Height()

	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
		if msg.Y == consoleTop {
			m.console.Toggle()
			m.resizeContent()
			return m, nil
		}
		if m.state == Unlocked && m.dialog == nil {
			if cmd, hit := m.menu.Click(msg.X, msg.Y); hit {
				if m.menu.Focused() {
					m.focus = focusMenu
				} else {
					m.focus = focusContent
				}
				return m, cmd
			}
			if m.menu.IsOpen() {
				m.menu.Blur()
				m.focus = focusContent
				return m, nil
			}
		}
	}

	if inConsole {
		return m, m.console.Update(msg)
	}
	if m.state != Unlocked || m.dialog != nil {
		return m, nil
	}
	return m.updateContent(msg)
}

// updateContent sends a message to the mounted pane.
func (m Shell) updateContent(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.content == nil {
		return m, nil
	}
	newModel, cmd := m.content.Update(msg)
	if p, ok := newModel.(pane.Pane); ok {
		m.content = p
	}
	return m, cmd
}

// View renders the menu bar, content region, log console and status bar.
func (m Shell) View() string {
	if m.width == 0 || m.height == 0 || m.state == Terminated {
		return ""
	}

	contentH := ContentHeight(m.height, m.console.Height())
	content := m.renderContent(contentH)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.menu.View(),
		content,
		m.console.View(),
		m.renderStatusBar(),
	)
}

func (m Shell) renderContent(h int) string {
	if h <= 0 {
		return ""
	}
	region := lipgloss.NewStyle().Width(m.width).Height(h).MaxHeight(h)

	var body string
	switch {
	case m.state == Locked && m.gate != nil:
		body = lipgloss.Place(m.width, h, lipgloss.Center, lipgloss.Center, m.gate.View())
	case m.showHelp:
		body = m.help.View(m.keys)
	default:
		body = m.content.View()
	}
	body = region.Render(body)

	if m.dialog != nil {
		box := m.dialog.View()
		x := max(0, (m.width-lipgloss.Width(box))/2)
		y := max(0, (h-lipgloss.Height(box))/2)
		body = overlay(body, box, x, y)
	}
	if drop, x := m.menu.Dropdown(); drop != "" {
		body = overlay(body, drop, x, 0)
	}
	return body
}

// renderStatusBar renders the bottom status bar.
func (m Shell) renderStatusBar() string {
	var parts []string
	if m.state == Unlocked {
		parts = append(parts, theme.IconUnlocked+" "+theme.PassStyle.Render(m.user))
		if m.layoutMode != LayoutNarrow {
			parts = append(parts, theme.MutedStyle.Render("signed in "+humanize.Time(m.signedIn)))
		}
		if m.layoutMode == LayoutWide {
			parts = append(parts, theme.MutedStyle.Render(m.content.Title()))
			parts = append(parts, theme.MutedStyle.Render("?=help  m=menu  q=quit"))
		}
	} else {
		parts = append(parts, theme.IconLocked+" "+theme.WarnStyle.Render("locked"))
		if m.layoutMode != LayoutNarrow {
			parts = append(parts, theme.MutedStyle.Render("waiting for sign-in"))
		}
	}
	bar := strings.Join(parts, "  |  ")
	return theme.StatusBarStyle.Width(m.width).Render(bar)
}

var _ tea.Model = Shell{}
