package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tnguyen21/securedesk/internal/console"
	"github.com/tnguyen21/securedesk/internal/theme"
)

// State is the gate's position in a sign-in attempt.
type State int

const (
	AwaitingInput State = iota
	Checking
	Accepted
	Rejected
)

func (s State) String() string {
	switch s {
	case AwaitingInput:
		return "awaiting input"
	case Checking:
		return "checking"
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Prober reports whether the datastore answers a trivial query.
type Prober interface {
	Probe(ctx context.Context) (string, error)
}

// AttemptResultMsg carries the outcome of one submitted attempt back to the
// gate. Err is nil when the credentials were accepted.
type AttemptResultMsg struct {
	Username string
	Probe    string // probe result, "" when no probe ran or it failed
	Err      error
}

// ResultMsg is emitted once the gate reaches a terminal state.
type ResultMsg struct {
	Accepted bool
	Username string
}

type noticeKind int

const (
	noticeNone noticeKind = iota
	noticeInfo
	noticeWarn
	noticeError
)

type gateKeys struct {
	Submit key.Binding
	Cancel key.Binding
	Next   key.Binding
	Prev   key.Binding
}

// Gate is the modal sign-in form. It collects a username and password,
// optionally probes the datastore, then asks the Validator.
type Gate struct {
	validator Validator
	prober    Prober
	timeout   time.Duration

	state    State
	username textinput.Model
	password textinput.Model
	focus    int

	notice     string
	noticeKind noticeKind

	keys gateKeys
}

// Option configures a Gate.
type Option func(*Gate)

// WithProber runs p before every validation. A nil prober skips the check.
func WithProber(p Prober) Option {
	return func(g *Gate) { g.prober = p }
}

// WithTimeout bounds each attempt. Zero means no extra bound beyond the
// prober's own.
func WithTimeout(d time.Duration) Option {
	return func(g *Gate) { g.timeout = d }
}

// NewGate returns a gate awaiting input with the username field focused.
func NewGate(v Validator, opts ...Option) *Gate {
	user := textinput.New()
	user.Placeholder = "username"
	user.CharLimit = 64
	user.Width = 24
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 128
	pass.Width = 24
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'

	g := &Gate{
		validator: v,
		username:  user,
		password:  pass,
		keys: gateKeys{
			Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "sign in")),
			Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
			Next:   key.NewBinding(key.WithKeys("tab", "down")),
			Prev:   key.NewBinding(key.WithKeys("shift+tab", "up")),
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// State returns the current state.
func (g *Gate) State() State { return g.state }

// Username returns the raw username field.
func (g *Gate) Username() string { return g.username.Value() }

// Password returns the raw password field.
func (g *Gate) Password() string { return g.password.Value() }

// Notice returns the message currently shown under the form.
func (g *Gate) Notice() string { return g.notice }

// SetCredentials fills both fields.
func (g *Gate) SetCredentials(username, password string) {
	g.username.SetValue(username)
	g.password.SetValue(password)
}

// Authenticate runs one attempt synchronously: local validation, the
// optional probe, then the validator.
func (g *Gate) Authenticate(ctx context.Context, username, password string) AttemptResultMsg {
	res := AttemptResultMsg{Username: strings.TrimSpace(username)}
	if res.Username == "" {
		res.Err = ErrEmptyUsername
		return res
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	if g.prober != nil {
		v, err := g.prober.Probe(ctx)
		if err != nil {
			res.Err = &ConnectivityError{Err: err}
			return res
		}
		res.Probe = v
	}

	ok, err := g.validator.Validate(ctx, res.Username, password)
	switch {
	case err != nil:
		res.Err = &ConnectivityError{Err: err}
	case !ok:
		res.Err = ErrRejected
	}
	return res
}

func (g *Gate) Init() tea.Cmd {
	return textinput.Blink
}

func (g *Gate) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case AttemptResultMsg:
		return g, g.finish(msg)
	case tea.KeyMsg:
		return g.handleKey(msg)
	}
	return g, g.updateFocused(msg)
}

func (g *Gate) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if g.state != AwaitingInput {
		return g, nil
	}
	switch {
	case key.Matches(msg, g.keys.Cancel):
		g.state = Rejected
		return g, func() tea.Msg { return ResultMsg{Accepted: false} }
	case key.Matches(msg, g.keys.Submit):
		return g, g.submit()
	case key.Matches(msg, g.keys.Next):
		g.setFocus(g.focus + 1)
		return g, nil
	case key.Matches(msg, g.keys.Prev):
		g.setFocus(g.focus - 1)
		return g, nil
	}
	return g, g.updateFocused(msg)
}

func (g *Gate) submit() tea.Cmd {
	username := strings.TrimSpace(g.username.Value())
	if username == "" {
		g.setNotice(noticeWarn, "Enter a username.")
		g.setFocus(0)
		return nil
	}
	password := g.password.Value()
	g.state = Checking
	g.setNotice(noticeInfo, "Checking credentials...")
	return func() tea.Msg {
		return g.Authenticate(context.Background(), username, password)
	}
}

func (g *Gate) finish(res AttemptResultMsg) tea.Cmd {
	if g.state != Checking {
		return nil
	}
	var cmds []tea.Cmd
	if res.Probe != "" {
		cmds = append(cmds, console.Append("Database check: "+res.Probe))
	}

	var connErr *ConnectivityError
	switch {
	case res.Err == nil:
		g.state = Accepted
		g.setNotice(noticeNone, "")
		username := res.Username
		cmds = append(cmds, func() tea.Msg { return ResultMsg{Accepted: true, Username: username} })
	case errors.As(res.Err, &connErr):
		g.state = AwaitingInput
		g.setNotice(noticeError, "Could not connect to the database: "+connErr.Err.Error())
		cmds = append(cmds, console.Append("Sign-in aborted: "+connErr.Error()))
	case errors.Is(res.Err, ErrRejected):
		g.state = AwaitingInput
		g.setNotice(noticeError, "Invalid username or password.")
		g.password.Reset()
		g.setFocus(1)
		cmds = append(cmds, console.Append(fmt.Sprintf("Sign-in rejected for '%s'.", res.Username)))
	case errors.Is(res.Err, ErrEmptyUsername):
		g.state = AwaitingInput
		g.setNotice(noticeWarn, "Enter a username.")
		g.setFocus(0)
	default:
		g.state = AwaitingInput
		g.setNotice(noticeError, res.Err.Error())
	}
	return tea.Batch(cmds...)
}

func (g *Gate) setNotice(kind noticeKind, text string) {
	g.noticeKind = kind
	g.notice = text
}

func (g *Gate) setFocus(i int) {
	g.focus = (i%2 + 2) % 2
	if g.focus == 0 {
		g.username.Focus()
		g.password.Blur()
	} else {
		g.password.Focus()
		g.username.Blur()
	}
}

func (g *Gate) updateFocused(msg tea.Msg) tea.Cmd {
	if g.state != AwaitingInput {
		return nil
	}
	var cmd tea.Cmd
	if g.focus == 0 {
		g.username, cmd = g.username.Update(msg)
	} else {
		g.password, cmd = g.password.Update(msg)
	}
	return cmd
}

// View renders the form as a bordered dialog box. The caller centers it.
func (g *Gate) View() string {
	var b strings.Builder
	b.WriteString(theme.DialogTitleStyle.Render("Sign in"))
	b.WriteString("\n\n")
	b.WriteString(theme.LabelStyle.Render("Username") + g.username.View())
	b.WriteString("\n")
	b.WriteString(theme.LabelStyle.Render("Password") + g.password.View())
	b.WriteString("\n\n")

	switch g.noticeKind {
	case noticeInfo:
		b.WriteString(theme.AccentStyle.Render(g.notice))
	case noticeWarn:
		b.WriteString(theme.IconWarning + " " + theme.WarnStyle.Render(g.notice))
	case noticeError:
		b.WriteString(theme.IconError + " " + theme.FailStyle.Render(g.notice))
	default:
		b.WriteString(theme.MutedStyle.Render("enter sign in · tab switch field · esc cancel"))
	}

	return theme.DialogStyle.Render(lipgloss.NewStyle().Width(40).Render(b.String()))
}

var _ tea.Model = (*Gate)(nil)
