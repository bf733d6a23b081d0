package auth

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tnguyen21/securedesk/internal/console"
	"github.com/tnguyen21/securedesk/internal/employee"
)

type countingValidator struct {
	calls  int
	accept bool
	err    error
}

func (v *countingValidator) Validate(_ context.Context, _, _ string) (bool, error) {
	v.calls++
	return v.accept, v.err
}

type fakeProber struct {
	value string
	err   error
	calls int
}

func (p *fakeProber) Probe(context.Context) (string, error) {
	p.calls++
	return p.value, p.err
}

// drain runs cmd and any batched commands, returning every message produced.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// submit presses enter and feeds the attempt result back into the gate.
func submit(t *testing.T, g *Gate) []tea.Msg {
	t.Helper()
	_, cmd := g.Update(tea.KeyMsg{Type: tea.KeyEnter})
	var out []tea.Msg
	for _, msg := range drain(cmd) {
		res, ok := msg.(AttemptResultMsg)
		if !ok {
			out = append(out, msg)
			continue
		}
		require.Equal(t, Checking, g.State())
		_, next := g.Update(res)
		out = append(out, drain(next)...)
	}
	return out
}

func findResult(msgs []tea.Msg) (ResultMsg, bool) {
	for _, m := range msgs {
		if r, ok := m.(ResultMsg); ok {
			return r, true
		}
	}
	return ResultMsg{}, false
}

func consoleLines(msgs []tea.Msg) []string {
	var lines []string
	for _, m := range msgs {
		if a, ok := m.(console.AppendMsg); ok {
			lines = append(lines, a.Text)
		}
	}
	return lines
}

func TestGateEmptyUsernameSkipsValidator(t *testing.T) {
	v := &countingValidator{accept: true}
	p := &fakeProber{value: "OK"}
	g := NewGate(v, WithProber(p))
	g.SetCredentials("   ", "secret")

	msgs := submit(t, g)

	assert.Empty(t, msgs)
	assert.Equal(t, AwaitingInput, g.State())
	assert.Equal(t, "Enter a username.", g.Notice())
	assert.Zero(t, v.calls)
	assert.Zero(t, p.calls)
}

func TestGateRejectedClearsPassword(t *testing.T) {
	v := &countingValidator{accept: false}
	g := NewGate(v)
	g.SetCredentials("admin", "wrong")

	msgs := submit(t, g)

	assert.Equal(t, AwaitingInput, g.State())
	assert.Equal(t, "Invalid username or password.", g.Notice())
	assert.Empty(t, g.Password())
	assert.Equal(t, "admin", g.Username())
	assert.Equal(t, 1, v.calls)
	_, done := findResult(msgs)
	assert.False(t, done)
}

func TestGateAcceptedTrimsUsername(t *testing.T) {
	v := &countingValidator{accept: true}
	g := NewGate(v, WithProber(&fakeProber{value: "OK"}))
	g.SetCredentials("  admin  ", "password123")

	msgs := submit(t, g)

	assert.Equal(t, Accepted, g.State())
	res, ok := findResult(msgs)
	require.True(t, ok)
	assert.Equal(t, ResultMsg{Accepted: true, Username: "admin"}, res)
	assert.Contains(t, consoleLines(msgs), "Database check: OK")
}

func TestGateCancel(t *testing.T) {
	v := &countingValidator{accept: true}
	g := NewGate(v)

	_, cmd := g.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, Rejected, g.State())
	res, ok := findResult(drain(cmd))
	require.True(t, ok)
	assert.False(t, res.Accepted)
	assert.Zero(t, v.calls)
}

func TestGateProbeFailureAbortsAttempt(t *testing.T) {
	v := &countingValidator{accept: true}
	p := &fakeProber{err: errors.New("connection refused")}
	g := NewGate(v, WithProber(p))
	g.SetCredentials("admin", "password123")

	msgs := submit(t, g)

	assert.Equal(t, AwaitingInput, g.State())
	assert.Zero(t, v.calls, "validator must not run when the probe fails")
	assert.Contains(t, g.Notice(), "connection refused")
	assert.Equal(t, "password123", g.Password())
	lines := consoleLines(msgs)
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "Sign-in aborted"), lines[0])
}

func TestGateValidatorErrorIsConnectivity(t *testing.T) {
	g := NewGate(&countingValidator{err: errors.New("database is locked")})

	res := g.Authenticate(context.Background(), "admin", "x")

	var connErr *ConnectivityError
	require.ErrorAs(t, res.Err, &connErr)
	assert.EqualError(t, connErr.Unwrap(), "database is locked")
}

func TestGateAuthenticate(t *testing.T) {
	tests := []struct {
		name     string
		username string
		accept   bool
		wantErr  error
	}{
		{"empty", "", true, ErrEmptyUsername},
		{"whitespace", " \t", true, ErrEmptyUsername},
		{"rejected", "admin", false, ErrRejected},
		{"accepted", "admin", true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGate(&countingValidator{accept: tt.accept})
			res := g.Authenticate(context.Background(), tt.username, "pw")
			if tt.wantErr == nil {
				assert.NoError(t, res.Err)
				return
			}
			assert.ErrorIs(t, res.Err, tt.wantErr)
		})
	}
}

func TestGateTimeoutReachesProber(t *testing.T) {
	var deadline time.Time
	p := proberFunc(func(ctx context.Context) (string, error) {
		deadline, _ = ctx.Deadline()
		return "OK", nil
	})
	g := NewGate(&countingValidator{accept: true}, WithProber(p), WithTimeout(time.Second))

	res := g.Authenticate(context.Background(), "admin", "pw")
	require.NoError(t, res.Err)
	assert.False(t, deadline.IsZero())
}

func TestGateIgnoresKeysWhileChecking(t *testing.T) {
	g := NewGate(&countingValidator{accept: true})
	g.SetCredentials("admin", "pw")
	_, cmd := g.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.Equal(t, Checking, g.State())

	_, again := g.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, again)
	assert.Equal(t, Checking, g.State())
}

func TestGateFocusSwitch(t *testing.T) {
	g := NewGate(&countingValidator{})
	g.Update(tea.KeyMsg{Type: tea.KeyTab})
	g.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("pw")})

	assert.Equal(t, "pw", g.Password())
	assert.Empty(t, g.Username())
}

func TestGateView(t *testing.T) {
	g := NewGate(&countingValidator{})
	view := g.View()
	assert.Contains(t, view, "Sign in")
	assert.Contains(t, view, "Username")
	assert.Contains(t, view, "Password")
}

func TestStaticValidator(t *testing.T) {
	v := Static("admin", "password123")
	ok, err := v.Validate(context.Background(), "admin", "password123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = v.Validate(context.Background(), "admin", "password12")
	assert.False(t, ok)
	ok, _ = v.Validate(context.Background(), "root", "password123")
	assert.False(t, ok)
}

func TestStoreValidator(t *testing.T) {
	store, err := employee.OpenStore(context.Background(), filepath.Join(t.TempDir(), "agency.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	v := StoreValidator{Accounts: store}
	ctx := context.Background()

	ok, err := v.Validate(ctx, employee.DefaultUsername, employee.DefaultPassword)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.Validate(ctx, employee.DefaultUsername, "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = v.Validate(ctx, "ghost", "whatever")
	require.NoError(t, err)
	assert.False(t, ok)
}

type proberFunc func(ctx context.Context) (string, error)

func (f proberFunc) Probe(ctx context.Context) (string, error) { return f(ctx) }
