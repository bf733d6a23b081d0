package server

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"go.uber.org/zap"

	"github.com/tnguyen21/securedesk/internal/app"
	"github.com/tnguyen21/securedesk/internal/config"
)

// hostKeyName is the file under the host key directory holding the server key.
const hostKeyName = "securedesk_host_key"

// Server wraps a wish SSH server that serves one shell per session.
type Server struct {
	config config.Server
	deps   app.Deps
	logger *zap.Logger
	wish   *ssh.Server
}

// New creates a Server listening on cfg.Port. Every session gets its own
// Shell built from deps; the collaborators in deps are shared.
func New(cfg config.Server, deps app.Deps) (*Server, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &Server{config: cfg, deps: deps, logger: logger}

	s, err := wish.NewServer(
		wish.WithAddress(fmt.Sprintf(":%d", cfg.Port)),
		wish.WithHostKeyPath(filepath.Join(cfg.HostKeyDir, hostKeyName)),
		wish.WithPublicKeyAuth(publicKeyHandler),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			srv.logMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating wish server: %w", err)
	}
	srv.wish = s
	return srv, nil
}

func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	deps := s.deps
	deps.Logger = s.logger.With(
		zap.String("remote", sess.RemoteAddr().String()),
		zap.String("ssh_user", sess.User()),
	)
	return app.New(deps), []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// logMiddleware records session start and end.
func (s *Server) logMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		fields := []zap.Field{
			zap.String("remote", sess.RemoteAddr().String()),
			zap.String("ssh_user", sess.User()),
		}
		s.logger.Info("session opened", fields...)
		next(sess)
		s.logger.Info("session closed", fields...)
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.wish.Addr
}

// Start begins listening for SSH connections. It blocks until the server
// is shut down or encounters a fatal error. Returns nil on graceful shutdown.
func (s *Server) Start() error {
	if err := s.wish.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.wish.Shutdown(ctx)
}

// publicKeyHandler accepts all SSH public keys. Operators still sign in
// through the shell's own gate before any data is shown.
func publicKeyHandler(_ ssh.Context, _ ssh.PublicKey) bool {
	return true
}
