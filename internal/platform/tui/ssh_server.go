package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	rm "github.com/charmbracelet/wish/recover"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-cca/internal/config"
	"github.com/vovakirdan/tui-cca/internal/storage"
)

// shutdownGrace bounds how long Serve waits for open sessions on shutdown.
const shutdownGrace = 10 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Address     string // host:port to listen on
	HostKeyPath string // empty: ~/.tui-cca/host_key, generated on first use
	DBPath      string // run journal shared by every session
	IdleTimeout time.Duration
	MaxSessions int // 0 = unlimited

	// Config supplies the layout, pace and starting preset of every session.
	Config config.Config

	// Logger receives server events. Nil creates one on stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.tui-cca/runs.db",
		IdleTimeout: 30 * time.Minute,
		Config:      config.DefaultConfig(),
	}
}

// SSHServer serves one automaton session per SSH connection. Sessions run
// independent simulators and share nothing but the run journal.
type SSHServer struct {
	cfg    SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
	active atomic.Int32
}

// NewSSHServer creates the server and opens the journal. A journal that
// cannot be opened is logged and sessions run without one.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "cca-ssh",
		})
	}

	hostKey, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	s := &SSHServer{cfg: cfg, logger: cfg.Logger}

	// Innermost first: the program only starts for an active terminal, and a
	// panic in one session is logged instead of taking the server down.
	session := rm.MiddlewareWithLogger(cfg.Logger,
		bubbletea.Middleware(s.newSession),
		activeterm.Middleware(),
	)

	s.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKey),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(session, s.admit),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	if s.store, err = storage.Open(cfg.DBPath); err != nil {
		s.logger.Warn("run journal unavailable, runs will not be recorded", "path", cfg.DBPath, "error", err)
		s.store = nil
	}
	return s, nil
}

// hostKeyPath resolves the host key location and makes sure its directory exists.
func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: cannot locate home directory: %w", err)
		}
		path = filepath.Join(home, ".tui-cca", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("tui: cannot create host key directory: %w", err)
	}
	return path, nil
}

// sessionConfig sizes a session to the client's terminal. Runs are journaled
// under the SSH user so the journal tells remote viewers apart.
func (s *SSHServer) sessionConfig(user string, width, height int) SessionConfig {
	cfg := NewSessionConfig(s.cfg.Config, width, height)
	cfg.Source = "ssh"
	if user != "" {
		cfg.Source += ":" + user
	}
	return cfg
}

// newSession builds the session model for a connection that has a PTY.
func (s *SSHServer) newSession(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	cfg := s.sessionConfig(sess.User(), pty.Window.Width, pty.Window.Height)
	renderer := NewRenderer(bubbletea.MakeRenderer(sess))
	return NewSessionModel(s.store, cfg, renderer), []tea.ProgramOption{tea.WithAltScreen()}
}

// admit enforces MaxSessions and logs each session's lifetime.
func (s *SSHServer) admit(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		n := s.active.Add(1)
		defer s.active.Add(-1)

		logger := s.logger.With("session", uuid.NewString()[:8], "user", sess.User())
		if s.cfg.MaxSessions > 0 && int(n) > s.cfg.MaxSessions {
			logger.Warn("session refused", "limit", s.cfg.MaxSessions)
			wish.Fatalln(sess, "cca: server is full, try again later")
			return
		}

		started := time.Now()
		logger.Info("session started", "remote", sess.RemoteAddr().String(), "active", n)
		next(sess)
		logger.Info("session ended", "duration", time.Since(started).Round(time.Second))
	}
}

// Serve listens until ctx is cancelled or the listener fails, then shuts
// down and closes the journal.
func (s *SSHServer) Serve(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		errc <- s.server.ListenAndServe()
	}()
	s.logger.Info("listening", "address", s.Addr(), "max_sessions", s.cfg.MaxSessions)

	select {
	case err := <-errc:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("tui: SSH server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "active", s.Active())
	return s.Shutdown()
}

// Shutdown waits up to shutdownGrace for sessions to end, then closes the journal.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.cfg.Address
}

// Active returns the number of sessions currently connected.
func (s *SSHServer) Active() int {
	return int(s.active.Load())
}
