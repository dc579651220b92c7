package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/wish/testsession"
	gossh "golang.org/x/crypto/ssh"

	"github.com/vovakirdan/tui-cca/internal/config"
)

func newTestSSHServer(t *testing.T, maxSessions int) *SSHServer {
	t.Helper()
	dir := t.TempDir()

	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.DBPath = filepath.Join(dir, "runs.db")
	cfg.MaxSessions = maxSessions
	cfg.Logger = log.New(io.Discard)

	s, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	t.Cleanup(s.closeStore)
	return s
}

func dialTestSSH(t *testing.T, s *SSHServer) *gossh.Session {
	t.Helper()
	return testsession.New(t, s.server, &gossh.ClientConfig{User: "ana"})
}

func TestSSHServerNeedsTerminal(t *testing.T) {
	s := newTestSSHServer(t, 0)

	out, err := dialTestSSH(t, s).CombinedOutput("")
	if err == nil {
		t.Error("a session without a PTY should exit with an error")
	}
	if !strings.Contains(string(out), "PTY") {
		t.Errorf("output = %q, expected the PTY requirement", out)
	}
}

func TestSSHServerSessionLimit(t *testing.T) {
	s := newTestSSHServer(t, 1)
	s.active.Store(1) // one viewer already connected

	out, err := dialTestSSH(t, s).CombinedOutput("")
	if err == nil {
		t.Error("a session over the limit should exit with an error")
	}
	if !strings.Contains(string(out), "server is full") {
		t.Errorf("output = %q, expected a full server message", out)
	}
}

func TestSSHSessionConfig(t *testing.T) {
	s := newTestSSHServer(t, 0)
	s.cfg.Config = config.DefaultConfig()
	s.cfg.Config.Preset = "stripes"
	s.cfg.Config.Sim.TickRate = 15

	cfg := s.sessionConfig("ana", 100, 30)
	if cfg.Source != "ssh:ana" {
		t.Errorf("Source = %q, expected ssh:ana", cfg.Source)
	}
	if cfg.Preset != "stripes" || cfg.Runtime.TickRate != 15 {
		t.Errorf("session config = %+v, expected the server's preset and pace", cfg)
	}
	if cfg.Runtime.ScreenW != 100 || cfg.Runtime.ScreenH != 30 {
		t.Errorf("screen = %dx%d, expected the client's 100x30", cfg.Runtime.ScreenW, cfg.Runtime.ScreenH)
	}

	if got := s.sessionConfig("", 80, 24).Source; got != "ssh" {
		t.Errorf("anonymous Source = %q, expected ssh", got)
	}
}

func TestSSHServerAddr(t *testing.T) {
	s := newTestSSHServer(t, 0)
	if s.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %q, expected the configured address", s.Addr())
	}
}
