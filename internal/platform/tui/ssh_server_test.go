package tui

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestSSHServerSessionOptions(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "keys", "host_key")
	cfg.DBPath = filepath.Join(dir, "results.db")
	cfg.Logger = log.New(io.Discard)

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	defer srv.Shutdown()

	if _, err := os.Stat(filepath.Join(dir, "keys")); err != nil {
		t.Errorf("host key directory not created: %v", err)
	}
	if srv.ActiveSessions() != 0 {
		t.Errorf("ActiveSessions() = %d before any connection", srv.ActiveSessions())
	}

	opts := srv.sessionOptions("ada", 120, 40)
	if opts.Mode != "ssh" || opts.Player != "ada" {
		t.Errorf("mode %q, player %q", opts.Mode, opts.Player)
	}
	if opts.Runtime.ScreenW != 120 || opts.Runtime.ScreenH != 40 || opts.Runtime.TickRate != cfg.TickRate {
		t.Errorf("runtime = %+v", opts.Runtime)
	}
	if opts.Store == nil {
		t.Error("sessions should share the results store")
	}
	if opts.QuitOnBack {
		t.Error("SSH sessions return to the menu on esc")
	}

	if _, err := NewEditorModel(opts); err != nil {
		t.Errorf("session options do not build an editor: %v", err)
	}
}
