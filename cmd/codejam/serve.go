package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/codejam/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the codejam SSH server",
	Long: `Start an SSH server that allows users to connect and jam.

Each SSH connection gets its own session and its own economy, driven by
the shared config. Results are stored per-server under mode "ssh", with
the SSH user name as player.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.codejam/host_key

Examples:
  codejam serve                           # Listen on :23234 with auto-generated key
  codejam serve --ssh :2222               # Listen on port 2222
  codejam serve --host-key ./my_host_key  # Use specific host key
  codejam serve --db ./results.db         # Use specific database
  codejam serve --max-sessions 20         # Turn away the 21st player

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", 0, "Maximum concurrent sessions (0 = unlimited)")
}

func runServe(_ *cobra.Command, _ []string) {
	game, filler, err := loadGame()
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger("codejam-ssh", os.Stderr)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		MaxSessions: flagMaxSessions,
		TickRate:    flagFPS,
		Game:        game,
		Filler:      filler,
		Logger:      logger,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting codejam SSH server on %s\n", server.Addr())
	if _, port, err := net.SplitHostPort(server.Addr()); err == nil {
		fmt.Printf("Connect with: ssh localhost -p %s\n", port)
	}
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		closeLog()
		fail("server: %v", err)
	}
}
