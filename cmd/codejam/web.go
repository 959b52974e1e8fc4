package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mdp/qrterminal/v3"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/codejam/internal/storage"
	"github.com/vovakirdan/codejam/internal/web"
)

var (
	flagWebAddr    string
	flagWebMaxSim  float64
	flagWebFrameMs int
	flagWebQR      bool
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve results and live simulated jams over HTTP",
	Long: `Start a read-only HTTP API over the results database.

Routes:
  GET /healthz
  GET /v1/results?mode=&limit=      Best results, by overall score
  GET /v1/results/{id}              One result
  GET /v1/stats                     Per-mode statistics
  GET /v1/catalog?tech_debt=        Upgrade catalog priced at a debt
  GET /v1/strategies                Autoplay strategies
  GET /v1/simulate?strategy=&seed=&seconds=
  GET /v1/live?strategy=&seed=&seconds=&every=   (websocket)

Examples:
  codejam web
  codejam web --addr :9000 --db ./results.db
  codejam web --qr`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	defaults := web.DefaultConfig()
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
	webCmd.Flags().Float64Var(&flagWebMaxSim, "max-sim-seconds", defaults.MaxSimSeconds, "Longest simulated jam a client may request")
	webCmd.Flags().IntVar(&flagWebFrameMs, "frame-ms", int(defaults.FrameInterval/time.Millisecond), "Milliseconds between live frames")
	webCmd.Flags().BoolVar(&flagWebQR, "qr", false, "Print a QR code of the server URL")
}

func runWeb(_ *cobra.Command, _ []string) {
	game, filler, err := loadGame()
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger("codejam-web", os.Stderr)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("results database unavailable, result routes disabled", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	cfg := web.DefaultConfig()
	cfg.Store = store
	cfg.Game = game
	cfg.Filler = filler
	cfg.Logger = logger
	cfg.TickRate = flagFPS
	cfg.MaxSimSeconds = flagWebMaxSim
	cfg.FrameInterval = time.Duration(flagWebFrameMs) * time.Millisecond

	server, err := web.New(cfg)
	if err != nil {
		closeLog()
		fail("creating server: %v", err)
	}

	httpServer := &http.Server{
		Addr:              flagWebAddr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	url := webURL(flagWebAddr)
	fmt.Printf("Starting codejam web server on %s\n", flagWebAddr)
	fmt.Printf("Open: %s/v1/results\n", url)
	if flagWebQR {
		qrterminal.GenerateHalfBlock(url, qrterminal.L, os.Stdout)
	}
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			closeLog()
			fail("server: %v", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "err", err)
		}
	}
}

// webURL turns a listen address into a URL clients can open. An empty
// host becomes the first non-loopback IPv4 address, so the QR code works
// from a phone on the same network.
func webURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
		if ip := lanIP(); ip != "" {
			host = ip
		}
	}
	return "http://" + net.JoinHostPort(host, port)
}

func lanIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return ""
	}
	for _, a := range addrs {
		if ipNet, ok := a.(*net.IPNet); ok && !ipNet.IP.IsLoopback() {
			if ip4 := ipNet.IP.To4(); ip4 != nil {
				return ip4.String()
			}
		}
	}
	return ""
}
