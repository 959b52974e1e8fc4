// codejam is a terminal idle game about shipping a game jam entry: type code,
// buy upgrades, spawn entities and submit before the clock runs out.
//
// Usage:
//
//	codejam play             - Start a jam in the terminal
//	codejam menu             - Start the menu (jam, results board)
//	codejam serve            - Start SSH server for remote play
//	codejam web              - Serve results and live jams over HTTP
//	codejam simulate         - Run headless jams driven by a strategy
//	codejam catalog          - Show the upgrade catalog
//	codejam results          - Show stored results
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 30)
//	--seed <value>         - Set RNG seed for reproducible sessions
//	--db <path>            - Set database path (default: ~/.codejam/results.db)
//	--config <path>        - Use a custom economy config YAML
//	--difficulty <preset>  - easy, normal, hard or fixed
package main

import (
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/codejam/internal/config"
	"github.com/vovakirdan/codejam/internal/core"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "codejam",
	Short: "codejam - ship a game jam entry from your terminal",
	Long: `codejam is an idle game about a game jam. Typing produces lines of code,
lines buy upgrades, upgrades make more lines, spawn entities and pile up
tech debt. Submit when you are ready and the judges score your entry.

Available commands:
  play      - Start a jam directly
  menu      - Menu with jams and the results board
  serve     - Start SSH server for remote play
  web       - Serve results and live simulated jams over HTTP
  simulate  - Run headless jams driven by a strategy
  catalog   - Show the upgrade catalog
  results   - View stored results

Examples:
  codejam play
  codejam play --difficulty easy
  codejam menu
  codejam serve --ssh :2222
  codejam web --addr :8080
  codejam simulate --strategy greedy --runs 5
  codejam results --mode play`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.codejam/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom economy config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (full-screen commands log nowhere otherwise)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(resultsCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadGame loads the economy config, applies the difficulty preset and
// reads the filler text.
func loadGame() (config.GameConfig, string, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.GameConfig{}, "", err
	}
	if flagDifficulty != "" {
		config.ApplyPreset(&cfg, config.ParsePreset(flagDifficulty))
	}

	filler, err := config.LoadFiller(cfg.Session)
	if err != nil {
		return config.GameConfig{}, "", err
	}
	return cfg, filler, nil
}

// newLogger builds the command logger. Full-screen commands pass io.Discard
// as the fallback so logs never draw over the UI.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func(), error) {
	out := fallback
	closer := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		closer()
		return nil, nil, fmt.Errorf("invalid log level %q", flagLogLevel)
	}
	logger.SetLevel(level)
	return logger, closer, nil
}

// runtimeConfig sizes the session to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// playerName returns the local user name for stored results.
func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "anonymous"
}
