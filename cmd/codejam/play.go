package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/codejam/internal/platform/tui"
	"github.com/vovakirdan/codejam/internal/storage"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a jam",
	Long: `Start a jam directly in the terminal.

Every printable key types code. Lines of code buy upgrades; the result is
saved when you buy Submit.

Controls:
  Any key         - Type code
  Tab/Down        - Next upgrade
  Shift+Tab/Up    - Previous upgrade
  Enter           - Buy the selected upgrade
  Ctrl+P          - Pause
  Ctrl+R / Enter  - New jam (after submitting)
  Esc / Ctrl+C    - Quit

Difficulty options:
  easy   - Slower cost growth and a head start of lines
  normal - Costs as configured
  hard   - Faster cost growth
  fixed  - Costs never grow with tech debt

Examples:
  codejam play
  codejam play --difficulty easy
  codejam play --seed 42 --config ./my-jam.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name stored with results (default: current user)")
	menuCmd.Flags().StringVar(&flagPlayer, "player", "", "Name stored with results (default: current user)")
}

func runPlay(_ *cobra.Command, _ []string) {
	opts, cleanup := sessionOptions("play")
	defer cleanup()

	if err := tui.Run(opts); err != nil {
		cleanup()
		fail("running jam: %v", err)
	}
}

// sessionOptions builds the options shared by play and menu.
// The returned cleanup closes the store and the log file.
func sessionOptions(mode string) (tui.Options, func()) {
	game, filler, err := loadGame()
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger("codejam", io.Discard)
	if err != nil {
		fail("%v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - the jam still works
		store = nil
	}

	player := flagPlayer
	if player == "" {
		player = playerName()
	}

	opts := tui.Options{
		Game:    game,
		Runtime: runtimeConfig(),
		Store:   store,
		Player:  player,
		Mode:    mode,
		Filler:  filler,
		Logger:  logger,
	}

	done := false
	cleanup := func() {
		if done {
			return
		}
		done = true
		if store != nil {
			store.Close()
		}
		closeLog()
	}
	return opts, cleanup
}
