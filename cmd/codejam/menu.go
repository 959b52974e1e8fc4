package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/codejam/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start codejam with a menu",
	Long: `Start codejam in interactive menu mode.

Pick "Start a jam" to play or "Results" for the results board.
Esc leaves a jam or the board and returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  codejam menu
  codejam menu --fps 60
  codejam menu --db ./results.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	opts, cleanup := sessionOptions("play")
	defer cleanup()

	if err := tui.RunSession(opts); err != nil {
		cleanup()
		fail("running menu: %v", err)
	}
}
