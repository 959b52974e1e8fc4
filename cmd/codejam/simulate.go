package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/codejam/internal/autoplay"
	"github.com/vovakirdan/codejam/internal/economy"
	"github.com/vovakirdan/codejam/internal/registry"
	"github.com/vovakirdan/codejam/internal/storage"
)

var (
	flagStrategy string
	flagRuns     int
	flagSeconds  float64
	flagKeys     float64
	flagSave     bool
	flagList     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless jams driven by a strategy",
	Long: `Run one or more jams without a terminal UI. A registered strategy
chooses purchases while a simulated player types at a fixed speed.
Runs are deterministic for a given config, seed and strategy; with
--runs N the seeds are seed, seed+1, ... seed+N-1.

Examples:
  codejam simulate --list
  codejam simulate --strategy greedy
  codejam simulate --strategy frugal --runs 10 --seed 1
  codejam simulate --strategy random --seconds 300 --save`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	defaults := autoplay.DefaultOptions()
	simulateCmd.Flags().StringVar(&flagStrategy, "strategy", "greedy", "Strategy ID")
	simulateCmd.Flags().IntVar(&flagRuns, "runs", 1, "Number of runs")
	simulateCmd.Flags().Float64Var(&flagSeconds, "seconds", defaults.MaxSeconds, "Simulated time limit per run")
	simulateCmd.Flags().Float64Var(&flagKeys, "keys", defaults.KeysPerSecond, "Simulated keystrokes per second")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Store results in the database")
	simulateCmd.Flags().BoolVar(&flagList, "list", false, "List available strategies")
}

func runSimulate(_ *cobra.Command, _ []string) {
	if flagList {
		listStrategies()
		return
	}

	if !registry.Exists(flagStrategy) {
		fmt.Fprintf(os.Stderr, "Error: unknown strategy %q\n", flagStrategy)
		fmt.Fprintln(os.Stderr, "Run 'codejam simulate --list' to see available strategies.")
		os.Exit(1)
	}
	if flagRuns < 1 {
		fail("--runs must be at least 1")
	}

	game, filler, err := loadGame()
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger("codejam-sim", os.Stderr)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	var store *storage.Store
	if flagSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			closeLog()
			fail("opening results database: %v", err)
		}
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := autoplay.DefaultOptions()
	opts.TickRate = flagFPS
	opts.MaxSeconds = flagSeconds
	opts.KeysPerSecond = flagKeys
	opts.Filler = filler
	opts.Logger = logger

	var best, total float64
	for i := range flagRuns {
		opts.Seed = seed + int64(i)
		res, err := autoplay.Run(ctx, game, flagStrategy, opts)
		if autoplay.IsCancelled(err) {
			warn.Println("Interrupted.")
			return
		}
		if err != nil {
			fail("run %d: %v", i+1, err)
		}

		printRun(i+1, res)

		if store != nil {
			id, err := store.SaveResult(storage.NewResult("autoplay", res.Strategy, res.Seed, res.State, res.Scores, res.Elapsed))
			if err != nil {
				danger.Printf("  could not save result: %v\n", err)
			} else {
				muted.Printf("  saved as %s\n", id)
			}
		}

		overall := res.Scores.Overall()
		total += overall
		best = max(best, overall)
	}

	if flagRuns > 1 {
		fmt.Println()
		accent.Printf("%d runs: best %.2f, average %.2f\n", flagRuns, best, total/float64(flagRuns))
	}
}

func listStrategies() {
	strategies := registry.List()
	if len(strategies) == 0 {
		fmt.Println("No strategies available.")
		return
	}

	fmt.Println("Available strategies:")
	fmt.Println()
	for _, s := range strategies {
		fmt.Printf("  %-10s  %s\n", s.ID, s.Title)
	}
}

func printRun(n int, res autoplay.Result) {
	fmt.Println()
	header := fmt.Sprintf("Run %d - %s, seed %d", n, res.Strategy, res.Seed)
	accent.Println(header)

	status := success.Sprint("submitted")
	if !res.Submitted {
		status = warn.Sprint("time limit")
	}
	s := res.State
	fmt.Printf("  %s after %s (%d ticks)\n", status, formatDuration(res.Elapsed), res.Ticks)
	neutral.Printf("  lines %s  entities %s  tech debt %s  upgrades %d  rejected %d\n",
		amount(s.Lines), amount(s.Entities), amount(s.TechDebt), s.UpgradesInstalled, res.Rejected)

	if len(res.Purchases) > 0 {
		muted.Printf("  bought %s\n", purchaseSummary(res.Purchases))
	}
	printScores(res.Scores)
}

// purchaseSummary counts purchases by kind in first-purchase order.
func purchaseSummary(kinds []economy.Kind) string {
	var counts [economy.KindCount]int
	var order []economy.Kind
	for _, k := range kinds {
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
	}

	out := ""
	for i, k := range order {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s x%d", k, counts[k])
	}
	return out
}

func formatDuration(secs float64) string {
	return (time.Duration(secs * float64(time.Second))).Round(time.Second).String()
}
