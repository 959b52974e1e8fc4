package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/codejam/internal/storage"
)

var (
	flagMode  string
	flagLimit int
	flagClear bool
	flagID    string
	flagStats bool
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show stored results",
	Long: `Display the best stored results, ordered by overall score.

Modes are "play" for local jams, "ssh" for jams played over SSH and the
strategy ID for simulated runs.

Examples:
  codejam results
  codejam results --mode ssh --limit 20
  codejam results --id 1f0c...
  codejam results --stats
  codejam results --mode greedy --clear`,
	Args: cobra.NoArgs,
	Run:  runResults,
}

func init() {
	resultsCmd.Flags().StringVar(&flagMode, "mode", "", "Only show results of this mode")
	resultsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of results to show")
	resultsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the results of --mode (all when empty)")
	resultsCmd.Flags().StringVar(&flagID, "id", "", "Show one result in detail")
	resultsCmd.Flags().BoolVar(&flagStats, "stats", false, "Show per-mode statistics")
}

func runResults(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening results database: %v", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		err = clearResults(store)
	case flagID != "":
		err = showResult(store, flagID)
	case flagStats:
		err = showStats(store)
	default:
		err = listResults(store)
	}
	if err != nil {
		store.Close()
		fail("%v", err)
	}
}

func clearResults(store *storage.Store) error {
	if err := store.ClearResults(flagMode); err != nil {
		return err
	}
	if flagMode == "" {
		warn.Println("Deleted all results.")
	} else {
		warn.Printf("Deleted results of mode %q.\n", flagMode)
	}
	return nil
}

func listResults(store *storage.Store) error {
	results, err := store.TopResults(flagMode, flagLimit)
	if err != nil {
		return err
	}

	title := "Results"
	if flagMode != "" {
		title = fmt.Sprintf("Results - %s", flagMode)
	}
	accent.Println(title)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Println("Play 'codejam play' and submit to record the first one!")
		return nil
	}

	fmt.Printf("  %-4s  %-7s  %-5s  %-8s  %-12s  %-8s  %-16s  %s\n",
		"Rank", "Overall", "Stars", "Lines", "Player", "Mode", "Date", "ID")
	muted.Printf("  %-4s  %-7s  %-5s  %-8s  %-12s  %-8s  %-16s  %s\n",
		"----", "-------", "-----", "-----", "------", "----", "----", "--")

	for i, r := range results {
		overall := r.Scores.Overall()
		fmt.Printf("  %-4d  ", i+1)
		scoreColor(overall).Printf("%-7.2f  %-5s  ", overall, stars(overall))
		fmt.Printf("%-8s  %-12s  %-8s  %-16s  ",
			amount(r.Lines), r.Player, r.Mode, r.CreatedAt.Local().Format("2006-01-02 15:04"))
		muted.Println(r.ID)
	}

	best, err := store.BestOverall(flagMode)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %.2f\n", best)
	}
	return nil
}

func showResult(store *storage.Store, id string) error {
	r, err := store.ResultByID(id)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("no result with ID %q", id)
	}

	accent.Printf("Result %s\n", r.ID)
	fmt.Println()
	neutral.Printf("  player %s, mode %s, seed %d, %s\n",
		r.Player, r.Mode, r.Seed, r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	neutral.Printf("  lines %s  entities %s  tech debt %s  upgrades %d  in %s\n",
		amount(r.Lines), amount(r.Entities), amount(r.TechDebt), r.Upgrades, formatDuration(r.Duration))
	fmt.Println()
	printScores(r.Scores)
	return nil
}

func showStats(store *storage.Store) error {
	stats, err := store.ModeStats()
	if err != nil {
		return err
	}

	accent.Println("Statistics")
	fmt.Println()
	if len(stats) == 0 {
		fmt.Println("No results recorded yet.")
		return nil
	}

	modes := make([]string, 0, len(stats))
	for mode := range stats {
		modes = append(modes, mode)
	}
	sort.Strings(modes)

	fmt.Printf("  %-10s  %5s  %6s  %6s  %10s  %s\n", "Mode", "Jams", "Best", "Avg", "Lines", "Last played")
	muted.Printf("  %-10s  %5s  %6s  %6s  %10s  %s\n", "----", "----", "----", "---", "-----", "-----------")
	for _, mode := range modes {
		st := stats[mode]
		fmt.Printf("  %-10s  %5d  %6.2f  %6.2f  %10s  %s\n",
			st.Mode, st.Count, st.BestOverall, st.AvgOverall, amount(st.TotalLines),
			st.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
