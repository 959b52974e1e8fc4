package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/codejam/internal/economy"
)

var flagTechDebt float64

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the upgrade catalog",
	Long: `List every upgrade of the loaded config with its price, weight,
install quota and unlock gates. Prices follow
floor(base_cost * cost_scale_factor ^ tech_debt); use --tech-debt to see
them at a given debt.

Examples:
  codejam catalog
  codejam catalog --tech-debt 5
  codejam catalog --difficulty hard --config ./my-jam.yaml`,
	Args: cobra.NoArgs,
	Run:  runCatalog,
}

func init() {
	catalogCmd.Flags().Float64Var(&flagTechDebt, "tech-debt", 0, "Tech debt to price upgrades at")
}

func runCatalog(_ *cobra.Command, _ []string) {
	game, _, err := loadGame()
	if err != nil {
		fail("%v", err)
	}

	catalog, err := economy.CatalogFromConfig(game)
	if err != nil {
		fail("%v", err)
	}

	accent.Printf("Upgrades (%d) at tech debt %g\n", catalog.Len(), flagTechDebt)
	fmt.Println()

	fmt.Printf("  %-22s %-24s %9s %6s %5s %6s %5s  %s\n",
		"Kind", "Name", "Cost", "Scale", "Debt", "Weight", "Max", "Gates")
	muted.Printf("  %-22s %-24s %9s %6s %5s %6s %5s  %s\n",
		"----", "----", "----", "-----", "----", "------", "---", "-----")

	for _, kind := range catalog.All() {
		u := catalog.Get(kind)

		quota := "-"
		if !u.Repeatable() {
			quota = fmt.Sprintf("%d", u.Remaining)
		}

		fmt.Printf("  %-22s ", kind)
		neutral.Printf("%-24s ", u.Name)
		success.Printf("%9s ", amount(u.Cost(flagTechDebt)))
		fmt.Printf("%6.2f %5g %6g %5s  ", u.CostScaleFactor, u.TechDebt, u.Weight, quota)
		muted.Println(u.GateSummary())
	}

	if len(game.Sequence) > 0 {
		fmt.Println()
		accent.Println("Tutorial order")
		for i, name := range game.Sequence {
			fmt.Printf("  %d. %s\n", i+1, name)
		}
	}
}
