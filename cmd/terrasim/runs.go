package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/terrasim/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs [scenario]",
	Short: "Show recorded runs",
	Long: `Show recorded runs, newest first. With a scenario argument, only that
scenario's runs are shown.

Examples:
  terrasim runs
  terrasim runs wildfire
  terrasim runs --limit 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Maximum number of runs to show")
}

func runRuns(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var records []storage.RunRecord
	if len(args) == 1 {
		records, err = store.RunsForScenario(args[0], flagRunsLimit)
	} else {
		records, err = store.RecentRuns(flagRunsLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading runs: %v\n", err)
		os.Exit(1)
	}

	if len(records) == 0 {
		fmt.Println("No recorded runs.")
		return
	}

	fmt.Printf("%-4s %-16s %-8s %-6s %-18s %-9s %-8s %s\n",
		"ID", "SCENARIO", "SEED", "TICKS", "HASH", "INTEGRITY", "CASCADES", "WHEN")
	for _, r := range records {
		fmt.Printf("%-4d %-16s %-8d %-6d %016x %-9.2f %-8d %s\n",
			r.ID, r.Scenario, r.Seed, r.Ticks, r.Hash, r.Integrity, r.CascadeCount,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
