package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/terrasim/internal/scenario"
	"github.com/vovakirdan/terrasim/internal/storage"
)

var flagRunTicks int

var runCmd = &cobra.Command{
	Use:   "run <scenario>",
	Short: "Run a scenario headless and record the result",
	Long: `Run a scenario to completion without a UI and record the final state
hash in the runs database.

The scenario argument is a built-in name or a path to a YAML file.

Examples:
  terrasim run wildfire
  terrasim run ./my-scenario.yaml
  terrasim run wildfire --seed 99 --ticks 500`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagRunTicks, "ticks", 0, "Override the scenario's tick count")
}

func runRun(_ *cobra.Command, args []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "terrasim"})

	sc, err := scenario.Load(args[0])
	if err != nil {
		logger.Error("cannot load scenario", "error", err)
		os.Exit(1)
	}
	if flagRunTicks > 0 {
		sc.Ticks = flagRunTicks
	}

	s, err := newRun(sc)
	if err != nil {
		logger.Error("cannot build scenario", "scenario", sc.Name, "error", err)
		os.Exit(1)
	}

	tickRate := effectiveTickRate()
	dt := 1.0 / float64(tickRate)

	logger.Info("running", "scenario", sc.Name, "seed", s.Seed(), "ticks", sc.Ticks, "tick-rate", tickRate)

	for tick := 0; tick < sc.Ticks; tick++ {
		sc.ApplyEvents(s, tick)
		s.Step(dt)
	}

	snap := s.Snapshot()
	logger.Info("finished",
		"hash", fmt.Sprintf("%016x", snap.Hash),
		"active", snap.ActiveNodes,
		"integrity", fmt.Sprintf("%.2f", snap.Integrity),
		"cascades", snap.CascadeCount,
	)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		return
	}
	defer store.Close()

	if _, err := store.SaveRun(storage.RunRecord{
		Scenario:     sc.Name,
		Seed:         s.Seed(),
		Ticks:        sc.Ticks,
		Dt:           dt,
		Hash:         snap.Hash,
		ActiveNodes:  snap.ActiveNodes,
		Integrity:    snap.Integrity,
		CascadeCount: snap.CascadeCount,
	}); err != nil {
		logger.Warn("could not record run", "error", err)
	}
}
