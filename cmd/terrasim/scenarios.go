package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/terrasim/internal/scenario"
)

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List built-in scenarios",
	Run:   runScenarios,
}

func runScenarios(_ *cobra.Command, _ []string) {
	names := scenario.Builtins()
	if len(names) == 0 {
		fmt.Println("No built-in scenarios.")
		return
	}

	fmt.Println("Built-in scenarios:")
	for _, name := range names {
		sc, err := scenario.Load(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %-14s (unreadable: %v)\n", name, err)
			continue
		}
		fmt.Printf("  %-14s %s\n", name, sc.Description)
	}
	fmt.Println("\nRun one with: terrasim watch <name>")
}
