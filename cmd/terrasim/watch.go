package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/terrasim/internal/platform/tui"
	"github.com/vovakirdan/terrasim/internal/scenario"
	"github.com/vovakirdan/terrasim/internal/storage"
)

var watchCmd = &cobra.Command{
	Use:   "watch <scenario>",
	Short: "Watch a scenario live in the terminal",
	Long: `Run a scenario with a live grid view.

Controls:
  Space/P    - Pause
  .          - Step one tick while paused
  Tab        - Toggle states/heat view
  ?          - Toggle help
  Q/Ctrl+C   - Quit

Examples:
  terrasim watch wildfire
  terrasim watch rope-bridge --tick-rate 60`,
	Args: cobra.ExactArgs(1),
	Run:  runWatch,
}

func runWatch(_ *cobra.Command, args []string) {
	sc, err := scenario.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'terrasim scenarios' to see built-in scenarios.")
		os.Exit(1)
	}

	s, err := newRun(sc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building scenario: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}

	model := tui.NewWatchModel(s, sc, store, effectiveTickRate())

	// Seed the model with the current terminal size; Bubble Tea sends
	// resize messages afterwards.
	p := tea.NewProgram(model, tea.WithAltScreen())
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		go p.Send(tea.WindowSizeMsg{Width: w, Height: h})
	}

	_, runErr := p.Run()

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running watch view: %v\n", runErr)
		os.Exit(1)
	}
}
