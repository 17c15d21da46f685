package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/terrasim/internal/scenario"
	"github.com/vovakirdan/terrasim/internal/sim"
	"github.com/vovakirdan/terrasim/internal/storage"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	doneStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// WatchModel runs a scenario tick by tick and draws the lattice live. The
// model owns its simulation; pausing stops the clock, not just the drawing,
// so stepping stays deterministic.
type WatchModel struct {
	sim *sim.Simulation
	sc  *scenario.Scenario

	store    *storage.Store // optional, records the finished run
	dt       float64
	tickRate int

	tick     int
	mode     ViewMode
	paused   bool
	finished bool
	recorded bool
	quitting bool

	keys   WatchKeyMap
	help   help.Model
	width  int
	height int
}

// NewWatchModel creates a watch model over a freshly built simulation. The
// scenario must already be built into s. store may be nil.
func NewWatchModel(s *sim.Simulation, sc *scenario.Scenario, store *storage.Store, tickRate int) WatchModel {
	dt := 1.0 / float64(tickRate)
	return WatchModel{
		sim:      s,
		sc:       sc,
		store:    store,
		dt:       dt,
		tickRate: tickRate,
		keys:     DefaultWatchKeyMap(),
		help:     help.New(),
	}
}

// Init starts the tick clock.
func (m WatchModel) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Step):
			if m.paused {
				m.advance()
			}
		case key.Matches(msg, m.keys.View):
			if m.mode == ViewStates {
				m.mode = ViewHeat
			} else {
				m.mode = ViewStates
			}
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if !m.paused && !m.finished {
			m.advance()
		}
		return m, tickCmd(m.tickRate)
	}
	return m, nil
}

// advance fires the scenario's events for the current tick and steps the
// simulation. After the last tick the run is recorded once.
func (m *WatchModel) advance() {
	if m.finished {
		return
	}
	m.sc.ApplyEvents(m.sim, m.tick)
	m.sim.Step(m.dt)
	m.tick++

	if m.tick >= m.sc.Ticks {
		m.finished = true
		m.record()
	}
}

func (m *WatchModel) record() {
	if m.store == nil || m.recorded {
		return
	}
	m.recorded = true
	snap := m.sim.Snapshot()
	//nolint:errcheck // Best-effort save
	m.store.SaveRun(storage.RunRecord{
		Scenario:     m.sc.Name,
		Seed:         m.sim.Seed(),
		Ticks:        m.tick,
		Dt:           m.dt,
		Hash:         snap.Hash,
		ActiveNodes:  snap.ActiveNodes,
		Integrity:    snap.Integrity,
		CascadeCount: snap.CascadeCount,
	})
}

// View renders the status header, the grid, and the help line.
func (m WatchModel) View() string {
	if m.quitting {
		return ""
	}

	snap := m.sim.Snapshot()
	header := headerStyle.Render(m.sc.Name) + statusStyle.Render(fmt.Sprintf(
		"  tick %d/%d  active %d  integrity %.2f  cascades %d",
		m.tick, m.sc.Ticks, snap.ActiveNodes, snap.Integrity, snap.CascadeCount,
	))
	if m.paused {
		header += statusStyle.Render("  [paused]")
	}
	if m.finished {
		header += doneStyle.Render(fmt.Sprintf("  done  hash %016x", snap.Hash))
	}

	gridH := m.height - 3
	if gridH <= 0 {
		gridH = 32
	}
	grid := RenderGrid(m.sim.Chemistry(), m.mode, m.width, gridH)

	return header + "\n" + grid + "\n" + m.help.View(m.keys)
}

// Finished reports whether the scenario has run to completion.
func (m WatchModel) Finished() bool { return m.finished }
