package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/terrasim/internal/chemistry"
)

// ViewMode selects what the grid view colors by.
type ViewMode int

const (
	ViewStates ViewMode = iota // dominant element state per cell
	ViewHeat                   // temperature bands
)

var (
	styleNeutral  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleFireLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	styleFireHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleWater    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleIce      = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	styleElectric = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleWind     = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))

	styleCold = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	styleWarm = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleHot  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// cellGlyph picks the glyph and style for one node under the states view. The
// strongest active intensity wins; fire outranks everything at equal
// intensity because it is the state players care about.
func cellGlyph(n *chemistry.Node) (string, lipgloss.Style) {
	if n.States == chemistry.Neutral {
		return "·", styleNeutral
	}
	if n.States.Has(chemistry.Fire) {
		if n.Intensity[chemistry.Fire.Index()] > 0.6 {
			return "▲", styleFireHigh
		}
		return "^", styleFireLow
	}
	if n.States.Has(chemistry.Electric) {
		return "≈", styleElectric
	}
	if n.States.Has(chemistry.Ice) {
		return "#", styleIce
	}
	if n.States.Has(chemistry.Water) {
		return "~", styleWater
	}
	if n.States.Has(chemistry.Wind) {
		return ")", styleWind
	}
	return "·", styleNeutral
}

// heatGlyph picks the glyph and style for one node under the heat view.
func heatGlyph(n *chemistry.Node) (string, lipgloss.Style) {
	switch {
	case n.Temperature < 0:
		return "-", styleCold
	case n.Temperature < 60:
		return "·", styleNeutral
	case n.Temperature < 150:
		return "+", styleWarm
	default:
		return "*", styleHot
	}
}

// RenderGrid draws the lattice into at most maxW x maxH character cells,
// sampling when the terminal is smaller than the grid. Runs of cells sharing
// a style are grouped to minimize ANSI escape sequences.
func RenderGrid(chem *chemistry.System, mode ViewMode, maxW, maxH int) string {
	stepX := 1
	if maxW > 0 && maxW < chemistry.GridSize {
		stepX = (chemistry.GridSize + maxW - 1) / maxW
	}
	stepY := 1
	if maxH > 0 && maxH < chemistry.GridSize {
		stepY = (chemistry.GridSize + maxH - 1) / maxH
	}

	var sb strings.Builder
	sb.Grow(chemistry.GridSize * chemistry.GridSize / (stepX * stepY) * 2)

	for gy := 0; gy < chemistry.GridSize; gy += stepY {
		if gy > 0 {
			sb.WriteRune('\n')
		}

		var run strings.Builder
		var runStyle lipgloss.Style
		runActive := false
		flush := func() {
			if runActive {
				sb.WriteString(runStyle.Render(run.String()))
				run.Reset()
			}
		}

		for gx := 0; gx < chemistry.GridSize; gx += stepX {
			n := chem.At(gx, gy)
			var glyph string
			var style lipgloss.Style
			if mode == ViewHeat {
				glyph, style = heatGlyph(n)
			} else {
				glyph, style = cellGlyph(n)
			}
			if !runActive || !sameStyle(style, runStyle) {
				flush()
				runStyle = style
				runActive = true
			}
			run.WriteString(glyph)
		}
		flush()
	}
	return sb.String()
}

func sameStyle(a, b lipgloss.Style) bool {
	return a.GetForeground() == b.GetForeground()
}
