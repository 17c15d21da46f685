package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/terrasim/internal/chemistry"
)

func TestRenderGridFullSize(t *testing.T) {
	chem := chemistry.NewSystem(1)
	out := RenderGrid(chem, ViewStates, 200, 200)

	lines := strings.Split(out, "\n")
	if len(lines) != chemistry.GridSize {
		t.Errorf("full-size render has %d rows, want %d", len(lines), chemistry.GridSize)
	}
}

func TestRenderGridSamplesToFit(t *testing.T) {
	chem := chemistry.NewSystem(1)
	out := RenderGrid(chem, ViewStates, 32, 16)

	lines := strings.Split(out, "\n")
	if len(lines) != 16 {
		t.Errorf("sampled render has %d rows, want 16", len(lines))
	}
}

func TestRenderGridShowsStates(t *testing.T) {
	chem := chemistry.NewSystem(1)
	chem.SetState(0.5, 0.5, chemistry.Fire, 1.0)

	out := RenderGrid(chem, ViewStates, 200, 200)
	if !strings.Contains(out, "▲") {
		t.Error("high-intensity fire should render as ▲")
	}
	if !strings.Contains(out, "~") {
		t.Error("the standing-water band should render as ~")
	}
}

func TestRenderGridHeatView(t *testing.T) {
	chem := chemistry.NewSystem(1)
	chem.IgniteArea(0.5, 0.5, 0.05, 1.0)

	out := RenderGrid(chem, ViewHeat, 200, 200)
	if !strings.Contains(out, "+") && !strings.Contains(out, "*") {
		t.Error("an ignited patch should show warm cells in the heat view")
	}
}
