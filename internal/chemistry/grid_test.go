package chemistry

import "testing"

func TestWorldToGridMapping(t *testing.T) {
	tests := []struct {
		x, y   float64
		gx, gy int
	}{
		{0, 0, 0, 0},
		{0.5, 0.5, 32, 32},
		{0.999, 0.999, 63, 63},
		{1.0, 1.0, 63, 63},
		{-0.5, 2.0, 0, 63},
		{33.0 / 64.0, 0, 33, 0},
	}
	for _, tt := range tests {
		gx, gy := worldToGrid(tt.x, tt.y)
		if gx != tt.gx || gy != tt.gy {
			t.Errorf("worldToGrid(%v, %v) = (%d, %d), want (%d, %d)",
				tt.x, tt.y, gx, gy, tt.gx, tt.gy)
		}
	}
}

func TestGridNeighborCounts(t *testing.T) {
	s := NewSystem(1)

	tests := []struct {
		gx, gy int
		count  int
	}{
		{0, 0, 3},
		{63, 63, 3},
		{0, 32, 5},
		{32, 0, 5},
		{32, 32, 8},
	}
	for _, tt := range tests {
		n := s.At(tt.gx, tt.gy)
		if got := len(n.Neighbors()); got != tt.count {
			t.Errorf("node (%d,%d) has %d neighbors, want %d", tt.gx, tt.gy, got, tt.count)
		}
	}
}

func TestGridMaterialBands(t *testing.T) {
	s := NewSystem(1)

	if m := s.At(5, 32).Materials; m&MatStone == 0 {
		t.Errorf("left band should be stone, got %b", m)
	}
	if n := s.At(60, 32); n.Materials&MatLiquid == 0 || !n.States.Has(Water) {
		t.Errorf("right band should be standing water, got materials %b states %b",
			n.Materials, n.States)
	}

	// The middle band is wood except where a metal pocket landed.
	n := s.At(32, 32)
	if n.Materials&(MatWood|MatMetal) == 0 {
		t.Errorf("middle band should be wood or a metal pocket, got %b", n.Materials)
	}
}

func TestGridSeedChangesMetalLayout(t *testing.T) {
	a := NewSystem(1)
	b := NewSystem(2)

	diff := 0
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			if a.At(x, y).Materials != b.At(x, y).Materials {
				diff++
			}
		}
	}
	if diff == 0 {
		t.Error("Different seeds should place metal pockets differently")
	}
}

func TestGridSameSeedSameLayout(t *testing.T) {
	a := NewSystem(7)
	b := NewSystem(7)

	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			if a.At(x, y).Materials != b.At(x, y).Materials {
				t.Fatalf("material mismatch at (%d,%d) for identical seeds", x, y)
			}
		}
	}
}

func TestAtOutOfRange(t *testing.T) {
	s := NewSystem(1)
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {64, 0}, {0, 64}} {
		if s.At(c[0], c[1]) != nil {
			t.Errorf("At(%d,%d) should be nil", c[0], c[1])
		}
	}
}
