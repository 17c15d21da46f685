package chemistry

import "github.com/vovakirdan/terrasim/internal/core"

// GridSize is the lattice edge length. The grid is fixed at init and never
// reallocated; rebuilding it for a new run goes through NewSystem with the
// run seed.
const GridSize = 64

// NodeCount is the total number of lattice cells.
const NodeCount = GridSize * GridSize

// metalPockets is how many seeded metal deposits world generation scatters
// over the default wood band.
const metalPockets = GridSize

// nodeIndex maps grid coordinates to the flat row-major index.
func nodeIndex(x, y int) int {
	return y*GridSize + x
}

// worldToGrid maps normalized [0,1] world coordinates onto the lattice by
// truncation, clamped to the grid bounds.
func worldToGrid(x, y float64) (int, int) {
	gx := core.Clamp(int(x*GridSize), 0, GridSize-1)
	gy := core.Clamp(int(y*GridSize), 0, GridSize-1)
	return gx, gy
}

// initGrid builds the lattice: positions, 8-neighbor adjacency, and the
// seed-derived material layout. The base layout is three vertical bands
// (stone, wood/organic, standing water); the seed scatters metal deposits
// over the wood band so that regenerated worlds differ deterministically.
func (s *System) initGrid(seed int64) {
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			n := &s.nodes[nodeIndex(x, y)]
			*n = Node{
				Position: core.V3(
					float64(x)/GridSize,
					float64(y)/GridSize,
					0,
				),
				Temperature: s.worldTemperature,
			}

			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= GridSize || ny < 0 || ny >= GridSize {
						continue
					}
					n.neighbors[n.neighborCount] = int32(nodeIndex(nx, ny))
					n.neighborCount++
				}
			}

			switch {
			case x < GridSize/4:
				n.Materials = MatStone
				n.Flammability = 0.1
				n.FuelRemaining = 0
				n.Conductivity = 0.1
			case x > 3*GridSize/4:
				n.Materials = MatLiquid
				n.Conductivity = 0.8
				n.Flammability = 0
				n.FuelRemaining = 0
				n.States = Water
				n.Intensity[Water.Index()] = 0.5
			default:
				n.Materials = MatWood | MatOrganic
				n.Flammability = 0.7
				n.FuelRemaining = 150.0
				n.Conductivity = 0.1
			}
		}
	}

	rng := core.NewRand(seed)
	for i := 0; i < metalPockets; i++ {
		x := GridSize/4 + rng.Intn(GridSize/2)
		y := rng.Intn(GridSize)
		n := &s.nodes[nodeIndex(x, y)]
		n.Materials = MatMetal
		n.Conductivity = 0.9
		n.Flammability = 0
		n.FuelRemaining = 0
	}
}

// nodeAt returns the node for normalized world coordinates. Never nil: the
// mapping clamps to the lattice.
func (s *System) nodeAt(x, y float64) *Node {
	gx, gy := worldToGrid(x, y)
	return &s.nodes[nodeIndex(gx, gy)]
}
