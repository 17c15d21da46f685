// Package chemistry implements the grid-based chemical state machine: element
// states, material interactions, reactions, and the two-pass
// react-then-propagate tick. All iteration is row-major over a fixed lattice
// so that every instance visits nodes in the identical order.
package chemistry

import "github.com/vovakirdan/terrasim/internal/core"

// State is a bitmask of active element states. Bit positions are stable and
// comparable across instances.
type State uint32

const (
	Neutral  State = 0
	Fire     State = 1 << 0 // spreads, consumes fuel, produces heat
	Water    State = 1 << 1 // extinguishes fire, conducts electricity
	Ice      State = 1 << 2 // slippery, melts to water
	Electric State = 1 << 3 // arcs through conductors
	Wind     State = 1 << 4 // fans flames
)

// StateCount is the number of distinct element states, and the length of the
// per-node intensity array.
const StateCount = 5

// Index returns the intensity-array slot for a single-state mask, or -1 when
// the mask is not exactly one known state.
func (s State) Index() int {
	switch s {
	case Fire:
		return 0
	case Water:
		return 1
	case Ice:
		return 2
	case Electric:
		return 3
	case Wind:
		return 4
	}
	return -1
}

// Has reports whether every bit of q is set in s.
func (s State) Has(q State) bool {
	return s&q == q
}

// Material is a bitmask of material tags describing what a node is made of.
type Material uint32

const (
	MatWood    Material = 1 << 0 // burns, floats
	MatMetal   Material = 1 << 1 // conducts electricity
	MatStone   Material = 1 << 2 // fire resistant
	MatPlant   Material = 1 << 3 // burns quickly
	MatCloth   Material = 1 << 4 // burns fast, absorbs water
	MatLiquid  Material = 1 << 5 // flows, conducts
	MatOrganic Material = 1 << 6 // rots, burns, feeds fire
)

// Node is one lattice cell. Nodes are created once at grid init, mutated
// every tick, and never destroyed individually; the whole grid is rebuilt on
// world regeneration.
type Node struct {
	Position core.Vec3

	States    State
	Intensity [StateCount]float64 // each clamped to [0,1]

	FuelRemaining float64
	Materials     Material
	Temperature   float64 // Celsius
	Conductivity  float64
	Flammability  float64

	// State duration timers, advanced while the matching state is active.
	FireDuration float64
	WetDuration  float64
	FreezeTimer  float64

	neighbors     [8]int32
	neighborCount int
}

// Active reports whether the node has any element state set.
func (n *Node) Active() bool {
	return n.States != Neutral
}

// Neighbors returns the node's precomputed neighbor indices.
func (n *Node) Neighbors() []int32 {
	return n.neighbors[:n.neighborCount]
}
