// Package sim ties the chemistry lattice, the constraint system, and the body
// registry into one explicitly-owned simulation instance. Everything runs
// synchronously inside Step; multiple instances can coexist, which the
// determinism tests rely on.
package sim

import (
	"github.com/vovakirdan/terrasim/internal/chemistry"
	"github.com/vovakirdan/terrasim/internal/constraint"
	"github.com/vovakirdan/terrasim/internal/core"
	"github.com/vovakirdan/terrasim/internal/world"
)

// Simulation is one run of the engine. All mutation must happen between Step
// calls; Step itself is the only function that advances state.
type Simulation struct {
	world *world.World
	chem  *chemistry.System
	cons  *constraint.System

	seed int64
	tick uint64
}

// New builds a fresh simulation from a run seed. Two simulations built from
// the same seed start bit-identical.
func New(seed int64) *Simulation {
	w := world.New()
	return &Simulation{
		world: w,
		chem:  chemistry.NewSystem(seed),
		cons:  constraint.NewSystem(w),
		seed:  seed,
	}
}

// World returns the body registry.
func (s *Simulation) World() *world.World { return s.world }

// Chemistry returns the chemical lattice.
func (s *Simulation) Chemistry() *chemistry.System { return s.chem }

// Constraints returns the joint and structural system.
func (s *Simulation) Constraints() *constraint.System { return s.cons }

// Seed returns the run seed.
func (s *Simulation) Seed() int64 { return s.seed }

// Tick returns how many steps have run.
func (s *Simulation) Tick() uint64 { return s.tick }

// Step advances the simulation by dt. The phase order is fixed: chemistry
// reacts and propagates, constraints solve, bodies integrate the accumulated
// forces, and the structural analyzer inspects the result.
func (s *Simulation) Step(dt float64) {
	s.chem.Update(dt)
	s.cons.Solve(dt)
	s.world.Integrate(dt)
	s.cons.Analyze()
	s.tick++
}

// Snapshot is a cheap summary of the simulation for recording and display.
// Hash covers the full state, so two snapshots with equal hashes come from
// bit-identical simulations.
type Snapshot struct {
	Tick         uint64
	ActiveNodes  int
	Reactions    int
	Bodies       int
	Constraints  int
	Integrity    float64
	CascadeCount int
	Hash         uint64
}

// Snapshot summarizes the current state.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Tick:         s.tick,
		ActiveNodes:  s.chem.ActiveNodes(),
		Reactions:    s.chem.ReactionsPerFrame(),
		Bodies:       s.world.Count(),
		Constraints:  s.cons.Count(),
		Integrity:    s.cons.Integrity(),
		CascadeCount: s.cons.CascadeCount(),
		Hash:         s.Hash(),
	}
}

// Wind forwards the global wind vector to the chemistry system.
func (s *Simulation) SetWind(v core.Vec3) { s.chem.SetWind(v) }
