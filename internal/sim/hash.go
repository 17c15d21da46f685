package sim

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/vovakirdan/terrasim/internal/chemistry"
	"github.com/vovakirdan/terrasim/internal/constraint"
	"github.com/vovakirdan/terrasim/internal/core"
	"github.com/vovakirdan/terrasim/internal/world"
)

// Hash folds the full simulation state into a 64-bit FNV-1a digest. The dump
// order is fixed (tick, grid row-major, bodies in handle order, constraints
// and structural nodes in registration order), so equal hashes mean equal
// state down to the last float bit.
func (s *Simulation) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte

	u64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	f64 := func(v float64) {
		u64(math.Float64bits(v))
	}
	vec := func(v core.Vec3) {
		f64(v.X)
		f64(v.Y)
		f64(v.Z)
	}

	u64(s.tick)

	for gy := 0; gy < chemistry.GridSize; gy++ {
		for gx := 0; gx < chemistry.GridSize; gx++ {
			n := s.chem.At(gx, gy)
			u64(uint64(n.States))
			u64(uint64(n.Materials))
			for i := 0; i < chemistry.StateCount; i++ {
				f64(n.Intensity[i])
			}
			f64(n.FuelRemaining)
			f64(n.Temperature)
		}
	}

	for i := 0; i < s.world.Count(); i++ {
		b := s.world.Body(world.Handle(i))
		vec(b.Position)
		vec(b.Velocity)
		f64(b.Mass)
	}

	for i := 0; i < s.cons.Count(); i++ {
		c := s.cons.Constraint(constraint.Handle(i))
		if c.Broken {
			u64(1)
		} else {
			u64(0)
		}
		f64(c.BreakThreshold)
		f64(c.CurrentValue)
	}

	for i := 0; i < s.cons.NodeCount(); i++ {
		f64(s.cons.NodeLoad(constraint.NodeHandle(i)))
	}

	f64(s.cons.Integrity())
	return h.Sum64()
}
