// Package world implements the shared rigid-body registry. Bodies are plain
// position/velocity/force-accumulator records addressed by integer handles.
// The registry is a leaf dependency: the constraint solver mutates bodies
// through it, and scenario/platform code seeds it, but it knows nothing about
// either.
package world

import "github.com/vovakirdan/terrasim/internal/core"

// MaxBodies is the fixed body capacity. Creation beyond it is rejected so
// that memory layout stays identical across independently-running instances.
const MaxBodies = 256

// Handle identifies a body in the registry.
type Handle int

const (
	// InvalidHandle is returned when creation is rejected. Callers must
	// check for it; it is never a valid index.
	InvalidHandle Handle = -1

	// Anchor is a reserved sentinel usable as a constraint endpoint. It
	// stands for a static world-space attachment point rather than a body:
	// the constraint's local anchor is interpreted as the world position.
	Anchor Handle = -2
)

// Body is a point-mass rigid body. Forces accumulate between Integrate calls;
// impulses change velocity immediately.
type Body struct {
	Position core.Vec3
	Velocity core.Vec3
	Force    core.Vec3

	Mass    float64
	InvMass float64 // 0 for static bodies
	Static  bool
}

// ApplyForce adds to the body's force accumulator. No-op on static bodies.
func (b *Body) ApplyForce(f core.Vec3) {
	if b.Static {
		return
	}
	b.Force = b.Force.Add(f)
}

// ApplyImpulse changes the body's velocity immediately, scaled by inverse
// mass. No-op on static bodies.
func (b *Body) ApplyImpulse(imp core.Vec3) {
	if b.Static {
		return
	}
	b.Velocity = b.Velocity.Add(imp.Scale(b.InvMass))
}

// World is the body registry. It is owned by a single simulation instance and
// must only be mutated between ticks or by the tick functions themselves.
type World struct {
	bodies []Body
}

// New creates an empty registry with the fixed capacity pre-allocated.
func New() *World {
	return &World{bodies: make([]Body, 0, MaxBodies)}
}

// AddBody registers a body at the given position. A mass <= 0 creates a
// static body. Returns InvalidHandle when the registry is full.
func (w *World) AddBody(pos core.Vec3, mass float64) Handle {
	if len(w.bodies) >= MaxBodies {
		return InvalidHandle
	}
	b := Body{Position: pos, Mass: mass}
	if mass > 0 {
		b.InvMass = 1.0 / mass
	} else {
		b.Static = true
	}
	w.bodies = append(w.bodies, b)
	return Handle(len(w.bodies) - 1)
}

// Valid reports whether h addresses a registered body. The Anchor sentinel is
// not a body and reports false.
func (w *World) Valid(h Handle) bool {
	return h >= 0 && int(h) < len(w.bodies)
}

// Body returns the body for h, or nil for out-of-range handles. Out-of-range
// access is a silent no-op by contract, so callers treat nil as "skip".
func (w *World) Body(h Handle) *Body {
	if !w.Valid(h) {
		return nil
	}
	return &w.bodies[int(h)]
}

// Count returns the number of registered bodies.
func (w *World) Count() int {
	return len(w.bodies)
}

// SetStatic toggles the static flag on an existing body. Making a body static
// zeroes its velocity and accumulated force.
func (w *World) SetStatic(h Handle, static bool) {
	b := w.Body(h)
	if b == nil {
		return
	}
	b.Static = static
	if static {
		b.InvMass = 0
		b.Velocity = core.Vec3{}
		b.Force = core.Vec3{}
	} else if b.Mass > 0 {
		b.InvMass = 1.0 / b.Mass
	}
}

// Integrate advances every non-static body by one step of semi-implicit
// Euler: velocity picks up the accumulated force, then position picks up the
// new velocity. Force accumulators are cleared. Bodies are integrated in
// handle order, which is part of the deterministic contract.
func (w *World) Integrate(dt float64) {
	for i := range w.bodies {
		b := &w.bodies[i]
		if b.Static {
			b.Force = core.Vec3{}
			continue
		}
		b.Velocity = b.Velocity.Add(b.Force.Scale(b.InvMass * dt))
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
		b.Force = core.Vec3{}
	}
}
