// Package constraint implements the joint system: typed constraints between
// rigid bodies, the per-tick positional/force solver, and structural-failure
// analysis with cascading collapse. Constraints solve in registration order
// every tick, which is part of the deterministic contract.
package constraint

import (
	"github.com/vovakirdan/terrasim/internal/core"
	"github.com/vovakirdan/terrasim/internal/world"
)

// Capacities are fixed so that independently-running instances agree on every
// rejection.
const (
	MaxConstraints     = 256
	MaxStructuralNodes = 128
)

// Handle identifies a constraint.
type Handle int

// InvalidHandle is returned when creation is rejected.
const InvalidHandle Handle = -1

// Type selects the joint behavior.
type Type int

const (
	Hinge  Type = iota // rotation around one axis, optionally motorized
	Ball               // rotation around a point
	Slider             // translation along one axis, with limits
	Fixed              // no relative motion
	Rope               // one-sided distance constraint, pulls only
	Spring             // two-sided spring-damper
)

// String returns the type name used in scenario files and logs.
func (t Type) String() string {
	switch t {
	case Hinge:
		return "hinge"
	case Ball:
		return "ball"
	case Slider:
		return "slider"
	case Fixed:
		return "fixed"
	case Rope:
		return "rope"
	case Spring:
		return "spring"
	}
	return "unknown"
}

// Constraint joins two endpoints. An endpoint is either a body handle or the
// world.Anchor sentinel, in which case the corresponding anchor vector is a
// static world-space attachment point.
type Constraint struct {
	Type  Type
	BodyA world.Handle
	BodyB world.Handle

	AnchorA core.Vec3 // local offset on A, or world position for an anchor
	AnchorB core.Vec3
	Axis    core.Vec3 // hinge rotation axis / slider translation axis

	MaxForce       float64
	BreakThreshold float64
	Broken         bool

	MinLimit     float64
	MaxLimit     float64
	CurrentValue float64

	SpringK    float64
	Damping    float64
	RestLength float64

	HasMotor   bool
	MotorSpeed float64
	MotorForce float64
}

// System owns constraints and structural nodes for one world. Like the
// chemistry lattice it does no locking; all mutation happens between ticks or
// inside Solve/Analyze.
type System struct {
	w *world.World

	constraints []Constraint
	nodes       []StructuralNode

	integrity    float64
	cascadeCount int
}

// NewSystem creates an empty constraint system bound to a body registry.
func NewSystem(w *world.World) *System {
	return &System{
		w:           w,
		constraints: make([]Constraint, 0, MaxConstraints),
		nodes:       make([]StructuralNode, 0, MaxStructuralNodes),
		integrity:   1.0,
	}
}

// endpointValid reports whether h is usable as a constraint endpoint: a
// registered body or the world anchor sentinel.
func (s *System) endpointValid(h world.Handle) bool {
	return h == world.Anchor || s.w.Valid(h)
}

// add registers a constraint with per-type defaults applied. Returns
// InvalidHandle when the system is full or an endpoint is unknown.
func (s *System) add(t Type, a, b world.Handle, anchorA, anchorB core.Vec3) Handle {
	if len(s.constraints) >= MaxConstraints {
		return InvalidHandle
	}
	if !s.endpointValid(a) || !s.endpointValid(b) {
		return InvalidHandle
	}

	c := Constraint{
		Type:           t,
		BodyA:          a,
		BodyB:          b,
		AnchorA:        anchorA,
		AnchorB:        anchorB,
		Axis:           core.V3(1, 0, 0),
		MaxForce:       1000.0,
		BreakThreshold: 800.0,
		MinLimit:       -3.14159,
		MaxLimit:       3.14159,
		SpringK:        100.0,
		Damping:        10.0,
		RestLength:     1.0,
		MotorForce:     100.0,
	}

	switch t {
	case Hinge:
		c.Axis = core.V3(0, 0, 1)
	case Ball:
		c.MaxForce = 500.0
	case Slider:
		c.MinLimit = -1.0
		c.MaxLimit = 1.0
	case Rope:
		c.RestLength = anchorB.Sub(anchorA).Len()
		c.SpringK = 50.0
		c.MaxForce = 200.0
	case Spring:
		c.RestLength = anchorB.Sub(anchorA).Len()
		c.Damping = 20.0
	}

	s.constraints = append(s.constraints, c)
	h := Handle(len(s.constraints) - 1)
	s.attachToNodes(h)
	return h
}

// AddFixed welds two endpoints together.
func (s *System) AddFixed(a, b world.Handle, anchorA, anchorB core.Vec3) Handle {
	return s.add(Fixed, a, b, anchorA, anchorB)
}

// AddHinge joins two endpoints with a rotation axis. A zero axis keeps the
// default Z axis.
func (s *System) AddHinge(a, b world.Handle, anchorA, anchorB, axis core.Vec3) Handle {
	h := s.add(Hinge, a, b, anchorA, anchorB)
	if h != InvalidHandle && !axis.IsZero() {
		s.constraints[h].Axis = axis.Normalized()
	}
	return h
}

// AddBall joins two endpoints at a point, leaving rotation free.
func (s *System) AddBall(a, b world.Handle, anchorA, anchorB core.Vec3) Handle {
	return s.add(Ball, a, b, anchorA, anchorB)
}

// AddSlider joins two endpoints with a translation axis and default limits.
// A zero axis keeps the default X axis.
func (s *System) AddSlider(a, b world.Handle, anchorA, anchorB, axis core.Vec3) Handle {
	h := s.add(Slider, a, b, anchorA, anchorB)
	if h != InvalidHandle && !axis.IsZero() {
		s.constraints[h].Axis = axis.Normalized()
	}
	return h
}

// AddRope connects two endpoints with a pull-only rope of the given maximum
// length.
func (s *System) AddRope(a, b world.Handle, anchorA, anchorB core.Vec3, maxLength float64) Handle {
	h := s.add(Rope, a, b, anchorA, anchorB)
	if h != InvalidHandle {
		s.constraints[h].RestLength = maxLength
	}
	return h
}

// AddSpring connects two endpoints with a spring-damper.
func (s *System) AddSpring(a, b world.Handle, anchorA, anchorB core.Vec3, springK, damping float64) Handle {
	h := s.add(Spring, a, b, anchorA, anchorB)
	if h != InvalidHandle {
		s.constraints[h].SpringK = springK
		s.constraints[h].Damping = damping
	}
	return h
}

// valid reports whether h addresses a registered constraint.
func (s *System) valid(h Handle) bool {
	return h >= 0 && int(h) < len(s.constraints)
}

// Count returns the number of registered constraints, broken included.
func (s *System) Count() int {
	return len(s.constraints)
}

// Break marks a constraint broken. Broken constraints never solve again and
// never recover.
func (s *System) Break(h Handle) {
	if s.valid(h) {
		s.constraints[h].Broken = true
	}
}

// IsBroken reports whether h is broken. Unknown handles report true.
func (s *System) IsBroken(h Handle) bool {
	if !s.valid(h) {
		return true
	}
	return s.constraints[h].Broken
}

// SetMotor enables the motor on a hinge with the given target speed and
// maximum force.
func (s *System) SetMotor(h Handle, speed, force float64) {
	if !s.valid(h) {
		return
	}
	c := &s.constraints[h]
	c.HasMotor = true
	c.MotorSpeed = speed
	c.MotorForce = force
}

// BodyA returns the first endpoint of h, or world.InvalidHandle for unknown
// constraints.
func (s *System) BodyA(h Handle) world.Handle {
	if !s.valid(h) {
		return world.InvalidHandle
	}
	return s.constraints[h].BodyA
}

// BodyB returns the second endpoint of h.
func (s *System) BodyB(h Handle) world.Handle {
	if !s.valid(h) {
		return world.InvalidHandle
	}
	return s.constraints[h].BodyB
}

// TypeOf returns the constraint type of h. Unknown handles report Fixed.
func (s *System) TypeOf(h Handle) Type {
	if !s.valid(h) {
		return Fixed
	}
	return s.constraints[h].Type
}

// Constraint returns the constraint record for h, or nil. Exposed for tests
// and scenario wiring; solver-internal state should not be mutated mid-tick.
func (s *System) Constraint(h Handle) *Constraint {
	if !s.valid(h) {
		return nil
	}
	return &s.constraints[h]
}
