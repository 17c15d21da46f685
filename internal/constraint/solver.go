package constraint

import (
	"github.com/vovakirdan/terrasim/internal/core"
	"github.com/vovakirdan/terrasim/internal/world"
)

// endpoint is a resolved constraint endpoint: either a live body or a static
// world-space anchor point.
type endpoint struct {
	body *world.Body // nil for world anchors
	pos  core.Vec3   // world position of the attachment point
}

func (e endpoint) movable() bool {
	return e.body != nil && !e.body.Static
}

func (e endpoint) velocity() core.Vec3 {
	if e.body == nil {
		return core.Vec3{}
	}
	return e.body.Velocity
}

// resolve returns both endpoints of c, or ok=false when an endpoint's body
// has become unavailable. Anchor endpoints use the anchor vector as a world
// position.
func (s *System) resolve(c *Constraint) (ea, eb endpoint, ok bool) {
	ea, ok = s.resolveOne(c.BodyA, c.AnchorA)
	if !ok {
		return
	}
	eb, ok = s.resolveOne(c.BodyB, c.AnchorB)
	return
}

func (s *System) resolveOne(h world.Handle, anchor core.Vec3) (endpoint, bool) {
	if h == world.Anchor {
		return endpoint{pos: anchor}, true
	}
	b := s.w.Body(h)
	if b == nil {
		return endpoint{}, false
	}
	return endpoint{body: b, pos: b.Position.Add(anchor)}, true
}

// Solve runs every unbroken constraint once, in registration order. Corrective
// position changes apply immediately; forces accumulate on the bodies and take
// effect at the next integration step.
func (s *System) Solve(dt float64) {
	for i := range s.constraints {
		s.solveOne(&s.constraints[i], dt)
	}
}

func (s *System) solveOne(c *Constraint, dt float64) {
	if c.Broken {
		return
	}
	ea, eb, ok := s.resolve(c)
	if !ok {
		return
	}
	if !ea.movable() && !eb.movable() {
		return
	}

	delta := eb.pos.Sub(ea.pos)
	distance := delta.Len()

	switch c.Type {
	case Fixed:
		s.solvePoint(c, ea, eb, delta, distance, dt, true)

	case Hinge:
		s.solvePoint(c, ea, eb, delta, distance, dt, false)
		if c.HasMotor {
			// Simplified angular model: the motor drives the bodies
			// apart along the hinge axis instead of spinning them.
			imp := c.Axis.Scale(c.MotorForce * c.MotorSpeed * dt)
			if eb.movable() {
				eb.body.ApplyImpulse(imp)
			}
			if ea.movable() {
				ea.body.ApplyImpulse(imp.Neg())
			}
		}

	case Ball:
		s.solvePoint(c, ea, eb, delta, distance, dt, false)

	case Rope:
		// Ropes only pull.
		if distance <= c.RestLength {
			return
		}
		extension := distance - c.RestLength
		dir := delta.Normalized()

		springForce := dir.Scale(c.SpringK * extension)
		relVel := eb.velocity().Sub(ea.velocity())
		dampForce := dir.Scale(c.Damping * relVel.Dot(dir))
		total := springForce.Add(dampForce)

		// Break check comes before any force is applied: a rope that
		// snaps this tick moves nothing.
		if total.Len() > c.BreakThreshold {
			c.Broken = true
			return
		}
		if ea.movable() {
			ea.body.ApplyForce(total)
		}
		if eb.movable() {
			eb.body.ApplyForce(total.Neg())
		}

	case Spring:
		extension := distance - c.RestLength
		dir := core.V3(1, 0, 0)
		if distance > 0.001 {
			dir = delta.Normalized()
		}

		springForce := dir.Scale(c.SpringK * extension)
		relVel := eb.velocity().Sub(ea.velocity())
		dampForce := dir.Scale(c.Damping * relVel.Dot(dir))
		total := springForce.Add(dampForce)

		if ea.movable() {
			ea.body.ApplyForce(total)
		}
		if eb.movable() {
			eb.body.ApplyForce(total.Neg())
		}

	case Slider:
		axis := c.Axis.Normalized()
		projection := delta.Dot(axis)
		c.CurrentValue = projection

		// Kill perpendicular drift.
		perp := delta.Sub(axis.Scale(projection))
		if perp.Len() > 0.001 {
			correction := perp.Scale(0.5)
			if ea.movable() {
				ea.body.Position = ea.body.Position.Add(correction)
			}
			if eb.movable() {
				eb.body.Position = eb.body.Position.Sub(correction)
			}
		}

		// Limit violations push back along the axis. The violation is
		// signed so both limits correct toward the allowed range.
		var violation float64
		if projection < c.MinLimit {
			violation = c.MinLimit - projection
		} else if projection > c.MaxLimit {
			violation = c.MaxLimit - projection
		}
		if violation != 0 {
			correction := axis.Scale(violation * 0.5)
			if eb.movable() {
				eb.body.Position = eb.body.Position.Add(correction)
			}
			if ea.movable() {
				ea.body.Position = ea.body.Position.Sub(correction)
			}
		}
	}
}

// solvePoint is the shared point-coincidence correction used by fixed, hinge
// and ball joints: each movable endpoint takes half the separation. Fixed
// joints additionally apply a velocity-level impulse proportional to the
// separation.
func (s *System) solvePoint(c *Constraint, ea, eb endpoint, delta core.Vec3, distance, dt float64, impulse bool) {
	if distance <= 0.001 {
		return
	}
	correction := delta.Scale(0.5)
	if ea.movable() {
		ea.body.Position = ea.body.Position.Add(correction)
	}
	if eb.movable() {
		eb.body.Position = eb.body.Position.Sub(correction)
	}
	if impulse {
		imp := delta.Normalized().Scale(distance * 100.0 * dt)
		if ea.movable() {
			ea.body.ApplyImpulse(imp)
		}
		if eb.movable() {
			eb.body.ApplyImpulse(imp.Neg())
		}
	}
}
