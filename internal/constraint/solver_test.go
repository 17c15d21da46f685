package constraint

import (
	"testing"

	"github.com/vovakirdan/terrasim/internal/core"
	"github.com/vovakirdan/terrasim/internal/world"
)

func separation(w *world.World, a, b world.Handle) float64 {
	return w.Body(b).Position.Sub(w.Body(a).Position).Len()
}

func TestRopePullsBodiesTogether(t *testing.T) {
	w := world.New()
	a := w.AddBody(core.V3(0, 0, 0), 1.0)
	b := w.AddBody(core.V3(2, 0, 0), 1.0)
	sys := NewSystem(w)

	h := sys.AddRope(a, b, core.Vec3{}, core.Vec3{}, 1.0)
	if h == InvalidHandle {
		t.Fatal("AddRope rejected a valid rope")
	}

	dt := 1.0 / 30.0
	sys.Solve(dt)
	w.Integrate(dt)

	if got := separation(w, a, b); got >= 2.0 {
		t.Errorf("taut rope should pull the bodies together, separation = %v", got)
	}
	if sys.IsBroken(h) {
		t.Error("rope under light tension must not break")
	}
}

func TestRopeBreaksBeforeApplyingForce(t *testing.T) {
	w := world.New()
	a := w.AddBody(core.V3(0, 0, 0), 1.0)
	b := w.AddBody(core.V3(2, 0, 0), 1.0)
	sys := NewSystem(w)

	h := sys.AddRope(a, b, core.Vec3{}, core.Vec3{}, 1.0)
	sys.Constraint(h).BreakThreshold = 10.0 // tension will be 50

	dt := 1.0 / 30.0
	sys.Solve(dt)
	w.Integrate(dt)

	if !sys.IsBroken(h) {
		t.Fatal("over-threshold rope should have snapped")
	}
	if got := separation(w, a, b); got != 2.0 {
		t.Errorf("a rope that snaps must not move anything, separation = %v", got)
	}

	// Broken stays broken, and the bodies stay put.
	sys.Solve(dt)
	w.Integrate(dt)
	if got := separation(w, a, b); got != 2.0 {
		t.Errorf("broken rope moved the bodies, separation = %v", got)
	}
}

func TestSlackRopeAppliesNoForce(t *testing.T) {
	w := world.New()
	a := w.AddBody(core.V3(0, 0, 0), 1.0)
	b := w.AddBody(core.V3(0.5, 0, 0), 1.0)
	sys := NewSystem(w)

	sys.AddRope(a, b, core.Vec3{}, core.Vec3{}, 1.0)

	dt := 1.0 / 30.0
	sys.Solve(dt)
	w.Integrate(dt)

	if got := separation(w, a, b); got != 0.5 {
		t.Errorf("slack rope must not move the bodies, separation = %v", got)
	}
}

func TestCompressedSpringPushesApart(t *testing.T) {
	w := world.New()
	a := w.AddBody(core.V3(0, 0, 0), 1.0)
	b := w.AddBody(core.V3(0.5, 0, 0), 1.0)
	sys := NewSystem(w)

	h := sys.AddSpring(a, b, core.Vec3{}, core.Vec3{}, 100.0, 0)
	sys.Constraint(h).RestLength = 1.0

	dt := 1.0 / 30.0
	sys.Solve(dt)
	w.Integrate(dt)

	if got := separation(w, a, b); got <= 0.5 {
		t.Errorf("compressed spring should push the bodies apart, separation = %v", got)
	}
}

func TestFixedJointPullsCoincident(t *testing.T) {
	w := world.New()
	a := w.AddBody(core.V3(0, 0, 0), 1.0)
	b := w.AddBody(core.V3(1, 0, 0), 1.0)
	sys := NewSystem(w)

	sys.AddFixed(a, b, core.Vec3{}, core.Vec3{})

	sys.Solve(1.0 / 30.0)

	// Each movable endpoint takes half the separation immediately.
	if pa, pb := w.Body(a).Position, w.Body(b).Position; pa != pb {
		t.Errorf("fixed joint should snap the points together: %+v vs %+v", pa, pb)
	}
}

func TestWorldAnchorEndpoint(t *testing.T) {
	w := world.New()
	b := w.AddBody(core.V3(2, 0, 0), 1.0)
	sys := NewSystem(w)

	h := sys.AddRope(world.Anchor, b, core.V3(0, 0, 0), core.Vec3{}, 1.0)
	if h == InvalidHandle {
		t.Fatal("world anchor should be a valid endpoint")
	}

	dt := 1.0 / 30.0
	sys.Solve(dt)
	w.Integrate(dt)

	if got := w.Body(b).Position.X; got >= 2.0 {
		t.Errorf("anchored rope should pull the body toward the anchor, x = %v", got)
	}
}

func TestSliderCorrectsPerpendicularDrift(t *testing.T) {
	w := world.New()
	a := w.AddBody(core.V3(0, 0, 0), 0) // static
	b := w.AddBody(core.V3(0.5, 1, 0), 1.0)
	sys := NewSystem(w)

	h := sys.AddSlider(a, b, core.Vec3{}, core.Vec3{}, core.V3(1, 0, 0))
	sys.Solve(1.0 / 30.0)

	if got := w.Body(b).Position.Y; got != 0.5 {
		t.Errorf("slider should correct half the perpendicular drift, y = %v", got)
	}
	if got := sys.Constraint(h).CurrentValue; got != 0.5 {
		t.Errorf("CurrentValue = %v, want the axis projection 0.5", got)
	}
}

func TestSliderEnforcesLimits(t *testing.T) {
	w := world.New()
	a := w.AddBody(core.V3(0, 0, 0), 0) // static
	b := w.AddBody(core.V3(2, 0, 0), 1.0)
	sys := NewSystem(w)

	// Default limits are [-1, 1]; projection 2 violates the max.
	sys.AddSlider(a, b, core.Vec3{}, core.Vec3{}, core.V3(1, 0, 0))
	sys.Solve(1.0 / 30.0)

	if got := w.Body(b).Position.X; got != 1.5 {
		t.Errorf("slider should correct half the limit violation, x = %v", got)
	}
}

func TestHingeMotorDrivesAlongAxis(t *testing.T) {
	w := world.New()
	a := w.AddBody(core.V3(0, 0, 0), 0) // static
	b := w.AddBody(core.V3(0, 0, 0), 1.0)
	sys := NewSystem(w)

	h := sys.AddHinge(a, b, core.Vec3{}, core.Vec3{}, core.V3(0, 0, 1))
	sys.SetMotor(h, 2.0, 10.0)

	sys.Solve(0.1)

	if got := w.Body(b).Velocity.Z; got != 2.0 {
		t.Errorf("motor impulse along the hinge axis = %v, want 2.0", got)
	}
}

func TestBreakIsIrreversible(t *testing.T) {
	w := world.New()
	a := w.AddBody(core.V3(0, 0, 0), 1.0)
	b := w.AddBody(core.V3(1, 0, 0), 1.0)
	sys := NewSystem(w)

	h := sys.AddBall(a, b, core.Vec3{}, core.Vec3{})
	sys.Break(h)

	if !sys.IsBroken(h) {
		t.Fatal("Break should mark the constraint broken")
	}

	sys.Solve(1.0 / 30.0)
	if w.Body(a).Position.X != 0 || w.Body(b).Position.X != 1 {
		t.Error("broken constraint must never solve again")
	}
}

func TestIsBrokenUnknownHandle(t *testing.T) {
	sys := NewSystem(world.New())
	if !sys.IsBroken(InvalidHandle) || !sys.IsBroken(42) {
		t.Error("unknown constraint handles should report broken")
	}
}

func TestConstraintCapacityAndEndpointRejection(t *testing.T) {
	w := world.New()
	a := w.AddBody(core.V3(0, 0, 0), 1.0)
	b := w.AddBody(core.V3(1, 0, 0), 1.0)
	sys := NewSystem(w)

	if h := sys.AddRope(a, world.Handle(99), core.Vec3{}, core.Vec3{}, 1.0); h != InvalidHandle {
		t.Errorf("unknown endpoint accepted, got handle %d", h)
	}

	for i := 0; i < MaxConstraints; i++ {
		if h := sys.AddSpring(a, b, core.Vec3{}, core.Vec3{}, 100, 10); h == InvalidHandle {
			t.Fatalf("creation %d rejected below capacity", i)
		}
	}
	if h := sys.AddSpring(a, b, core.Vec3{}, core.Vec3{}, 100, 10); h != InvalidHandle {
		t.Errorf("creation beyond capacity returned %d, want InvalidHandle", h)
	}
}

func TestRopeDefaults(t *testing.T) {
	w := world.New()
	a := w.AddBody(core.V3(0, 0, 0), 1.0)
	b := w.AddBody(core.V3(2, 0, 0), 1.0)
	sys := NewSystem(w)

	c := sys.Constraint(sys.AddRope(a, b, core.Vec3{}, core.Vec3{}, 3.0))
	if c.SpringK != 50.0 || c.MaxForce != 200.0 || c.RestLength != 3.0 {
		t.Errorf("rope defaults off: %+v", c)
	}

	c = sys.Constraint(sys.AddBall(a, b, core.Vec3{}, core.Vec3{}))
	if c.MaxForce != 500.0 {
		t.Errorf("ball MaxForce = %v, want 500", c.MaxForce)
	}
}
