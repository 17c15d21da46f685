package scenario

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/terrasim/internal/constraint"
	"github.com/vovakirdan/terrasim/internal/core"
	"github.com/vovakirdan/terrasim/internal/sim"
	"github.com/vovakirdan/terrasim/internal/world"
)

// Build instantiates the scenario's initial state into a fresh simulation:
// bodies first (handles match file order), then joints, structural nodes, and
// material patches. Creation rejections surface as errors here rather than
// silent invalid handles, since a half-built scenario is useless.
func (sc *Scenario) Build(s *sim.Simulation) error {
	if err := sc.Validate(); err != nil {
		return err
	}

	handles := make([]world.Handle, len(sc.Bodies))
	for i, bs := range sc.Bodies {
		h := s.World().AddBody(core.V3(bs.X, bs.Y, bs.Z), bs.Mass)
		if h == world.InvalidHandle {
			return fmt.Errorf("scenario %s: body %d: registry full", sc.Name, i)
		}
		handles[i] = h
	}

	bodyRef := func(idx int) world.Handle {
		if idx == -1 {
			return world.Anchor
		}
		return handles[idx]
	}

	for i, cs := range sc.Constraints {
		t, _ := parseType(cs.Type)
		a := bodyRef(cs.BodyA)
		b := bodyRef(cs.BodyB)
		anchorA := core.V3(cs.AnchorA.X, cs.AnchorA.Y, cs.AnchorA.Z)
		anchorB := core.V3(cs.AnchorB.X, cs.AnchorB.Y, cs.AnchorB.Z)
		axis := core.V3(cs.Axis.X, cs.Axis.Y, cs.Axis.Z)

		var h constraint.Handle
		cons := s.Constraints()
		switch t {
		case constraint.Hinge:
			h = cons.AddHinge(a, b, anchorA, anchorB, axis)
		case constraint.Ball:
			h = cons.AddBall(a, b, anchorA, anchorB)
		case constraint.Slider:
			h = cons.AddSlider(a, b, anchorA, anchorB, axis)
		case constraint.Fixed:
			h = cons.AddFixed(a, b, anchorA, anchorB)
		case constraint.Rope:
			h = cons.AddRope(a, b, anchorA, anchorB, cs.MaxLength)
		case constraint.Spring:
			h = cons.AddSpring(a, b, anchorA, anchorB, cs.Spring, cs.Damping)
		}
		if h == constraint.InvalidHandle {
			return fmt.Errorf("scenario %s: constraint %d: creation rejected", sc.Name, i)
		}
		if cs.BreakThreshold > 0 {
			cons.Constraint(h).BreakThreshold = cs.BreakThreshold
		}
	}

	for i, ss := range sc.StructuralNodes {
		nh := s.Constraints().AddStructuralNode(handles[ss.Body], ss.Capacity, ss.Critical)
		if nh == constraint.InvalidNode {
			return fmt.Errorf("scenario %s: structural node %d: creation rejected", sc.Name, i)
		}
	}

	for _, mp := range sc.Materials {
		tags, _ := parseMaterials(mp.Tags)
		s.Chemistry().SetMaterialTags(mp.X, mp.Y, tags)
	}

	return nil
}

// ApplyEvents fires every event scheduled for the given tick, in file order.
// Call it between ticks, before Step.
func (sc *Scenario) ApplyEvents(s *sim.Simulation, tick int) {
	for i := range sc.Events {
		ev := &sc.Events[i]
		if ev.Tick != tick {
			continue
		}
		switch strings.ToLower(ev.Action) {
		case "ignite":
			s.Chemistry().IgniteArea(ev.X, ev.Y, ev.Radius, ev.Intensity)
		case "douse":
			s.Chemistry().DouseArea(ev.X, ev.Y, ev.Radius, ev.Intensity)
		case "electrify":
			s.Chemistry().ElectrifyArea(ev.X, ev.Y, ev.Radius, ev.Intensity)
		case "stress":
			s.Constraints().ApplyStress(core.V3(ev.X, ev.Y, ev.Z), ev.Radius, ev.Stress)
		case "break":
			s.Constraints().Break(constraint.Handle(ev.Constraint))
		case "wind":
			s.SetWind(core.V3(ev.X, ev.Y, ev.Z))
		case "temperature":
			s.Chemistry().SetWorldTemperature(ev.Value)
		}
	}
}

// Run executes the scenario to completion on a fresh simulation and returns
// the final snapshot. The optional observer is called after every tick.
func (sc *Scenario) Run(s *sim.Simulation, dt float64, observe func(sim.Snapshot)) (sim.Snapshot, error) {
	if err := sc.Build(s); err != nil {
		return sim.Snapshot{}, err
	}
	for tick := 0; tick < sc.Ticks; tick++ {
		sc.ApplyEvents(s, tick)
		s.Step(dt)
		if observe != nil {
			observe(s.Snapshot())
		}
	}
	return s.Snapshot(), nil
}
