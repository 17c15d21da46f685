// Package scenario loads declarative simulation setups from YAML: initial
// bodies, joints, structural nodes, material patches, and a timeline of
// scheduled events. A scenario plus a seed fully determines a run, which is
// what the recorder and the verify command rely on.
package scenario

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/terrasim/internal/chemistry"
	"github.com/vovakirdan/terrasim/internal/constraint"
)

// Scenario is one declarative simulation setup.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	Seed  int64 `yaml:"seed"`
	Ticks int   `yaml:"ticks"`

	Bodies          []BodySpec       `yaml:"bodies"`
	Constraints     []ConstraintSpec `yaml:"constraints"`
	StructuralNodes []StructuralSpec `yaml:"structural_nodes"`
	Materials       []MaterialPatch  `yaml:"materials"`
	Events          []Event          `yaml:"events"`
}

// BodySpec creates one rigid body. Bodies get handles in file order, which
// event and constraint specs reference by index.
type BodySpec struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Z    float64 `yaml:"z"`
	Mass float64 `yaml:"mass"` // <= 0 creates a static body
}

// VecSpec is a YAML vector.
type VecSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// ConstraintSpec creates one joint. BodyA/BodyB are body indices; -1 means
// the world anchor, in which case the matching anchor vector is a world
// position.
type ConstraintSpec struct {
	Type  string `yaml:"type"` // hinge, ball, slider, fixed, rope, spring
	BodyA int    `yaml:"body_a"`
	BodyB int    `yaml:"body_b"`

	AnchorA VecSpec `yaml:"anchor_a"`
	AnchorB VecSpec `yaml:"anchor_b"`
	Axis    VecSpec `yaml:"axis"`

	MaxLength float64 `yaml:"max_length"` // rope
	Spring    float64 `yaml:"spring"`     // spring
	Damping   float64 `yaml:"damping"`    // spring

	BreakThreshold float64 `yaml:"break_threshold"` // 0 keeps the type default
}

// StructuralSpec marks a body as load-bearing.
type StructuralSpec struct {
	Body     int     `yaml:"body"`
	Capacity float64 `yaml:"capacity"`
	Critical bool    `yaml:"critical"`
}

// MaterialPatch overrides the material at a grid coordinate.
type MaterialPatch struct {
	X    float64  `yaml:"x"`
	Y    float64  `yaml:"y"`
	Tags []string `yaml:"tags"`
}

// Event is one scheduled mutation. Events fire between ticks, before the
// tick whose number they carry, in file order within the same tick.
type Event struct {
	Tick   int    `yaml:"tick"`
	Action string `yaml:"action"` // ignite, douse, electrify, stress, break, wind, temperature

	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`

	Radius    float64 `yaml:"radius"`
	Intensity float64 `yaml:"intensity"`
	Stress    float64 `yaml:"stress"`
	Value     float64 `yaml:"value"` // temperature

	Constraint int `yaml:"constraint"` // break
}

// parseType maps a YAML type name to a constraint type.
func parseType(s string) (constraint.Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hinge":
		return constraint.Hinge, nil
	case "ball":
		return constraint.Ball, nil
	case "slider":
		return constraint.Slider, nil
	case "fixed":
		return constraint.Fixed, nil
	case "rope":
		return constraint.Rope, nil
	case "spring":
		return constraint.Spring, nil
	}
	return constraint.Fixed, fmt.Errorf("unknown constraint type %q", s)
}

// parseMaterials maps YAML tag names to a material mask.
func parseMaterials(tags []string) (chemistry.Material, error) {
	var m chemistry.Material
	for _, tag := range tags {
		switch strings.ToLower(strings.TrimSpace(tag)) {
		case "wood":
			m |= chemistry.MatWood
		case "metal":
			m |= chemistry.MatMetal
		case "stone":
			m |= chemistry.MatStone
		case "plant":
			m |= chemistry.MatPlant
		case "cloth":
			m |= chemistry.MatCloth
		case "liquid":
			m |= chemistry.MatLiquid
		case "organic":
			m |= chemistry.MatOrganic
		default:
			return 0, fmt.Errorf("unknown material tag %q", tag)
		}
	}
	return m, nil
}

// Validate checks index references and enum names without touching a
// simulation. Load calls it; direct constructors of Scenario should too.
func (sc *Scenario) Validate() error {
	if sc.Ticks < 0 {
		return fmt.Errorf("scenario %s: negative tick count", sc.Name)
	}
	for i, cs := range sc.Constraints {
		if _, err := parseType(cs.Type); err != nil {
			return fmt.Errorf("scenario %s: constraint %d: %w", sc.Name, i, err)
		}
		if err := sc.checkBodyRef(cs.BodyA); err != nil {
			return fmt.Errorf("scenario %s: constraint %d body_a: %w", sc.Name, i, err)
		}
		if err := sc.checkBodyRef(cs.BodyB); err != nil {
			return fmt.Errorf("scenario %s: constraint %d body_b: %w", sc.Name, i, err)
		}
	}
	for i, ss := range sc.StructuralNodes {
		if ss.Body < 0 || ss.Body >= len(sc.Bodies) {
			return fmt.Errorf("scenario %s: structural node %d: body %d out of range", sc.Name, i, ss.Body)
		}
	}
	for i, mp := range sc.Materials {
		if _, err := parseMaterials(mp.Tags); err != nil {
			return fmt.Errorf("scenario %s: material patch %d: %w", sc.Name, i, err)
		}
	}
	for i, ev := range sc.Events {
		switch strings.ToLower(ev.Action) {
		case "ignite", "douse", "electrify", "stress", "break", "wind", "temperature":
		default:
			return fmt.Errorf("scenario %s: event %d: unknown action %q", sc.Name, i, ev.Action)
		}
	}
	return nil
}

func (sc *Scenario) checkBodyRef(idx int) error {
	if idx == -1 {
		return nil // world anchor
	}
	if idx < 0 || idx >= len(sc.Bodies) {
		return fmt.Errorf("body %d out of range", idx)
	}
	return nil
}
