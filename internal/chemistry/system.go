package chemistry

import "github.com/vovakirdan/terrasim/internal/core"

// Propagation radii, in normalized grid space. With a 64-cell grid the cell
// pitch is 1/64, so fire reaches the 8-neighborhood and electricity and wind
// reach slightly further.
const (
	fireSpreadRadius  = 0.1
	electricArcRadius = 0.15
	windEffectRadius  = 0.2

	// ignitionThreshold is the spread-chance value a neighbor must exceed
	// to catch fire; igniteIntensity is the intensity a fresh ignition
	// starts at.
	ignitionThreshold = 0.1
	igniteIntensity   = 0.3
)

// System owns the chemical lattice and the reaction table. It must only be
// mutated between ticks or by Update itself; it does no locking.
type System struct {
	nodes     [NodeCount]Node
	reactions []Reaction

	worldTemperature float64
	worldHumidity    float64
	wind             core.Vec3

	activeNodes        int
	reactionsThisFrame int

	// Propagation scratch. The react pass's results are frozen here so the
	// propagate pass reads every source from the same point in time,
	// regardless of iteration order.
	snapStates    [NodeCount]State
	snapIntensity [NodeCount][StateCount]float64
}

// NewSystem builds a system with the built-in reaction table and a
// seed-derived world layout.
func NewSystem(seed int64) *System {
	s := &System{
		reactions:        builtinReactions(),
		worldTemperature: 20.0,
		worldHumidity:    0.5,
	}
	s.initGrid(seed)
	s.recountActive()
	return s
}

// Update advances the lattice by dt. The tick is two strictly separate
// passes: every node reacts against its own state, then every active node
// propagates into its neighbors using a snapshot of the post-reaction state.
// Fusing the passes would make results depend on iteration order.
func (s *System) Update(dt float64) {
	s.reactionsThisFrame = 0

	for i := range s.nodes {
		s.reactNode(&s.nodes[i], dt)
	}

	for i := range s.nodes {
		s.snapStates[i] = s.nodes[i].States
		s.snapIntensity[i] = s.nodes[i].Intensity
	}

	for i := range s.nodes {
		if s.snapStates[i] != Neutral {
			s.propagateFrom(i, dt)
		}
	}

	s.recountActive()
}

// reactNode runs the per-node pass: table reactions in registration order,
// then the hard-coded state interactions, decay, and thermal relaxation.
func (s *System) reactNode(n *Node, dt float64) {
	for i := range s.reactions {
		s.applyReaction(n, &s.reactions[i], dt)
	}

	// Active fire always burns fuel, even below every reaction's activation
	// temperature. Fuel exhaustion force-clears the fire.
	if n.States.Has(Fire) {
		n.FuelRemaining -= fuelBurnFactor * n.Intensity[Fire.Index()] * dt
		if n.FuelRemaining <= 0 {
			n.FuelRemaining = 0
			n.States &^= Fire
			n.Intensity[Fire.Index()] = 0
		}
	}

	// Fire meets water: both are consumed, steam carries some heat back.
	if n.States.Has(Fire | Water) {
		rate := n.Intensity[Water.Index()] * 2.0 * dt
		n.Intensity[Fire.Index()] -= rate
		n.Intensity[Water.Index()] -= rate * 0.5
		if n.Intensity[Fire.Index()] <= 0 {
			n.Intensity[Fire.Index()] = 0
			n.States &^= Fire
		}
		if n.Intensity[Water.Index()] <= 0 {
			n.Intensity[Water.Index()] = 0
			n.States &^= Water
		}
		n.Temperature += 30.0 * rate
	}

	// Water boosts electric conduction.
	if n.States.Has(Electric | Water) {
		n.Intensity[Electric.Index()] = core.Clamp01(n.Intensity[Electric.Index()] * 1.5)
	}

	// Phase changes swap the water/ice intensity, they do not create any.
	if n.Temperature < 0 && n.States.Has(Water) {
		n.States = n.States&^Water | Ice
		n.Intensity[Ice.Index()] = n.Intensity[Water.Index()]
		n.Intensity[Water.Index()] = 0
	}
	if n.Temperature > 0 && n.States.Has(Ice) {
		n.States = n.States&^Ice | Water
		n.Intensity[Water.Index()] = n.Intensity[Ice.Index()]
		n.Intensity[Ice.Index()] = 0
	}

	for i := 0; i < StateCount; i++ {
		if n.Intensity[i] <= 0 {
			continue
		}
		decay := 0.1 * dt
		switch State(1 << i) {
		case Fire:
			decay = 0.05 * dt
		case Water:
			decay = 0.02 * dt
		case Electric:
			decay = 0.5 * dt
		case Wind:
			decay = 0.3 * dt
		}
		n.Intensity[i] -= decay
		if n.Intensity[i] <= 0 {
			n.Intensity[i] = 0
			n.States &^= State(1 << i)
		}
	}

	if n.States.Has(Fire) {
		n.FireDuration += dt
	} else {
		n.FireDuration = 0
	}
	if n.States.Has(Water) {
		n.WetDuration += dt
	} else {
		n.WetDuration = 0
	}
	if n.States.Has(Ice) {
		n.FreezeTimer += dt
	} else {
		n.FreezeTimer = 0
	}

	n.Temperature += (s.worldTemperature - n.Temperature) * 0.1 * dt
}

func (s *System) applyReaction(n *Node, r *Reaction, dt float64) {
	if !r.applies(n) {
		return
	}
	progress := r.Rate * dt

	if r.ResultStates != Neutral {
		n.States |= r.ResultStates
		for i := 0; i < StateCount; i++ {
			if r.ResultStates.Has(State(1 << i)) {
				n.Intensity[i] = core.Clamp01(n.Intensity[i] + progress)
			}
		}
	}

	n.Temperature += r.HeatGenerated * progress

	if r.ConsumesFuel {
		n.FuelRemaining -= fuelBurnFactor * progress
		if n.FuelRemaining < 0 {
			n.FuelRemaining = 0
			n.States &^= Fire
			n.Intensity[Fire.Index()] = 0
		}
	}

	s.reactionsThisFrame++
}

// propagateFrom spreads node i's snapshot state into its neighbors. Source
// states and intensities come from the snapshot; the target's gating fields
// (fuel, flammability, conductivity) are read live because this pass never
// writes them.
func (s *System) propagateFrom(i int, dt float64) {
	src := &s.nodes[i]
	states := s.snapStates[i]

	if states.Has(Fire) {
		fire := s.snapIntensity[i][Fire.Index()]
		windy := s.wind.Len() > 0.1
		var windDir core.Vec3
		if windy {
			windDir = s.wind.Normalized()
		}
		for _, ni := range src.Neighbors() {
			nb := &s.nodes[ni]
			if nb.FuelRemaining <= 0 || nb.Flammability <= 0 {
				continue
			}
			offset := nb.Position.Sub(src.Position)
			if offset.Len() >= fireSpreadRadius {
				continue
			}
			chance := fire * nb.Flammability * dt
			if windy {
				if dot := windDir.Dot(offset.Normalized()); dot > 0 {
					chance *= 1.0 + dot*2.0
				}
			}
			if chance > ignitionThreshold && !s.snapStates[ni].Has(Fire) {
				nb.States |= Fire
				nb.Intensity[Fire.Index()] = core.MaxF(nb.Intensity[Fire.Index()], igniteIntensity)
				nb.Temperature += 50.0
			}
		}
	}

	if states.Has(Electric) {
		arc := s.snapIntensity[i][Electric.Index()]
		for _, ni := range src.Neighbors() {
			nb := &s.nodes[ni]
			if nb.Conductivity <= 0.3 {
				continue
			}
			if nb.Position.Sub(src.Position).Len() >= electricArcRadius {
				continue
			}
			strength := arc * nb.Conductivity * dt
			nb.States |= Electric
			nb.Intensity[Electric.Index()] = core.Clamp01(nb.Intensity[Electric.Index()] + strength*0.8)
		}
	}

	if states.Has(Wind) {
		gust := s.snapIntensity[i][Wind.Index()]
		for _, ni := range src.Neighbors() {
			nb := &s.nodes[ni]
			if nb.Position.Sub(src.Position).Len() >= windEffectRadius {
				continue
			}
			if s.snapStates[ni].Has(Fire) {
				nb.Intensity[Fire.Index()] = core.Clamp01(nb.Intensity[Fire.Index()] + gust*0.5*dt)
			}
		}
	}
}

func (s *System) recountActive() {
	count := 0
	for i := range s.nodes {
		if s.nodes[i].Active() {
			count++
		}
	}
	s.activeNodes = count
}

// SetState merges states into the node at normalized coordinates (x, y) and
// assigns the given intensity to each of them.
func (s *System) SetState(x, y float64, states State, intensity float64) {
	n := s.nodeAt(x, y)
	n.States |= states
	for i := 0; i < StateCount; i++ {
		if states.Has(State(1 << i)) {
			n.Intensity[i] = core.Clamp01(intensity)
		}
	}
}

// ClearState removes states from the node at (x, y) and zeroes their
// intensities.
func (s *System) ClearState(x, y float64, states State) {
	n := s.nodeAt(x, y)
	n.States &^= states
	for i := 0; i < StateCount; i++ {
		if states.Has(State(1 << i)) {
			n.Intensity[i] = 0
		}
	}
}

// SetMaterialTags replaces the node's material tags and re-derives the
// physical properties the dominant material implies.
func (s *System) SetMaterialTags(x, y float64, tags Material) {
	n := s.nodeAt(x, y)
	n.Materials = tags
	switch {
	case tags&MatMetal != 0:
		n.Conductivity = 0.9
		n.Flammability = 0
	case tags&MatWood != 0:
		n.Conductivity = 0.1
		n.Flammability = 0.7
		n.FuelRemaining = 150.0
	case tags&MatStone != 0:
		n.Conductivity = 0.05
		n.Flammability = 0
	}
}

// StateAt returns the state mask at (x, y).
func (s *System) StateAt(x, y float64) State {
	return s.nodeAt(x, y).States
}

// IntensityAt returns the intensity of a single state at (x, y).
func (s *System) IntensityAt(x, y float64, state State) float64 {
	idx := state.Index()
	if idx < 0 {
		return 0
	}
	return s.nodeAt(x, y).Intensity[idx]
}

// TemperatureAt returns the node temperature at (x, y).
func (s *System) TemperatureAt(x, y float64) float64 {
	return s.nodeAt(x, y).Temperature
}

// FuelAt returns the remaining fuel at (x, y).
func (s *System) FuelAt(x, y float64) float64 {
	return s.nodeAt(x, y).FuelRemaining
}

// MaterialTagsAt returns the material mask at (x, y).
func (s *System) MaterialTagsAt(x, y float64) Material {
	return s.nodeAt(x, y).Materials
}

// At returns the node at grid coordinates, or nil when out of range. Intended
// for renderers and state hashing that walk the raw lattice.
func (s *System) At(gx, gy int) *Node {
	if gx < 0 || gx >= GridSize || gy < 0 || gy >= GridSize {
		return nil
	}
	return &s.nodes[nodeIndex(gx, gy)]
}

// SetWorldTemperature sets the ambient temperature nodes relax toward.
func (s *System) SetWorldTemperature(t float64) { s.worldTemperature = t }

// WorldTemperature returns the ambient temperature.
func (s *System) WorldTemperature() float64 { return s.worldTemperature }

// SetWorldHumidity sets the ambient humidity.
func (s *System) SetWorldHumidity(h float64) { s.worldHumidity = core.Clamp01(h) }

// WorldHumidity returns the ambient humidity.
func (s *System) WorldHumidity() float64 { return s.worldHumidity }

// SetWind sets the global wind vector used to bias fire spread.
func (s *System) SetWind(v core.Vec3) { s.wind = v }

// Wind returns the global wind vector.
func (s *System) Wind() core.Vec3 { return s.wind }

// ActiveNodes returns the number of nodes with any state set, as of the end
// of the last Update.
func (s *System) ActiveNodes() int { return s.activeNodes }

// ReactionsPerFrame returns how many table reactions fired during the last
// Update.
func (s *System) ReactionsPerFrame() int { return s.reactionsThisFrame }

// IgniteArea sets fire on every fueled node within radius of (x, y), with
// intensity falling off linearly from the center.
func (s *System) IgniteArea(x, y, radius, intensity float64) {
	s.forArea(x, y, radius, func(n *Node, falloff float64) {
		if n.FuelRemaining <= 0 {
			return
		}
		n.States |= Fire
		n.Intensity[Fire.Index()] = core.Clamp01(intensity * falloff)
		n.Temperature += 100.0 * falloff
	})
}

// ElectrifyArea charges every conductive node within radius of (x, y).
func (s *System) ElectrifyArea(x, y, radius, intensity float64) {
	s.forArea(x, y, radius, func(n *Node, falloff float64) {
		if n.Conductivity <= 0.1 {
			return
		}
		n.States |= Electric
		n.Intensity[Electric.Index()] = core.Clamp01(intensity * falloff)
	})
}

// DouseArea soaks every node within radius of (x, y), cooling it and
// knocking down any fire there.
func (s *System) DouseArea(x, y, radius, intensity float64) {
	s.forArea(x, y, radius, func(n *Node, falloff float64) {
		n.States |= Water
		n.Intensity[Water.Index()] = core.Clamp01(intensity * falloff)
		n.Temperature -= 50.0 * falloff

		if n.States.Has(Fire) {
			n.Intensity[Fire.Index()] -= intensity * falloff
			if n.Intensity[Fire.Index()] <= 0 {
				n.Intensity[Fire.Index()] = 0
				n.States &^= Fire
			}
		}
	})
}

// forArea invokes fn for every node within radius of (x, y), passing the
// linear falloff factor. Iteration is row-major like everything else.
func (s *System) forArea(x, y, radius float64, fn func(n *Node, falloff float64)) {
	if radius <= 0 {
		return
	}
	center := core.V3(x, y, 0)
	for i := range s.nodes {
		n := &s.nodes[i]
		dist := n.Position.Sub(center).Len()
		if dist < radius {
			fn(n, 1.0-dist/radius)
		}
	}
}
