package chemistry

// Reaction is a declarative rule for state transitions. The built-in set is
// registered once at system init and is immutable afterwards; there is no
// runtime registration surface, which keeps the rule order identical across
// instances.
type Reaction struct {
	RequiredStates    State    // node states that must all be present
	RequiredMaterials Material // empty means "any material"
	ResultStates      State
	ActivationEnergy  float64 // minimum node temperature
	Rate              float64
	HeatGenerated     float64
	ConsumesFuel      bool
}

// fuelBurnFactor scales how much fuel a fuel-consuming reaction deducts per
// unit of reaction progress.
const fuelBurnFactor = 10.0

// builtinReactions returns the fixed reaction table. Slice order is the
// application order and must not change between releases: peers running
// different orders diverge.
func builtinReactions() []Reaction {
	return []Reaction{
		// Fire + water: steam, cools the node.
		{RequiredStates: Fire | Water, ResultStates: Neutral, Rate: 2.0, HeatGenerated: -50.0},
		// Wet + cold: ice.
		{RequiredStates: Water, ResultStates: Ice, ActivationEnergy: -10.0, Rate: 1.0, HeatGenerated: -20.0},
		// Ice + heat: water.
		{RequiredStates: Ice, ResultStates: Water, ActivationEnergy: 10.0, Rate: 1.5},
		// Electric + water: enhanced conduction.
		{RequiredStates: Electric | Water, ResultStates: Electric, Rate: 1.0, HeatGenerated: 10.0},
		// Fire + wind: enhanced spread.
		{RequiredStates: Fire | Wind, ResultStates: Fire, Rate: 2.0, HeatGenerated: 20.0, ConsumesFuel: true},
		// Burning wood.
		{RequiredStates: Fire, RequiredMaterials: MatWood, ResultStates: Fire, ActivationEnergy: 200.0, Rate: 0.8, HeatGenerated: 100.0, ConsumesFuel: true},
		// Metal conduction.
		{RequiredStates: Electric, RequiredMaterials: MatMetal, ResultStates: Electric, Rate: 3.0, HeatGenerated: 5.0},
		// Fast-burning plants.
		{RequiredStates: Fire, RequiredMaterials: MatPlant, ResultStates: Fire, ActivationEnergy: 150.0, Rate: 1.5, HeatGenerated: 80.0, ConsumesFuel: true},
	}
}

// applies reports whether the reaction fires for the given node state.
func (r *Reaction) applies(n *Node) bool {
	if !n.States.Has(r.RequiredStates) {
		return false
	}
	if r.RequiredMaterials != 0 && n.Materials&r.RequiredMaterials == 0 {
		return false
	}
	return n.Temperature >= r.ActivationEnergy
}
