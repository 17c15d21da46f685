// Package config provides YAML-based engine configuration loading for the
// simulation platform.
package config

// EngineConfig contains the tunable parameters for one simulation run.
// Everything that affects simulation output lives here so that two peers
// sharing a config and a seed compute identical runs.
type EngineConfig struct {
	Tick        TickConfig        `yaml:"tick"`
	Environment EnvironmentConfig `yaml:"environment"`
	Structure   StructureConfig   `yaml:"structure"`
}

// TickConfig defines the fixed-timestep cadence.
type TickConfig struct {
	Rate int `yaml:"rate"` // ticks per second
}

// Dt returns the timestep length in seconds implied by the tick rate.
func (t TickConfig) Dt() float64 {
	if t.Rate <= 0 {
		return 1.0 / 30.0
	}
	return 1.0 / float64(t.Rate)
}

// EnvironmentConfig defines the ambient conditions the chemistry lattice
// relaxes toward.
type EnvironmentConfig struct {
	Temperature float64    `yaml:"temperature"` // Celsius
	Humidity    float64    `yaml:"humidity"`    // 0..1
	Wind        WindConfig `yaml:"wind"`
}

// WindConfig is the global wind vector.
type WindConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// StructureConfig defines defaults for structural nodes created without
// explicit parameters.
type StructureConfig struct {
	DefaultCapacity float64 `yaml:"default_capacity"`
}
