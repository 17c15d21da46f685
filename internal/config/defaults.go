package config

import (
	_ "embed"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

// DefaultEngineConfig returns the hardcoded fallback configuration. The
// embedded YAML is the canonical source; this exists for the unlikely case
// that it fails to parse.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Tick: TickConfig{
			Rate: 30,
		},
		Environment: EnvironmentConfig{
			Temperature: 20.0,
			Humidity:    0.5,
		},
		Structure: StructureConfig{
			DefaultCapacity: 1000.0,
		},
	}
}

// GetDefaultYAML returns the embedded default engine YAML.
func GetDefaultYAML() []byte {
	return defaultEngineYAML
}
