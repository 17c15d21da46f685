package main

import (
	"github.com/vovakirdan/terrasim/internal/config"
	"github.com/vovakirdan/terrasim/internal/core"
	"github.com/vovakirdan/terrasim/internal/scenario"
	"github.com/vovakirdan/terrasim/internal/sim"
)

func loadEngineConfig() (config.EngineConfig, error) {
	return config.LoadEngine(flagConfig)
}

// newRun builds a fresh simulation for a scenario: seed resolution, ambient
// conditions from the engine config, then the scenario's initial state.
func newRun(sc *scenario.Scenario) (*sim.Simulation, error) {
	cfg, err := loadEngineConfig()
	if err != nil {
		return nil, err
	}

	s := sim.New(effectiveSeed(sc.Seed))
	s.Chemistry().SetWorldTemperature(cfg.Environment.Temperature)
	s.Chemistry().SetWorldHumidity(cfg.Environment.Humidity)
	s.SetWind(core.V3(cfg.Environment.Wind.X, cfg.Environment.Wind.Y, cfg.Environment.Wind.Z))

	if err := sc.Build(s); err != nil {
		return nil, err
	}
	return s, nil
}
