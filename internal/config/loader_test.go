package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultEngineConfig(t *testing.T) {
	cfg := DefaultEngineConfig()
	if cfg.Tick.Rate != 30 {
		t.Errorf("Tick.Rate = %d, want 30", cfg.Tick.Rate)
	}
	if cfg.Environment.Temperature != 20.0 {
		t.Errorf("Temperature = %v, want 20", cfg.Environment.Temperature)
	}
	if cfg.Structure.DefaultCapacity != 1000.0 {
		t.Errorf("DefaultCapacity = %v, want 1000", cfg.Structure.DefaultCapacity)
	}
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	var cfg EngineConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded engine.yaml does not parse: %v", err)
	}
	if cfg != DefaultEngineConfig() {
		t.Errorf("embedded config %+v diverges from hardcoded defaults %+v",
			cfg, DefaultEngineConfig())
	}
}

func TestLoadEngineCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	data := `tick:
  rate: 60
environment:
  temperature: -10
  humidity: 0.9
  wind: {x: 1, y: 0, z: 0}
structure:
  default_capacity: 500
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadEngine(path)
	if err != nil {
		t.Fatalf("LoadEngine failed: %v", err)
	}
	if cfg.Tick.Rate != 60 {
		t.Errorf("Tick.Rate = %d, want 60", cfg.Tick.Rate)
	}
	if cfg.Environment.Temperature != -10 || cfg.Environment.Wind.X != 1 {
		t.Errorf("environment off: %+v", cfg.Environment)
	}
	if cfg.Structure.DefaultCapacity != 500 {
		t.Errorf("DefaultCapacity = %v, want 500", cfg.Structure.DefaultCapacity)
	}
}

func TestLoadEngineMissingCustomPath(t *testing.T) {
	if _, err := LoadEngine(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("explicit config path that does not exist should error")
	}
}

func TestTickDt(t *testing.T) {
	if got := (TickConfig{Rate: 60}).Dt(); got != 1.0/60.0 {
		t.Errorf("Dt() = %v, want 1/60", got)
	}
	if got := (TickConfig{}).Dt(); got != 1.0/30.0 {
		t.Errorf("zero rate Dt() = %v, want the 1/30 fallback", got)
	}
}
