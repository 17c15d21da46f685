package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/terrasim/internal/sim"
)

func TestBuiltinsPresent(t *testing.T) {
	names := Builtins()
	want := map[string]bool{"wildfire": false, "rope-bridge": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, found := range want {
		if !found {
			t.Errorf("built-in scenario %q missing from %v", n, names)
		}
	}
}

func TestLoadBuiltin(t *testing.T) {
	sc, err := Load("wildfire")
	if err != nil {
		t.Fatalf("Load(wildfire) failed: %v", err)
	}
	if sc.Name != "wildfire" {
		t.Errorf("Name = %q, want wildfire", sc.Name)
	}
	if sc.Ticks <= 0 {
		t.Errorf("Ticks = %d, want positive", sc.Ticks)
	}
	if len(sc.Events) == 0 {
		t.Error("wildfire should carry scheduled events")
	}
}

func TestLoadBuiltinWithExtension(t *testing.T) {
	if _, err := Load("wildfire.yaml"); err != nil {
		t.Errorf("Load should accept the .yaml suffix: %v", err)
	}
}

func TestLoadUnknown(t *testing.T) {
	if _, err := Load("no-such-scenario"); err == nil {
		t.Error("loading an unknown scenario should fail")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := `name: custom
seed: 5
ticks: 10
bodies:
  - {x: 0, y: 0, z: 0, mass: 1}
  - {x: 1, y: 0, z: 0, mass: 1}
constraints:
  - {type: rope, body_a: 0, body_b: 1, max_length: 0.5}
events:
  - {tick: 2, action: ignite, x: 0.5, y: 0.5, radius: 0.1, intensity: 1.0}
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	sc, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%s) failed: %v", path, err)
	}
	if sc.Seed != 5 || len(sc.Bodies) != 2 || len(sc.Constraints) != 1 {
		t.Errorf("parsed scenario off: %+v", sc)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("bodies: {not: a list"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed YAML should fail to load")
	}
}

func TestValidateCatchesBadReferences(t *testing.T) {
	tests := []struct {
		name string
		sc   Scenario
	}{
		{"bad constraint type", Scenario{
			Constraints: []ConstraintSpec{{Type: "weld", BodyA: -1, BodyB: -1}},
		}},
		{"constraint body out of range", Scenario{
			Bodies:      []BodySpec{{Mass: 1}},
			Constraints: []ConstraintSpec{{Type: "rope", BodyA: 0, BodyB: 3}},
		}},
		{"structural body out of range", Scenario{
			StructuralNodes: []StructuralSpec{{Body: 0, Capacity: 100}},
		}},
		{"unknown material tag", Scenario{
			Materials: []MaterialPatch{{X: 0.5, Y: 0.5, Tags: []string{"adamantium"}}},
		}},
		{"unknown event action", Scenario{
			Events: []Event{{Tick: 0, Action: "explode"}},
		}},
		{"negative tick count", Scenario{Ticks: -1}},
	}
	for _, tt := range tests {
		if err := tt.sc.Validate(); err == nil {
			t.Errorf("%s: Validate should fail", tt.name)
		}
	}
}

func TestValidateAcceptsAnchorRef(t *testing.T) {
	sc := Scenario{
		Bodies:      []BodySpec{{Mass: 1}},
		Constraints: []ConstraintSpec{{Type: "rope", BodyA: -1, BodyB: 0}},
	}
	if err := sc.Validate(); err != nil {
		t.Errorf("body index -1 should validate as the world anchor: %v", err)
	}
}

func TestBuildRopeBridge(t *testing.T) {
	sc, err := Load("rope-bridge")
	if err != nil {
		t.Fatalf("Load(rope-bridge) failed: %v", err)
	}

	s := sim.New(sc.Seed)
	if err := sc.Build(s); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if got := s.World().Count(); got != len(sc.Bodies) {
		t.Errorf("bodies built = %d, want %d", got, len(sc.Bodies))
	}
	if got := s.Constraints().Count(); got != len(sc.Constraints) {
		t.Errorf("constraints built = %d, want %d", got, len(sc.Constraints))
	}
	if got := s.Constraints().NodeCount(); got != len(sc.StructuralNodes) {
		t.Errorf("structural nodes built = %d, want %d", got, len(sc.StructuralNodes))
	}
}

func TestApplyEventsFiresOnMatchingTick(t *testing.T) {
	sc := &Scenario{
		Name: "events",
		Events: []Event{
			{Tick: 3, Action: "temperature", Value: -40},
			{Tick: 5, Action: "wind", X: 1},
		},
	}
	s := sim.New(1)

	sc.ApplyEvents(s, 2)
	if got := s.Chemistry().WorldTemperature(); got != 20.0 {
		t.Fatalf("event fired early, temperature = %v", got)
	}

	sc.ApplyEvents(s, 3)
	if got := s.Chemistry().WorldTemperature(); got != -40.0 {
		t.Errorf("temperature event did not fire, got %v", got)
	}

	sc.ApplyEvents(s, 5)
	if got := s.Chemistry().Wind(); got.X != 1 {
		t.Errorf("wind event did not fire, got %+v", got)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	sc, err := Load("rope-bridge")
	if err != nil {
		t.Fatal(err)
	}

	dt := 1.0 / 30.0
	a, err := sc.Run(sim.New(sc.Seed), dt, nil)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	b, err := sc.Run(sim.New(sc.Seed), dt, nil)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if a.Hash != b.Hash {
		t.Errorf("identical scenario runs diverged: %016x vs %016x", a.Hash, b.Hash)
	}
	if a.Tick != uint64(sc.Ticks) {
		t.Errorf("run ended at tick %d, want %d", a.Tick, sc.Ticks)
	}
}
