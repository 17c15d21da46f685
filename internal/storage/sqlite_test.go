package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	_, err = store.SaveRun(RunRecord{Scenario: "wildfire", Seed: 1, Ticks: 100, Dt: 1.0 / 30.0, Hash: 0xdeadbeefcafe, Integrity: 1.0})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	_, err = store.SaveRun(RunRecord{Scenario: "wildfire", Seed: 2, Ticks: 100, Dt: 1.0 / 30.0, Hash: 0x1234, Integrity: 0.8})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	_, err = store.SaveRun(RunRecord{Scenario: "rope-bridge", Seed: 7, Ticks: 200, Dt: 1.0 / 30.0, Hash: 0x42, Integrity: 0.3, CascadeCount: 2})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RunsForScenario("wildfire", 10)
	if err != nil {
		t.Fatalf("RunsForScenario() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("Expected 2 wildfire runs, got %d", len(runs))
	}

	// Newest first
	if runs[0].Seed != 2 {
		t.Errorf("Expected newest run first (seed 2), got seed %d", runs[0].Seed)
	}

	all, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 runs total, got %d", len(all))
	}
}

func TestStoreHashRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// A hash above 1<<63 must survive storage unchanged.
	want := uint64(0xfedcba9876543210)
	if _, err := store.SaveRun(RunRecord{Scenario: "s", Seed: 1, Hash: want}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	run, err := store.LatestRun("s", 1)
	if err != nil {
		t.Fatalf("LatestRun() failed: %v", err)
	}
	if run == nil {
		t.Fatal("LatestRun() returned nil for saved run")
	}
	if run.Hash != want {
		t.Errorf("Hash round-trip: got %x, want %x", run.Hash, want)
	}
}

func TestStoreLatestRunMissing(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	run, err := store.LatestRun("nope", 99)
	if err != nil {
		t.Fatalf("LatestRun() failed: %v", err)
	}
	if run != nil {
		t.Errorf("Expected nil for missing run, got %+v", run)
	}
}

func TestStoreClearRuns(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveRun(RunRecord{Scenario: "a", Seed: 1, Hash: 1})
	store.SaveRun(RunRecord{Scenario: "a", Seed: 2, Hash: 2})
	store.SaveRun(RunRecord{Scenario: "b", Seed: 1, Hash: 3})

	if err := store.ClearRuns("a"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	aRuns, _ := store.RunsForScenario("a", 10)
	if len(aRuns) != 0 {
		t.Errorf("Expected 0 runs for scenario a after clear, got %d", len(aRuns))
	}

	bRuns, _ := store.RunsForScenario("b", 10)
	if len(bRuns) != 1 {
		t.Errorf("Runs for scenario b should not be affected, got %d", len(bRuns))
	}
}

func TestStoreExpandNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
