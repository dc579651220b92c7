package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun(rule string, generations int64) RunEntry {
	return RunEntry{
		Preset:      "default",
		Rule:        rule,
		Radius:      6,
		Threshold:   7,
		States:      18,
		Shape:       "von_neumann",
		Width:       80,
		Height:      46,
		Margin:      4,
		Frame:       2,
		Seed:        1234,
		Generations: generations,
		Transitions: generations * 10,
	}
}

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
	store := openTestStore(t)

	want := sampleRun("R6/T7/C18/NN", 250)
	runID, err := store.SaveRun(want)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if runID == "" {
		t.Fatal("SaveRun() returned an empty run ID")
	}

	got, err := store.RunByID(runID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() found nothing")
	}

	want.RunID = runID
	want.Source = "local"
	want.ID = got.ID
	want.CreatedAt = got.CreatedAt
	if *got != want {
		t.Errorf("RunByID() = %+v, expected %+v", *got, want)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}

func TestStoreKeepsGivenRunID(t *testing.T) {
	store := openTestStore(t)

	e := sampleRun("R1/T3/C3/NM", 5)
	e.RunID = "fixed-id"
	e.Source = "ssh"
	runID, err := store.SaveRun(e)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if runID != "fixed-id" {
		t.Errorf("run ID = %q, expected fixed-id", runID)
	}

	got, _ := store.RunByID("fixed-id")
	if got == nil || got.Source != "ssh" {
		t.Errorf("RunByID() = %+v, expected ssh run", got)
	}
}

func TestStoreDuplicateRunID(t *testing.T) {
	store := openTestStore(t)

	e := sampleRun("R1/T3/C3/NM", 5)
	e.RunID = "same"
	if _, err := store.SaveRun(e); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(e); err == nil {
		t.Error("expected error for a duplicate run ID")
	}
}

func TestStoreRunByPrefix(t *testing.T) {
	store := openTestStore(t)

	for _, id := range []string{"abc123", "abd456"} {
		e := sampleRun("R1/T3/C3/NM", 1)
		e.RunID = id
		if _, err := store.SaveRun(e); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	got, err := store.RunByID("abc")
	if err != nil {
		t.Fatalf("RunByID(abc) failed: %v", err)
	}
	if got == nil || got.RunID != "abc123" {
		t.Errorf("RunByID(abc) = %+v, expected abc123", got)
	}

	if _, err := store.RunByID("ab"); err == nil {
		t.Error("expected ambiguous prefix error")
	}

	got, err = store.RunByID("zzz")
	if err != nil || got != nil {
		t.Errorf("RunByID(zzz) = %+v, %v, expected nil, nil", got, err)
	}
}

func TestStoreRunByIDLiteralPrefix(t *testing.T) {
	store := openTestStore(t)

	e := sampleRun("R1/T3/C3/NM", 1)
	e.RunID = "4be1-a3a0"
	if _, err := store.SaveRun(e); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	// Wildcard characters match only themselves
	for _, id := range []string{"%", "_", "%a3a0", "4b_1", "a3a0"} {
		got, err := store.RunByID(id)
		if err != nil || got != nil {
			t.Errorf("RunByID(%q) = %+v, %v, expected nil, nil", id, got, err)
		}
	}

	got, err := store.RunByID("4be1-")
	if err != nil || got == nil {
		t.Errorf("RunByID(4be1-) = %+v, %v, expected the run", got, err)
	}
}

func TestStoreRecentRunsOrderAndLimit(t *testing.T) {
	store := openTestStore(t)

	for i := int64(1); i <= 5; i++ {
		if _, err := store.SaveRun(sampleRun("R1/T3/C3/NM", i)); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}

	// Newest first: 5, 4, 3
	for i, want := range []int64{5, 4, 3} {
		if runs[i].Generations != want {
			t.Errorf("runs[%d].Generations = %d, expected %d", i, runs[i].Generations, want)
		}
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(sampleRun("R1/T3/C3/NM", 1))
	store.SaveRun(sampleRun("R6/T7/C18/NN", 2))

	if n, _ := store.CountRuns(); n != 2 {
		t.Fatalf("CountRuns() = %d, expected 2", n)
	}

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	if n, _ := store.CountRuns(); n != 0 {
		t.Errorf("CountRuns() = %d after clear, expected 0", n)
	}
}

func TestStoreRuleStats(t *testing.T) {
	store := openTestStore(t)

	// Never run
	stats, err := store.GetRuleStats("R1/T3/C3/NM")
	if err != nil {
		t.Fatalf("GetRuleStats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastRun.IsZero() {
		t.Errorf("stats for an unused rule = %+v", stats)
	}

	store.SaveRun(sampleRun("R1/T3/C3/NM", 100))
	store.SaveRun(sampleRun("R1/T3/C3/NM", 300))
	store.SaveRun(sampleRun("R6/T7/C18/NN", 50))

	stats, err = store.GetRuleStats("R1/T3/C3/NM")
	if err != nil {
		t.Fatalf("GetRuleStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.Generations != 400 || stats.LongestRun != 300 {
		t.Errorf("stats = %+v, expected 2 runs, 400 generations, longest 300", stats)
	}

	all, err := store.GetAllRuleStats()
	if err != nil {
		t.Fatalf("GetAllRuleStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("GetAllRuleStats() returned %d rules, expected 2", len(all))
	}
	if all["R6/T7/C18/NN"].Runs != 1 {
		t.Errorf("R6/T7/C18/NN runs = %d, expected 1", all["R6/T7/C18/NN"].Runs)
	}
}

func TestStoreNestedPath(t *testing.T) {
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

func TestNewRunIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewRunID()
		if seen[id] {
			t.Fatalf("duplicate run ID %s", id)
		}
		seen[id] = true
	}
}
