package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "runs.db")

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

func TestSaveRunAssignsID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(RunRecord{Player: "Ada", Score: 1500, Level: 2, Duration: 90 * time.Second})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveRun() id = %q, expected a uuid", id)
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil {
		t.Fatal("RunByID() = nil, expected the saved run")
	}
	if run.Player != "Ada" || run.Score != 1500 || run.Level != 2 || run.Duration != 90*time.Second {
		t.Errorf("RunByID() = %+v", run)
	}
	if run.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}

	if _, err := store.SaveRun(RunRecord{ID: "not-a-uuid", Player: "x"}); err == nil {
		t.Error("SaveRun() with a bad id should fail")
	}
	if missing, err := store.RunByID(uuid.NewString()); err != nil || missing != nil {
		t.Errorf("RunByID(unknown) = %v, %v; expected nil, nil", missing, err)
	}
}

func TestTopAndRecentRuns(t *testing.T) {
	store := openTestStore(t)
	base := time.Unix(1700000000, 0)

	runs := []RunRecord{
		{Player: "a", Score: 100, CreatedAt: base},
		{Player: "b", Score: 300, CreatedAt: base.Add(time.Minute)},
		{Player: "c", Score: 300, CreatedAt: base.Add(-time.Minute)},
		{Player: "a", Score: 50, CreatedAt: base.Add(time.Hour), Cleared: true, Level: 4},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns(3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	expectedTop := []string{"c", "b", "a"}
	if len(top) != len(expectedTop) {
		t.Fatalf("TopRuns() returned %d runs, expected %d", len(top), len(expectedTop))
	}
	for i, p := range expectedTop {
		if top[i].Player != p {
			t.Errorf("TopRuns()[%d].Player = %q, expected %q", i, top[i].Player, p)
		}
	}

	recent, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Score != 50 || !recent[0].Cleared || recent[1].Player != "b" {
		t.Errorf("RecentRuns() = %+v", recent)
	}

	mine, err := store.PlayerRuns("a", 10)
	if err != nil {
		t.Fatalf("PlayerRuns() failed: %v", err)
	}
	if len(mine) != 2 || mine[0].Score != 100 {
		t.Errorf("PlayerRuns(a) = %+v", mine)
	}
}

func TestHighScoreAndStats(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore() on empty db = %d, expected 0", high)
	}
	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Stats() on empty db = %+v", stats)
	}

	last := time.Unix(1700000500, 0)
	for _, r := range []RunRecord{
		{Player: "a", Score: 100, Level: 1, CreatedAt: time.Unix(1700000000, 0)},
		{Player: "b", Score: 400, Level: 4, Cleared: true, CreatedAt: last},
		{Player: "c", Score: 250, Level: 2, CreatedAt: time.Unix(1700000100, 0)},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	high, _ = store.HighScore()
	if high != 400 {
		t.Errorf("HighScore() = %d, expected 400", high)
	}

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 3 || stats.Cleared != 1 || stats.HighScore != 400 || stats.TotalScore != 750 || stats.BestLevel != 4 {
		t.Errorf("Stats() = %+v", stats)
	}
	if stats.AvgScore != 250 {
		t.Errorf("AvgScore = %v, expected 250", stats.AvgScore)
	}
	if !stats.LastPlayed.Equal(last) {
		t.Errorf("LastPlayed = %v, expected %v", stats.LastPlayed, last)
	}

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if runs, _ := store.TopRuns(10); len(runs) != 0 {
		t.Errorf("TopRuns() after ClearRuns = %d runs", len(runs))
	}
}
