package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-blocksmash/internal/engine"
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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreOpenNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieveScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("blocksmash", "classic", score, 1); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("blocksmash", "timed", 500, 3); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("blocksmash", "classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 classic scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not sorted descending: %v", scores)
	}

	all, err := store.TopScores("blocksmash", "", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 scores across modes, got %d", len(all))
	}
	if all[0].Score != 500 || all[0].Mode != "timed" || all[0].Level != 3 {
		t.Errorf("Top entry = %+v, want the timed 500", all[0])
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("blocksmash", "classic", (i+1)*100, 1)
	}

	scores, err := store.TopScores("blocksmash", "classic", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("blocksmash")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("blocksmash", "classic", 100, 1)
	store.SaveScore("blocksmash", "timed", 300, 2)
	store.SaveScore("blocksmash", "classic", 200, 1)

	high, err = store.HighScore("blocksmash")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("blocksmash", "classic", 100, 1)
	store.SaveScore("blocksmash", "classic", 200, 1)
	store.SaveScore("other", "classic", 300, 1)

	if err := store.ClearScores("blocksmash"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("blocksmash", "", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	other, _ := store.TopScores("other", "", 10)
	if len(other) != 1 {
		t.Errorf("Other games must not be affected by the clear")
	}
}

func sampleProgress(score, level int) engine.GameProgress {
	grid := make([]string, engine.GridSize*engine.GridSize)
	for i := range grid {
		grid[i] = "none"
	}
	return engine.GameProgress{
		GridSize: engine.GridSize,
		Grid:     grid,
		Tray: []engine.PieceProgress{
			{ID: 1, Shape: "square2", Color: "red"},
		},
		Score: score,
		Level: level,
		Mode:  "classic",
	}
}

func TestStoreSaveSlotRoundTrip(t *testing.T) {
	store := openTestStore(t)

	want := sampleProgress(1500, 3)
	if err := store.SaveSlot("auto", "blocksmash", want); err != nil {
		t.Fatalf("SaveSlot() failed: %v", err)
	}

	got, ok, err := store.LoadSlot("auto")
	if err != nil {
		t.Fatalf("LoadSlot() failed: %v", err)
	}
	if !ok {
		t.Fatal("LoadSlot() reported missing slot")
	}
	if got.Score != want.Score || got.Level != want.Level || got.Mode != want.Mode {
		t.Errorf("loaded progress = %+v, want %+v", got, want)
	}
	if len(got.Grid) != engine.GridSize*engine.GridSize {
		t.Errorf("grid has %d cells, want %d", len(got.Grid), engine.GridSize*engine.GridSize)
	}
	if len(got.Tray) != 1 || got.Tray[0].Shape != "square2" {
		t.Errorf("tray did not round-trip: %+v", got.Tray)
	}
}

func TestStoreSaveSlotUpsert(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveSlot("auto", "blocksmash", sampleProgress(100, 1)); err != nil {
		t.Fatalf("SaveSlot() failed: %v", err)
	}
	if err := store.SaveSlot("auto", "blocksmash", sampleProgress(900, 2)); err != nil {
		t.Fatalf("SaveSlot() overwrite failed: %v", err)
	}

	got, ok, err := store.LoadSlot("auto")
	if err != nil || !ok {
		t.Fatalf("LoadSlot() = %v, %v", ok, err)
	}
	if got.Score != 900 || got.Level != 2 {
		t.Errorf("slot not overwritten: %+v", got)
	}

	slots, err := store.ListSlots()
	if err != nil {
		t.Fatalf("ListSlots() failed: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("Expected 1 slot after upsert, got %d", len(slots))
	}
	if slots[0].Score != 900 || slots[0].Level != 2 {
		t.Errorf("slot summary = %+v, want score 900, level 2", slots[0])
	}
}

func TestStoreLoadMissingSlot(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.LoadSlot("nope")
	if err != nil {
		t.Fatalf("LoadSlot() failed: %v", err)
	}
	if ok {
		t.Error("missing slot reported as present")
	}
}

func TestStoreDeleteSlot(t *testing.T) {
	store := openTestStore(t)

	store.SaveSlot("auto", "blocksmash", sampleProgress(100, 1))
	if err := store.DeleteSlot("auto"); err != nil {
		t.Fatalf("DeleteSlot() failed: %v", err)
	}
	if _, ok, _ := store.LoadSlot("auto"); ok {
		t.Error("slot still present after delete")
	}

	// Deleting again is a no-op.
	if err := store.DeleteSlot("auto"); err != nil {
		t.Errorf("DeleteSlot() on missing slot failed: %v", err)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("blocksmash", "classic", 100, 1)
	store.SaveScore("blocksmash", "classic", 300, 2)

	stats, err := store.GetGameStats("blocksmash")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, want 2", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, want 300", stats.HighScore)
	}
	if stats.TotalScore != 400 {
		t.Errorf("TotalScore = %d, want 400", stats.TotalScore)
	}
}
