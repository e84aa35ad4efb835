package engine

import (
	"errors"
	"testing"
	"time"
)

func TestExportImportRoundTrip(t *testing.T) {
	src, clock, _ := newTestSession(t, []Piece{redBar3(t, 1)})
	src.grid[7][0] = ColorGreen
	if _, err := src.TryPlace(1, Position{Row: 4, Col: 2}); err != nil {
		t.Fatalf("TryPlace: %v", err)
	}
	clock.Advance(3 * time.Second)

	snap := src.ExportSnapshot()
	if snap.Score != src.Score() {
		t.Fatalf("snapshot score %d, session %d", snap.Score, src.Score())
	}
	if len(snap.UndoTail) != 1 {
		t.Fatalf("undo tail %d, want 1", len(snap.UndoTail))
	}

	dst, _, _ := newTestSession(t, nil)
	if err := dst.ImportSnapshot(snap); err != nil {
		t.Fatalf("ImportSnapshot: %v", err)
	}

	if dst.Grid() != src.Grid() {
		t.Error("grid did not round-trip")
	}
	if dst.Score() != src.Score() {
		t.Errorf("score = %d, want %d", dst.Score(), src.Score())
	}
	if dst.Level() != src.Level() {
		t.Errorf("level = %d, want %d", dst.Level(), src.Level())
	}
	if dst.Chain() != src.Chain() {
		t.Errorf("chain = %d, want %d", dst.Chain(), src.Chain())
	}
	if dst.Mode() != src.Mode() {
		t.Errorf("mode = %v, want %v", dst.Mode(), src.Mode())
	}
	if dst.Phase() != PhasePlaying {
		t.Errorf("phase = %v after import, want PhasePlaying", dst.Phase())
	}

	srcTray, dstTray := src.Tray(), dst.Tray()
	if len(dstTray) != len(srcTray) {
		t.Fatalf("tray sizes differ: %d vs %d", len(dstTray), len(srcTray))
	}
	for i := range srcTray {
		if dstTray[i].ID != srcTray[i].ID ||
			dstTray[i].Shape.Name != srcTray[i].Shape.Name ||
			dstTray[i].Color != srcTray[i].Color {
			t.Errorf("tray[%d] = %+v, want %+v", i, dstTray[i], srcTray[i])
		}
	}
}

func TestImportRefillsShortTray(t *testing.T) {
	src, _, _ := newTestSession(t, nil)
	snap := src.ExportSnapshot()
	// A crash between placement and refill can persist fewer than three
	// pieces; resuming restores the full tray.
	snap.Tray = snap.Tray[:1]

	dst, _, _ := newTestSession(t, nil)
	if err := dst.ImportSnapshot(snap); err != nil {
		t.Fatalf("ImportSnapshot: %v", err)
	}
	if got := len(dst.Tray()); got != TrayCapacity {
		t.Errorf("tray holds %d pieces after import, want %d", got, TrayCapacity)
	}
	if dst.Tray()[0].ID != snap.Tray[0].ID {
		t.Error("persisted piece lost during refill")
	}
}

func TestImportRejectsInvalidSnapshots(t *testing.T) {
	base := func(t *testing.T) GameProgress {
		s, _, _ := newTestSession(t, nil)
		return s.ExportSnapshot()
	}

	tests := []struct {
		name   string
		mutate func(p *GameProgress)
	}{
		{"wrong grid size", func(p *GameProgress) { p.GridSize = 9 }},
		{"short grid", func(p *GameProgress) { p.Grid = p.Grid[:10] }},
		{"unknown cell color", func(p *GameProgress) { p.Grid[0] = "mauve" }},
		{"oversized tray", func(p *GameProgress) {
			p.Tray = append(p.Tray, PieceProgress{ID: 50, Shape: "bar2h", Color: "red"})
		}},
		{"duplicate piece id", func(p *GameProgress) { p.Tray[1].ID = p.Tray[0].ID }},
		{"non-positive piece id", func(p *GameProgress) { p.Tray[0].ID = 0 }},
		{"unknown shape", func(p *GameProgress) { p.Tray[0].Shape = "heptomino" }},
		{"empty piece color", func(p *GameProgress) { p.Tray[0].Color = "none" }},
		{"negative score", func(p *GameProgress) { p.Score = -1 }},
		{"zero level", func(p *GameProgress) { p.Level = 0 }},
		{"negative chain", func(p *GameProgress) { p.Chain = -1 }},
		{"unknown mode", func(p *GameProgress) { p.Mode = "speedrun" }},
		{"unknown used color", func(p *GameProgress) { p.UsedColors = []string{"mauve"} }},
		{"oversized undo tail", func(p *GameProgress) {
			p.UndoTail = make([]MoveProgress, UndoTailLimit+1)
		}},
		{"negative stats", func(p *GameProgress) { p.Stats.Moves = -1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := base(t)
			tc.mutate(&snap)

			s, _, _ := newTestSession(t, nil)
			gridBefore := s.Grid()
			scoreBefore := s.Score()
			trayBefore := s.Tray()

			err := s.ImportSnapshot(snap)
			if !errors.Is(err, ErrInvalidProgress) {
				t.Fatalf("ImportSnapshot = %v, want ErrInvalidProgress", err)
			}

			// Rejection is wholesale: nothing may have been applied.
			if s.Grid() != gridBefore {
				t.Error("grid changed by rejected import")
			}
			if s.Score() != scoreBefore {
				t.Error("score changed by rejected import")
			}
			if len(s.Tray()) != len(trayBefore) {
				t.Error("tray changed by rejected import")
			}
		})
	}
}

func TestImportRestoresDifficultyAggregates(t *testing.T) {
	src, _, _ := newTestSession(t, nil)
	src.model.Observe(SkillSample{Perfect: true, Chain: 4}, 2500)
	src.model.Observe(SkillSample{Chain: 2}, 1800)
	snap := src.ExportSnapshot()

	dst, _, _ := newTestSession(t, nil)
	if err := dst.ImportSnapshot(snap); err != nil {
		t.Fatalf("ImportSnapshot: %v", err)
	}

	p1, c1, s1, d1 := src.model.Stats()
	p2, c2, s2, d2 := dst.model.Stats()
	if p1 != p2 || c1 != c2 || s1 != s2 || d1 != d2 {
		t.Errorf("aggregates = %d, %d, %d, %d, want %d, %d, %d, %d", p2, c2, s2, d2, p1, c1, s1, d1)
	}
}

func TestImportPreservesHighScore(t *testing.T) {
	src, _, _ := newTestSession(t, nil)
	snap := src.ExportSnapshot()
	snap.HighScore = 4200
	snap.Score = 100

	dst, _, _ := newTestSession(t, nil)
	if err := dst.ImportSnapshot(snap); err != nil {
		t.Fatalf("ImportSnapshot: %v", err)
	}
	if dst.HighScore() != 4200 {
		t.Errorf("HighScore() = %d, want 4200", dst.HighScore())
	}
	if dst.Score() != 100 {
		t.Errorf("Score() = %d, want 100", dst.Score())
	}
}
