package engine

import (
	"errors"
	"testing"
)

func TestTrayRefillToCapacity(t *testing.T) {
	tray := NewTray()
	seq := NewSequence(1)

	tray.Refill(seq, 1)
	if tray.Len() != TrayCapacity {
		t.Fatalf("Len() = %d after refill, want %d", tray.Len(), TrayCapacity)
	}

	// Remove one, refill, back to capacity.
	first := tray.Pieces()[0]
	if err := tray.Remove(first.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	tray.Refill(seq, 1)
	if tray.Len() != TrayCapacity {
		t.Errorf("Len() = %d after second refill, want %d", tray.Len(), TrayCapacity)
	}
}

func TestTrayIDsUnique(t *testing.T) {
	tray := NewTray()
	seq := NewSequence(2)

	seen := make(map[int]bool)
	for round := 0; round < 10; round++ {
		tray.Refill(seq, 2)
		for _, p := range tray.Pieces() {
			if p.ID <= 0 {
				t.Fatalf("piece id %d, want positive", p.ID)
			}
			if seen[p.ID] {
				t.Fatalf("round %d: id %d reused", round, p.ID)
			}
			seen[p.ID] = true
			tray.Remove(p.ID) //nolint:errcheck
		}
	}
	// 10 rounds of 3 draws each.
	if len(seen) != 30 {
		t.Errorf("saw %d distinct ids, want 30", len(seen))
	}
}

func TestTrayNoThreeOfAKind(t *testing.T) {
	tray := NewTray()
	// Many rounds across levels; the draw filter must never allow three
	// identical shapes in one tray.
	for level := 1; level <= 8; level++ {
		seq := NewSequence(level)
		for round := 0; round < 25; round++ {
			tray.Refill(seq, level)
			counts := make(map[string]int)
			for _, p := range tray.Pieces() {
				counts[p.Shape.Name]++
			}
			for name, n := range counts {
				if n >= 3 {
					t.Fatalf("level %d round %d: %d copies of %q in tray", level, round, n, name)
				}
			}
			for _, p := range tray.Pieces() {
				tray.Remove(p.ID) //nolint:errcheck
			}
		}
	}
}

func TestTrayGetAndRemove(t *testing.T) {
	tray := NewTray()
	tray.Refill(NewSequence(1), 1)

	p := tray.Pieces()[1]
	got, ok := tray.Get(p.ID)
	if !ok || got.ID != p.ID {
		t.Fatalf("Get(%d) = %+v, %v", p.ID, got, ok)
	}

	if err := tray.Remove(p.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok := tray.Get(p.ID); ok {
		t.Error("piece still present after Remove")
	}
	if err := tray.Remove(p.ID); !errors.Is(err, ErrPieceNotInTray) {
		t.Errorf("second Remove = %v, want ErrPieceNotInTray", err)
	}
	if err := tray.Remove(9999); !errors.Is(err, ErrPieceNotInTray) {
		t.Errorf("Remove(unknown) = %v, want ErrPieceNotInTray", err)
	}
}

func TestTrayReplaceAdvancesIDs(t *testing.T) {
	tray := NewTray()
	sq, _ := ShapeByName("square2")
	tray.Replace([]Piece{
		{ID: 10, Shape: sq, Color: ColorRed},
		{ID: 42, Shape: sq, Color: ColorBlue},
	})

	if tray.Len() != 2 {
		t.Fatalf("Len() = %d after Replace, want 2", tray.Len())
	}

	tray.Refill(NewSequence(1), 1)
	for _, p := range tray.Pieces() {
		if p.ID != 10 && p.ID != 42 && p.ID <= 42 {
			t.Errorf("new piece id %d collides with restored id space", p.ID)
		}
	}
}

func TestTrayPiecesIsCopy(t *testing.T) {
	tray := NewTray()
	tray.Refill(NewSequence(1), 1)

	snap := tray.Pieces()
	snap[0].ID = -1

	if tray.Pieces()[0].ID == -1 {
		t.Error("mutating the returned slice must not affect the tray")
	}
}
