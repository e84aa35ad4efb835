package engine

import "testing"

func TestSequenceDeterministic(t *testing.T) {
	a := NewSequence(5)
	b := NewSequence(5)

	for i := 0; i < 100; i++ {
		if av, bv := a.Intn(1000), b.Intn(1000); av != bv {
			t.Fatalf("draw %d diverged: %d vs %d", i, av, bv)
		}
	}
}

func TestSequenceSeedDiffers(t *testing.T) {
	a := NewSequence(1)
	b := NewSequence(2)

	same := true
	for i := 0; i < 20; i++ {
		if a.Intn(1000) != b.Intn(1000) {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical streams")
	}
}

func TestSequenceSeedAccessor(t *testing.T) {
	if got := NewSequence(7).Seed(); got != 7 {
		t.Errorf("Seed() = %d, want 7", got)
	}
	if got := NewSequenceSeed(-42).Seed(); got != -42 {
		t.Errorf("Seed() = %d, want -42", got)
	}
}

func TestSequenceChanceBounds(t *testing.T) {
	seq := NewSequence(1)
	for i := 0; i < 50; i++ {
		if seq.Chance(0) {
			t.Fatal("Chance(0) returned true")
		}
	}
	seq = NewSequence(1)
	for i := 0; i < 50; i++ {
		if !seq.Chance(1.01) {
			t.Fatal("Chance(>1) returned false")
		}
	}
}

func TestPickColorIsPieceColor(t *testing.T) {
	seq := NewSequence(9)
	valid := make(map[BlockColor]bool, len(PieceColors))
	for _, c := range PieceColors {
		valid[c] = true
	}
	for i := 0; i < 100; i++ {
		if c := seq.PickColor(); !valid[c] {
			t.Fatalf("PickColor() = %v, not a piece color", c)
		}
	}
}
