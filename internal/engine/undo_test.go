package engine

import "testing"

func snapAt(col int) Snapshot {
	return Snapshot{Move: Move{PieceID: col, At: Position{Row: 0, Col: col}}}
}

func TestUndoStackLIFO(t *testing.T) {
	u := NewUndoStack(5)
	for i := 1; i <= 3; i++ {
		u.Push(snapAt(i))
	}

	for want := 3; want >= 1; want-- {
		s, ok := u.Pop()
		if !ok || s.Move.PieceID != want {
			t.Fatalf("Pop() = %+v, %v, want piece %d", s.Move, ok, want)
		}
	}
	if _, ok := u.Pop(); ok {
		t.Error("Pop() on empty stack should report false")
	}
}

func TestUndoStackEvictsOldest(t *testing.T) {
	u := NewUndoStack(3)
	for i := 1; i <= 5; i++ {
		u.Push(snapAt(i))
	}

	if u.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", u.Len())
	}
	// Moves 1 and 2 were evicted; 5, 4, 3 remain in LIFO order.
	for _, want := range []int{5, 4, 3} {
		s, _ := u.Pop()
		if s.Move.PieceID != want {
			t.Errorf("Pop() piece = %d, want %d", s.Move.PieceID, want)
		}
	}
}

func TestUndoStackTail(t *testing.T) {
	u := NewUndoStack(5)
	for i := 1; i <= 4; i++ {
		u.Push(snapAt(i))
	}

	tail := u.Tail(2)
	if len(tail) != 2 || tail[0].PieceID != 3 || tail[1].PieceID != 4 {
		t.Errorf("Tail(2) = %+v, want moves 3 then 4", tail)
	}

	tail = u.Tail(10)
	if len(tail) != 4 {
		t.Errorf("Tail(10) = %d moves, want all 4", len(tail))
	}
}

func TestUndoStackClear(t *testing.T) {
	u := NewUndoStack(5)
	u.Push(snapAt(1))
	u.Clear()

	if u.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", u.Len())
	}
}

func TestUndoStackMinBound(t *testing.T) {
	u := NewUndoStack(0)
	u.Push(snapAt(1))
	u.Push(snapAt(2))

	if u.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 for a degenerate bound", u.Len())
	}
	s, _ := u.Pop()
	if s.Move.PieceID != 2 {
		t.Errorf("Pop() piece = %d, want the newest", s.Move.PieceID)
	}
}
