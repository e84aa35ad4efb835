package engine

// TrayCapacity is the exact number of pending pieces the tray holds
// after any public operation completes.
const TrayCapacity = 3

// Piece is one shape+color instance drawn into the tray. The id is
// unique within a session; the piece is destroyed when placed.
type Piece struct {
	ID    int
	Shape Shape
	Color BlockColor
}

// Tray is the ordered holding area of pieces available for placement.
// Its size is exactly TrayCapacity except inside the refill window.
type Tray struct {
	pieces []Piece
	nextID int
}

// NewTray creates an empty tray. Callers refill it before play starts.
func NewTray() *Tray {
	return &Tray{nextID: 1}
}

// Len returns the number of pieces currently held.
func (t *Tray) Len() int {
	return len(t.pieces)
}

// Pieces returns a copy of the pending pieces in order.
func (t *Tray) Pieces() []Piece {
	out := make([]Piece, len(t.pieces))
	copy(out, t.pieces)
	return out
}

// Get returns the piece with the given id.
func (t *Tray) Get(id int) (Piece, bool) {
	for _, p := range t.pieces {
		if p.ID == id {
			return p, true
		}
	}
	return Piece{}, false
}

// Remove removes a piece by identity. It is called only after a
// placement has been fully committed to the grid.
func (t *Tray) Remove(id int) error {
	for i, p := range t.pieces {
		if p.ID == id {
			t.pieces = append(t.pieces[:i], t.pieces[i+1:]...)
			return nil
		}
	}
	return ErrPieceNotInTray
}

// draw produces one new piece for the given level. The candidate pool
// filters out shapes already present in the tray, and avoids producing
// three identical shapes when filling an empty tray. If filtering
// empties the pool the fixed safe set is used instead.
func (t *Tray) draw(seq *Sequence, level int) Piece {
	pool := AvailableShapes(level, seq)

	candidates := pool[:0:0]
	for _, s := range pool {
		if t.holdsShape(s.Name) {
			continue
		}
		candidates = append(candidates, s)
	}
	if len(candidates) == 0 {
		candidates = SafeShapes()
		// The safe set may still collide with tray contents; identical
		// duplicates are acceptable here, three of a kind is not.
		filtered := candidates[:0:0]
		for _, s := range candidates {
			if t.countShape(s.Name) >= 2 {
				continue
			}
			filtered = append(filtered, s)
		}
		if len(filtered) > 0 {
			candidates = filtered
		}
	}

	shape := candidates[seq.Intn(len(candidates))]
	p := Piece{ID: t.nextID, Shape: shape, Color: seq.PickColor()}
	t.nextID++
	return p
}

// Refill draws pieces until the tray reaches TrayCapacity. Refill is
// synchronous with placement: the tray never stays short across a
// public operation.
func (t *Tray) Refill(seq *Sequence, level int) {
	for len(t.pieces) < TrayCapacity {
		t.pieces = append(t.pieces, t.draw(seq, level))
	}
	// Capacity drift would be a logic error in the draw filter; it is
	// asserted in tests rather than patched here.
}

// Replace swaps the tray contents wholesale (snapshot restore, import).
// The id counter advances past the restored ids so future draws stay
// unique.
func (t *Tray) Replace(pieces []Piece) {
	t.pieces = make([]Piece, len(pieces))
	copy(t.pieces, pieces)
	for _, p := range pieces {
		if p.ID >= t.nextID {
			t.nextID = p.ID + 1
		}
	}
}

func (t *Tray) holdsShape(name string) bool {
	return t.countShape(name) > 0
}

func (t *Tray) countShape(name string) int {
	n := 0
	for _, p := range t.pieces {
		if p.Shape.Name == name {
			n++
		}
	}
	return n
}
