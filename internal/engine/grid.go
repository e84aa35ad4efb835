package engine

// GridSize is the fixed board dimension (the board is GridSize×GridSize).
const GridSize = 8

// Position is a board coordinate. Row 0 is the top row.
type Position struct {
	Row, Col int
}

// Grid is the board: a fixed-size matrix of cell colors with ColorNone
// marking empty cells. Grid is a value type; assignment copies it, which
// is what the undo stack and scratch simulations rely on.
type Grid [GridSize][GridSize]BlockColor

// InBounds reports whether (row, col) is a valid cell index.
func InBounds(row, col int) bool {
	return row >= 0 && row < GridSize && col >= 0 && col < GridSize
}

// CellAt returns the color at (row, col).
func (g *Grid) CellAt(row, col int) (BlockColor, error) {
	if !InBounds(row, col) {
		return ColorNone, ErrOutOfBounds
	}
	return g[row][col], nil
}

// SetCell writes a color at (row, col).
func (g *Grid) SetCell(row, col int, c BlockColor) error {
	if !InBounds(row, col) {
		return ErrOutOfBounds
	}
	g[row][col] = c
	return nil
}

// ClearRow empties every cell of row r. Clearing an already-empty row
// is a no-op, not an error.
func (g *Grid) ClearRow(r int) error {
	if r < 0 || r >= GridSize {
		return ErrOutOfBounds
	}
	for c := 0; c < GridSize; c++ {
		g[r][c] = ColorNone
	}
	return nil
}

// ClearColumn empties every cell of column c. Idempotent like ClearRow.
func (g *Grid) ClearColumn(c int) error {
	if c < 0 || c >= GridSize {
		return ErrOutOfBounds
	}
	for r := 0; r < GridSize; r++ {
		g[r][c] = ColorNone
	}
	return nil
}

// IsRowFull reports whether every cell of row r is occupied.
// Out-of-range rows are never full.
func (g *Grid) IsRowFull(r int) bool {
	if r < 0 || r >= GridSize {
		return false
	}
	for c := 0; c < GridSize; c++ {
		if g[r][c] == ColorNone {
			return false
		}
	}
	return true
}

// IsColumnFull reports whether every cell of column c is occupied.
func (g *Grid) IsColumnFull(c int) bool {
	if c < 0 || c >= GridSize {
		return false
	}
	for r := 0; r < GridSize; r++ {
		if g[r][c] == ColorNone {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the whole board is empty.
func (g *Grid) IsEmpty() bool {
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if g[r][c] != ColorNone {
				return false
			}
		}
	}
	return true
}

// Occupied returns the number of occupied cells.
func (g *Grid) Occupied() int {
	n := 0
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if g[r][c] != ColorNone {
				n++
			}
		}
	}
	return n
}
