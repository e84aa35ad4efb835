package engine

// PlacementOutcome describes a committed placement for the caller to
// forward to line-clear detection and the renderer.
type PlacementOutcome struct {
	Cells   []Position // newly occupied positions
	Touched int        // occupied orthogonal neighbors outside the shape
	Bonus   int        // touch bonus points (0 below the threshold)

	// Bounding box of the placed cells.
	RowMin, RowMax int
	ColMin, ColMax int
}

// ValidatePlacement reports whether every cell of the shape translated
// by the anchor is in-bounds and empty. This is a query, not a
// mutation: invalid placements are an expected outcome, so no error is
// involved.
func ValidatePlacement(g *Grid, shape Shape, at Position) bool {
	for _, off := range shape.Offsets {
		r, c := at.Row+off.DY, at.Col+off.DX
		if !InBounds(r, c) {
			return false
		}
		if g[r][c] != ColorNone {
			return false
		}
	}
	return true
}

// placementError classifies why a placement is invalid, checking bounds
// before occupancy so the caller gets the first violation.
func placementError(g *Grid, shape Shape, at Position) error {
	for _, off := range shape.Offsets {
		r, c := at.Row+off.DY, at.Col+off.DX
		if !InBounds(r, c) {
			return ErrOutOfBounds
		}
		if g[r][c] != ColorNone {
			return ErrCellOccupied
		}
	}
	return nil
}

// CommitPlacement atomically commits a piece placement. It re-validates
// first (defense against a stale caller-side check), writes every shape
// cell, and removes the piece from the tray only after the grid write
// succeeded in full. A failed commit leaves grid and tray untouched.
func CommitPlacement(g *Grid, tray *Tray, piece Piece, at Position, rules ScoringRules) (PlacementOutcome, error) {
	if _, ok := tray.Get(piece.ID); !ok {
		return PlacementOutcome{}, ErrPieceNotInTray
	}
	if err := placementError(g, piece.Shape, at); err != nil {
		return PlacementOutcome{}, err
	}

	out := PlacementOutcome{
		Cells:  make([]Position, 0, piece.Shape.Cells()),
		RowMin: GridSize, ColMin: GridSize,
		RowMax: -1, ColMax: -1,
	}
	for _, off := range piece.Shape.Offsets {
		r, c := at.Row+off.DY, at.Col+off.DX
		g[r][c] = piece.Color
		out.Cells = append(out.Cells, Position{Row: r, Col: c})
		if r < out.RowMin {
			out.RowMin = r
		}
		if r > out.RowMax {
			out.RowMax = r
		}
		if c < out.ColMin {
			out.ColMin = c
		}
		if c > out.ColMax {
			out.ColMax = c
		}
	}

	// Validation passed, so tray removal cannot fail here.
	if err := tray.Remove(piece.ID); err != nil {
		return PlacementOutcome{}, err
	}

	out.Touched = touchCount(g, out.Cells)
	if out.Touched >= rules.TouchThreshold {
		out.Bonus = rules.TouchMultiplier * out.Touched
	}
	return out, nil
}

// touchCount sums, for each placed cell, the orthogonal neighbors that
// are occupied and not part of the just-placed shape.
func touchCount(g *Grid, placed []Position) int {
	mine := make(map[Position]bool, len(placed))
	for _, p := range placed {
		mine[p] = true
	}

	dirs := [4]Position{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}}
	total := 0
	for _, p := range placed {
		for _, d := range dirs {
			n := Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
			if !InBounds(n.Row, n.Col) || mine[n] {
				continue
			}
			if g[n.Row][n.Col] != ColorNone {
				total++
			}
		}
	}
	return total
}
