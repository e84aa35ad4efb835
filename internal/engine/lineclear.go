package engine

// ClearBonuses are the points decided at detection time, before the
// flagged lines are actually cleared.
type ClearBonuses struct {
	Lines      int // number of cleared rows + columns
	LinePoints int // base points for all cleared lines
	MonoLines  int // cleared lines sharing a single color
	MonoPoints int
	XPattern   bool // diagonal pattern found
	XPoints    int
}

// Total returns the sum of all clear bonuses.
func (b ClearBonuses) Total() int {
	return b.LinePoints + b.MonoPoints + b.XPoints
}

// DetectClears returns the rows and columns whose occupied count equals
// the grid size, in ascending order. Single pass over the board.
func DetectClears(g *Grid) (rows, cols []int) {
	var rowCount, colCount [GridSize]int
	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if g[r][c] != ColorNone {
				rowCount[r]++
				colCount[c]++
			}
		}
	}
	for i := 0; i < GridSize; i++ {
		if rowCount[i] == GridSize {
			rows = append(rows, i)
		}
		if colCount[i] == GridSize {
			cols = append(cols, i)
		}
	}
	return rows, cols
}

// EvaluateClears computes the bonus points for the flagged lines. It
// must run before ApplyClears: monochrome and X-pattern checks read the
// cells that are about to be removed.
func EvaluateClears(g *Grid, rows, cols []int, rules ScoringRules) ClearBonuses {
	b := ClearBonuses{Lines: len(rows) + len(cols)}
	b.LinePoints = b.Lines * rules.LinePoints

	for _, r := range rows {
		if rowMonochrome(g, r) {
			b.MonoLines++
		}
	}
	for _, c := range cols {
		if colMonochrome(g, c) {
			b.MonoLines++
		}
	}
	b.MonoPoints = b.MonoLines * rules.MonochromeBonus

	if b.Lines > 0 && hasXPattern(g, rules.XPatternRun) {
		b.XPattern = true
		b.XPoints = rules.XPatternBonus
	}
	return b
}

// ApplyClears empties all flagged rows and columns. A cell at the
// intersection of a cleared row and column is cleared once; reapplying
// the same clears is a no-op.
func ApplyClears(g *Grid, rows, cols []int) {
	for _, r := range rows {
		g.ClearRow(r) //nolint:errcheck // detection only yields in-range indices
	}
	for _, c := range cols {
		g.ClearColumn(c) //nolint:errcheck // detection only yields in-range indices
	}
}

// ClearedPositions lists every cell position covered by the flagged
// lines, deduplicating row/column intersections.
func ClearedPositions(rows, cols []int) []Position {
	seen := make(map[Position]bool, (len(rows)+len(cols))*GridSize)
	out := make([]Position, 0, (len(rows)+len(cols))*GridSize)
	for _, r := range rows {
		for c := 0; c < GridSize; c++ {
			p := Position{Row: r, Col: c}
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	for _, c := range cols {
		for r := 0; r < GridSize; r++ {
			p := Position{Row: r, Col: c}
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// WouldClear simulates placing the shape on a scratch copy of the grid
// and reports the rows and columns that a real commit would clear. The
// live grid is never touched; results match DetectClears after an
// actual placement exactly.
func WouldClear(g *Grid, shape Shape, color BlockColor, at Position) (rows, cols []int) {
	if !ValidatePlacement(g, shape, at) {
		return nil, nil
	}
	scratch := *g
	for _, off := range shape.Offsets {
		scratch[at.Row+off.DY][at.Col+off.DX] = color
	}
	return DetectClears(&scratch)
}

func rowMonochrome(g *Grid, r int) bool {
	first := g[r][0]
	for c := 1; c < GridSize; c++ {
		if g[r][c] != first {
			return false
		}
	}
	return first != ColorNone
}

func colMonochrome(g *Grid, c int) bool {
	first := g[0][c]
	for r := 1; r < GridSize; r++ {
		if g[r][c] != first {
			return false
		}
	}
	return first != ColorNone
}

// hasXPattern scans all non-border cells for four diagonal rays of
// matching color with a combined run length of at least minRun.
// First match wins; the scan stops there.
func hasXPattern(g *Grid, minRun int) bool {
	for r := 1; r < GridSize-1; r++ {
		for c := 1; c < GridSize-1; c++ {
			center := g[r][c]
			if center == ColorNone {
				continue
			}
			run := 1 // the center itself
			for _, d := range [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}} {
				rr, cc := r+d[0], c+d[1]
				for InBounds(rr, cc) && g[rr][cc] == center {
					run++
					rr += d[0]
					cc += d[1]
				}
			}
			if run >= minRun {
				return true
			}
		}
	}
	return false
}
