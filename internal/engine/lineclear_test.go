package engine

import "testing"

func fillRow(g *Grid, r int, color BlockColor) {
	for c := 0; c < GridSize; c++ {
		g[r][c] = color
	}
}

func fillCol(g *Grid, c int, color BlockColor) {
	for r := 0; r < GridSize; r++ {
		g[r][c] = color
	}
}

func TestDetectClears(t *testing.T) {
	var g Grid
	fillRow(&g, 1, ColorRed)
	fillRow(&g, 6, ColorBlue)
	fillCol(&g, 3, ColorGreen)
	g[4][0] = ColorYellow // stray block, no full line

	rows, cols := DetectClears(&g)
	if len(rows) != 2 || rows[0] != 1 || rows[1] != 6 {
		t.Errorf("rows = %v, want [1 6]", rows)
	}
	if len(cols) != 1 || cols[0] != 3 {
		t.Errorf("cols = %v, want [3]", cols)
	}
}

func TestDetectClearsEmpty(t *testing.T) {
	var g Grid
	g[0][0] = ColorRed

	rows, cols := DetectClears(&g)
	if len(rows) != 0 || len(cols) != 0 {
		t.Errorf("rows, cols = %v, %v, want none", rows, cols)
	}
}

func TestEvaluateClearsBonuses(t *testing.T) {
	rules := DefaultRules().Scoring

	tests := []struct {
		name       string
		prep       func(g *Grid)
		wantLines  int
		wantMono   int
		wantX      bool
		wantPoints int
	}{
		{
			"single mixed row",
			func(g *Grid) {
				fillRow(g, 0, ColorRed)
				g[0][4] = ColorBlue
			},
			1, 0, false, 100,
		},
		{
			"single monochrome row",
			func(g *Grid) { fillRow(g, 2, ColorGreen) },
			1, 1, false, 300,
		},
		{
			"two monochrome lines crossing",
			func(g *Grid) {
				fillRow(g, 2, ColorGreen)
				fillCol(g, 5, ColorGreen)
			},
			2, 2, false, 600,
		},
		{
			"mixed row and mono column",
			func(g *Grid) {
				fillRow(g, 0, ColorRed)
				fillCol(g, 0, ColorBlue)
				g[0][0] = ColorBlue
			},
			2, 1, false, 400,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var g Grid
			tc.prep(&g)
			rows, cols := DetectClears(&g)
			b := EvaluateClears(&g, rows, cols, rules)

			if b.Lines != tc.wantLines {
				t.Errorf("Lines = %d, want %d", b.Lines, tc.wantLines)
			}
			if b.MonoLines != tc.wantMono {
				t.Errorf("MonoLines = %d, want %d", b.MonoLines, tc.wantMono)
			}
			if b.XPattern != tc.wantX {
				t.Errorf("XPattern = %v, want %v", b.XPattern, tc.wantX)
			}
			if b.Total() != tc.wantPoints {
				t.Errorf("Total() = %d, want %d", b.Total(), tc.wantPoints)
			}
		})
	}
}

func TestApplyClearsIdempotent(t *testing.T) {
	var g Grid
	fillRow(&g, 3, ColorRed)
	fillCol(&g, 3, ColorRed)
	g[0][0] = ColorBlue // survivor

	rows, cols := DetectClears(&g)
	ApplyClears(&g, rows, cols)

	if g[0][0] != ColorBlue {
		t.Error("uncleared cell lost")
	}
	for i := 0; i < GridSize; i++ {
		if g[3][i] != ColorNone || g[i][3] != ColorNone {
			t.Fatalf("cell on cleared line still occupied at row/col %d", i)
		}
	}

	// Re-applying the same clears must be a no-op.
	before := g
	ApplyClears(&g, rows, cols)
	if g != before {
		t.Error("repeated ApplyClears changed the grid")
	}
}

func TestClearedPositionsDedup(t *testing.T) {
	positions := ClearedPositions([]int{3}, []int{3})
	// One row and one column share the intersection cell.
	want := 2*GridSize - 1
	if len(positions) != want {
		t.Errorf("len = %d, want %d", len(positions), want)
	}
	seen := make(map[Position]bool, len(positions))
	for _, p := range positions {
		if seen[p] {
			t.Fatalf("duplicate position %+v", p)
		}
		seen[p] = true
	}
}

func TestWouldClearMatchesCommit(t *testing.T) {
	var g Grid
	fillRow(&g, 5, ColorRed)
	g[5][2] = ColorNone
	g[5][3] = ColorNone
	g[5][4] = ColorNone

	shape := mustShape(t, "bar3h")
	at := Position{Row: 5, Col: 2}

	rows, cols := WouldClear(&g, shape, ColorRed, at)
	if len(rows) != 1 || rows[0] != 5 || len(cols) != 0 {
		t.Fatalf("WouldClear = %v, %v, want [5], []", rows, cols)
	}
	if g[5][2] != ColorNone {
		t.Fatal("WouldClear mutated the grid")
	}

	tray := NewTray()
	tray.Replace([]Piece{{ID: 1, Shape: shape, Color: ColorRed}})
	if _, err := CommitPlacement(&g, tray, Piece{ID: 1, Shape: shape, Color: ColorRed}, at, DefaultRules().Scoring); err != nil {
		t.Fatalf("CommitPlacement: %v", err)
	}
	gotRows, gotCols := DetectClears(&g)
	if len(gotRows) != 1 || gotRows[0] != 5 || len(gotCols) != 0 {
		t.Errorf("post-commit DetectClears = %v, %v, want [5], []", gotRows, gotCols)
	}
}

func TestWouldClearInvalidPlacement(t *testing.T) {
	var g Grid
	g[0][0] = ColorRed

	rows, cols := WouldClear(&g, mustShape(t, "dot"), ColorBlue, Position{Row: 0, Col: 0})
	if rows != nil || cols != nil {
		t.Errorf("WouldClear on invalid placement = %v, %v, want nil, nil", rows, cols)
	}
}

func TestXPattern(t *testing.T) {
	rules := DefaultRules().Scoring // run length 10

	var g Grid
	// Two full diagonals crossing at (4, 4): 8 + 7 = 15 cells >= 10.
	for i := 0; i < GridSize; i++ {
		g[i][i] = ColorPurple
	}
	for i := 1; i < GridSize; i++ {
		g[i][GridSize-i] = ColorPurple
	}
	fillRow(&g, 0, ColorPurple) // give detection a line to clear

	rows, cols := DetectClears(&g)
	b := EvaluateClears(&g, rows, cols, rules)
	if !b.XPattern {
		t.Error("crossed diagonals should trigger the X-pattern bonus")
	}
	if b.XPoints != rules.XPatternBonus {
		t.Errorf("XPoints = %d, want %d", b.XPoints, rules.XPatternBonus)
	}
}

func TestXPatternTooShort(t *testing.T) {
	rules := DefaultRules().Scoring

	var g Grid
	// A small X centered at (2, 2): 5 cells, well under the run length.
	g[2][2] = ColorOrange
	g[1][1] = ColorOrange
	g[1][3] = ColorOrange
	g[3][1] = ColorOrange
	g[3][3] = ColorOrange
	fillRow(&g, 7, ColorRed)

	rows, cols := DetectClears(&g)
	b := EvaluateClears(&g, rows, cols, rules)
	if b.XPattern {
		t.Error("short diagonals must not trigger the X-pattern bonus")
	}
}
