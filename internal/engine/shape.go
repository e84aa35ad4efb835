// Package engine implements the deterministic block-puzzle simulation:
// grid, tray, placement, line clearing, scoring, undo and adaptive
// difficulty. It contains no external dependencies so the game logic
// stays pure and testable; rendering, persistence and entitlements are
// injected at the boundary.
package engine

// BlockColor is the color tag of an occupied grid cell or tray piece.
// ColorNone marks an empty cell.
type BlockColor uint8

const (
	ColorNone BlockColor = iota
	ColorRed
	ColorBlue
	ColorGreen
	ColorYellow
	ColorPurple
	ColorOrange
)

// PieceColors are the colors pieces can be drawn with. ColorNone is
// excluded; it is the empty-cell sentinel.
var PieceColors = [...]BlockColor{
	ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorPurple, ColorOrange,
}

// String returns the persisted tag for the color ("none" for empty).
func (c BlockColor) String() string {
	switch c {
	case ColorNone:
		return "none"
	case ColorRed:
		return "red"
	case ColorBlue:
		return "blue"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorPurple:
		return "purple"
	case ColorOrange:
		return "orange"
	default:
		return "unknown"
	}
}

// ColorFromTag parses a persisted color tag. Returns false for unknown tags.
func ColorFromTag(tag string) (BlockColor, bool) {
	switch tag {
	case "none":
		return ColorNone, true
	case "red":
		return ColorRed, true
	case "blue":
		return ColorBlue, true
	case "green":
		return ColorGreen, true
	case "yellow":
		return ColorYellow, true
	case "purple":
		return ColorPurple, true
	case "orange":
		return ColorOrange, true
	default:
		return ColorNone, false
	}
}

// Offset is a shape cell position relative to the shape's anchor.
type Offset struct {
	DX, DY int
}

// Shape is an immutable named set of cell offsets. Offsets are unique
// and the set is non-empty.
type Shape struct {
	Name    string
	Offsets []Offset
	Unlock  int // first level at which the shape enters the regular pool
}

// Cells returns the number of cells the shape occupies.
func (s Shape) Cells() int {
	return len(s.Offsets)
}

// trivial shapes (1-3 cells) are kept out of the regular pool until
// their unlock level so the early game stays challenging; they may
// still appear with a small probability (see AvailableShapes).
func (s Shape) trivial() bool {
	return len(s.Offsets) <= 3
}

// RareShapeChance is the probability that a not-yet-unlocked trivial
// shape is still offered, preserving rare variety.
const RareShapeChance = 0.01

// catalog lists every shape the game knows, in draw order.
// Offsets are (dx, dy) with dy growing downward.
var catalog = []Shape{
	{Name: "bar2h", Offsets: []Offset{{0, 0}, {1, 0}}, Unlock: 8},
	{Name: "bar2v", Offsets: []Offset{{0, 0}, {0, 1}}, Unlock: 8},
	{Name: "bar3h", Offsets: []Offset{{0, 0}, {1, 0}, {2, 0}}, Unlock: 5},
	{Name: "bar3v", Offsets: []Offset{{0, 0}, {0, 1}, {0, 2}}, Unlock: 5},
	{Name: "dot", Offsets: []Offset{{0, 0}}, Unlock: 10},
	{Name: "square2", Offsets: []Offset{{0, 0}, {1, 0}, {0, 1}, {1, 1}}, Unlock: 1},
	{Name: "bar4h", Offsets: []Offset{{0, 0}, {1, 0}, {2, 0}, {3, 0}}, Unlock: 1},
	{Name: "bar4v", Offsets: []Offset{{0, 0}, {0, 1}, {0, 2}, {0, 3}}, Unlock: 1},
	{Name: "corner_small", Offsets: []Offset{{0, 0}, {1, 0}, {0, 1}}, Unlock: 5},
	{Name: "tee", Offsets: []Offset{{0, 0}, {1, 0}, {2, 0}, {1, 1}}, Unlock: 1},
	{Name: "ess", Offsets: []Offset{{1, 0}, {2, 0}, {0, 1}, {1, 1}}, Unlock: 2},
	{Name: "zed", Offsets: []Offset{{0, 0}, {1, 0}, {1, 1}, {2, 1}}, Unlock: 2},
	{Name: "ell", Offsets: []Offset{{0, 0}, {0, 1}, {0, 2}, {1, 2}}, Unlock: 2},
	{Name: "jay", Offsets: []Offset{{1, 0}, {1, 1}, {1, 2}, {0, 2}}, Unlock: 2},
	{Name: "bar5h", Offsets: []Offset{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}, Unlock: 3},
	{Name: "bar5v", Offsets: []Offset{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}}, Unlock: 3},
	{Name: "plus", Offsets: []Offset{{1, 0}, {0, 1}, {1, 1}, {2, 1}, {1, 2}}, Unlock: 4},
	{Name: "corner_big", Offsets: []Offset{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {0, 2}}, Unlock: 4},
	{Name: "square3", Offsets: []Offset{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}, Unlock: 6},
	{Name: "rect2x3", Offsets: []Offset{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}, {1, 2}}, Unlock: 4},
	{Name: "rect3x2", Offsets: []Offset{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}}, Unlock: 4},
}

// safeShapeNames is the fallback pool used when draw filtering empties
// the candidate set. These five shapes always fit somewhere reasonable.
var safeShapeNames = []string{"bar2h", "bar2v", "bar3h", "bar3v", "square2"}

// ShapeByName looks up a catalog shape.
func ShapeByName(name string) (Shape, bool) {
	for _, s := range catalog {
		if s.Name == name {
			return s, true
		}
	}
	return Shape{}, false
}

// CatalogShapes returns a copy of the full catalog.
func CatalogShapes() []Shape {
	out := make([]Shape, len(catalog))
	copy(out, catalog)
	return out
}

// SafeShapes returns the fixed fallback pool.
func SafeShapes() []Shape {
	out := make([]Shape, 0, len(safeShapeNames))
	for _, name := range safeShapeNames {
		s, ok := ShapeByName(name)
		if !ok {
			panic("engine: safe shape missing from catalog: " + name)
		}
		out = append(out, s)
	}
	return out
}

// AvailableShapes returns the unlock-gated pool for a level. Shapes at
// or past their unlock level are always included. Trivial shapes below
// their unlock level are still offered with RareShapeChance, drawn from
// the sequence so the pool stays deterministic per level stream.
func AvailableShapes(level int, seq *Sequence) []Shape {
	out := make([]Shape, 0, len(catalog))
	for _, s := range catalog {
		switch {
		case s.Unlock <= level:
			out = append(out, s)
		case s.trivial() && seq.Chance(RareShapeChance):
			out = append(out, s)
		}
	}
	return out
}
