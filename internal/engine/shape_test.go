package engine

import "testing"

func TestCatalogShapesAreValid(t *testing.T) {
	for _, s := range CatalogShapes() {
		t.Run(s.Name, func(t *testing.T) {
			if len(s.Offsets) == 0 {
				t.Fatal("shape has no cells")
			}
			if s.Unlock < 1 {
				t.Errorf("unlock level %d, want >= 1", s.Unlock)
			}
			seen := make(map[Offset]bool)
			for _, off := range s.Offsets {
				if seen[off] {
					t.Errorf("duplicate offset %+v", off)
				}
				seen[off] = true
			}
		})
	}
}

func TestSafeShapes(t *testing.T) {
	safe := SafeShapes()
	if len(safe) != 5 {
		t.Fatalf("safe set has %d shapes, want 5", len(safe))
	}

	want := map[string]bool{"bar2h": true, "bar2v": true, "bar3h": true, "bar3v": true, "square2": true}
	for _, s := range safe {
		if !want[s.Name] {
			t.Errorf("unexpected safe shape %q", s.Name)
		}
	}
}

func TestAvailableShapesGating(t *testing.T) {
	// At level 1 only the Unlock<=1 shapes are guaranteed; trivial
	// shapes may sneak in with RareShapeChance, nothing else can.
	seq := NewSequence(1)
	pool := AvailableShapes(1, seq)

	for _, s := range pool {
		if s.Unlock <= 1 {
			continue
		}
		if !s.trivial() {
			t.Errorf("locked non-trivial shape %q offered at level 1", s.Name)
		}
	}
}

func TestAvailableShapesUnlockAll(t *testing.T) {
	seq := NewSequence(50)
	pool := AvailableShapes(50, seq)

	if len(pool) != len(CatalogShapes()) {
		t.Errorf("level 50 pool has %d shapes, want the full catalog of %d", len(pool), len(CatalogShapes()))
	}
}

func TestAvailableShapesDeterministic(t *testing.T) {
	a := AvailableShapes(3, NewSequence(3))
	b := AvailableShapes(3, NewSequence(3))

	if len(a) != len(b) {
		t.Fatalf("pool sizes differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			t.Errorf("pool[%d] = %q vs %q", i, a[i].Name, b[i].Name)
		}
	}
}

func TestColorTagRoundTrip(t *testing.T) {
	colors := append([]BlockColor{ColorNone}, PieceColors[:]...)
	for _, c := range colors {
		got, ok := ColorFromTag(c.String())
		if !ok || got != c {
			t.Errorf("ColorFromTag(%q) = %v, %v", c.String(), got, ok)
		}
	}

	if _, ok := ColorFromTag("chartreuse"); ok {
		t.Error("unknown tag should not parse")
	}
}
