package engine

import "fmt"

// ScoreType tags a ledger entry for the audit breakdown.
type ScoreType string

const (
	ScorePlacement  ScoreType = "placement"
	ScoreTouch      ScoreType = "touch"
	ScoreLineClear  ScoreType = "line_clear"
	ScoreMonochrome ScoreType = "monochrome"
	ScoreXPattern   ScoreType = "x_pattern"
	ScorePerfect    ScoreType = "perfect"
)

// ScoreEntry is one append-only audit record: what was scored, how many
// points, and how often the same event occurred.
type ScoreEntry struct {
	Type        ScoreType
	Points      int
	Description string
	Count       int
}

// Ledger accumulates score deltas with a typed breakdown. It keeps two
// append-only lists: one for the current level (reset on level
// completion) and one for the whole game. The score never decreases
// except via undo, which restores a prior ledger clone rather than
// subtracting.
type Ledger struct {
	levelEntries []ScoreEntry
	gameEntries  []ScoreEntry
	total        int

	highAllTime  int
	highPerLevel map[int]int
}

// NewLedger creates an empty ledger carrying a prior all-time high
// score watermark (0 for a brand-new player).
func NewLedger(highAllTime int) *Ledger {
	return &Ledger{
		highAllTime:  highAllTime,
		highPerLevel: make(map[int]int),
	}
}

// Add appends an entry to both breakdown lists, adds the points to the
// running score, and advances the high-score watermarks.
func (l *Ledger) Add(level int, t ScoreType, points int, description string, count int) {
	e := ScoreEntry{Type: t, Points: points, Description: description, Count: count}
	l.levelEntries = append(l.levelEntries, e)
	l.gameEntries = append(l.gameEntries, e)
	l.total += points

	if l.total > l.highAllTime {
		l.highAllTime = l.total
	}
	if l.total > l.highPerLevel[level] {
		l.highPerLevel[level] = l.total
	}
}

// Total returns the running score.
func (l *Ledger) Total() int {
	return l.total
}

// HighScore returns the personal all-time watermark.
func (l *Ledger) HighScore() int {
	return l.highAllTime
}

// LevelHigh returns the watermark for one level.
func (l *Ledger) LevelHigh(level int) int {
	return l.highPerLevel[level]
}

// LevelEntries returns a copy of the current level's breakdown.
func (l *Ledger) LevelEntries() []ScoreEntry {
	out := make([]ScoreEntry, len(l.levelEntries))
	copy(out, l.levelEntries)
	return out
}

// GameEntries returns a copy of the whole-game breakdown.
func (l *Ledger) GameEntries() []ScoreEntry {
	out := make([]ScoreEntry, len(l.gameEntries))
	copy(out, l.gameEntries)
	return out
}

// ResetLevel clears the per-level list on level completion. The
// game-wide list and the running score persist.
func (l *Ledger) ResetLevel() {
	l.levelEntries = nil
}

// Clone returns a deep copy for undo snapshots.
func (l *Ledger) Clone() *Ledger {
	c := &Ledger{
		levelEntries: make([]ScoreEntry, len(l.levelEntries)),
		gameEntries:  make([]ScoreEntry, len(l.gameEntries)),
		total:        l.total,
		highAllTime:  l.highAllTime,
		highPerLevel: make(map[int]int, len(l.highPerLevel)),
	}
	copy(c.levelEntries, l.levelEntries)
	copy(c.gameEntries, l.gameEntries)
	for k, v := range l.highPerLevel {
		c.highPerLevel[k] = v
	}
	return c
}

// restoreTotal forces the running score (snapshot import only; normal
// play goes through Add).
func (l *Ledger) restoreTotal(total int) {
	l.total = total
	if total > l.highAllTime {
		l.highAllTime = total
	}
}

func describePoints(what string, n int) string {
	if n == 1 {
		return what
	}
	return fmt.Sprintf("%s x%d", what, n)
}
