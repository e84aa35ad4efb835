package engine

// Move records the placement that produced the state following a
// snapshot, for the persisted undo tail.
type Move struct {
	PieceID int
	At      Position
}

// Snapshot is a full copy of the mutable session state captured before
// a placement. Restoring one rolls the session back exactly one move.
type Snapshot struct {
	Grid       Grid
	Tray       []Piece
	Ledger     *Ledger
	Level      int
	Chain      int
	UsedColors map[BlockColor]bool
	UsedShapes map[string]bool
	Perfect    bool
	Move       Move
}

// UndoStack is the bounded history of snapshots. Pushing past the bound
// drops the oldest entry (FIFO eviction) so the most recent moves are
// always preserved; retrieval is LIFO.
type UndoStack struct {
	snaps []Snapshot
	max   int
}

// NewUndoStack creates a stack bounded to max snapshots.
func NewUndoStack(max int) *UndoStack {
	if max < 1 {
		max = 1
	}
	return &UndoStack{max: max}
}

// Len returns the current depth.
func (u *UndoStack) Len() int {
	return len(u.snaps)
}

// Push stores a snapshot, evicting the oldest entry at the bound.
func (u *UndoStack) Push(s Snapshot) {
	if len(u.snaps) >= u.max {
		copy(u.snaps, u.snaps[1:])
		u.snaps = u.snaps[:len(u.snaps)-1]
	}
	u.snaps = append(u.snaps, s)
}

// Pop removes and returns the most recent snapshot.
func (u *UndoStack) Pop() (Snapshot, bool) {
	if len(u.snaps) == 0 {
		return Snapshot{}, false
	}
	s := u.snaps[len(u.snaps)-1]
	u.snaps = u.snaps[:len(u.snaps)-1]
	return s, true
}

// Clear drops all history (level-up, reset, game over).
func (u *UndoStack) Clear() {
	u.snaps = nil
}

// Tail returns the most recent n moves, oldest first, for the
// crash-resilient persisted undo tail.
func (u *UndoStack) Tail(n int) []Move {
	if n > len(u.snaps) {
		n = len(u.snaps)
	}
	out := make([]Move, 0, n)
	for _, s := range u.snaps[len(u.snaps)-n:] {
		out = append(out, s.Move)
	}
	return out
}

// UndoQuota is the narrow capability interface gating undo. The engine
// queries a cached, synchronous view; reconciliation with the real
// entitlement source happens asynchronously outside the engine.
type UndoQuota interface {
	// Unlimited reports whether the unlimited-undo entitlement is active.
	Unlimited() bool

	// Consume atomically spends one undo credit. It returns false when
	// the quota is exhausted, in which case nothing was spent.
	Consume() bool

	// Credits returns the remaining consumable credits (display only).
	Credits() int
}
