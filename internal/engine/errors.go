package engine

import "errors"

// Validation errors are expected normal-path outcomes of user interaction.
// They are surfaced as values and never leave partial state behind.
var (
	// ErrOutOfBounds is returned when a cell index or a shape cell falls
	// outside the grid.
	ErrOutOfBounds = errors.New("engine: position out of bounds")

	// ErrCellOccupied is returned when a placement overlaps an occupied cell.
	ErrCellOccupied = errors.New("engine: cell occupied")

	// ErrPieceNotInTray is returned when an operation names a piece id the
	// tray does not hold.
	ErrPieceNotInTray = errors.New("engine: piece not in tray")

	// ErrBusy is returned when a mutating call arrives while a previous
	// mutation's debounce window is still open.
	ErrBusy = errors.New("engine: operation in flight")

	// ErrTooSoon is returned when undo is called again within the debounce
	// window. The session state is unchanged.
	ErrTooSoon = errors.New("engine: undo debounced")

	// ErrQuotaExhausted is returned when no undo credits remain.
	ErrQuotaExhausted = errors.New("engine: undo quota exhausted")

	// ErrNothingToUndo is returned when the undo stack is empty.
	ErrNothingToUndo = errors.New("engine: nothing to undo")

	// ErrNotPlaying is returned when a gameplay operation is called outside
	// the Playing phase.
	ErrNotPlaying = errors.New("engine: session is not playing")

	// ErrInvalidProgress is returned when an imported snapshot fails
	// invariant validation. Nothing is applied.
	ErrInvalidProgress = errors.New("engine: invalid game progress")
)
