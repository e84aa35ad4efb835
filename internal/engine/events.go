package engine

// Event is an outbound notification from the session to its
// collaborators (renderer, persistence, achievements). Events carry
// copies of finalized state and are delivered synchronously after the
// mutation that caused them; consumers must not call back into the
// session from a handler.
type Event interface {
	gameEvent()
}

// StateChangedEvent fires after any committed mutation. Consumers
// should re-read grid, tray and score.
type StateChangedEvent struct{}

func (StateChangedEvent) gameEvent() {}

// LinesClearedEvent fires once per settle, after clearing, with every
// cleared cell position for clear animations.
type LinesClearedEvent struct {
	Rows      []int
	Cols      []int
	Positions []Position
}

func (LinesClearedEvent) gameEvent() {}

// ScoreDeltaEvent fires per ledger entry, anchored to a logical board
// position for floating score popups.
type ScoreDeltaEvent struct {
	Type   ScoreType
	Points int
	At     Position
}

func (ScoreDeltaEvent) gameEvent() {}

// LevelCompleteEvent fires on the Playing -> LevelComplete transition.
type LevelCompleteEvent struct {
	Level   int
	Perfect bool
	Score   int
}

func (LevelCompleteEvent) gameEvent() {}

// GameOverEvent fires exactly once when no tray piece can be legally
// placed anywhere, or the timed-mode clock runs out.
type GameOverEvent struct {
	FinalScore int
	Level      int
}

func (GameOverEvent) gameEvent() {}

// EventSink consumes session events. A nil sink drops them.
type EventSink func(Event)
