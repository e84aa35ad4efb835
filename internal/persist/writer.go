// Package persist provides asynchronous save-slot persistence. Game
// code hands a progress snapshot to the writer and keeps playing; the
// writer serializes the writes on a background goroutine with retries,
// and reports outcomes one-way so the game loop never blocks on disk.
package persist

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocksmash/internal/engine"
)

// SlotSaver is the narrow storage capability the writer needs.
// *storage.Store satisfies it.
type SlotSaver interface {
	SaveSlot(slot, gameID string, progress engine.GameProgress) error
}

// Result reports the outcome of one save request.
type Result struct {
	Slot     string
	Attempts int
	Err      error // nil on success
}

// WriterConfig holds configuration for the background writer.
type WriterConfig struct {
	QueueSize  int           // pending request buffer
	MaxRetries int           // attempts per request before giving up
	Backoff    time.Duration // base delay, doubled per retry
}

// DefaultWriterConfig returns sensible defaults.
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{
		QueueSize:  16,
		MaxRetries: 3,
		Backoff:    50 * time.Millisecond,
	}
}

type saveRequest struct {
	slot     string
	gameID   string
	progress engine.GameProgress
}

// Writer serializes save-slot writes on a single background goroutine.
// Requests carry full snapshot copies, so the caller may keep mutating
// its live state immediately after Enqueue returns.
type Writer struct {
	config  WriterConfig
	saver   SlotSaver
	logger  *log.Logger
	sleep   func(time.Duration)
	reqChan chan saveRequest
	results chan Result
	done    chan struct{}
	stopped chan struct{}
}

// NewWriter creates a writer around the given saver. A nil logger
// disables logging.
func NewWriter(cfg WriterConfig, saver SlotSaver, logger *log.Logger) *Writer {
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 1
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Writer{
		config:  cfg,
		saver:   saver,
		logger:  logger,
		sleep:   time.Sleep,
		reqChan: make(chan saveRequest, cfg.QueueSize),
		results: make(chan Result, cfg.QueueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start begins the writer's background processing.
func (w *Writer) Start() {
	go w.processRequests()
}

// Stop drains the pending queue, then shuts the writer down. It returns
// once the background goroutine has exited, so a save enqueued before
// Stop is guaranteed to have been attempted.
func (w *Writer) Stop() {
	close(w.done)
	<-w.stopped
}

// Results exposes the one-way outcome stream. The channel is buffered
// and never closed while the writer runs; consumers that fall behind
// lose the oldest notifications rather than blocking a save.
func (w *Writer) Results() <-chan Result {
	return w.results
}

// Enqueue submits a save request. It never blocks: when the queue is
// full the request is dropped and false is returned, on the grounds
// that a newer snapshot is already on its way.
func (w *Writer) Enqueue(slot, gameID string, progress engine.GameProgress) bool {
	select {
	case <-w.done:
		return false
	default:
	}
	select {
	case w.reqChan <- saveRequest{slot: slot, gameID: gameID, progress: progress}:
		return true
	default:
		w.logger.Warn("save queue full, dropping snapshot", "slot", slot)
		return false
	}
}

func (w *Writer) processRequests() {
	defer close(w.stopped)
	for {
		select {
		case req := <-w.reqChan:
			w.handle(req)
		case <-w.done:
			// Drain what was enqueued before the shutdown.
			for {
				select {
				case req := <-w.reqChan:
					w.handle(req)
				default:
					return
				}
			}
		}
	}
}

// handle writes one snapshot, retrying with doubling backoff.
func (w *Writer) handle(req saveRequest) {
	var err error
	backoff := w.config.Backoff
	for attempt := 1; attempt <= w.config.MaxRetries; attempt++ {
		err = w.saver.SaveSlot(req.slot, req.gameID, req.progress)
		if err == nil {
			w.logger.Debug("progress saved", "slot", req.slot, "level", req.progress.Level, "score", req.progress.Score)
			w.notify(Result{Slot: req.slot, Attempts: attempt})
			return
		}
		w.logger.Warn("save attempt failed", "slot", req.slot, "attempt", attempt, "err", err)
		if attempt < w.config.MaxRetries {
			w.sleep(backoff)
			backoff *= 2
		}
	}
	w.logger.Error("save abandoned", "slot", req.slot, "attempts", w.config.MaxRetries, "err", err)
	w.notify(Result{Slot: req.slot, Attempts: w.config.MaxRetries, Err: err})
}

// notify pushes an outcome without ever blocking the write loop; when
// the buffer is full the oldest outcome is discarded first.
func (w *Writer) notify(r Result) {
	for {
		select {
		case w.results <- r:
			return
		default:
			select {
			case <-w.results:
			default:
			}
		}
	}
}
