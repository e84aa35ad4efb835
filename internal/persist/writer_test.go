package persist

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-blocksmash/internal/engine"
)

// flakySaver fails the first failures calls, then succeeds.
type flakySaver struct {
	mu       sync.Mutex
	failures int
	calls    int
	saved    []string
}

func (f *flakySaver) SaveSlot(slot, gameID string, progress engine.GameProgress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return errors.New("disk wedged")
	}
	f.saved = append(f.saved, slot)
	return nil
}

func (f *flakySaver) savedSlots() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.saved))
	copy(out, f.saved)
	return out
}

func newTestWriter(saver SlotSaver) *Writer {
	cfg := DefaultWriterConfig()
	cfg.Backoff = time.Millisecond
	w := NewWriter(cfg, saver, nil)
	w.sleep = func(time.Duration) {}
	return w
}

func waitResult(t *testing.T, w *Writer) Result {
	t.Helper()
	select {
	case r := <-w.Results():
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a save result")
		return Result{}
	}
}

func TestWriterSavesAsync(t *testing.T) {
	saver := &flakySaver{}
	w := newTestWriter(saver)
	w.Start()
	defer w.Stop()

	if !w.Enqueue("auto", "blocksmash", engine.GameProgress{Level: 2, Score: 800}) {
		t.Fatal("Enqueue refused")
	}

	r := waitResult(t, w)
	if r.Err != nil {
		t.Fatalf("save failed: %v", r.Err)
	}
	if r.Slot != "auto" || r.Attempts != 1 {
		t.Errorf("result = %+v, want slot auto on the first attempt", r)
	}
	if got := saver.savedSlots(); len(got) != 1 || got[0] != "auto" {
		t.Errorf("saved slots = %v, want [auto]", got)
	}
}

func TestWriterRetriesTransientFailures(t *testing.T) {
	saver := &flakySaver{failures: 2}
	w := newTestWriter(saver)
	w.Start()
	defer w.Stop()

	w.Enqueue("auto", "blocksmash", engine.GameProgress{})

	r := waitResult(t, w)
	if r.Err != nil {
		t.Fatalf("save should succeed after retries: %v", r.Err)
	}
	if r.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", r.Attempts)
	}
}

func TestWriterGivesUpAfterMaxRetries(t *testing.T) {
	saver := &flakySaver{failures: 1000}
	w := newTestWriter(saver)
	w.Start()
	defer w.Stop()

	w.Enqueue("auto", "blocksmash", engine.GameProgress{})

	r := waitResult(t, w)
	if r.Err == nil {
		t.Fatal("save should report the final error")
	}
	if r.Attempts != DefaultWriterConfig().MaxRetries {
		t.Errorf("Attempts = %d, want %d", r.Attempts, DefaultWriterConfig().MaxRetries)
	}
}

func TestWriterStopDrainsQueue(t *testing.T) {
	saver := &flakySaver{}
	w := newTestWriter(saver)
	w.Start()

	for i := 0; i < 5; i++ {
		if !w.Enqueue("auto", "blocksmash", engine.GameProgress{Score: i}) {
			t.Fatalf("Enqueue %d refused", i)
		}
	}
	w.Stop()

	if got := len(saver.savedSlots()); got != 5 {
		t.Errorf("saved %d snapshots after Stop, want 5", got)
	}
}

func TestWriterEnqueueAfterStop(t *testing.T) {
	w := newTestWriter(&flakySaver{})
	w.Start()
	w.Stop()

	if w.Enqueue("auto", "blocksmash", engine.GameProgress{}) {
		t.Error("Enqueue after Stop should refuse")
	}
}

func TestWriterDropsWhenQueueFull(t *testing.T) {
	cfg := WriterConfig{QueueSize: 1, MaxRetries: 1, Backoff: time.Millisecond}
	w := NewWriter(cfg, &flakySaver{}, nil)
	// Not started: the queue can only hold one pending request.

	if !w.Enqueue("auto", "blocksmash", engine.GameProgress{}) {
		t.Fatal("first Enqueue should be accepted")
	}
	if w.Enqueue("auto", "blocksmash", engine.GameProgress{}) {
		t.Error("second Enqueue should drop on a full queue")
	}
}
