// Package entitlement provides the undo-quota implementations injected
// into the game engine: an unlimited grant, a consumable credit pool,
// and a cached decorator over a remote entitlement source. The engine
// only ever sees the synchronous quota interface; reconciliation with
// the source of truth happens outside the game loop.
package entitlement

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocksmash/internal/engine"
)

// Unlimited grants every undo. Used for the premium entitlement and as
// the default in local play.
type Unlimited struct{}

func (Unlimited) Unlimited() bool { return true }
func (Unlimited) Consume() bool   { return true }
func (Unlimited) Credits() int    { return 0 }

// Consumable is a finite credit pool. Credits arrive in grants (reward
// claims, purchases) and are spent one per undo. Safe for concurrent
// use.
type Consumable struct {
	mu      sync.Mutex
	credits int
}

// NewConsumable creates a pool holding the given initial credits.
func NewConsumable(credits int) *Consumable {
	if credits < 0 {
		credits = 0
	}
	return &Consumable{credits: credits}
}

func (c *Consumable) Unlimited() bool { return false }

// Consume spends one credit, or reports false with nothing spent.
func (c *Consumable) Consume() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.credits <= 0 {
		return false
	}
	c.credits--
	return true
}

func (c *Consumable) Credits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.credits
}

// Grant adds credits to the pool.
func (c *Consumable) Grant(n int) {
	if n <= 0 {
		return
	}
	c.mu.Lock()
	c.credits += n
	c.mu.Unlock()
}

// Source is the remote entitlement backend the cached provider mirrors.
type Source interface {
	// Fetch returns the authoritative entitlement state.
	Fetch() (unlimited bool, credits int, err error)

	// Spend reports consumed credits to the backend.
	Spend(n int) error
}

// Cached wraps a Source with a synchronous local view so the game loop
// never waits on the backend. Consume spends against the local view and
// accumulates the spend for the next Reconcile.
type Cached struct {
	source Source
	logger *log.Logger

	mu        sync.Mutex
	unlimited bool
	credits   int
	pending   int // spends not yet reported to the source
}

// NewCached creates a cached provider. A nil logger disables logging.
// The view starts empty; call Reconcile to populate it.
func NewCached(source Source, logger *log.Logger) *Cached {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Cached{source: source, logger: logger}
}

func (c *Cached) Unlimited() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unlimited
}

func (c *Cached) Consume() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unlimited {
		return true
	}
	if c.credits <= 0 {
		return false
	}
	c.credits--
	c.pending++
	return true
}

func (c *Cached) Credits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.credits
}

// Reconcile reports pending spends to the source and refreshes the
// local view. Pending spends survive a failed report and are retried on
// the next call; a failed fetch keeps the last known view.
func (c *Cached) Reconcile() error {
	c.mu.Lock()
	pending := c.pending
	c.pending = 0
	c.mu.Unlock()

	if pending > 0 {
		if err := c.source.Spend(pending); err != nil {
			c.mu.Lock()
			c.pending += pending
			c.mu.Unlock()
			c.logger.Warn("entitlement spend report failed", "pending", pending, "err", err)
			return err
		}
	}

	unlimited, credits, err := c.source.Fetch()
	if err != nil {
		c.logger.Warn("entitlement fetch failed, keeping cached view", "err", err)
		return err
	}

	c.mu.Lock()
	c.unlimited = unlimited
	// The fetched balance already reflects reported spends; locally
	// pending ones still have to be subtracted from the fresh view.
	c.credits = credits - c.pending
	if c.credits < 0 {
		c.credits = 0
	}
	c.mu.Unlock()
	return nil
}

// Compile-time interface checks.
var (
	_ engine.UndoQuota = Unlimited{}
	_ engine.UndoQuota = (*Consumable)(nil)
	_ engine.UndoQuota = (*Cached)(nil)
)
