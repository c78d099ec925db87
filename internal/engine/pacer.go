package engine

import (
	"context"
	"sync"
	"time"
)

// Pacer enforces a minimum interval between calls to rate-limited external
// collaborators (generation, feedback, usage statistics). The source system
// expressed this as literal pauses inside application code; here it is a
// standalone gate so tests can run with a zero interval. A single Pacer is
// shared across concurrent requests, so the slot bookkeeping is mutex
// protected.
type Pacer struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

// NewPacer returns a pacer with the given minimum interval between calls.
// A zero or negative interval disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{interval: interval}
}

// Wait blocks until the interval since the previous call has elapsed, or
// the context is cancelled. The first call never blocks. Concurrent callers
// each reserve the next free slot under the lock and sleep outside it, so
// they are spaced one interval apart rather than released together.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.interval <= 0 {
		return nil
	}

	p.mu.Lock()
	now := time.Now()
	slot := p.next
	if slot.Before(now) {
		slot = now
	}
	p.next = slot.Add(p.interval)
	p.mu.Unlock()

	remaining := time.Until(slot)
	if remaining <= 0 {
		return nil
	}
	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
