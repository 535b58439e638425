// Package idgen provides in-process video identifier generation.
package idgen

import (
	"context"
	"sync"
	"time"
)

// Monotonic hands out ids that look like millisecond Unix timestamps but are
// strictly increasing, so two creations in the same millisecond still get
// distinct ids.
type Monotonic struct {
	now  func() time.Time
	mu   sync.Mutex
	last int64
}

// NewMonotonic creates a generator reading time from now. A nil now uses time.Now.
func NewMonotonic(now func() time.Time) *Monotonic {
	if now == nil {
		now = time.Now
	}
	return &Monotonic{now: now}
}

// NextID implements ports.IDGenerator
func (g *Monotonic) NextID(ctx context.Context) (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id, nil
}
