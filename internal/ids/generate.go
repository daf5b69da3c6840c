package ids

import (
	"sync"
	"time"
)

// Generator hands out integer IDs derived from the current time.
//
// IDs are the clock's Unix milliseconds, bumped past the last issued value
// when the clock has not advanced, so every ID is unique and strictly
// increasing for the lifetime of the generator.
type Generator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewGenerator returns a generator reading the given clock.
// A nil clock uses time.Now.
func NewGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now}
}

// Next returns the next unique ID.
func (g *Generator) Next() int64 {
	return g.NextAt(g.now())
}

// NextAt returns the next unique ID for a record created at t.
func (g *Generator) NextAt(t time.Time) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := t.UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Reserve ensures future IDs are greater than id.
// Stores call this for seeded records so generated IDs never collide with them.
func (g *Generator) Reserve(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if id > g.last {
		g.last = id
	}
}
