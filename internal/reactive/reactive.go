// Package reactive tracks state versions so derived values are only
// recomputed after the state they read has changed.
//
// A Source is embedded in a store. Mutators call Changed, which bumps the
// version and notifies listeners synchronously in registration order.
// Computed values remember the version they were built at and rebuild on the
// next read once it is stale.
//
// Nothing here is safe for concurrent use; callers serialize access.
package reactive

// Listener is notified after a change to a Source.
type Listener func(change Change)

// Change describes a single mutation.
type Change struct {
	// Action is the name of the mutator, e.g. "addTodo".
	Action string

	// Version is the source version after the change.
	Version uint64
}

// Source is a versioned state holder with change listeners.
type Source struct {
	version   uint64
	nextID    int
	listeners []registeredListener
}

type registeredListener struct {
	id int
	fn Listener
}

// Version returns the current version.
func (s *Source) Version() uint64 {
	return s.version
}

// Changed records a mutation and notifies listeners.
func (s *Source) Changed(action string) {
	s.version++
	change := Change{Action: action, Version: s.version}
	// Copy so listeners may unsubscribe while being notified.
	listeners := append([]registeredListener(nil), s.listeners...)
	for _, l := range listeners {
		l.fn(change)
	}
}

// Subscribe registers fn and returns a function that removes it.
func (s *Source) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, registeredListener{id: id, fn: fn})
	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Computed is a cached value derived from a Source.
type Computed[T any] struct {
	source  *Source
	compute func() T

	valid   bool
	version uint64
	value   T
}

// NewComputed returns a derived value over source.
func NewComputed[T any](source *Source, compute func() T) *Computed[T] {
	return &Computed[T]{source: source, compute: compute}
}

// Get returns the cached value, recomputing it if the source changed.
func (c *Computed[T]) Get() T {
	if !c.valid || c.version != c.source.version {
		c.value = c.compute()
		c.version = c.source.version
		c.valid = true
	}
	return c.value
}
