package todo

import (
	"math"
	"slices"
	"time"

	"github.com/amonks/workshop/internal/ids"
	"github.com/amonks/workshop/internal/reactive"
)

// Store holds an ordered list of todos and the current display filter.
// It is not safe for concurrent use.
type Store struct {
	source reactive.Source
	now    func() time.Time
	ids    *ids.Generator

	todos  []Todo
	filter Filter

	completed  *reactive.Computed[[]Todo]
	active     *reactive.Computed[[]Todo]
	byPriority *reactive.Computed[map[Priority][]Todo]
	stats      *reactive.Computed[Stats]
}

// Options configures a new store.
type Options struct {
	// Todos seeds the store. Seeded IDs are reserved so generated IDs never
	// collide with them; duplicate seed IDs are dropped.
	Todos []Todo

	// Filter is the initial filter. Defaults to FilterAll.
	Filter Filter

	// Now is the clock used for timestamps and IDs. Defaults to time.Now.
	Now func() time.Time

	// IDs generates todo IDs. Defaults to a generator reading Now.
	IDs *ids.Generator
}

// NewStore creates a store.
func NewStore(opts Options) *Store {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	gen := opts.IDs
	if gen == nil {
		gen = ids.NewGenerator(now)
	}
	filter, ok := normalizeFilter(opts.Filter)
	if !ok {
		filter = FilterAll
	}

	s := &Store{
		now:    now,
		ids:    gen,
		filter: filter,
	}
	seen := make(map[int64]bool, len(opts.Todos))
	for _, item := range opts.Todos {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		if priority, ok := normalizePriority(item.Priority); ok {
			item.Priority = priority
		} else {
			item.Priority = PriorityMedium
		}
		gen.Reserve(item.ID)
		s.todos = append(s.todos, item)
	}

	s.completed = reactive.NewComputed(&s.source, func() []Todo {
		return s.partition(true)
	})
	s.active = reactive.NewComputed(&s.source, func() []Todo {
		return s.partition(false)
	})
	s.byPriority = reactive.NewComputed(&s.source, func() map[Priority][]Todo {
		grouped := make(map[Priority][]Todo, len(ValidPriorities()))
		for _, priority := range ValidPriorities() {
			grouped[priority] = []Todo{}
		}
		for _, item := range s.todos {
			grouped[item.Priority] = append(grouped[item.Priority], item)
		}
		return grouped
	})
	s.stats = reactive.NewComputed(&s.source, func() Stats {
		total := len(s.todos)
		completed := len(s.completed.Get())
		return Stats{
			Total:          total,
			Active:         total - completed,
			Completed:      completed,
			CompletionRate: completionRate(completed, total),
		}
	})
	return s
}

func (s *Store) partition(completed bool) []Todo {
	items := []Todo{}
	for _, item := range s.todos {
		if item.Completed == completed {
			items = append(items, item)
		}
	}
	return items
}

func completionRate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// Subscribe registers a listener for mutations and returns a function that
// removes it.
func (s *Store) Subscribe(fn reactive.Listener) func() {
	return s.source.Subscribe(fn)
}

// Version increases by one with every mutation.
func (s *Store) Version() uint64 {
	return s.source.Version()
}

// Todos returns every todo in insertion order.
func (s *Store) Todos() []Todo {
	return slices.Clone(s.todos)
}

// Len returns the number of todos.
func (s *Store) Len() int {
	return len(s.todos)
}

// Filter returns the current filter.
func (s *Store) Filter() Filter {
	return s.filter
}

// Find returns the todo with the given ID.
func (s *Store) Find(id int64) (Todo, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.todos[i], true
	}
	return Todo{}, false
}

// CompletedTodos returns the completed todos in insertion order.
func (s *Store) CompletedTodos() []Todo {
	return slices.Clone(s.completed.Get())
}

// ActiveTodos returns the todos that are not completed in insertion order.
func (s *Store) ActiveTodos() []Todo {
	return slices.Clone(s.active.Get())
}

// FilteredTodos returns the todos selected by the current filter.
func (s *Store) FilteredTodos() []Todo {
	switch s.filter {
	case FilterActive:
		return s.ActiveTodos()
	case FilterCompleted:
		return s.CompletedTodos()
	default:
		return s.Todos()
	}
}

// TodosByPriority groups todos by priority. Every priority has an entry.
func (s *Store) TodosByPriority() map[Priority][]Todo {
	cached := s.byPriority.Get()
	grouped := make(map[Priority][]Todo, len(cached))
	for priority, items := range cached {
		grouped[priority] = slices.Clone(items)
	}
	return grouped
}

// CompletionRate returns the rounded percentage of completed todos,
// or 0 when there are none.
func (s *Store) CompletionRate() int {
	return s.stats.Get().CompletionRate
}

// Stats returns counts and the completion rate.
func (s *Store) Stats() Stats {
	return s.stats.Get()
}

func (s *Store) indexOf(id int64) int {
	for i := range s.todos {
		if s.todos[i].ID == id {
			return i
		}
	}
	return -1
}
