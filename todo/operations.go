package todo

import (
	"strings"
	"time"
)

// AddOptions configures a new todo.
type AddOptions struct {
	// Priority defaults to PriorityMedium. Unknown values also fall back to
	// PriorityMedium.
	Priority Priority
}

// AddTodo appends a todo with the trimmed text.
// Text that is empty after trimming is ignored and ok is false.
func (s *Store) AddTodo(text string, opts AddOptions) (Todo, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Todo{}, false
	}
	priority, valid := normalizePriority(opts.Priority)
	if !valid {
		priority = PriorityMedium
	}

	now := s.now()
	item := Todo{
		ID:        s.ids.NextAt(now),
		Text:      text,
		Priority:  priority,
		CreatedAt: now,
	}
	s.todos = append(s.todos, item)
	s.source.Changed("addTodo")
	return item, true
}

// RemoveTodo deletes the todo with the given ID.
// It reports whether a todo was removed.
func (s *Store) RemoveTodo(id int64) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.todos = append(s.todos[:i], s.todos[i+1:]...)
	s.source.Changed("removeTodo")
	return true
}

// ToggleTodo flips the completion state of the todo with the given ID.
// It reports whether a todo was found.
func (s *Store) ToggleTodo(id int64) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.todos[i].Completed = !s.todos[i].Completed
	s.source.Changed("toggleTodo")
	return true
}

// UpdateOptions configures fields to update on a todo.
// Nil pointers mean "don't update this field".
type UpdateOptions struct {
	Text      *string    `json:"text,omitempty"`
	Completed *bool      `json:"completed,omitempty"`
	Priority  *Priority  `json:"priority,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// UpdateTodo merges the set fields of opts into the todo with the given ID.
// Text that is empty after trimming and unknown priorities are ignored.
// It returns the updated todo and whether one was found.
func (s *Store) UpdateTodo(id int64, opts UpdateOptions) (Todo, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Todo{}, false
	}

	item := &s.todos[i]
	if opts.Text != nil {
		if text := strings.TrimSpace(*opts.Text); text != "" {
			item.Text = text
		}
	}
	if opts.Completed != nil {
		item.Completed = *opts.Completed
	}
	if opts.Priority != nil {
		if priority, ok := normalizePriority(*opts.Priority); ok {
			item.Priority = priority
		}
	}
	if opts.CreatedAt != nil {
		item.CreatedAt = *opts.CreatedAt
	}
	s.source.Changed("updateTodo")
	return *item, true
}

// ClearCompleted removes every completed todo and returns how many were removed.
func (s *Store) ClearCompleted() int {
	kept := s.todos[:0]
	removed := 0
	for _, item := range s.todos {
		if item.Completed {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	if removed == 0 {
		return 0
	}
	clear(s.todos[len(kept):])
	s.todos = kept
	s.source.Changed("clearCompleted")
	return removed
}

// SetFilter replaces the current filter. Unknown filters are ignored.
func (s *Store) SetFilter(filter Filter) {
	normalized, ok := normalizeFilter(filter)
	if !ok || normalized == s.filter {
		return
	}
	s.filter = normalized
	s.source.Changed("setFilter")
}

// MarkAllComplete marks every todo completed.
func (s *Store) MarkAllComplete() {
	s.setAllCompleted(true, "markAllComplete")
}

// MarkAllIncomplete marks every todo not completed.
func (s *Store) MarkAllIncomplete() {
	s.setAllCompleted(false, "markAllIncomplete")
}

func (s *Store) setAllCompleted(completed bool, action string) {
	changed := false
	for i := range s.todos {
		if s.todos[i].Completed != completed {
			s.todos[i].Completed = completed
			changed = true
		}
	}
	if changed {
		s.source.Changed(action)
	}
}
