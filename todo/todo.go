// Package todo implements an in-memory todo list with a display filter.
//
// A Store owns an ordered list of todos. Derived views (completed, active,
// filtered, grouped by priority, completion rate) are cached and rebuilt
// only after a mutation. Listeners registered with Subscribe are told about
// every mutation.
//
// The public API mirrors the original store actions:
//   - AddTodo, RemoveTodo, ToggleTodo, UpdateTodo for single todos
//   - ClearCompleted, MarkAllComplete, MarkAllIncomplete for bulk changes
//   - SetFilter to choose what FilteredTodos returns
//
// Actions never fail. Lookups by an unknown ID are no-ops.
package todo

// Priority represents the importance of a todo.
type Priority string

const (
	// PriorityLow is for todos that can wait.
	PriorityLow Priority = "low"

	// PriorityMedium is the default priority.
	PriorityMedium Priority = "medium"

	// PriorityHigh is for todos that should be done first.
	PriorityHigh Priority = "high"
)

// ValidPriorities returns all valid priority values, most important first.
func ValidPriorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// IsValid returns true if the priority is a known valid value.
func (p Priority) IsValid() bool {
	for _, valid := range ValidPriorities() {
		if p == valid {
			return true
		}
	}
	return false
}

// PriorityRank returns the sort rank for a priority (0 is most important).
func PriorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Filter selects which todos FilteredTodos returns.
type Filter string

const (
	// FilterAll shows every todo.
	FilterAll Filter = "all"

	// FilterActive shows todos that are not completed.
	FilterActive Filter = "active"

	// FilterCompleted shows completed todos.
	FilterCompleted Filter = "completed"
)

// ValidFilters returns all valid filter values.
func ValidFilters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted}
}

// IsValid returns true if the filter is a known valid value.
func (f Filter) IsValid() bool {
	for _, valid := range ValidFilters() {
		if f == valid {
			return true
		}
	}
	return false
}
