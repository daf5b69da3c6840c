package todo

import "time"

// Todo represents a single task.
type Todo struct {
	// ID is unique within a store, derived from the creation time.
	ID int64 `json:"id" yaml:"id"`

	// Text is the trimmed task description.
	Text string `json:"text" yaml:"text"`

	// Completed reports whether the task is done.
	Completed bool `json:"completed" yaml:"completed"`

	// Priority is the importance level.
	Priority Priority `json:"priority" yaml:"priority"`

	// CreatedAt is when the todo was added.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Stats summarizes a todo list.
type Stats struct {
	Total          int `json:"total" yaml:"total"`
	Active         int `json:"active" yaml:"active"`
	Completed      int `json:"completed" yaml:"completed"`
	CompletionRate int `json:"completion_rate" yaml:"completion_rate"`
}
