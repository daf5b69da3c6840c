package todo

import "time"

// DefaultSeed returns the todos a fresh workshop starts with.
func DefaultSeed() []Todo {
	return []Todo{
		{
			ID:        1,
			Text:      "Learn Vue.js fundamentals",
			Completed: true,
			Priority:  PriorityHigh,
			CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        2,
			Text:      "Understand Pinia state management",
			Priority:  PriorityHigh,
			CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        3,
			Text:      "Build a todo application",
			Priority:  PriorityMedium,
			CreatedAt: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		},
	}
}
