package todo

import (
	"testing"
	"time"
)

var testEpoch = time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

// newTestStore returns a store with a clock that advances one second per read.
func newTestStore(t *testing.T, seed []Todo) *Store {
	t.Helper()

	current := testEpoch
	return NewStore(Options{
		Todos: seed,
		Now: func() time.Time {
			current = current.Add(time.Second)
			return current
		},
	})
}

func todoIDs(items []Todo) []int64 {
	result := make([]int64, 0, len(items))
	for _, item := range items {
		result = append(result, item.ID)
	}
	return result
}
