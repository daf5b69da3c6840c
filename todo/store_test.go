package todo

import (
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/amonks/workshop/internal/reactive"
	"github.com/google/go-cmp/cmp"
)

func TestStore_WorkshopScenario(t *testing.T) {
	store := newTestStore(t, DefaultSeed())

	if got := store.CompletionRate(); got != 33 {
		t.Fatalf("initial CompletionRate() = %d, want 33", got)
	}

	if _, ok := store.AddTodo("x", AddOptions{}); !ok {
		t.Fatal("AddTodo(\"x\") was ignored")
	}
	if store.Len() != 4 {
		t.Fatalf("expected 4 todos, got %d", store.Len())
	}
	if got := store.CompletionRate(); got != 25 {
		t.Fatalf("CompletionRate() after add = %d, want 25", got)
	}

	store.MarkAllComplete()
	if got := store.CompletionRate(); got != 100 {
		t.Fatalf("CompletionRate() after MarkAllComplete = %d, want 100", got)
	}

	if removed := store.ClearCompleted(); removed != 4 {
		t.Fatalf("ClearCompleted() removed %d, want 4", removed)
	}
	if store.Len() != 0 {
		t.Fatalf("expected no todos, got %d", store.Len())
	}
	if got := store.CompletionRate(); got != 0 {
		t.Fatalf("CompletionRate() when empty = %d, want 0", got)
	}
}

func TestStore_CompletionRate(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"empty", 0, 0, 0},
		{"none", 0, 3, 0},
		{"one of three", 1, 3, 33},
		{"two of three", 2, 3, 67},
		{"half", 1, 2, 50},
		{"one of eight rounds up", 1, 8, 13},
		{"all", 5, 5, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seed []Todo
			for i := 0; i < tt.total; i++ {
				seed = append(seed, Todo{
					ID:        int64(i + 1),
					Text:      "task",
					Completed: i < tt.completed,
					Priority:  PriorityLow,
				})
			}
			store := newTestStore(t, seed)
			if got := store.CompletionRate(); got != tt.want {
				t.Errorf("CompletionRate() = %d, want %d", got, tt.want)
			}
			stats := store.Stats()
			if stats.Total != tt.total || stats.Completed != tt.completed || stats.Active != tt.total-tt.completed {
				t.Errorf("Stats() = %+v", stats)
			}
		})
	}
}

func TestStore_PartitionsCoverAllTodos(t *testing.T) {
	store := newTestStore(t, DefaultSeed())
	rng := rand.New(rand.NewSource(1))

	for step := 0; step < 200; step++ {
		all := store.Todos()
		switch op := rng.Intn(5); {
		case op == 0 || len(all) == 0:
			store.AddTodo("task", AddOptions{Priority: ValidPriorities()[rng.Intn(3)]})
		case op == 1:
			store.RemoveTodo(all[rng.Intn(len(all))].ID)
		case op == 2:
			store.ToggleTodo(all[rng.Intn(len(all))].ID)
		case op == 3:
			store.ClearCompleted()
		default:
			store.MarkAllIncomplete()
		}

		all = store.Todos()
		active := store.ActiveTodos()
		completed := store.CompletedTodos()
		if len(active)+len(completed) != len(all) {
			t.Fatalf("step %d: %d active + %d completed != %d total", step, len(active), len(completed), len(all))
		}
		union := append(todoIDs(active), todoIDs(completed)...)
		sort.Slice(union, func(i, j int) bool { return union[i] < union[j] })
		want := todoIDs(all)
		sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
		if diff := cmp.Diff(want, union); diff != "" {
			t.Fatalf("step %d: partitions mismatch (-want +got):\n%s", step, diff)
		}
		for _, item := range active {
			if item.Completed {
				t.Fatalf("step %d: active partition contains completed todo %d", step, item.ID)
			}
		}
		for _, item := range completed {
			if !item.Completed {
				t.Fatalf("step %d: completed partition contains active todo %d", step, item.ID)
			}
		}
	}
}

func TestStore_IDsStayUnique(t *testing.T) {
	frozen := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	store := NewStore(Options{
		Todos: []Todo{{ID: frozen.UnixMilli() + 2, Text: "seeded", Priority: PriorityLow}},
		Now:   func() time.Time { return frozen },
	})

	seen := map[int64]bool{}
	for _, item := range store.Todos() {
		seen[item.ID] = true
	}
	for i := 0; i < 50; i++ {
		item, ok := store.AddTodo("task", AddOptions{})
		if !ok {
			t.Fatal("AddTodo ignored valid text")
		}
		if seen[item.ID] {
			t.Fatalf("duplicate id %d", item.ID)
		}
		seen[item.ID] = true
		if i%3 == 0 {
			store.RemoveTodo(item.ID)
		}
	}
}

func TestStore_FilteredTodosFollowFilter(t *testing.T) {
	store := newTestStore(t, DefaultSeed())

	if diff := cmp.Diff(store.Todos(), store.FilteredTodos()); diff != "" {
		t.Fatalf("default filter should show all (-want +got):\n%s", diff)
	}

	store.SetFilter(FilterActive)
	if diff := cmp.Diff(store.ActiveTodos(), store.FilteredTodos()); diff != "" {
		t.Fatalf("active filter mismatch (-want +got):\n%s", diff)
	}

	store.SetFilter(FilterCompleted)
	if diff := cmp.Diff(store.CompletedTodos(), store.FilteredTodos()); diff != "" {
		t.Fatalf("completed filter mismatch (-want +got):\n%s", diff)
	}

	store.SetFilter(FilterAll)
	if diff := cmp.Diff(store.Todos(), store.FilteredTodos()); diff != "" {
		t.Fatalf("all filter mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_SetFilterIgnoresUnknown(t *testing.T) {
	store := newTestStore(t, nil)
	store.SetFilter(FilterActive)
	store.SetFilter(Filter("archived"))

	if got := store.Filter(); got != FilterActive {
		t.Fatalf("Filter() = %q, want %q", got, FilterActive)
	}

	store.SetFilter(Filter(" Completed "))
	if got := store.Filter(); got != FilterCompleted {
		t.Fatalf("Filter() = %q, want %q", got, FilterCompleted)
	}
}

func TestStore_TodosByPriority(t *testing.T) {
	store := newTestStore(t, DefaultSeed())
	store.AddTodo("later", AddOptions{Priority: PriorityLow})

	grouped := store.TodosByPriority()
	if len(grouped) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(grouped))
	}
	if got := todoIDs(grouped[PriorityHigh]); !cmp.Equal(got, []int64{1, 2}) {
		t.Fatalf("high = %v", got)
	}
	if got := todoIDs(grouped[PriorityMedium]); !cmp.Equal(got, []int64{3}) {
		t.Fatalf("medium = %v", got)
	}
	if got := len(grouped[PriorityLow]); got != 1 {
		t.Fatalf("expected 1 low todo, got %d", got)
	}

	empty := newTestStore(t, nil).TodosByPriority()
	for _, priority := range ValidPriorities() {
		items, ok := empty[priority]
		if !ok || items == nil || len(items) != 0 {
			t.Fatalf("expected empty non-nil group for %q, got %v (present=%v)", priority, items, ok)
		}
	}
}

func TestStore_DerivedViewsAreCopies(t *testing.T) {
	store := newTestStore(t, DefaultSeed())

	active := store.ActiveTodos()
	active[0].Text = "mutated"
	grouped := store.TodosByPriority()
	grouped[PriorityHigh][0].Text = "mutated"

	if item, _ := store.Find(2); item.Text != "Understand Pinia state management" {
		t.Fatalf("store todo mutated through derived view: %q", item.Text)
	}
	if got := store.ActiveTodos()[0].Text; got == "mutated" {
		t.Fatal("cached active view mutated by caller")
	}
	if got := store.TodosByPriority()[PriorityHigh][0].Text; got == "mutated" {
		t.Fatal("cached priority view mutated by caller")
	}
}

func TestStore_NotifiesListeners(t *testing.T) {
	store := newTestStore(t, DefaultSeed())
	var actions []string
	unsubscribe := store.Subscribe(func(change reactive.Change) {
		actions = append(actions, change.Action)
	})

	added, _ := store.AddTodo("write tests", AddOptions{})
	store.ToggleTodo(added.ID)
	store.ToggleTodo(999)
	store.SetFilter(FilterActive)
	store.SetFilter(FilterActive)
	store.MarkAllComplete()
	store.MarkAllComplete()
	store.ClearCompleted()
	store.ClearCompleted()
	unsubscribe()
	store.AddTodo("unobserved", AddOptions{})

	want := []string{"addTodo", "toggleTodo", "setFilter", "markAllComplete", "clearCompleted"}
	if diff := cmp.Diff(want, actions); diff != "" {
		t.Fatalf("actions mismatch (-want +got):\n%s", diff)
	}
}

func TestNewStore_NormalizesSeed(t *testing.T) {
	store := NewStore(Options{
		Todos: []Todo{
			{ID: 1, Text: "a", Priority: "HIGH"},
			{ID: 1, Text: "duplicate", Priority: PriorityLow},
			{ID: 2, Text: "b", Priority: "urgent"},
		},
		Filter: "bogus",
	})

	todos := store.Todos()
	if len(todos) != 2 {
		t.Fatalf("expected duplicate seed to be dropped, got %d todos", len(todos))
	}
	if todos[0].Priority != PriorityHigh {
		t.Fatalf("priority = %q, want high", todos[0].Priority)
	}
	if todos[1].Priority != PriorityMedium {
		t.Fatalf("unknown priority should default to medium, got %q", todos[1].Priority)
	}
	if store.Filter() != FilterAll {
		t.Fatalf("invalid filter should default to all, got %q", store.Filter())
	}
}
