package main

import (
	"testing"
	"time"

	"github.com/amonks/workshop/router"
	"github.com/amonks/workshop/server"
	"github.com/amonks/workshop/todo"
	"github.com/amonks/workshop/user"
	"github.com/google/go-cmp/cmp"
)

func TestFormatTodoTable(t *testing.T) {
	now := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)

	got := formatTodoTable(todo.DefaultSeed(), now)

	want := "ID  DONE  PRIORITY  AGE     TEXT\n" +
		"1   [x]   high      3d ago  Learn Vue.js fundamentals\n" +
		"2   [ ]   high      2d ago  Understand Pinia state management\n" +
		"3   [ ]   medium    1d ago  Build a todo application\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("todo table mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatTodoTableEmpty(t *testing.T) {
	if got := formatTodoTable(nil, time.Now()); got != "No todos found.\n" {
		t.Fatalf("expected empty message, got %q", got)
	}
}

func TestFormatStats(t *testing.T) {
	cases := []struct {
		name  string
		stats todo.Stats
		want  string
	}{
		{name: "empty", stats: todo.Stats{}, want: "0 total, 0 active, 0 completed (0% done)"},
		{name: "seed", stats: todo.Stats{Total: 3, Active: 2, Completed: 1, CompletionRate: 33}, want: "3 total, 2 active, 1 completed (33% done)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatStats(tc.stats); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFormatPriorityGroupsListsEveryPriority(t *testing.T) {
	groups := map[todo.Priority][]todo.Todo{
		todo.PriorityHigh: {{ID: 1, Text: "Ship", Completed: true, Priority: todo.PriorityHigh}},
	}

	got := formatPriorityGroups(groups)

	want := "high (1)\n  [x] 1 Ship\nmedium (0)\nlow (0)\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("priority groups mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatSession(t *testing.T) {
	if got := formatSession(server.Session{}); got != "Not logged in\n" {
		t.Fatalf("expected logged out message, got %q", got)
	}

	session := server.Session{
		LoggedIn: true,
		User:     &user.User{ID: 1, Name: "Workshop Participant", Email: "participant@workshop.com", Avatar: "/placeholder-avatar.png"},
	}
	want := "Workshop Participant <participant@workshop.com>\nid: 1\navatar: /placeholder-avatar.png\n"
	if diff := cmp.Diff(want, formatSession(session)); diff != "" {
		t.Fatalf("session mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatPreferences(t *testing.T) {
	got := formatPreferences(user.Preferences{Theme: user.ThemeDark, Notifications: true})

	want := "theme: dark\nnotifications: on\nauto-save: off\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatRouteTable(t *testing.T) {
	got := formatRouteTable(router.Default().Routes())

	want := "PATH               NAME              LOADING\n" +
		"/                  home              eager\n" +
		"/about             about             lazy\n" +
		"/components        components        lazy\n" +
		"/directives        directives        lazy\n" +
		"/state-management  state-management  lazy\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("route table mismatch (-want +got):\n%s", diff)
	}
}
