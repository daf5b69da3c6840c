package server

import (
	"github.com/amonks/workshop/router"
	"github.com/amonks/workshop/todo"
	"github.com/amonks/workshop/user"
)

// Todo list views accepted by /todos/list.
const (
	ViewFiltered  = "filtered"
	ViewAll       = "all"
	ViewActive    = "active"
	ViewCompleted = "completed"
)

type todosListRequest struct {
	View string `json:"view,omitempty"`
}

// TodoList is the response of /todos/list.
type TodoList struct {
	Todos  []todo.Todo `json:"todos" yaml:"todos"`
	Filter todo.Filter `json:"filter" yaml:"filter"`
	Stats  todo.Stats  `json:"stats" yaml:"stats"`
}

type todosByPriorityResponse struct {
	Todos map[todo.Priority][]todo.Todo `json:"todos"`
}

type todosAddRequest struct {
	Text     string        `json:"text"`
	Priority todo.Priority `json:"priority,omitempty"`
}

type todosAddResponse struct {
	Todo  todo.Todo `json:"todo"`
	Added bool      `json:"added"`
}

type todoIDRequest struct {
	ID int64 `json:"id"`
}

type todosRemoveResponse struct {
	Removed bool `json:"removed"`
}

type todoResponse struct {
	Todo  todo.Todo `json:"todo"`
	Found bool      `json:"found"`
}

type todosUpdateRequest struct {
	ID      int64              `json:"id"`
	Options todo.UpdateOptions `json:"options"`
}

type todosClearCompletedResponse struct {
	Removed int `json:"removed"`
}

type todosFilterRequest struct {
	Filter string `json:"filter"`
}

type todosFilterResponse struct {
	Filter todo.Filter `json:"filter"`
}

type todosMarkAllRequest struct {
	Completed bool `json:"completed"`
}

type todosStatsResponse struct {
	Stats todo.Stats `json:"stats"`
}

// Session is the response of the user session RPCs.
type Session struct {
	LoggedIn    bool             `json:"logged_in" yaml:"logged_in"`
	User        *user.User       `json:"user,omitempty" yaml:"user,omitempty"`
	Preferences user.Preferences `json:"preferences" yaml:"preferences"`
}

type usersLoginRequest struct {
	User user.User `json:"user"`
}

type usersProfileRequest struct {
	Update user.ProfileUpdate `json:"update"`
}

type usersProfileResponse struct {
	Updated bool    `json:"updated"`
	Session Session `json:"session"`
}

type usersPreferencesRequest struct {
	Update user.PreferencesUpdate `json:"update"`
}

type usersPreferencesResponse struct {
	Preferences user.Preferences `json:"preferences"`
}

// Directory is the response of /users/list.
type Directory struct {
	Users []user.User `json:"users" yaml:"users"`
	Count int         `json:"count" yaml:"count"`
}

type usersAddRequest struct {
	User user.NewUser `json:"user"`
}

type usersAddResponse struct {
	User user.User `json:"user"`
}

type routesResponse struct {
	Routes []router.Route `json:"routes"`
}

type emptyRequest struct{}
