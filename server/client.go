package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/amonks/workshop/router"
	"github.com/amonks/workshop/todo"
	"github.com/amonks/workshop/user"
)

// Client calls workshop RPCs.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the given address or URL.
func NewClient(addr string) *Client {
	baseURL := strings.TrimRight(addr, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	return &Client{baseURL: baseURL, client: &http.Client{}}
}

// ListTodos returns todos for a view (ViewFiltered when empty).
func (c *Client) ListTodos(ctx context.Context, view string) (TodoList, error) {
	var response TodoList
	err := c.post(ctx, "/todos/list", todosListRequest{View: view}, &response)
	return response, err
}

// TodosByPriority returns todos grouped by priority.
func (c *Client) TodosByPriority(ctx context.Context) (map[todo.Priority][]todo.Todo, error) {
	var response todosByPriorityResponse
	if err := c.post(ctx, "/todos/by-priority", emptyRequest{}, &response); err != nil {
		return nil, err
	}
	return response.Todos, nil
}

// AddTodo adds a todo. added is false when the text was blank.
func (c *Client) AddTodo(ctx context.Context, text string, priority todo.Priority) (todo.Todo, bool, error) {
	var response todosAddResponse
	if err := c.post(ctx, "/todos/add", todosAddRequest{Text: text, Priority: priority}, &response); err != nil {
		return todo.Todo{}, false, err
	}
	return response.Todo, response.Added, nil
}

// RemoveTodo removes a todo and reports whether it existed.
func (c *Client) RemoveTodo(ctx context.Context, id int64) (bool, error) {
	var response todosRemoveResponse
	if err := c.post(ctx, "/todos/remove", todoIDRequest{ID: id}, &response); err != nil {
		return false, err
	}
	return response.Removed, nil
}

// ToggleTodo flips a todo's completion state.
func (c *Client) ToggleTodo(ctx context.Context, id int64) (todo.Todo, bool, error) {
	var response todoResponse
	if err := c.post(ctx, "/todos/toggle", todoIDRequest{ID: id}, &response); err != nil {
		return todo.Todo{}, false, err
	}
	return response.Todo, response.Found, nil
}

// UpdateTodo merges fields into a todo.
func (c *Client) UpdateTodo(ctx context.Context, id int64, opts todo.UpdateOptions) (todo.Todo, bool, error) {
	var response todoResponse
	if err := c.post(ctx, "/todos/update", todosUpdateRequest{ID: id, Options: opts}, &response); err != nil {
		return todo.Todo{}, false, err
	}
	return response.Todo, response.Found, nil
}

// ClearCompleted removes completed todos and returns how many were removed.
func (c *Client) ClearCompleted(ctx context.Context) (int, error) {
	var response todosClearCompletedResponse
	if err := c.post(ctx, "/todos/clear-completed", emptyRequest{}, &response); err != nil {
		return 0, err
	}
	return response.Removed, nil
}

// SetFilter sets the todo filter.
func (c *Client) SetFilter(ctx context.Context, filter todo.Filter) (todo.Filter, error) {
	var response todosFilterResponse
	if err := c.post(ctx, "/todos/filter", todosFilterRequest{Filter: string(filter)}, &response); err != nil {
		return "", err
	}
	return response.Filter, nil
}

// MarkAll marks every todo completed or not.
func (c *Client) MarkAll(ctx context.Context, completed bool) (todo.Stats, error) {
	var response todosStatsResponse
	if err := c.post(ctx, "/todos/mark-all", todosMarkAllRequest{Completed: completed}, &response); err != nil {
		return todo.Stats{}, err
	}
	return response.Stats, nil
}

// Stats returns todo counts and the completion rate.
func (c *Client) Stats(ctx context.Context) (todo.Stats, error) {
	var response todosStatsResponse
	if err := c.post(ctx, "/todos/stats", emptyRequest{}, &response); err != nil {
		return todo.Stats{}, err
	}
	return response.Stats, nil
}

// Session returns the current session.
func (c *Client) Session(ctx context.Context) (Session, error) {
	var response Session
	err := c.post(ctx, "/users/session", emptyRequest{}, &response)
	return response, err
}

// Login replaces the session user.
func (c *Client) Login(ctx context.Context, u user.User) (Session, error) {
	var response Session
	err := c.post(ctx, "/users/login", usersLoginRequest{User: u}, &response)
	return response, err
}

// Logout clears the session user.
func (c *Client) Logout(ctx context.Context) (Session, error) {
	var response Session
	err := c.post(ctx, "/users/logout", emptyRequest{}, &response)
	return response, err
}

// UpdateProfile merges fields into the session user.
func (c *Client) UpdateProfile(ctx context.Context, update user.ProfileUpdate) (bool, Session, error) {
	var response usersProfileResponse
	if err := c.post(ctx, "/users/profile", usersProfileRequest{Update: update}, &response); err != nil {
		return false, Session{}, err
	}
	return response.Updated, response.Session, nil
}

// UpdatePreferences merges fields into the preferences.
func (c *Client) UpdatePreferences(ctx context.Context, update user.PreferencesUpdate) (user.Preferences, error) {
	var response usersPreferencesResponse
	if err := c.post(ctx, "/users/preferences", usersPreferencesRequest{Update: update}, &response); err != nil {
		return user.Preferences{}, err
	}
	return response.Preferences, nil
}

// ListUsers returns the user directory.
func (c *Client) ListUsers(ctx context.Context) (Directory, error) {
	var response Directory
	err := c.post(ctx, "/users/list", emptyRequest{}, &response)
	return response, err
}

// AddUser adds a user to the directory.
func (c *Client) AddUser(ctx context.Context, u user.NewUser) (user.User, error) {
	var response usersAddResponse
	if err := c.post(ctx, "/users/add", usersAddRequest{User: u}, &response); err != nil {
		return user.User{}, err
	}
	return response.User, nil
}

// Routes returns the route table.
func (c *Client) Routes(ctx context.Context) ([]router.Route, error) {
	var response routesResponse
	if err := c.post(ctx, "/routes", emptyRequest{}, &response); err != nil {
		return nil, err
	}
	return response.Routes, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, dest any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return readErrorResponse(resp)
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return err
	}
	return nil
}

func readErrorResponse(resp *http.Response) error {
	var payload map[string]string
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&payload); err == nil {
		if message, ok := payload["error"]; ok {
			return fmt.Errorf("workshop error: %s", message)
		}
	}
	return fmt.Errorf("workshop error: %s", resp.Status)
}
