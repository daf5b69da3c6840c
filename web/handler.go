// Package web serves the workshop views as HTML pages.
package web

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"net/url"
	"strings"

	"github.com/amonks/workshop/app"
	"github.com/amonks/workshop/internal/logging"
	"github.com/amonks/workshop/internal/markdown"
	internalstrings "github.com/amonks/workshop/internal/strings"
	"github.com/amonks/workshop/router"
	"github.com/amonks/workshop/todo"
	"github.com/amonks/workshop/user"
	"go.uber.org/zap"
)

const (
	pathPrefix = "/web"
	statePath  = "/state-management"
)

// Options configures the web handler.
type Options struct {
	Context *app.Context
	Logger  *zap.Logger
}

// Handler serves the workshop web views.
type Handler struct {
	ctx       *app.Context
	logger    *zap.Logger
	mux       *http.ServeMux
	templates *templateWrapper
}

// formErrorCookie carries a rejected form's message to the next state view
// of the same browser.
const formErrorCookie = "workshop_form_error"

// NewHandler creates a new web handler.
func NewHandler(opts Options) *Handler {
	ctx := opts.Context
	if ctx == nil {
		ctx = app.New(app.Options{Logger: opts.Logger})
	}
	handler := &Handler{
		ctx:       ctx,
		logger:    logging.OrNop(opts.Logger),
		templates: newTemplateWrapper(),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/web/", handler.handleView)
	mux.HandleFunc("/web/todos/add", handler.handleTodosAdd)
	mux.HandleFunc("/web/todos/toggle", handler.handleTodosToggle)
	mux.HandleFunc("/web/todos/remove", handler.handleTodosRemove)
	mux.HandleFunc("/web/todos/update", handler.handleTodosUpdate)
	mux.HandleFunc("/web/todos/clear", handler.handleTodosClear)
	mux.HandleFunc("/web/todos/filter", handler.handleTodosFilter)
	mux.HandleFunc("/web/todos/mark-all", handler.handleTodosMarkAll)
	mux.HandleFunc("/web/users/login", handler.handleUsersLogin)
	mux.HandleFunc("/web/users/logout", handler.handleUsersLogout)
	mux.HandleFunc("/web/users/profile", handler.handleUsersProfile)
	mux.HandleFunc("/web/users/preferences", handler.handleUsersPreferences)
	mux.HandleFunc("/web/users/add", handler.handleUsersAdd)
	handler.mux = mux
	return handler
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type templateWrapper struct {
	tmpl *template.Template
}

func newTemplateWrapper() *templateWrapper {
	return &templateWrapper{tmpl: newTemplates()}
}

func (tw *templateWrapper) Render(w http.ResponseWriter, data pageData) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return tw.tmpl.ExecuteTemplate(w, "page", data)
}

type selectOption struct {
	Value string
	Label string
}

type navLink struct {
	Href   string
	Name   string
	Active bool
}

type priorityGroup struct {
	Priority todo.Priority
	Todos    []todo.Todo
}

type pageData struct {
	Title string
	Theme user.Theme
	Nav   []navLink
	Body  template.HTML
	State *stateData
}

type stateData struct {
	Todos       []todo.Todo
	Filter      todo.Filter
	Stats       todo.Stats
	ByPriority  []priorityGroup
	LoggedIn    bool
	CurrentUser *user.User
	Preferences user.Preferences
	Users       []user.User
	UserCount   int
	Error       string

	FilterOptions   []selectOption
	PriorityOptions []selectOption
	ThemeOptions    []selectOption
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	routePath := router.NormalizePath(strings.TrimPrefix(r.URL.Path, pathPrefix))
	route, view, err := h.ctx.Router().Load(routePath)
	if errors.Is(err, router.ErrRouteNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.logger.Error("load view", zap.String("path", routePath), zap.Error(err))
		http.Error(w, "failed to load view", http.StatusInternalServerError)
		return
	}
	body, err := markdown.HTML([]byte(view.Body))
	if err != nil {
		h.logger.Error("render view", zap.String("path", routePath), zap.Error(err))
		http.Error(w, "failed to render view", http.StatusInternalServerError)
		return
	}

	data := pageData{
		Title: view.Title,
		Nav:   navLinks(h.ctx.Router().Routes(), route.Path),
		Body:  body,
	}
	if route.Path == statePath {
		data.State = h.stateData(consumeFormError(w, r))
	}
	h.ctx.Do(func(st app.Stores) {
		data.Theme = st.Users.Preferences().Theme
	})
	if err := h.templates.Render(w, data); err != nil {
		h.logger.Warn("execute template", zap.String("path", routePath), zap.Error(err))
	}
}

func (h *Handler) stateData(formError string) *stateData {
	state := &stateData{
		Error:           formError,
		FilterOptions:   filterOptions(),
		PriorityOptions: priorityOptions(),
		ThemeOptions:    themeOptions(),
	}
	h.ctx.Do(func(st app.Stores) {
		state.Todos = st.Todos.FilteredTodos()
		state.Filter = st.Todos.Filter()
		state.Stats = st.Todos.Stats()
		groups := st.Todos.TodosByPriority()
		for _, priority := range todo.ValidPriorities() {
			state.ByPriority = append(state.ByPriority, priorityGroup{Priority: priority, Todos: groups[priority]})
		}
		state.LoggedIn = st.Users.IsLoggedIn()
		if current, ok := st.Users.CurrentUser(); ok {
			state.CurrentUser = &current
		}
		state.Preferences = st.Users.Preferences()
		state.Users = st.Users.Users()
		state.UserCount = st.Users.UserCount()
	})
	return state
}

func (h *Handler) handleTodosAdd(w http.ResponseWriter, r *http.Request) {
	if !h.parsePost(w, r) {
		return
	}
	priority, err := todo.ParsePriority(trimmedFormValue(r, "priority"))
	if err != nil {
		h.redirectWithError(w, r, err.Error())
		return
	}
	text := trimmedFormValue(r, "text")
	if text == "" {
		h.redirectWithError(w, r, "todo text is required")
		return
	}
	h.ctx.Do(func(st app.Stores) {
		st.Todos.AddTodo(text, todo.AddOptions{Priority: priority})
	})
	redirectToState(w, r)
}

func (h *Handler) handleTodosToggle(w http.ResponseWriter, r *http.Request) {
	if !h.parsePost(w, r) {
		return
	}
	id, err := parseID(trimmedFormValue(r, "id"))
	if err != nil {
		h.redirectWithError(w, r, err.Error())
		return
	}
	h.ctx.Do(func(st app.Stores) {
		st.Todos.ToggleTodo(id)
	})
	redirectToState(w, r)
}

func (h *Handler) handleTodosRemove(w http.ResponseWriter, r *http.Request) {
	if !h.parsePost(w, r) {
		return
	}
	id, err := parseID(trimmedFormValue(r, "id"))
	if err != nil {
		h.redirectWithError(w, r, err.Error())
		return
	}
	h.ctx.Do(func(st app.Stores) {
		st.Todos.RemoveTodo(id)
	})
	redirectToState(w, r)
}

func (h *Handler) handleTodosUpdate(w http.ResponseWriter, r *http.Request) {
	if !h.parsePost(w, r) {
		return
	}
	id, err := parseID(trimmedFormValue(r, "id"))
	if err != nil {
		h.redirectWithError(w, r, err.Error())
		return
	}
	var opts todo.UpdateOptions
	if text := trimmedFormValue(r, "text"); text != "" {
		opts.Text = &text
	}
	if value := trimmedFormValue(r, "priority"); value != "" {
		priority, err := todo.ParsePriority(value)
		if err != nil {
			h.redirectWithError(w, r, err.Error())
			return
		}
		opts.Priority = &priority
	}
	h.ctx.Do(func(st app.Stores) {
		st.Todos.UpdateTodo(id, opts)
	})
	redirectToState(w, r)
}

func (h *Handler) handleTodosClear(w http.ResponseWriter, r *http.Request) {
	if !h.parsePost(w, r) {
		return
	}
	h.ctx.Do(func(st app.Stores) {
		st.Todos.ClearCompleted()
	})
	redirectToState(w, r)
}

func (h *Handler) handleTodosFilter(w http.ResponseWriter, r *http.Request) {
	if !h.parsePost(w, r) {
		return
	}
	filter, err := todo.ParseFilter(trimmedFormValue(r, "filter"))
	if err != nil {
		h.redirectWithError(w, r, err.Error())
		return
	}
	h.ctx.Do(func(st app.Stores) {
		st.Todos.SetFilter(filter)
	})
	redirectToState(w, r)
}

func (h *Handler) handleTodosMarkAll(w http.ResponseWriter, r *http.Request) {
	if !h.parsePost(w, r) {
		return
	}
	completed, err := parseBool(trimmedFormValue(r, "completed"))
	if err != nil {
		h.redirectWithError(w, r, err.Error())
		return
	}
	h.ctx.Do(func(st app.Stores) {
		if completed {
			st.Todos.MarkAllComplete()
		} else {
			st.Todos.MarkAllIncomplete()
		}
	})
	redirectToState(w, r)
}

func (h *Handler) handleUsersLogin(w http.ResponseWriter, r *http.Request) {
	if !h.parsePost(w, r) {
		return
	}
	var id int64
	if value := trimmedFormValue(r, "id"); value != "" {
		parsed, err := parseID(value)
		if err != nil {
			h.redirectWithError(w, r, err.Error())
			return
		}
		id = parsed
	}
	name := trimmedFormValue(r, "name")
	email := trimmedFormValue(r, "email")
	if name == "" || email == "" {
		h.redirectWithError(w, r, "name and email are required")
		return
	}
	profile := user.User{ID: id, Name: name, Email: email, Avatar: trimmedFormValue(r, "avatar")}
	h.ctx.Do(func(st app.Stores) {
		st.Users.Login(profile)
	})
	redirectToState(w, r)
}

func (h *Handler) handleUsersLogout(w http.ResponseWriter, r *http.Request) {
	if !h.parsePost(w, r) {
		return
	}
	h.ctx.Do(func(st app.Stores) {
		st.Users.Logout()
	})
	redirectToState(w, r)
}

func (h *Handler) handleUsersProfile(w http.ResponseWriter, r *http.Request) {
	if !h.parsePost(w, r) {
		return
	}
	var update user.ProfileUpdate
	if name := trimmedFormValue(r, "name"); name != "" {
		update.Name = &name
	}
	if email := trimmedFormValue(r, "email"); email != "" {
		update.Email = &email
	}
	if avatar := trimmedFormValue(r, "avatar"); avatar != "" {
		update.Avatar = &avatar
	}
	updated := false
	h.ctx.Do(func(st app.Stores) {
		updated = st.Users.UpdateProfile(update)
	})
	if !updated {
		h.redirectWithError(w, r, "log in to edit the profile")
		return
	}
	redirectToState(w, r)
}

func (h *Handler) handleUsersPreferences(w http.ResponseWriter, r *http.Request) {
	if !h.parsePost(w, r) {
		return
	}
	theme, err := user.ParseTheme(r.FormValue("theme"))
	if err != nil {
		h.redirectWithError(w, r, err.Error())
		return
	}
	notifications := r.FormValue("notifications") != ""
	autoSave := r.FormValue("auto_save") != ""
	h.ctx.Do(func(st app.Stores) {
		st.Users.UpdatePreferences(user.PreferencesUpdate{
			Theme:         &theme,
			Notifications: &notifications,
			AutoSave:      &autoSave,
		})
	})
	redirectToState(w, r)
}

func (h *Handler) handleUsersAdd(w http.ResponseWriter, r *http.Request) {
	if !h.parsePost(w, r) {
		return
	}
	name := trimmedFormValue(r, "name")
	email := trimmedFormValue(r, "email")
	if name == "" || email == "" {
		h.redirectWithError(w, r, "name and email are required")
		return
	}
	h.ctx.Do(func(st app.Stores) {
		st.Users.AddUser(user.NewUser{Name: name, Email: email})
	})
	redirectToState(w, r)
}

func (h *Handler) parsePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return false
	}
	if err := r.ParseForm(); err != nil {
		h.redirectWithError(w, r, "invalid form input")
		return false
	}
	return true
}

func (h *Handler) redirectWithError(w http.ResponseWriter, r *http.Request, message string) {
	h.logger.Debug("form rejected", zap.String("path", r.URL.Path), zap.String("error", message))
	http.SetCookie(w, &http.Cookie{
		Name:     formErrorCookie,
		Value:    url.QueryEscape(message),
		Path:     pathPrefix,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	redirectToState(w, r)
}

func consumeFormError(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(formErrorCookie)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     formErrorCookie,
		Path:     pathPrefix,
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}

func redirectToState(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, pathPrefix+statePath, http.StatusSeeOther)
}

func navLinks(routes []router.Route, active string) []navLink {
	links := make([]navLink, 0, len(routes))
	for _, route := range routes {
		links = append(links, navLink{
			Href:   routeHref(route.Path),
			Name:   route.Name,
			Active: route.Path == active,
		})
	}
	return links
}

func routeHref(path string) string {
	if path == "/" {
		return pathPrefix + "/"
	}
	return pathPrefix + path
}

func parseID(value string) (int64, error) {
	if value == "" {
		return 0, fmt.Errorf("id is required")
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", value)
	}
	return id, nil
}

func parseBool(value string) (bool, error) {
	if value == "" {
		return false, fmt.Errorf("completed is required")
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid completed value %q", value)
	}
	return parsed, nil
}

func trimmedFormValue(r *http.Request, key string) string {
	return internalstrings.TrimSpace(r.FormValue(key))
}

func filterOptions() []selectOption {
	options := make([]selectOption, 0, len(todo.ValidFilters()))
	for _, filter := range todo.ValidFilters() {
		options = append(options, selectOption{Value: string(filter), Label: string(filter)})
	}
	return options
}

func priorityOptions() []selectOption {
	options := make([]selectOption, 0, len(todo.ValidPriorities()))
	for _, priority := range todo.ValidPriorities() {
		options = append(options, selectOption{Value: string(priority), Label: string(priority)})
	}
	return options
}

func themeOptions() []selectOption {
	options := make([]selectOption, 0, len(user.ValidThemes()))
	for _, theme := range user.ValidThemes() {
		options = append(options, selectOption{Value: string(theme), Label: string(theme)})
	}
	return options
}

func writeMethodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}
