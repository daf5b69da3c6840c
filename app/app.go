// Package app wires the stores and the router into one application context.
//
// Presentation code receives a *Context instead of reaching for global store
// instances. Every read and write goes through Do, which runs one callback at
// a time so each action finishes before the next one starts.
package app

import (
	"sync"
	"time"

	"github.com/amonks/workshop/internal/config"
	"github.com/amonks/workshop/internal/logging"
	"github.com/amonks/workshop/internal/reactive"
	"github.com/amonks/workshop/router"
	"github.com/amonks/workshop/todo"
	"github.com/amonks/workshop/user"
	"go.uber.org/zap"
)

// Stores is handed to callbacks passed to Do.
type Stores struct {
	Todos *todo.Store
	Users *user.Store
}

// Options configures a new context.
type Options struct {
	// Config supplies seed and preference settings. Defaults to config.Default().
	Config *config.Config

	// Router defaults to router.Default().
	Router *router.Router

	// Now is the clock for both stores. Defaults to time.Now.
	Now func() time.Time

	Logger *zap.Logger
}

// Context owns the application state.
type Context struct {
	mu     sync.Mutex
	stores Stores
	router *router.Router
	logger *zap.Logger
}

// New creates a context with fresh stores.
func New(opts Options) *Context {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	r := opts.Router
	if r == nil {
		r = router.Default()
	}
	logger := logging.OrNop(opts.Logger)

	todoOpts := todo.Options{Filter: todo.Filter(cfg.Todos.Filter), Now: opts.Now}
	if cfg.Todos.Seed {
		todoOpts.Todos = todo.DefaultSeed()
	}
	userOpts := user.Options{Preferences: preferencesFromConfig(cfg), Now: opts.Now}
	if cfg.Users.Seed {
		userOpts.Seed = user.DefaultSeed()
	}

	c := &Context{
		stores: Stores{
			Todos: todo.NewStore(todoOpts),
			Users: user.NewStore(userOpts),
		},
		router: r,
		logger: logger,
	}
	c.stores.Todos.Subscribe(c.logChange("todos"))
	c.stores.Users.Subscribe(c.logChange("user"))
	return c
}

func preferencesFromConfig(cfg *config.Config) user.Preferences {
	return user.Preferences{
		Theme:         user.Theme(cfg.Preferences.Theme),
		Notifications: cfg.Preferences.Notifications,
		AutoSave:      cfg.Preferences.AutoSave,
	}
}

func (c *Context) logChange(store string) reactive.Listener {
	return func(change reactive.Change) {
		c.logger.Debug("store changed",
			zap.String("store", store),
			zap.String("action", change.Action),
			zap.Uint64("version", change.Version))
	}
}

// Do runs fn with exclusive access to the stores.
// fn must not call Do.
func (c *Context) Do(fn func(Stores)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.stores)
}

// Router returns the route table.
func (c *Context) Router() *router.Router {
	return c.router
}

// ApplyConfig reapplies the filter and preferences from cfg.
// Seed settings only take effect at startup and are ignored here.
func (c *Context) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	prefs := preferencesFromConfig(cfg)
	c.Do(func(s Stores) {
		s.Todos.SetFilter(todo.Filter(cfg.Todos.Filter))
		s.Users.UpdatePreferences(user.PreferencesUpdate{
			Theme:         &prefs.Theme,
			Notifications: &prefs.Notifications,
			AutoSave:      &prefs.AutoSave,
		})
	})
	c.logger.Info("config applied",
		zap.String("filter", cfg.Todos.Filter),
		zap.String("theme", cfg.Preferences.Theme))
}
