// Package router maps URL paths to views.
//
// Routes are either eager, with the view supplied up front, or lazy, with a
// loader that runs the first time the route is visited. A loader runs at
// most once; its result (or error) is reused for later visits.
package router

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	internalstrings "github.com/amonks/workshop/internal/strings"
)

var (
	// ErrRouteNotFound is returned when no route matches a path.
	ErrRouteNotFound = errors.New("route not found")

	// ErrDuplicateRoute is returned when two definitions share a path or name.
	ErrDuplicateRoute = errors.New("duplicate route")

	// ErrInvalidRoute is returned for definitions without a path, name or view.
	ErrInvalidRoute = errors.New("invalid route")
)

// View is the content rendered for a route.
type View struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	// Body is markdown.
	Body string `json:"body"`
}

// Loader produces a view on first navigation.
type Loader func() (View, error)

// Definition describes a route. Exactly one of View and Load must be set.
type Definition struct {
	Path string
	Name string
	View *View
	Load Loader
}

// Route is the public description of a registered route.
type Route struct {
	Path string `json:"path"`
	Name string `json:"name"`
	Lazy bool   `json:"lazy"`
}

type entry struct {
	route Route
	load  Loader

	once sync.Once
	view View
	err  error
	done bool
}

// Router resolves paths to routes and loads their views.
// It is safe for concurrent use.
type Router struct {
	entries []*entry
	byPath  map[string]*entry
	byName  map[string]*entry

	mu sync.Mutex
}

// New builds a router from definitions, in order.
func New(defs []Definition) (*Router, error) {
	r := &Router{
		byPath: make(map[string]*entry, len(defs)),
		byName: make(map[string]*entry, len(defs)),
	}
	for _, def := range defs {
		path := NormalizePath(def.Path)
		name := internalstrings.TrimSpace(def.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: route %q has no name", ErrInvalidRoute, path)
		}
		if (def.View == nil) == (def.Load == nil) {
			return nil, fmt.Errorf("%w: route %q needs exactly one of a view or a loader", ErrInvalidRoute, path)
		}
		if _, ok := r.byPath[path]; ok {
			return nil, fmt.Errorf("%w: path %q", ErrDuplicateRoute, path)
		}
		if _, ok := r.byName[name]; ok {
			return nil, fmt.Errorf("%w: name %q", ErrDuplicateRoute, name)
		}

		e := &entry{route: Route{Path: path, Name: name, Lazy: def.Load != nil}, load: def.Load}
		if def.View != nil {
			view := *def.View
			e.load = func() (View, error) { return view, nil }
			e.view = view
			e.done = true
		}
		r.entries = append(r.entries, e)
		r.byPath[path] = e
		r.byName[name] = e
	}
	return r, nil
}

// NormalizePath trims whitespace and trailing slashes and ensures a leading slash.
func NormalizePath(path string) string {
	path = internalstrings.TrimTrailingSlash(internalstrings.TrimSpace(path))
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// Routes returns all routes in definition order.
func (r *Router) Routes() []Route {
	routes := make([]Route, 0, len(r.entries))
	for _, e := range r.entries {
		routes = append(routes, e.route)
	}
	return routes
}

// Resolve returns the route for path.
func (r *Router) Resolve(path string) (Route, error) {
	e, err := r.lookup(path)
	if err != nil {
		return Route{}, err
	}
	return e.route, nil
}

// ByName returns the route with the given name.
func (r *Router) ByName(name string) (Route, error) {
	e, ok := r.byName[internalstrings.TrimSpace(name)]
	if !ok {
		return Route{}, fmt.Errorf("%w: name %q", ErrRouteNotFound, name)
	}
	return e.route, nil
}

// Load resolves path and returns its view, running a lazy loader on first use.
func (r *Router) Load(path string) (Route, View, error) {
	e, err := r.lookup(path)
	if err != nil {
		return Route{}, View{}, err
	}
	e.once.Do(func() {
		e.view, e.err = e.load()
		r.mu.Lock()
		e.done = true
		r.mu.Unlock()
	})
	if e.err != nil {
		return e.route, View{}, fmt.Errorf("load view %q: %w", e.route.Name, e.err)
	}
	return e.route, e.view, nil
}

// Loaded reports whether the view for path has been loaded.
func (r *Router) Loaded(path string) bool {
	e, err := r.lookup(path)
	if err != nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return e.done
}

func (r *Router) lookup(path string) (*entry, error) {
	normalized := NormalizePath(path)
	e, ok := r.byPath[normalized]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRouteNotFound, normalized)
	}
	return e, nil
}
