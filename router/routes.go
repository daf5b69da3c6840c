package router

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed views/*.md
var viewFiles embed.FS

// Default returns the workshop route table. Only the home view is eager.
func Default() *Router {
	home, err := readView("home", "Home")
	if err != nil {
		panic(err)
	}
	r, err := New([]Definition{
		{Path: "/", Name: "home", View: &home},
		{Path: "/about", Name: "about", Load: embeddedView("about", "About")},
		{Path: "/components", Name: "components", Load: embeddedView("components", "Components")},
		{Path: "/directives", Name: "directives", Load: embeddedView("directives", "Directives")},
		{Path: "/state-management", Name: "state-management", Load: embeddedView("state-management", "State Management")},
	})
	if err != nil {
		panic(err)
	}
	return r
}

func embeddedView(name, title string) Loader {
	return func() (View, error) {
		return readView(name, title)
	}
}

func readView(name, title string) (View, error) {
	data, err := viewFiles.ReadFile("views/" + name + ".md")
	if err != nil {
		return View{}, fmt.Errorf("read view %s: %w", name, err)
	}
	return View{Name: name, Title: title, Body: strings.TrimSpace(string(data))}, nil
}
