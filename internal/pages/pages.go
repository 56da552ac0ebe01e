// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package pages holds static pages contributed by small modules.
package pages

import (
	"fmt"
	"html/template"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	xglog "github.com/ManuGH/vuejs/internal/log"
)

// Item is one menu entry. Path has no leading slash, e.g. "vueTeste/custom-page".
type Item struct {
	Path        string
	Title       string
	Description string
	// Markup is the page body. It is trusted module output.
	Markup template.HTML
}

// Registry collects menu items from modules.
type Registry struct {
	mu    sync.RWMutex
	items map[string]Item
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]Item)}
}

// Register adds item. Registering the same path twice is an error.
func (r *Registry) Register(item Item) error {
	item.Path = strings.Trim(item.Path, "/")
	if item.Path == "" {
		return fmt.Errorf("menu item path is empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.items[item.Path]; dup {
		return fmt.Errorf("menu item %q already registered", item.Path)
	}
	r.items[item.Path] = item
	return nil
}

// Items returns the registered items sorted by path.
func (r *Registry) Items() []Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Mount registers one GET route per item. Access is unrestricted.
func (r *Registry) Mount(router chi.Router) {
	for _, it := range r.Items() {
		router.Get("/"+it.Path, handler(it))
	}
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<meta name="description" content="{{.Description}}">
</head>
<body>
<main>
<h1>{{.Title}}</h1>
{{.Markup}}
</main>
</body>
</html>
`))

func handler(it Item) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pageTemplate.Execute(w, it); err != nil {
			xglog.FromContext(r.Context()).Error().Err(err).
				Str(xglog.FieldEvent, "page.render_failed").
				Str(xglog.FieldPath, it.Path).
				Msg("failed to render page")
		}
	}
}
