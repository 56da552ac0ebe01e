// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package api exposes the settings form, the JSON API and the static pages over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/ManuGH/vuejs/internal/api/middleware"
	"github.com/ManuGH/vuejs/internal/discovery"
	"github.com/ManuGH/vuejs/internal/library"
	"github.com/ManuGH/vuejs/internal/pages"
	"github.com/ManuGH/vuejs/internal/settings"
	"github.com/go-chi/chi/v5"
)

// Route paths.
const (
	PathSettingsForm = "/admin/config/development/vuejs"
	PathStatesScript = "/admin/assets/states.js"
	PathSettingsAPI  = "/api/v1/settings/libraries"
	PathLibrariesAPI = "/api/v1/libraries/{extension}"
	PathFormAPI      = "/api/v1/form"
	PathOpenAPI      = "/api/v1/openapi.yaml"
	PathLibraries    = "/libraries"
	PathHealth       = "/healthz"
	PathReady        = "/readyz"
)

// SettingsService loads and saves the library settings.
type SettingsService interface {
	Load(ctx context.Context) (settings.Record, error)
	Submit(ctx context.Context, input library.LibrarySettingsInput) (library.LibrarySettingsOutput, error)
	Resolver() *library.Resolver
}

// LibraryRegistry lists the registered library assets.
type LibraryRegistry interface {
	LibrariesByExtension(ctx context.Context, extension string) ([]discovery.Asset, error)
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler interface {
	ServeHealth(w http.ResponseWriter, r *http.Request)
	ServeReady(w http.ResponseWriter, r *http.Request)
}

// Config configures the HTTP surface.
type Config struct {
	Stack middleware.StackConfig
	// LibrariesDir serves local library builds under /libraries when set.
	LibrariesDir string
}

// Deps are the collaborators of Server. Pages and Health are optional.
type Deps struct {
	Settings  SettingsService
	Libraries LibraryRegistry
	Pages     *pages.Registry
	Health    HealthHandler
}

// Server is the HTTP API server.
type Server struct {
	cfg    Config
	deps   Deps
	router chi.Router
}

// New creates a Server and registers its routes.
func New(cfg Config, deps Deps) *Server {
	s := &Server{cfg: cfg, deps: deps}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := middleware.NewRouter(s.cfg.Stack)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeNotFound(w, r, "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeProblem(w, r, http.StatusMethodNotAllowed, "system/method_not_allowed", "Method Not Allowed", "METHOD_NOT_ALLOWED", "", nil)
	})

	if s.deps.Health != nil {
		r.Get(PathHealth, s.deps.Health.ServeHealth)
		r.Get(PathReady, s.deps.Health.ServeReady)
	}

	r.Get(PathSettingsForm, s.handleFormGet)
	r.Post(PathSettingsForm, s.handleFormPost)
	r.Get(PathStatesScript, handleStatesScript)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/settings/libraries", s.handleSettingsGet)
		r.Put("/settings/libraries", s.handleSettingsPut)
		r.Get("/libraries/{extension}", s.handleLibrariesGet)
		r.Get("/form", s.handleFormSchema)
		r.Get("/openapi.yaml", handleOpenAPI)
	})

	if s.deps.Pages != nil {
		s.deps.Pages.Mount(r)
	}

	if s.cfg.LibrariesDir != "" {
		r.Handle(PathLibraries+"/*", http.StripPrefix(PathLibraries, librariesFileServer(s.cfg.LibrariesDir)))
	}

	return r
}
