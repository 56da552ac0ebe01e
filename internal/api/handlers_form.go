// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"bytes"
	"errors"
	"net/http"

	"golang.org/x/text/message"

	"github.com/ManuGH/vuejs/internal/form"
	"github.com/ManuGH/vuejs/internal/library"
	xglog "github.com/ManuGH/vuejs/internal/log"
)

// maxFormBytes bounds settings submissions.
const maxFormBytes = 1 << 20

const statusSaved = "saved"

// handleFormGet renders the settings page with the stored values.
func (s *Server) handleFormGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.deps.Settings.Load(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	tag := form.MatchLanguage(r.Header.Get("Accept-Language"))
	p := form.NewPrinter(tag)
	view := form.View{
		Form:   form.Build(form.InputFromSettings(rec.Libraries), s.catalog(), p),
		Lang:   tag.String(),
		Action: PathSettingsForm,
	}
	if r.URL.Query().Get("status") == statusSaved {
		view.Status = p.Sprintf(form.MsgSaved)
	}
	s.renderForm(w, r, http.StatusOK, view)
}

// handleFormPost validates and saves a form submission. Success redirects
// back to the form; invalid input re-renders it with the errors attached.
func (s *Server) handleFormPost(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeProblem(w, r, http.StatusRequestEntityTooLarge, "system/too_large", "Request Entity Too Large", "BODY_TOO_LARGE", "", nil)
			return
		}
		writeBadRequest(w, r, "malformed form body")
		return
	}

	catalog := s.catalog()
	input := form.ParseSubmission(r.PostForm, catalog)

	_, err := s.deps.Settings.Submit(r.Context(), input)
	if err == nil {
		http.Redirect(w, r, PathSettingsForm+"?status="+statusSaved, http.StatusSeeOther)
		return
	}

	verrs, ok := library.AsValidationErrors(err)
	if !ok {
		writeServiceError(w, r, err)
		return
	}

	tag := form.MatchLanguage(r.Header.Get("Accept-Language"))
	p := form.NewPrinter(tag)
	f, unplaced := form.Build(input, catalog, p).WithErrors(verrs, p)
	s.renderForm(w, r, http.StatusUnprocessableEntity, form.View{
		Form:    f,
		Lang:    tag.String(),
		Action:  PathSettingsForm,
		Summary: p.Sprintf(form.MsgErrorsSummary),
		Errors:  unplaced,
	})
}

// renderForm buffers the page so template failures still yield a clean 500.
func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, status int, view form.View) {
	var buf bytes.Buffer
	if err := form.Render(&buf, view); err != nil {
		logger := xglog.WithComponentFromContext(r.Context(), "api")
		logger.Error().Err(err).
			Str(xglog.FieldEvent, "form.render_failed").Msg("failed to render settings form")
		writeProblem(w, r, http.StatusInternalServerError, "system/internal", "Internal Server Error", "INTERNAL_ERROR", "", nil)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func handleStatesScript(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(form.StatesScript())
}

// handleFormSchema returns the form description as JSON. The language comes
// from ?lang= and falls back to Accept-Language.
func (s *Server) handleFormSchema(w http.ResponseWriter, r *http.Request) {
	rec, err := s.deps.Settings.Load(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	p := s.printerFor(r)
	writeJSON(w, r, http.StatusOK, form.Build(form.InputFromSettings(rec.Libraries), s.catalog(), p))
}

func (s *Server) printerFor(r *http.Request) *message.Printer {
	accept := r.Header.Get("Accept-Language")
	if lang := r.URL.Query().Get("lang"); lang != "" {
		accept = lang
	}
	return form.NewPrinter(form.MatchLanguage(accept))
}

func (s *Server) catalog() library.Catalog {
	return s.deps.Settings.Resolver().Catalog()
}
