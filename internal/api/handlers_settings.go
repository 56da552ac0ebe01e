// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ManuGH/vuejs/internal/library"
)

// maxJSONBytes bounds JSON request bodies.
const maxJSONBytes = 1 << 20

// handleSettingsGet returns the stored settings of every library.
func (s *Server) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.deps.Settings.Load(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, library.LibrarySettingsOutput{Libraries: rec.Libraries})
}

// handleSettingsPut validates and saves a JSON submission.
func (s *Server) handleSettingsPut(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBytes)

	var input library.LibrarySettingsInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeProblem(w, r, http.StatusRequestEntityTooLarge, "system/too_large", "Request Entity Too Large", "BODY_TOO_LARGE", "", nil)
			return
		}
		writeBadRequest(w, r, "invalid JSON body: "+err.Error())
		return
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeBadRequest(w, r, "request body must contain a single JSON object")
		return
	}

	out, err := s.deps.Settings.Submit(r.Context(), input)
	if err != nil {
		if verrs, ok := library.AsValidationErrors(err); ok {
			writeValidationProblem(w, r, verrs)
			return
		}
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

// handleLibrariesGet lists the assets registered for an extension.
func (s *Server) handleLibrariesGet(w http.ResponseWriter, r *http.Request) {
	assets, err := s.deps.Libraries.LibrariesByExtension(r.Context(), chi.URLParam(r, "extension"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"libraries": assets})
}
