// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ManuGH/vuejs/internal/api/problem"
	"github.com/ManuGH/vuejs/internal/discovery"
	"github.com/ManuGH/vuejs/internal/library"
	xglog "github.com/ManuGH/vuejs/internal/log"
	"github.com/ManuGH/vuejs/internal/settingsform"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, r *http.Request, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		xglog.FromContext(r.Context()).Error().Err(err).
			Str(xglog.FieldEvent, "response.encode_failed").
			Msg("failed to encode JSON response")
	}
}

func writeProblem(w http.ResponseWriter, r *http.Request, status int, problemType, title, code, detail string, extra map[string]any) {
	problem.Write(w, r, status, problemType, title, code, detail, extra)
}

func writeNotFound(w http.ResponseWriter, r *http.Request, detail string) {
	writeProblem(w, r, http.StatusNotFound, "system/not_found", "Not Found", "NOT_FOUND", detail, nil)
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, detail string) {
	writeProblem(w, r, http.StatusBadRequest, "system/bad_request", "Bad Request", "BAD_REQUEST", detail, nil)
}

// writeValidationProblem reports every rejected field as {field, message}.
func writeValidationProblem(w http.ResponseWriter, r *http.Request, errs library.ValidationErrors) {
	fields := make([]problem.FieldError, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, problem.FieldError{Field: e.NestedKey(), Message: e.Message})
	}
	writeProblem(w, r, http.StatusUnprocessableEntity, "settings/invalid", "Unprocessable Entity",
		"VALIDATION_FAILED", "The settings were not saved.", map[string]any{"errors": fields})
}

// writeServiceError maps infrastructure failures to problem documents and logs them.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	logger := xglog.WithComponentFromContext(r.Context(), "api")

	switch {
	case errors.Is(err, discovery.ErrUnknownExtension):
		writeNotFound(w, r, err.Error())
	case errors.Is(err, settingsform.ErrProbeUnavailable):
		logger.Warn().Err(err).Str(xglog.FieldEvent, "settings.probe_unavailable").Msg("cdn probe unavailable")
		writeProblem(w, r, http.StatusServiceUnavailable, "settings/probe_unavailable", "Service Unavailable",
			"CDN_PROBE_UNAVAILABLE", "The CDN could not be reached to verify the version.", nil)
	default:
		logger.Error().Err(err).Str(xglog.FieldEvent, "request.failed").Msg("request failed")
		writeProblem(w, r, http.StatusInternalServerError, "system/internal", "Internal Server Error",
			"INTERNAL_ERROR", "The settings storage is unavailable.", nil)
	}
}
