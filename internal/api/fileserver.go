// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	xglog "github.com/ManuGH/vuejs/internal/log"
	"github.com/ManuGH/vuejs/internal/metrics"
)

// Only browser assets of a library build are served.
var allowedLibraryExtensions = map[string]string{
	".js":   "text/javascript; charset=utf-8",
	".mjs":  "text/javascript; charset=utf-8",
	".cjs":  "text/javascript; charset=utf-8",
	".map":  "application/json; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".d.ts": "text/plain; charset=utf-8",
}

var (
	errLibraryFileNotFound = errors.New("library file not found")
	errLibraryPathEscape   = errors.New("library path escape")
	errLibraryDirectory    = errors.New("library path is a directory")
)

// librariesFileServer serves local library builds from root. Directory
// listings, non-asset extensions and paths escaping root are refused.
func librariesFileServer(root string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := xglog.WithComponentFromContext(r.Context(), "api.files")

		reqPath, ok := checkLibraryRequest(w, r, logger)
		if !ok {
			return
		}

		realPath, err := resolveLibraryPath(root, reqPath)
		if err != nil {
			handleLibraryResolveError(w, r, reqPath, err, logger)
			return
		}

		if err := serveLibraryFile(w, r, realPath, logger); err != nil {
			logger.Error().Err(err).Str(xglog.FieldEvent, "file_req.internal_error").Str(xglog.FieldPath, reqPath).Msg("could not serve file")
			metrics.RecordLibraryFileDenied("internal_error")
			writeProblem(w, r, http.StatusInternalServerError, "system/internal", "Internal Server Error", "INTERNAL_ERROR", "", nil)
		}
	})
}

func denyLibraryFile(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, path, reason string) {
	logger.Warn().Str(xglog.FieldEvent, "file_req.denied").Str(xglog.FieldPath, path).Str("reason", reason).Msg("library file request denied")
	metrics.RecordLibraryFileDenied(reason)
	writeProblem(w, r, http.StatusForbidden, "files/forbidden", "Forbidden", "FILE_FORBIDDEN", "", nil)
}

func checkLibraryRequest(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (string, bool) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		metrics.RecordLibraryFileDenied("method_not_allowed")
		writeProblem(w, r, http.StatusMethodNotAllowed, "system/method_not_allowed", "Method Not Allowed", "METHOD_NOT_ALLOWED", "", nil)
		return "", false
	}

	path := r.URL.Path
	if path == "" || strings.HasSuffix(path, "/") {
		denyLibraryFile(w, r, logger, path, "directory_listing")
		return "", false
	}
	if isPathTraversal(path) {
		denyLibraryFile(w, r, logger, path, "path_escape")
		return "", false
	}
	if libraryContentType(path) == "" {
		denyLibraryFile(w, r, logger, path, "forbidden_extension")
		return "", false
	}
	return path, true
}

func libraryContentType(path string) string {
	lower := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(lower, ".d.ts") {
		return allowedLibraryExtensions[".d.ts"]
	}
	return allowedLibraryExtensions[filepath.Ext(lower)]
}

func resolveLibraryPath(root, requestPath string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve libraries dir: %w", err)
	}

	fullPath := filepath.Join(absRoot, filepath.FromSlash(requestPath))
	realPath, err := filepath.EvalSymlinks(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", errLibraryFileNotFound, fullPath)
		}
		return "", fmt.Errorf("eval symlinks for request path: %w", err)
	}

	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", fmt.Errorf("eval symlinks for libraries dir: %w", err)
	}

	rel, err := filepath.Rel(realRoot, realPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: %s", errLibraryPathEscape, realPath)
	}

	info, err := os.Stat(realPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", errLibraryFileNotFound, realPath)
		}
		return "", fmt.Errorf("stat resolved path: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s", errLibraryDirectory, realPath)
	}
	return realPath, nil
}

func handleLibraryResolveError(w http.ResponseWriter, r *http.Request, path string, err error, logger zerolog.Logger) {
	switch {
	case errors.Is(err, errLibraryFileNotFound):
		metrics.RecordLibraryFileDenied("not_found")
		writeNotFound(w, r, "library file not found")
	case errors.Is(err, errLibraryPathEscape):
		denyLibraryFile(w, r, logger, path, "path_escape")
	case errors.Is(err, errLibraryDirectory):
		denyLibraryFile(w, r, logger, path, "directory_listing")
	default:
		logger.Error().Err(err).Str(xglog.FieldEvent, "file_req.internal_error").Str(xglog.FieldPath, path).Msg("could not resolve library path")
		metrics.RecordLibraryFileDenied("internal_error")
		writeProblem(w, r, http.StatusInternalServerError, "system/internal", "Internal Server Error", "INTERNAL_ERROR", "", nil)
	}
}

func serveLibraryFile(w http.ResponseWriter, r *http.Request, realPath string, logger zerolog.Logger) error {
	f, err := os.Open(realPath) // #nosec G304 -- confined to the libraries dir above
	if err != nil {
		return fmt.Errorf("open resolved path: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			logger.Warn().Err(closeErr).Str(xglog.FieldPath, realPath).Msg("failed to close file")
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat opened file: %w", err)
	}

	etag := fmt.Sprintf(`W/"%x-%x"`, info.ModTime().UnixNano(), info.Size())
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		metrics.RecordLibraryFileServed(true)
		w.WriteHeader(http.StatusNotModified)
		return nil
	}

	w.Header().Set("Content-Type", libraryContentType(info.Name()))
	metrics.RecordLibraryFileServed(false)
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return nil
}

// isPathTraversal decodes p up to three times and rejects parent segments,
// NUL bytes and overlong dot encodings.
func isPathTraversal(p string) bool {
	decoded := p
	for i := 0; i < 3; i++ {
		prev := decoded
		if d, err := url.PathUnescape(decoded); err == nil {
			decoded = d
		}
		if decoded == prev {
			break
		}
	}

	raw, lower := strings.ToLower(p), strings.ToLower(decoded)
	for _, pat := range []string{"..", "%00", "%c0%ae", "%e0%80%ae"} {
		if strings.Contains(raw, pat) || strings.Contains(lower, pat) {
			return true
		}
	}
	if strings.IndexByte(decoded, 0x00) >= 0 || strings.Contains(decoded, "\\") {
		return true
	}
	return strings.Contains(norm.NFC.String(decoded), "..")
}
