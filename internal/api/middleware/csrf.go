// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package middleware

import (
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ManuGH/vuejs/internal/api/problem"
	xglog "github.com/ManuGH/vuejs/internal/log"
)

// proxyHeaders disable the same-origin fallback: without a trust boundary
// they could be forged to match any origin.
var proxyHeaders = []string{
	"Forwarded",
	"X-Forwarded-For",
	"X-Forwarded-Host",
	"X-Forwarded-Proto",
	"X-Forwarded-Server",
}

// CSRFProtection validates the Origin (or Referer) of state-changing
// requests. Safe methods pass. Unsafe methods need an origin that is either
// listed in allowedOrigins ("*" allows any) or equal to the request's own
// origin when no proxy headers are present.
func CSRFProtection(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			allowed["*"] = true
			continue
		}
		if normalized, ok := normalizeOrigin(origin); ok {
			allowed[normalized] = true
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			origin := requestOrigin(r)
			if origin == "" {
				writeCSRFProblem(w, r, "Missing origin or referer header")
				return
			}
			if !isOriginAllowed(origin, allowed, r) {
				writeCSRFProblem(w, r, "CSRF check failed: origin not trusted")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeCSRFProblem(w http.ResponseWriter, r *http.Request, detail string) {
	logger := xglog.WithComponentFromContext(r.Context(), "csrf")
	logger.Warn().
		Str(xglog.FieldEvent, "csrf.rejected").
		Str("method", r.Method).
		Str(xglog.FieldPath, r.URL.Path).
		Str("origin", r.Header.Get("Origin")).
		Msg(detail)
	problem.Write(w, r, http.StatusForbidden, "auth/csrf", "Forbidden", "CSRF_FORBIDDEN", detail, nil)
}

// requestOrigin returns the normalized Origin header, falling back to the
// origin of the Referer.
func requestOrigin(r *http.Request) string {
	if origin, ok := normalizeOrigin(r.Header.Get("Origin")); ok {
		return origin
	}

	ref, err := url.Parse(r.Header.Get("Referer"))
	if err != nil || ref.Scheme == "" || ref.Host == "" {
		return ""
	}
	origin, _ := normalizeOrigin(ref.Scheme + "://" + ref.Host)
	return origin
}

func isOriginAllowed(origin string, allowed map[string]bool, r *http.Request) bool {
	if allowed["*"] || allowed[origin] {
		return true
	}
	for _, h := range proxyHeaders {
		if r.Header.Get(h) != "" {
			return false
		}
	}
	return origin == sameOrigin(r)
}

// sameOrigin reconstructs the origin from the Host header and the
// connection state, ignoring all forwarding headers.
func sameOrigin(r *http.Request) string {
	if r.Host == "" {
		return ""
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	origin, _ := normalizeOrigin(scheme + "://" + r.Host)
	return origin
}

// normalizeOrigin lowercases scheme and host and drops default ports.
func normalizeOrigin(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", false
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", false
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" || strings.ContainsAny(host, " \t\r\n/@\\") {
		return "", false
	}

	port := parsed.Port()
	if port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n < 1 || n > 65535 {
			return "", false
		}
	}
	if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		port = ""
	}

	if port != "" {
		return scheme + "://" + net.JoinHostPort(host, port), true
	}
	if strings.Contains(host, ":") {
		return scheme + "://[" + host + "]", true
	}
	return scheme + "://" + host, true
}
