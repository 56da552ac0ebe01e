// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCSRFProtection(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		allowed []string
		headers map[string]string
		tls     bool
		want    int
	}{
		{name: "safe method", method: http.MethodGet, want: http.StatusOK},
		{name: "missing origin", method: http.MethodPost, want: http.StatusForbidden},
		{name: "same origin", method: http.MethodPost, headers: map[string]string{"Origin": "http://admin.local"}, want: http.StatusOK},
		{name: "same origin default port", method: http.MethodPost, headers: map[string]string{"Origin": "HTTP://Admin.Local:80"}, want: http.StatusOK},
		{name: "same origin via referer", method: http.MethodPut, headers: map[string]string{"Referer": "http://admin.local/admin/config/development/vuejs"}, want: http.StatusOK},
		{name: "https mismatch", method: http.MethodPost, headers: map[string]string{"Origin": "https://admin.local"}, want: http.StatusForbidden},
		{name: "https same origin", method: http.MethodPost, tls: true, headers: map[string]string{"Origin": "https://admin.local"}, want: http.StatusOK},
		{name: "foreign origin", method: http.MethodPost, headers: map[string]string{"Origin": "http://evil.example"}, want: http.StatusForbidden},
		{name: "allowlisted origin", method: http.MethodPost, allowed: []string{"https://console.example.org"}, headers: map[string]string{"Origin": "https://console.example.org"}, want: http.StatusOK},
		{name: "wildcard", method: http.MethodDelete, allowed: []string{"*"}, headers: map[string]string{"Origin": "http://anything.example"}, want: http.StatusOK},
		{name: "proxy headers disable same origin", method: http.MethodPost, headers: map[string]string{"Origin": "http://admin.local", "X-Forwarded-Host": "admin.local"}, want: http.StatusForbidden},
		{name: "null origin", method: http.MethodPost, headers: map[string]string{"Origin": "null"}, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "http://admin.local/api/v1/settings/libraries", nil)
			req.Host = "admin.local"
			if tt.tls {
				req.TLS = &tls.ConnectionState{}
			}
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			CSRFProtection(tt.allowed)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusForbidden {
				assert.Contains(t, rec.Body.String(), "CSRF_FORBIDDEN")
			}
		})
	}
}

func TestNormalizeOrigin(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"https://Example.org:443", "https://example.org", true},
		{"http://example.org:8080", "http://example.org:8080", true},
		{"http://[::1]:8080", "http://[::1]:8080", true},
		{"http://[::1]", "http://[::1]", true},
		{"ftp://example.org", "", false},
		{"example.org", "", false},
		{"http://example.org:0", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := normalizeOrigin(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
