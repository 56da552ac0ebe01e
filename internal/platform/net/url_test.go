// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package net

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeURL(t *testing.T) {
	assert.Equal(t, "https://unpkg.com/vue@3.2.37/dist/x.js", SanitizeURL("https://user:pw@unpkg.com/vue@3.2.37/dist/x.js?token=1"))
	assert.Equal(t, "invalid-url-redacted", SanitizeURL("http://[::1"))
}

func TestAbsoluteURL(t *testing.T) {
	assert.Equal(t, "https://unpkg.com/vue", AbsoluteURL("//unpkg.com/vue", "https"))
	assert.Equal(t, "/libraries/vue/dist/vue.js", AbsoluteURL("/libraries/vue/dist/vue.js", "https"))
	assert.Equal(t, "http://x/y", AbsoluteURL("http://x/y", "https"))
}

func TestHostOf(t *testing.T) {
	tests := map[string]string{
		"//unpkg.com/{package}@{version}/dist/{filename}":                 "unpkg.com",
		"//cdnjs.cloudflare.com/ajax/libs/{package}/{version}/{filename}": "cdnjs.cloudflare.com",
		"https://cdn.example.org:8443/npm/{package}":                      "cdn.example.org",
		"/libraries/{package}/dist/{filename}":                            "",
	}
	for in, want := range tests {
		assert.Equal(t, want, HostOf(in), in)
	}
}
