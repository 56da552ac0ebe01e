// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package net

import (
	"net/url"
	"strings"
)

// SanitizeURL removes user info and query parameters for safe logging.
func SanitizeURL(rawURL string) string {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return "invalid-url-redacted"
	}
	parsedURL.User = nil
	parsedURL.RawQuery = ""
	return parsedURL.String()
}

// AbsoluteURL turns a scheme-relative path such as "//unpkg.com/vue" into
// an absolute URL using scheme. Other inputs are returned unchanged.
func AbsoluteURL(path, scheme string) string {
	if strings.HasPrefix(path, "//") {
		return scheme + ":" + path
	}
	return path
}

// HostOf returns the host of a scheme-relative or absolute URL template,
// or "" when it has none (e.g. a local path).
func HostOf(rawURL string) string {
	u, err := url.Parse(AbsoluteURL(rawURL, "https"))
	if err != nil {
		return ""
	}
	return u.Hostname()
}
