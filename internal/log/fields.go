// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID = "request_id"
	FieldTraceID   = "trace_id"
	FieldSpanID    = "span_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// Library fields
	FieldLibrary      = "library"
	FieldInstallation = "installation"
	FieldCDN          = "cdn"
	FieldVersion      = "lib_version"
	FieldOldVersion   = "old_version"
	FieldNewVersion   = "new_version"
	FieldExtension    = "extension"

	// Storage fields
	FieldBackend = "backend"

	// Path / URL fields
	FieldPath = "path"
	FieldURL  = "url"
)
