// SPDX-License-Identifier: MIT

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys shared by the settings spans.
const (
	LibraryNameKey         = "vuejs.library"
	LibraryInstallationKey = "vuejs.installation"
	LibraryCDNKey          = "vuejs.cdn"
	LibraryVersionKey      = "vuejs.version"
	SettingsBackendKey     = "vuejs.settings.backend"
	ValidationErrorsKey    = "vuejs.validation_errors"

	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// LibraryAttributes describes one library setting.
func LibraryAttributes(name, installation, cdn, version string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(LibraryNameKey, name),
		attribute.String(LibraryInstallationKey, installation),
	}
	if cdn != "" {
		attrs = append(attrs, attribute.String(LibraryCDNKey, cdn))
	}
	if version != "" {
		attrs = append(attrs, attribute.String(LibraryVersionKey, version))
	}
	return attrs
}

// ErrorAttributes creates error-related span attributes.
func ErrorAttributes(errorType string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}

// RecordError marks span as failed with err classified as errorType.
func RecordError(span trace.Span, err error, errorType string) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetAttributes(ErrorAttributes(errorType)...)
	span.SetStatus(codes.Error, errorType)
}
