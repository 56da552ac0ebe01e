// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package library

import (
	"errors"
	"strings"
)

// Messages reported to administrators.
const (
	MsgVersionFormat  = "Version format is not correct."
	MsgIllegalChoice  = "An illegal choice has been detected."
	MsgUnknownLibrary = "Unknown library."
	MsgVersionMissing = "Version not found on the selected CDN."
)

// ErrUnknownLibrary is returned when a definition is requested for a name
// that is not part of the catalog.
var ErrUnknownLibrary = errors.New("unknown library")

// ValidationError reports a rejected value for one field of one library.
type ValidationError struct {
	Library string `json:"library,omitempty"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Library == "" {
		return e.Field + ": " + e.Message
	}
	return e.Library + "." + e.Field + ": " + e.Message
}

// FormKey returns the nested form element name, e.g. "vue[version]".
func (e *ValidationError) FormKey() string {
	if e.Library == "" {
		return e.Field
	}
	return e.Library + "[" + e.Field + "]"
}

// NestedKey returns the error key used in API responses, e.g. "vue][version".
func (e *ValidationError) NestedKey() string {
	if e.Library == "" {
		return e.Field
	}
	return e.Library + "][" + e.Field
}

// ValidationErrors collects every rejected field of one submission.
type ValidationErrors []*ValidationError

func (errs ValidationErrors) Error() string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ByFormKey indexes the errors by their nested form element name.
func (errs ValidationErrors) ByFormKey() map[string]string {
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		if _, dup := out[e.FormKey()]; !dup {
			out[e.FormKey()] = e.Message
		}
	}
	return out
}

// AsValidationErrors unwraps err into the list of field errors it carries.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var list ValidationErrors
	if errors.As(err, &list) {
		return list, true
	}
	var single *ValidationError
	if errors.As(err, &single) {
		return ValidationErrors{single}, true
	}
	return nil, false
}
