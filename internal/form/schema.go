// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package form describes the Vue.js settings form and renders it as HTML.
//
// Every library of the catalog gets one fieldset whose elements are named
// with nested keys, e.g. "vue[installation]", so a submission maps back to
// library.LibrarySettingsInput without further configuration.
package form

import (
	"golang.org/x/text/message"

	"github.com/ManuGH/vuejs/internal/library"
)

// ID identifies the settings form.
const ID = "vuejs_settings"

// FieldType is the widget used for a field.
type FieldType string

const (
	TypeSelect    FieldType = "select"
	TypeCheckbox  FieldType = "checkbox"
	TypeTextfield FieldType = "textfield"
)

// Field keys inside each library fieldset.
const (
	KeyInstallation = "installation"
	KeyDevelopment  = "development"
	KeyCDN          = "cdn"
	KeyVersion      = "version"
)

// VersionSize is the width of the version textfield.
const VersionSize = 9

// Option is one choice of a select field.
type Option struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// Condition matches when the element named Field has the given Value.
type Condition struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// States drives conditional visibility on the client.
type States struct {
	Visible   *Condition `json:"visible,omitempty"`
	Invisible *Condition `json:"invisible,omitempty"`
}

// Field is one form element.
type Field struct {
	Name     string    `json:"name"`
	Key      string    `json:"key"`
	Type     FieldType `json:"type"`
	Title    string    `json:"title"`
	Options  []Option  `json:"options,omitempty"`
	Value    string    `json:"value,omitempty"`
	Checked  bool      `json:"checked,omitempty"`
	Required bool      `json:"required,omitempty"`
	Size     int       `json:"size,omitempty"`
	States   *States   `json:"states,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Fieldset groups the fields of one library.
type Fieldset struct {
	Name   string  `json:"name"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Form is the complete settings form.
type Form struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Fieldsets []Fieldset `json:"fieldsets"`
	Submit    string     `json:"submit"`
}

// ElementName returns the nested element name of key in library's fieldset.
func ElementName(lib, key string) string {
	return lib + "[" + key + "]"
}

// Build creates the form for catalog, pre-filled with values. Libraries
// missing from values show their catalog defaults.
func Build(values library.LibrarySettingsInput, catalog library.Catalog, p *message.Printer) Form {
	f := Form{
		ID:        ID,
		Title:     p.Sprintf(TitleForm),
		Fieldsets: make([]Fieldset, 0, len(catalog)),
		Submit:    p.Sprintf(LabelSubmit),
	}

	for _, def := range catalog {
		in, ok := values.Libraries[def.Name]
		if !ok {
			in = InputFromSetting(def.DefaultSetting())
		}
		installationName := ElementName(def.Name, KeyInstallation)

		f.Fieldsets = append(f.Fieldsets, Fieldset{
			Name:  def.Name,
			Title: p.Sprintf(def.Title),
			Fields: []Field{
				{
					Name:     installationName,
					Key:      KeyInstallation,
					Type:     TypeSelect,
					Title:    p.Sprintf(TitleInstallation),
					Options:  installationOptions(in.Installation, p),
					Value:    in.Installation,
					Required: true,
				},
				{
					Name:    ElementName(def.Name, KeyDevelopment),
					Key:     KeyDevelopment,
					Type:    TypeCheckbox,
					Title:   p.Sprintf(TitleDevelopment),
					Checked: in.Development,
				},
				{
					Name:    ElementName(def.Name, KeyCDN),
					Key:     KeyCDN,
					Type:    TypeSelect,
					Title:   p.Sprintf(TitleCDN),
					Options: cdnOptions(in.CDN),
					Value:   in.CDN,
					States: &States{Visible: &Condition{
						Field: installationName,
						Value: string(library.InstallationCDN),
					}},
				},
				{
					Name:  ElementName(def.Name, KeyVersion),
					Key:   KeyVersion,
					Type:  TypeTextfield,
					Title: p.Sprintf(TitleVersion),
					Value: in.Version,
					Size:  VersionSize,
					States: &States{Invisible: &Condition{
						Field: installationName,
						Value: string(library.InstallationLocal),
					}},
				},
			},
		})
	}
	return f
}

func installationOptions(selected string, p *message.Printer) []Option {
	labels := map[library.Installation]string{
		library.InstallationLocal: p.Sprintf(OptionLocal),
		library.InstallationCDN:   p.Sprintf(OptionCDN),
	}
	opts := make([]Option, 0, len(library.Installations))
	for _, inst := range library.Installations {
		opts = append(opts, Option{
			Value:    string(inst),
			Label:    labels[inst],
			Selected: string(inst) == selected,
		})
	}
	return opts
}

func cdnOptions(selected string) []Option {
	opts := make([]Option, 0, len(library.CDNProviders))
	for _, provider := range library.CDNProviders {
		opts = append(opts, Option{
			Value:    string(provider),
			Label:    provider.Label(),
			Selected: string(provider) == selected,
		})
	}
	return opts
}

// WithErrors attaches translated validation messages to the offending fields.
// Errors for elements not on the form are returned so callers can show them
// in the summary.
func (f Form) WithErrors(errs library.ValidationErrors, p *message.Printer) (Form, []string) {
	byKey := errs.ByFormKey()
	var unplaced []string

	f.Fieldsets = append([]Fieldset(nil), f.Fieldsets...)
	for i := range f.Fieldsets {
		fields := make([]Field, len(f.Fieldsets[i].Fields))
		copy(fields, f.Fieldsets[i].Fields)
		for j := range fields {
			if msg, ok := byKey[fields[j].Name]; ok {
				fields[j].Error = p.Sprintf(msg)
				delete(byKey, fields[j].Name)
			}
		}
		f.Fieldsets[i].Fields = fields
	}

	for _, e := range errs {
		if msg, ok := byKey[e.FormKey()]; ok {
			unplaced = append(unplaced, p.Sprintf(msg))
			delete(byKey, e.FormKey())
		}
	}
	return f, unplaced
}

// HasErrors reports whether any field carries an error.
func (f Form) HasErrors() bool {
	for _, fs := range f.Fieldsets {
		for _, field := range fs.Fields {
			if field.Error != "" {
				return true
			}
		}
	}
	return false
}
