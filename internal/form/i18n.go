// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package form

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/ManuGH/vuejs/internal/library"
)

// UI strings. English text doubles as the message key.
const (
	TitleForm          = "Vue.js settings"
	TitleInstallation  = "Installation Type"
	TitleDevelopment   = "Use Development Version"
	TitleCDN           = "Select a CDN provider"
	TitleVersion       = "Version"
	OptionLocal        = "Local library"
	OptionCDN          = "Use an external CDN"
	LabelSubmit        = "Save configuration"
	MsgSaved           = "The configuration options have been saved."
	MsgErrorsSummary   = "The settings were not saved. Please correct the errors below."
	MsgRequiredPattern = "%s field is required."
)

var translations = map[language.Tag]map[string]string{
	language.German: {
		TitleForm:                 "Vue.js-Einstellungen",
		"VueJS Runtime":           "VueJS-Laufzeit",
		"Petite Vue Runtime":      "Petite-Vue-Laufzeit",
		TitleInstallation:         "Installationsart",
		TitleDevelopment:          "Entwicklungsversion verwenden",
		TitleCDN:                  "CDN-Anbieter auswählen",
		TitleVersion:              "Version",
		OptionLocal:               "Lokale Bibliothek",
		OptionCDN:                 "Externes CDN verwenden",
		LabelSubmit:               "Konfiguration speichern",
		MsgSaved:                  "Die Konfigurationsoptionen wurden gespeichert.",
		MsgErrorsSummary:          "Die Einstellungen wurden nicht gespeichert. Bitte korrigieren Sie die Fehler unten.",
		MsgRequiredPattern:        "%s ist ein Pflichtfeld.",
		library.MsgVersionFormat:  "Das Versionsformat ist nicht korrekt.",
		library.MsgIllegalChoice:  "Eine ungültige Auswahl wurde erkannt.",
		library.MsgUnknownLibrary: "Unbekannte Bibliothek.",
		library.MsgVersionMissing: "Version beim ausgewählten CDN nicht gefunden.",
	},
}

// Languages lists the supported UI languages; the first is the fallback.
var Languages = []language.Tag{language.English, language.German}

var (
	messages = buildCatalog()
	matcher  = language.NewMatcher(Languages)
)

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, entries := range translations {
		for key, msg := range entries {
			// SetString only fails for malformed messages; the table is static.
			_ = b.SetString(tag, key, msg)
		}
	}
	return b
}

// NewPrinter returns a printer translating UI strings into tag.
func NewPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(messages))
}

// MatchLanguage picks the supported language best matching an
// Accept-Language header. Unparseable headers yield English.
func MatchLanguage(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Languages[0]
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Languages[0]
	}
	return Languages[idx]
}
