// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package form

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"
)

//go:embed assets/form.html.tmpl assets/states.js
var assets embed.FS

// DefaultScriptURL is where the conditional-visibility script is served.
const DefaultScriptURL = "/admin/assets/states.js"

var pageTemplate = template.Must(template.New("form.html.tmpl").Funcs(template.FuncMap{
	"statesJSON": statesJSON,
	"fieldID":    fieldID,
}).ParseFS(assets, "assets/form.html.tmpl"))

// View is the data rendered into the settings page.
type View struct {
	Form      Form
	Lang      string
	Action    string
	ScriptURL string
	// Status is shown after a successful save.
	Status string
	// Summary heads the error box; Errors lists messages not tied to a field.
	Summary string
	Errors  []string
}

// Render writes the settings page.
func Render(w io.Writer, view View) error {
	if view.ScriptURL == "" {
		view.ScriptURL = DefaultScriptURL
	}
	if view.Lang == "" {
		view.Lang = "en"
	}
	if err := pageTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("render settings form: %w", err)
	}
	return nil
}

// StatesScript returns the embedded conditional-visibility script.
func StatesScript() []byte {
	b, err := assets.ReadFile("assets/states.js")
	if err != nil {
		panic(fmt.Sprintf("embedded states.js missing: %v", err))
	}
	return b
}

func statesJSON(s *States) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// fieldID maps "vue[installation]" to "edit-vue-installation".
func fieldID(name string) string {
	r := strings.NewReplacer("][", "-", "[", "-", "]", "", "_", "-")
	return "edit-" + r.Replace(name)
}
