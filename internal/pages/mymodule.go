// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package pages

// CustomPagePath is the path of the example module's page.
const CustomPagePath = "vueTeste/custom-page"

// RegisterMyModule adds the example module's single page.
func RegisterMyModule(r *Registry) error {
	return r.Register(Item{
		Path:        CustomPagePath,
		Title:       "Custom Page",
		Description: "A custom page for my module.",
		Markup:      "Hello, world!",
	})
}
