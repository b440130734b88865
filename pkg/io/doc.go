// Package io reads and writes templates and recipes as JSON or TOML.
//
// # Formats
//
// The format is chosen from the file extension by [FormatFromPath]:
// ".json" or ".toml". Both encode the same fields; TOML keys are snake_case.
//
//	name = "Weeknight"
//	size = { name = "card-4x6", width = 101.6, height = 152.4, type = "card" }
//
//	[[sections]]
//	id = "title"
//	type = "title"
//	position = { x = 5, y = 4 }
//	size = { width = 90, height = 10 }
//	style = { font_size = 18, padding = 2 }
//
// Unknown keys are rejected so that typos do not silently produce a template
// with default values.
//
// # Import
//
// [ReadTemplate] and [ImportTemplate] normalize what they read:
//   - the print size is resolved by name from the catalog
//   - missing template and section ids are generated
//   - the template is never a default template
//   - every section is clamped into the card
//
// and then validate the result. Recipes are validated and their tags
// normalized.
//
// # Export
//
// [WriteTemplate] and [ExportTemplate] write a template unchanged, so an
// exported file re-imports to the same layout.
package io
