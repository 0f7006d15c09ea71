// Package locales embeds the UI message bundles, one JSON file per language.
package locales

import "embed"

//go:embed *.json
var FS embed.FS
