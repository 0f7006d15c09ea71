// Package templates embeds the html/template sources: one base layout, shared
// partials and one file per page defining the "content" block.
package templates

import "embed"

//go:embed layouts/*.tmpl partials/*.tmpl pages/*.tmpl
var FS embed.FS
