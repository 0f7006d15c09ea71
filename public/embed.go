// Package public embeds the static files served at the site root (/assets, /img).
package public

import "embed"

//go:embed assets img
var FS embed.FS
