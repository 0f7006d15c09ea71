// Package content embeds the guide documents and legal pages shipped with the site.
// Files live under <kind>/<lang>/<slug>.md.
package content

import "embed"

//go:embed docs legal
var FS embed.FS
