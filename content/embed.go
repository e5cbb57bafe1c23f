// Package content embeds the markdown fallback for static pages.
package content

import "embed"

// FS holds <kind>/<lang>/<slug>.md documents.
//
//go:embed page
var FS embed.FS
