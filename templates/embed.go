// Package templates embeds the HTML layouts, partials and pages.
package templates

import "embed"

// FS holds layouts/*.tmpl, partials/*.tmpl and pages/*.tmpl.
//
//go:embed layouts partials pages
var FS embed.FS
