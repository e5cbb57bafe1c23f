// Package locales embeds the UI translation catalogs.
package locales

import "embed"

// FS holds one <lang>.json catalog per supported language.
//
//go:embed *.json
var FS embed.FS
