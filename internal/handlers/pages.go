package handlers

import (
	"github.com/setunayuki/fukko-portal2/internal/nav"
	"github.com/setunayuki/fukko-portal2/internal/seo"
)

// PageData is a generic view model for simple pages using the shared layout.
type PageData struct {
	Title     string
	Lang      string
	SEO       seo.Meta
	Analytics Analytics

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb

	// Optional per-page payload
	Content any
}

// NewPageData fills the layout fields shared by every page.
func NewPageData(lang, path string, analytics Analytics) PageData {
	return PageData{
		Lang:        lang,
		Path:        path,
		Analytics:   analytics,
		Nav:         nav.Build(path),
		Breadcrumbs: nav.Breadcrumbs(path),
	}
}
