package main

import (
	"net/url"

	"github.com/setunayuki/fukko-portal2/internal/facility"
	"github.com/setunayuki/fukko-portal2/internal/seo"
)

var ogLocales = map[string]string{
	"ja": "ja_JP",
	"en": "en_US",
}

// pageMeta builds the head metadata shared by every page.
func (a *app) pageMeta(lang, pagePath, title, description string) seo.Meta {
	brand := a.bundle.T(lang, "brand.name")
	full := brand
	if title != "" && title != brand {
		full = title + " | " + brand
	}
	canonical := a.absURL(pagePath)

	m := seo.Meta{
		Title:       full,
		Description: description,
		Canonical:   canonical,
		OG: seo.OpenGraph{
			Title:       full,
			Description: description,
			Type:        "website",
			URL:         canonical,
			SiteName:    brand,
			Locale:      ogLocales[lang],
		},
		Twitter: seo.Twitter{Card: "summary"},
	}
	if !a.cfg.Web.IsProduction() {
		m.Robots = "noindex, nofollow"
	}
	for _, l := range a.bundle.Supported() {
		m.Alternates = append(m.Alternates, seo.Alternate{Href: a.langURL(pagePath, l), Hreflang: l})
	}
	m.Alternates = append(m.Alternates, seo.Alternate{Href: a.absOrPath(pagePath), Hreflang: "x-default"})
	m.JSONLD = append(m.JSONLD, seo.JSON(seo.WebSite(brand, a.absURL("/"), lang)))
	return m
}

// homeMeta adds an ItemList entry per facility, in store order.
func (a *app) homeMeta(lang string, records []facility.Record) seo.Meta {
	m := a.pageMeta(lang, "/", a.bundle.T(lang, "home.title"), a.bundle.T(lang, "home.description"))
	items := make([]seo.Business, 0, len(records))
	for _, r := range records {
		items = append(items, seo.Business{
			ID:          r.ID,
			Name:        r.Name,
			Type:        seo.BusinessType(r.Category),
			Description: r.Message,
			Image:       r.PrimaryImage(),
			URL:         r.ECURL,
			MapURL:      r.MapURL,
		})
		if m.OG.Image == "" && r.PrimaryImage() != "" {
			m.OG.Image = r.PrimaryImage()
		}
	}
	m.JSONLD = append(m.JSONLD, seo.JSON(seo.ItemList(a.bundle.T(lang, "home.title"), a.absURL("/"), items)))
	return m
}

// absURL resolves p against the configured base URL, or returns "" when none is set.
func (a *app) absURL(p string) string {
	if a.cfg.Web.BaseURL == "" {
		return ""
	}
	return a.cfg.Web.BaseURL + p
}

func (a *app) absOrPath(p string) string {
	if abs := a.absURL(p); abs != "" {
		return abs
	}
	return p
}

func (a *app) langURL(p, lang string) string {
	return a.absOrPath(p) + "?hl=" + url.QueryEscape(lang)
}
