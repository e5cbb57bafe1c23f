package main

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/setunayuki/fukko-portal2/internal/cms"
	"github.com/setunayuki/fukko-portal2/internal/facility"
	"github.com/setunayuki/fukko-portal2/internal/handlers"
	mw "github.com/setunayuki/fukko-portal2/internal/middleware"
	"github.com/setunayuki/fukko-portal2/internal/observability"
	"github.com/setunayuki/fukko-portal2/internal/seo"
)

// handleHome renders the listing under the initial selection. Later selections happen in
// the browser against the embedded partition.
func (a *app) handleHome(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	page := handlers.NewPageData(lang, "/", a.analytics)
	page.Title = a.bundle.T(lang, "home.title")
	page.SEO = a.homeMeta(lang, a.store.AllRecords())

	vm, err := handlers.BuildHomeData(page, a.store, facility.NewSelection())
	if err != nil {
		observability.FromContext(r.Context()).Error("build home view", zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	a.render(w, r, http.StatusOK, "home", vm)
}

func (a *app) handleAbout(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	cp, err := a.content.GetContentPage(r.Context(), "page", "about", lang)
	if errors.Is(err, cms.ErrNotFound) {
		a.handleNotFound(w, r)
		return
	}
	if err != nil {
		observability.FromContext(r.Context()).Error("load content page", zap.String("slug", "about"), zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	page := handlers.NewPageData(lang, "/about", a.analytics)
	page.Title = cp.Title
	page.Content = cp
	title := cp.SEO.Title
	if title == "" {
		title = cp.Title
	}
	description := cp.SEO.Description
	if description == "" {
		description = cp.Summary
	}
	page.SEO = a.pageMeta(lang, "/about", title, description)
	if cp.SEO.Title != "" {
		// front matter titles already carry the brand
		page.SEO.Title = cp.SEO.Title
		page.SEO.OG.Title = cp.SEO.Title
	}
	if cp.SEO.OGImage != "" {
		page.SEO.OG.Image = cp.SEO.OGImage
	}
	page.SEO.OG.Type = "article"
	page.SEO.JSONLD = append(page.SEO.JSONLD, seo.JSON(seo.BreadcrumbList([]seo.BreadcrumbItem{
		{Name: a.bundle.T(lang, "nav.home"), Item: a.absOrPath("/")},
		{Name: cp.Title, Item: a.absOrPath("/about")},
	})))
	a.render(w, r, http.StatusOK, "about", page)
}

func (a *app) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		mw.WriteError(w, r, http.StatusNotFound, "not found")
		return
	}
	lang := mw.Lang(r)
	page := handlers.NewPageData(lang, r.URL.Path, a.analytics)
	page.Title = a.bundle.T(lang, "error.notfound")
	page.SEO = a.pageMeta(lang, r.URL.Path, page.Title, "")
	page.SEO.Robots = "noindex"
	a.render(w, r, http.StatusNotFound, "error", page)
}
