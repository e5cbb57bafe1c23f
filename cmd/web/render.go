package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/setunayuki/fukko-portal2/internal/i18n"
	mw "github.com/setunayuki/fukko-portal2/internal/middleware"
	"github.com/setunayuki/fukko-portal2/internal/observability"
)

// renderer owns one template set per page: the shared layouts and partials plus the
// page's own "content" definition. In dev mode the sets are reparsed on each request.
type renderer struct {
	fsys  fs.FS
	dev   bool
	funcs template.FuncMap
	pages map[string]*template.Template
}

func newRenderer(fsys fs.FS, dev bool, bundle *i18n.Bundle) (*renderer, error) {
	r := &renderer{
		fsys: fsys,
		dev:  dev,
		funcs: template.FuncMap{
			"now": time.Now,
			"t":   bundle.T,
			// JSON-LD payloads come from seo.JSON, which escapes <, > and &
			"safeJS": func(s string) template.JS { return template.JS(s) }, //nolint:gosec
			"fmtDate": func(t time.Time) string {
				if t.IsZero() {
					return ""
				}
				return t.Format("2006-01-02")
			},
		},
	}
	pages, err := r.parse()
	if err != nil {
		return nil, err
	}
	r.pages = pages
	return r, nil
}

func (r *renderer) parse() (map[string]*template.Template, error) {
	base, err := template.New("_root").Funcs(r.funcs).ParseFS(r.fsys, "layouts/*.tmpl", "partials/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}
	files, err := fs.Glob(r.fsys, "pages/*.tmpl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no page templates found")
	}
	pages := make(map[string]*template.Template, len(files))
	for _, f := range files {
		set, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := set.ParseFS(r.fsys, f); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		pages[strings.TrimSuffix(path.Base(f), ".tmpl")] = set
	}
	return pages, nil
}

func (r *renderer) lookup(page string) (*template.Template, error) {
	pages := r.pages
	if r.dev {
		reparsed, err := r.parse()
		if err != nil {
			return nil, err
		}
		pages = reparsed
	}
	t, ok := pages[page]
	if !ok {
		return nil, fmt.Errorf("unknown page template %q", page)
	}
	return t, nil
}

// render executes the base layout for page into a buffer so template failures still
// produce a clean 500.
func (a *app) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	t, err := a.views.lookup(page)
	if err == nil {
		var buf bytes.Buffer
		if err = t.ExecuteTemplate(&buf, "base", data); err == nil {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(status)
			_, _ = buf.WriteTo(w)
			return
		}
	}
	observability.FromContext(r.Context()).Error("template render failed", zap.String("page", page), zap.Error(err))
	mw.WriteError(w, r, http.StatusInternalServerError, "template error")
}
