package main

import (
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/setunayuki/fukko-portal2/content"
	"github.com/setunayuki/fukko-portal2/internal/cms"
	"github.com/setunayuki/fukko-portal2/internal/config"
	"github.com/setunayuki/fukko-portal2/internal/facility"
	"github.com/setunayuki/fukko-portal2/internal/handlers"
	"github.com/setunayuki/fukko-portal2/internal/i18n"
	mw "github.com/setunayuki/fukko-portal2/internal/middleware"
	"github.com/setunayuki/fukko-portal2/locales"
	"github.com/setunayuki/fukko-portal2/public"
	"github.com/setunayuki/fukko-portal2/templates"
)

// app holds the dependencies constructed once at startup.
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	store     *facility.Store
	bundle    *i18n.Bundle
	content   *cms.Client
	views     *renderer
	metrics   *mw.Metrics
	analytics handlers.Analytics
}

func newApp(cfg config.Config, logger *zap.Logger) (*app, error) {
	store, err := loadStore(cfg.Data)
	if err != nil {
		return nil, err
	}

	bundle, err := i18n.Load(locales.FS, "ja", []string{"ja", "en"})
	if err != nil {
		return nil, fmt.Errorf("load locales: %w", err)
	}

	var tmplFS fs.FS = templates.FS
	if cfg.Web.DevMode {
		tmplFS = os.DirFS(cfg.Web.TemplatesDir)
	}
	views, err := newRenderer(tmplFS, cfg.Web.DevMode, bundle)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		bundle:    bundle,
		content:   cms.NewClient(cfg.CMS.BaseURL, content.FS, cms.WithCacheTTL(cfg.CMS.CacheTTL)),
		views:     views,
		metrics:   mw.NewMetrics(),
		analytics: handlers.AnalyticsFromConfig(cfg.Analytics),
	}, nil
}

func loadStore(cfg config.DataConfig) (*facility.Store, error) {
	if cfg.FacilitiesFile != "" {
		return facility.LoadFile(cfg.FacilitiesFile)
	}
	return facility.Default()
}

func (a *app) routes() (http.Handler, error) {
	cors, err := mw.CORS(a.cfg.CORS.AllowedOrigins)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// RealIP trusts X-Forwarded-For; only deploy behind a proxy that overwrites it.
	r.Use(middleware.RealIP)
	r.Use(mw.RequestLogger(a.logger))
	r.Use(a.metrics.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", a.metrics.Handler())
	r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(public.Assets())))

	r.Route("/api", func(r chi.Router) {
		r.Use(cors)
		r.Get("/facilities", a.handleFacilities)
		r.Get("/facilities/{id}", a.handleFacility)
	})

	r.Group(func(r chi.Router) {
		r.Use(mw.Locale(a.bundle))
		r.Use(mw.VaryLocale)
		r.Get("/", a.handleHome)
		r.Get("/about", a.handleAbout)
	})

	r.NotFound(mw.Locale(a.bundle)(http.HandlerFunc(a.handleNotFound)).ServeHTTP)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		mw.WriteError(w, r, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})
	return r, nil
}
