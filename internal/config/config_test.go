package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "5000" {
		t.Errorf("expected default port 5000, got %s", cfg.Server.Port)
	}
	if cfg.Server.Addr() != ":5000" {
		t.Errorf("unexpected addr %s", cfg.Server.Addr())
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.ShutdownTimeout != defaultShutdownTimeout {
		t.Errorf("unexpected shutdown timeout: %s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Web.Environment != "local" || cfg.Web.IsProduction() {
		t.Errorf("expected local environment, got %s", cfg.Web.Environment)
	}
	if cfg.Web.DevMode {
		t.Errorf("dev mode should default to false")
	}
	if cfg.Web.TemplatesDir != "templates" {
		t.Errorf("unexpected templates dir %s", cfg.Web.TemplatesDir)
	}
	if cfg.CMS.CacheTTL != 5*time.Minute {
		t.Errorf("unexpected cms cache ttl: %s", cfg.CMS.CacheTTL)
	}
	if len(cfg.CORS.AllowedOrigins) != 0 {
		t.Errorf("expected no cors origins, got %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("unexpected log level %s", cfg.Log.Level)
	}
}

func TestLoadPortPrecedence(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "platform port", env: map[string]string{"PORT": "9000"}, want: "9000"},
		{name: "portal port wins", env: map[string]string{"PORT": "9000", "FUKKO_PORTAL_PORT": "9100"}, want: "9100"},
		{name: "colon prefix trimmed", env: map[string]string{"FUKKO_PORTAL_PORT": ":7000"}, want: "7000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(context.Background(), WithEnvMap(tc.env), WithoutSystemEnv(), WithEnvFile(""))
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if cfg.Server.Port != tc.want {
				t.Fatalf("expected port %s, got %s", tc.want, cfg.Server.Port)
			}
		})
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"FUKKO_PORTAL_READ_TIMEOUT":      "20s",
		"FUKKO_PORTAL_WRITE_TIMEOUT":     "bogus",
		"FUKKO_PORTAL_ENV":               "PROD",
		"DEV":                            "1",
		"FUKKO_PORTAL_BASE_URL":          "https://portal.example.jp/",
		"FUKKO_PORTAL_FACILITIES_FILE":   " /srv/facilities.yaml ",
		"FUKKO_PORTAL_CMS_BASE_URL":      "https://cms.example.jp",
		"FUKKO_PORTAL_CMS_CACHE_TTL":     "30s",
		"FUKKO_PORTAL_CORS_ORIGINS":      "https://a.example.jp, ,https://b.example.jp",
		"FUKKO_PORTAL_GA_MEASUREMENT_ID": "G-TEST",
		"LOG_LEVEL":                      "DEBUG",
	}
	cfg, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.ReadTimeout != 20*time.Second {
		t.Errorf("unexpected read timeout %s", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != defaultWriteTimeout {
		t.Errorf("invalid duration should fall back, got %s", cfg.Server.WriteTimeout)
	}
	if !cfg.Web.IsProduction() {
		t.Errorf("expected prod environment, got %s", cfg.Web.Environment)
	}
	if !cfg.Web.DevMode {
		t.Errorf("DEV=1 should enable dev mode")
	}
	if cfg.Web.BaseURL != "https://portal.example.jp" {
		t.Errorf("unexpected base url %s", cfg.Web.BaseURL)
	}
	if cfg.Data.FacilitiesFile != "/srv/facilities.yaml" {
		t.Errorf("unexpected facilities file %q", cfg.Data.FacilitiesFile)
	}
	if cfg.CMS.BaseURL != "https://cms.example.jp" || cfg.CMS.CacheTTL != 30*time.Second {
		t.Errorf("unexpected cms config %+v", cfg.CMS)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example.jp" {
		t.Errorf("unexpected cors origins %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Analytics.GA4MeasurementID != "G-TEST" {
		t.Errorf("unexpected ga id %s", cfg.Analytics.GA4MeasurementID)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("unexpected log level %s", cfg.Log.Level)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# local overrides\nexport FUKKO_PORTAL_PORT=\"6000\"\nFUKKO_PORTAL_ENV='staging'\ninvalid line\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}

	cfg, err := Load(context.Background(), WithoutSystemEnv(), WithEnvFile(path))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "6000" {
		t.Errorf("expected port from .env, got %s", cfg.Server.Port)
	}
	if cfg.Web.Environment != "staging" {
		t.Errorf("expected staging, got %s", cfg.Web.Environment)
	}

	cfg, err = Load(context.Background(), WithoutSystemEnv(), WithEnvFile(path), WithEnvMap(map[string]string{"FUKKO_PORTAL_PORT": "6100"}))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "6100" {
		t.Errorf("env map should override .env, got %s", cfg.Server.Port)
	}

	if _, err := Load(context.Background(), WithoutSystemEnv(), WithEnvFile(filepath.Join(dir, "missing.env"))); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}

func TestLoadValidation(t *testing.T) {
	_, err := Load(context.Background(),
		WithEnvMap(map[string]string{"FUKKO_PORTAL_PORT": "http", "FUKKO_PORTAL_IDLE_TIMEOUT": "-1s"}),
		WithoutSystemEnv(), WithEnvFile(""))
	if err == nil {
		t.Fatal("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	fields := verr.Fields()
	if len(fields) != 2 || fields[0] != "Server.Port" || fields[1] != "Server.IdleTimeout" {
		t.Fatalf("unexpected fields %v", fields)
	}
}
