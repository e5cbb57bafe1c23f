package middleware

import (
	"net/http"
	"time"

	"github.com/setunayuki/fukko-portal2/internal/i18n"
)

// LangCookie persists an explicit ?hl= choice.
const LangCookie = "hl"

// Locale resolves the preferred language from ?hl=, the hl cookie, then Accept-Language,
// and stores it in the request context.
func Locale(bundle *i18n.Bundle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""
			if q := bundle.Normalize(r.URL.Query().Get("hl")); q != "" {
				lang = q
				http.SetCookie(w, &http.Cookie{
					Name:     LangCookie,
					Value:    q,
					Path:     "/",
					MaxAge:   int((365 * 24 * time.Hour).Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			} else if c, err := r.Cookie(LangCookie); err == nil {
				lang = bundle.Normalize(c.Value)
			}
			if lang == "" {
				lang = bundle.Resolve(r.Header.Get("Accept-Language"))
			}
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), lang)))
		})
	}
}

// Lang returns the current language, or "ja" when Locale did not run.
func Lang(r *http.Request) string {
	if lang, ok := LangFromContext(r.Context()); ok {
		return lang
	}
	return "ja"
}
