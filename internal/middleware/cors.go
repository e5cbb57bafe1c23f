package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jub0bs/fcors"
)

// CORS allows anonymous cross-origin reads. An empty origins list allows any origin.
func CORS(origins []string) (func(http.Handler) http.Handler, error) {
	cleaned := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			cleaned = append(cleaned, o)
		}
	}
	var (
		cors func(http.Handler) http.Handler
		err  error
	)
	if len(cleaned) == 0 {
		cors, err = fcors.AllowAccess(fcors.FromAnyOrigin())
	} else {
		cors, err = fcors.AllowAccess(fcors.FromOrigins(cleaned[0], cleaned[1:]...))
	}
	if err != nil {
		return nil, fmt.Errorf("configure cors: %w", err)
	}
	return cors, nil
}
