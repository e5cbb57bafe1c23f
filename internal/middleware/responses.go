package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
)

type errorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Status    int    `json:"status"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteError renders an error as JSON for /api/ paths and as plain text elsewhere.
func WriteError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		rid, _ := RequestID(r.Context())
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(errorResponse{
			Error:     errorCode(code),
			Message:   msg,
			Status:    code,
			RequestID: rid,
		})
		return
	}
	http.Error(w, msg, code)
}

func errorCode(code int) string {
	text := strings.ToLower(http.StatusText(code))
	if text == "" {
		return "error"
	}
	return strings.ReplaceAll(text, " ", "_")
}
