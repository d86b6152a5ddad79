package handlers

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/metadata"
)

// Metadata serves GET /api/metadata?url=. Unreachable pages still answer 200
// with fallback values.
func Metadata(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawURL := strings.TrimSpace(r.URL.Query().Get("url"))
		if err := metadata.ValidateURL(rawURL); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		m, err := d.Fetcher.Fetch(r.Context(), rawURL)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}
