package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/logger"
)

// Search redirects to the best bookmark for ?q=, so the service can be used
// as a browser search engine. No match answers 404.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			writeError(w, http.StatusBadRequest, "missing q parameter")
			return
		}

		active := domain.FilterBookmarks(d.MemoryIndex.GetAllBookmarks(), domain.ListFilter{})
		matches := domain.RankBookmarks(active, query, domain.WithThreshold(d.RankThreshold))
		if len(matches) == 0 {
			d.Logger.Info("no matching bookmarks found",
				logger.String("query", query))
			writeError(w, http.StatusNotFound, "no bookmark matches "+query)
			return
		}

		best := matches[0]
		d.Logger.Info("resolved bookmark",
			logger.String("query", query),
			logger.String("url", best.Bookmark.URL),
			logger.String("score", fmt.Sprintf("%.2f", best.Score)))

		http.Redirect(w, r, best.Bookmark.URL, http.StatusFound)
	}
}
