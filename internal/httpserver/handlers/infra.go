package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
)

type componentStatus struct {
	OK              bool   `json:"ok"`
	BookmarksLoaded *int   `json:"bookmarks_loaded,omitempty"`
	Categories      *int   `json:"categories,omitempty"`
	LastReload      string `json:"last_reload,omitempty"`
	Pending         *int   `json:"pending,omitempty"`
	Mode            string `json:"mode,omitempty"`
	Impact          string `json:"impact,omitempty"`
	Error           string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookmarks := d.MemoryIndex.BookmarkCount()
		categories := d.MemoryIndex.CategoryCount()
		lastReload := d.MemoryIndex.GetLastBookmarkReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		components := map[string]componentStatus{
			"index": {
				OK:              true,
				BookmarksLoaded: &bookmarks,
				Categories:      &categories,
				LastReload:      lastReloadStr,
			},
			"redis":    checkRedis(r.Context(), d),
			"enricher": checkEnricher(d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	if redis, exists := components["redis"]; exists && !redis.OK {
		return "degraded" // changes are lost on restart
	}
	if enricher, exists := components["enricher"]; exists && !enricher.OK {
		return "degraded"
	}
	return "optimal"
}

func checkRedis(parent context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{
			OK:     false,
			Mode:   "memory-only",
			Impact: "changes-not-persisted",
			Error:  "store not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "memory-only",
			Impact: "changes-not-persisted",
			Error:  "timeout",
		}
	}

	return componentStatus{OK: true, Mode: "write-through"}
}

func checkEnricher(d deps.Deps) componentStatus {
	if d.Enricher == nil {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "titles-from-domain",
		}
	}
	pending := d.Enricher.Pending()
	return componentStatus{OK: true, Mode: "background", Pending: &pending}
}
