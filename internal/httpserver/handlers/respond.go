package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/logger"
)

const maxRequestBody = 64 << 10

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads a single JSON object into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty request body")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// saveBookmarks writes through to the store. Failures are logged, the
// memory index stays authoritative until the next sync.
func saveBookmarks(ctx context.Context, d deps.Deps, bookmarks ...*domain.Bookmark) {
	if d.Store == nil || len(bookmarks) == 0 {
		return
	}
	var err error
	if len(bookmarks) == 1 {
		err = d.Store.SaveBookmark(ctx, bookmarks[0])
	} else {
		err = d.Store.SaveBookmarksMany(ctx, bookmarks)
	}
	if err != nil {
		d.Logger.Warn("failed to save bookmarks to redis",
			logger.Int("count", len(bookmarks)),
			logger.Error(err))
	}
}
