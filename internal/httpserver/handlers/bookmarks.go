package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/metadata"
	"github.com/MrSnakeDoc/shelf/internal/scheduler"
)

// bookmarkItem is a listed bookmark; Score is set for search results only.
type bookmarkItem struct {
	*domain.Bookmark
	Score *float64 `json:"score,omitempty"`
}

type listBookmarksResponse struct {
	Items      []bookmarkItem `json:"items"`
	NextCursor *string        `json:"nextCursor"`
}

type createBookmarkRequest struct {
	URL        string  `json:"url"`
	CategoryID *string `json:"categoryId"`
}

type updateBookmarkRequest struct {
	Title string `json:"title"`
}

type setCategoryRequest struct {
	CategoryID *string `json:"categoryId"`
}

type duplicateResponse struct {
	Error     string           `json:"error,omitempty"`
	Duplicate bool             `json:"duplicate"`
	Existing  *domain.Bookmark `json:"existing,omitempty"`
	Kind      domain.MatchKind `json:"kind,omitempty"`
	Score     float64          `json:"score,omitempty"`
}

// ListBookmarks serves GET /api/bookmarks.
// Without ?search= bookmarks are paged by creation time; with it they are
// ranked and cut to ?limit=, and the cursor is ignored.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		limit, err := parseLimit(q.Get("limit"), d.DefaultLimit, d.MaxLimit)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		filter := domain.ListFilter{Sort: domain.ParseSortOrder(q.Get("sort"))}
		if id := strings.TrimSpace(q.Get("categoryId")); id != "" {
			filter.CategoryID = &id
		}
		bookmarks := domain.FilterBookmarks(d.MemoryIndex.GetAllBookmarks(), filter)

		resp := listBookmarksResponse{Items: []bookmarkItem{}}

		if search := q.Get("search"); strings.TrimSpace(search) != "" {
			matches := domain.RankBookmarks(bookmarks, search, domain.WithThreshold(d.RankThreshold))
			if len(matches) > limit {
				matches = matches[:limit]
			}
			for _, m := range matches {
				score := m.Score
				resp.Items = append(resp.Items, bookmarkItem{Bookmark: m.Bookmark, Score: &score})
			}
			writeJSON(w, http.StatusOK, resp)
			return
		}

		var cursor *domain.Cursor
		if raw := q.Get("cursor"); raw != "" {
			c, err := domain.ParseCursor(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			cursor = &c
		}

		page, next := domain.PageBookmarks(bookmarks, filter.Sort, cursor, limit)
		for _, b := range page {
			resp.Items = append(resp.Items, bookmarkItem{Bookmark: b})
		}
		if next != nil {
			s := next.String()
			resp.NextCursor = &s
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// CreateBookmark serves POST /api/bookmarks.
// A likely duplicate is answered with 409 and the existing bookmark.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createBookmarkRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		rawURL := strings.TrimSpace(req.URL)
		if err := metadata.ValidateURL(rawURL); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if !categoryExists(d, req.CategoryID) {
			writeError(w, http.StatusBadRequest, "unknown category")
			return
		}

		active := domain.FilterBookmarks(d.MemoryIndex.GetAllBookmarks(), domain.ListFilter{})
		if match, found := domain.FindDuplicateAbove(active, rawURL, d.StrongMatchThreshold); found {
			d.Logger.Info("duplicate bookmark rejected",
				logger.String("url", rawURL),
				logger.String("existing_id", match.Bookmark.ID),
				logger.String("kind", string(match.Kind)))
			writeJSON(w, http.StatusConflict, duplicateResponse{
				Error:     "bookmark already exists",
				Duplicate: true,
				Existing:  match.Bookmark,
				Kind:      match.Kind,
				Score:     match.Score,
			})
			return
		}

		b := domain.NewBookmark(uuid.NewString(), rawURL, req.CategoryID, d.Now())
		d.MemoryIndex.PutBookmark(b)
		saveBookmarks(r.Context(), d, b)

		if d.Enricher != nil {
			d.Enricher.Enqueue(scheduler.EnrichJob{BookmarkID: b.ID})
		}

		d.Logger.Info("bookmark created",
			logger.String("bookmark_id", b.ID),
			logger.String("url", b.URL))
		writeJSON(w, http.StatusCreated, b)
	}
}

// GetBookmark serves GET /api/bookmarks/{id}.
func GetBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, ok := activeBookmark(d, chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "bookmark not found")
			return
		}
		writeJSON(w, http.StatusOK, b)
	}
}

// UpdateBookmark serves PATCH /api/bookmarks/{id}.
func UpdateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateBookmarkRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		title := strings.TrimSpace(req.Title)
		if title == "" {
			writeError(w, http.StatusBadRequest, "title must not be empty")
			return
		}

		updated, ok := updateActive(d, chi.URLParam(r, "id"), func(b *domain.Bookmark) {
			b.Title = title
		})
		if !ok {
			writeError(w, http.StatusNotFound, "bookmark not found")
			return
		}
		saveBookmarks(r.Context(), d, updated)
		writeJSON(w, http.StatusOK, updated)
	}
}

// SetBookmarkCategory serves PUT /api/bookmarks/{id}/category.
// A null categoryId moves the bookmark out of any category.
func SetBookmarkCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req setCategoryRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if !categoryExists(d, req.CategoryID) {
			writeError(w, http.StatusBadRequest, "unknown category")
			return
		}

		updated, ok := updateActive(d, chi.URLParam(r, "id"), func(b *domain.Bookmark) {
			b.CategoryID = req.CategoryID
		})
		if !ok {
			writeError(w, http.StatusNotFound, "bookmark not found")
			return
		}
		saveBookmarks(r.Context(), d, updated)
		writeJSON(w, http.StatusOK, updated)
	}
}

// DeleteBookmark serves DELETE /api/bookmarks/{id}.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !d.MemoryIndex.DeleteBookmark(id) {
			writeError(w, http.StatusNotFound, "bookmark not found")
			return
		}

		if d.Store != nil {
			if err := d.Store.DeleteBookmark(r.Context(), id); err != nil {
				d.Logger.Warn("failed to delete bookmark from redis",
					logger.String("bookmark_id", id),
					logger.Error(err))
			}
		}

		d.Logger.Info("bookmark deleted", logger.String("bookmark_id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

// FindDuplicate serves GET /api/bookmarks/duplicate?url=.
func FindDuplicate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawURL := strings.TrimSpace(r.URL.Query().Get("url"))
		if rawURL == "" {
			writeError(w, http.StatusBadRequest, "missing url parameter")
			return
		}

		active := domain.FilterBookmarks(d.MemoryIndex.GetAllBookmarks(), domain.ListFilter{})
		match, found := domain.FindDuplicateAbove(active, rawURL, d.StrongMatchThreshold)
		if !found {
			writeJSON(w, http.StatusOK, duplicateResponse{})
			return
		}
		writeJSON(w, http.StatusOK, duplicateResponse{
			Duplicate: true,
			Existing:  match.Bookmark,
			Kind:      match.Kind,
			Score:     match.Score,
		})
	}
}

// RefreshBookmark serves POST /api/bookmarks/{id}/refresh: the cached page
// metadata is dropped and enrichment runs again, overwriting user edits.
func RefreshBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, ok := activeBookmark(d, chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "bookmark not found")
			return
		}
		if d.Enricher == nil {
			writeError(w, http.StatusServiceUnavailable, "metadata enrichment disabled")
			return
		}

		if d.Store != nil {
			if err := d.Store.InvalidateMetadata(r.Context(), b.URL); err != nil {
				d.Logger.Warn("failed to invalidate cached metadata",
					logger.String("url", b.URL),
					logger.Error(err))
			}
		}

		if !d.Enricher.Enqueue(scheduler.EnrichJob{BookmarkID: b.ID, Overwrite: true}) {
			writeError(w, http.StatusServiceUnavailable, "enrich queue full, retry later")
			return
		}
		w.WriteHeader(http.StatusAccepted)
	}
}

func activeBookmark(d deps.Deps, id string) (*domain.Bookmark, bool) {
	b, ok := d.MemoryIndex.GetBookmark(id)
	if !ok || b.Disabled {
		return nil, false
	}
	return b, true
}

// updateActive applies fn to an enabled bookmark and stamps UpdatedAt.
func updateActive(d deps.Deps, id string, fn func(*domain.Bookmark)) (*domain.Bookmark, bool) {
	if _, ok := activeBookmark(d, id); !ok {
		return nil, false
	}
	now := d.Now()
	return d.MemoryIndex.UpdateBookmark(id, func(b *domain.Bookmark) {
		fn(b)
		b.UpdatedAt = now
	})
}

func categoryExists(d deps.Deps, id *string) bool {
	if id == nil {
		return true
	}
	_, ok := d.MemoryIndex.GetCategory(*id)
	return ok
}

// parseLimit reads ?limit=, falling back to def and clamping to maxLimit.
func parseLimit(raw string, def, maxLimit int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("limit must be a positive integer, got %q", raw)
	}
	if maxLimit > 0 && n > maxLimit {
		return maxLimit, nil
	}
	return n, nil
}
