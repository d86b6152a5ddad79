package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/logger"
)

type createCategoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ListCategories serves GET /api/categories, ordered by name.
func ListCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.MemoryIndex.GetAllCategories())
	}
}

// CreateCategory serves POST /api/categories. Names are unique, ignoring case.
func CreateCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCategoryRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			writeError(w, http.StatusBadRequest, "name must not be empty")
			return
		}

		for _, c := range d.MemoryIndex.GetAllCategories() {
			if strings.EqualFold(c.Name, name) {
				writeError(w, http.StatusConflict, "category already exists")
				return
			}
		}

		c := &domain.Category{
			ID:        uuid.NewString(),
			Name:      name,
			Color:     strings.TrimSpace(req.Color),
			CreatedAt: d.Now(),
		}
		d.MemoryIndex.PutCategory(c)

		if d.Store != nil {
			if err := d.Store.SaveCategory(r.Context(), c); err != nil {
				d.Logger.Warn("failed to save category to redis",
					logger.String("category_id", c.ID),
					logger.Error(err))
			}
		}

		d.Logger.Info("category created",
			logger.String("category_id", c.ID),
			logger.String("name", c.Name))
		writeJSON(w, http.StatusCreated, c)
	}
}

// DeleteCategory serves DELETE /api/categories/{id}.
// Its bookmarks are kept and become uncategorized.
func DeleteCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		detached, ok := d.MemoryIndex.DeleteCategory(id)
		if !ok {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}

		saveBookmarks(r.Context(), d, detached...)
		if d.Store != nil {
			if err := d.Store.DeleteCategory(r.Context(), id); err != nil {
				d.Logger.Warn("failed to delete category from redis",
					logger.String("category_id", id),
					logger.Error(err))
			}
		}

		d.Logger.Info("category deleted",
			logger.String("category_id", id),
			logger.Int("detached_bookmarks", len(detached)))
		w.WriteHeader(http.StatusNoContent)
	}
}
