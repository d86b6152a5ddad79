package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/handlers"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	read := r.With(restricted(d)...)
	read.Get("/api/bookmarks", handlers.ListBookmarks(d))
	read.Get("/api/bookmarks/duplicate", handlers.FindDuplicate(d))
	read.Get("/api/bookmarks/{id}", handlers.GetBookmark(d))

	write := r.With(mutating(d)...)
	write.Post("/api/bookmarks", handlers.CreateBookmark(d))
	write.Patch("/api/bookmarks/{id}", handlers.UpdateBookmark(d))
	write.Put("/api/bookmarks/{id}/category", handlers.SetBookmarkCategory(d))
	write.Post("/api/bookmarks/{id}/refresh", handlers.RefreshBookmark(d))
	write.Delete("/api/bookmarks/{id}", handlers.DeleteBookmark(d))
}
