package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/handlers"
)

func init() { Register(registerCategories) }

func registerCategories(r chi.Router, d deps.Deps) {
	r.With(restricted(d)...).Get("/api/categories", handlers.ListCategories(d))

	write := r.With(mutating(d)...)
	write.Post("/api/categories", handlers.CreateCategory(d))
	write.Delete("/api/categories/{id}", handlers.DeleteCategory(d))
}
