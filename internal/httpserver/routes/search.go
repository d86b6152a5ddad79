package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/handlers"
)

func init() { Register(registerSearch) }

func registerSearch(r chi.Router, d deps.Deps) {
	r.With(restricted(d)...).Get("/search", handlers.Search(d))
}
