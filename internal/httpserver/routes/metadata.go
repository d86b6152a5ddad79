package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/handlers"
)

func init() { Register(registerMetadata) }

// metadata fetches leave the server, so they share the write rate limit.
func registerMetadata(r chi.Router, d deps.Deps) {
	r.With(mutating(d)...).Get("/api/metadata", handlers.Metadata(d))
}
