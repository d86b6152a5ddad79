package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
)

type (
	// Registrar mounts a group of routes. Access middlewares are chosen by
	// the registrar itself (see restricted and mutating).
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

var registry []Registrar

// Register is called from init() in each route file.
func Register(reg Registrar) {
	registry = append(registry, reg)
}

// RegisterAll is called once from httpserver.NewRouter.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, reg := range registry {
		reg(r, d)
	}
}
