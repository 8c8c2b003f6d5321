package objects

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
)

// Router mounts StreamHandler on GET /objects.
func Router(feed Feed, log *slog.Logger, opts ...StreamOption) chi.Router {
	r := chi.NewRouter()
	r.Get("/objects", StreamHandler(feed, log, opts...))
	return r
}
