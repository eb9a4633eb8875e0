// internal/app/features/errors/routes.go
package errors

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for the error page. Mounted under /error.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServePage)
	return r
}
