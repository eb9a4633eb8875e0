// internal/app/features/oauth/routes.go
package oauth

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for one provider's login flow. Mounted
// under /auth/<provider>.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLogin)
	r.Get("/callback", h.ServeCallback)
	return r
}
