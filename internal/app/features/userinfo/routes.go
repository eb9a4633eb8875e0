// internal/app/features/userinfo/routes.go
package userinfo

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for session identity. Mounted under
// /api/me.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeUserInfo)
	return r
}
