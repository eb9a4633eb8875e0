// internal/app/features/signup/routes.go
package signup

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for the signup endpoints. Mounted under
// /api.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/register-email", h.ServeRegisterEmail)
	r.Post("/update-details", h.ServeUpdateDetails)
	return r
}
