// internal/app/features/userinfo/handler.go
package userinfo

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/waitlist/internal/app/system/auth"
)

// Handler reports the current session's identity.
type Handler struct{}

// NewHandler creates a new userinfo handler.
func NewHandler() *Handler {
	return &Handler{}
}

// ServeUserInfo handles GET /api/me.
//
// Response format:
//
//	{ "isAuthenticated": bool, "email": "...", "fullName": "...", "provider": "..." }
//
// Anonymous requests get isAuthenticated=false with empty fields rather
// than a 401, so the landing page can poll it without error handling.
func (h *Handler) ServeUserInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, ok := auth.CurrentUser(r)
	if !ok {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"isAuthenticated": false,
			"email":           "",
			"fullName":        "",
			"provider":        "",
		})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"isAuthenticated": true,
		"email":           user.Email,
		"fullName":        user.FullName,
		"provider":        user.Provider,
	})
}
