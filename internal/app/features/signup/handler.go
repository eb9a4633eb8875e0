// internal/app/features/signup/handler.go
package signup

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/waitlist/internal/app/features/errors"
	userstore "github.com/dalemusser/waitlist/internal/app/store/users"
	"github.com/dalemusser/waitlist/internal/app/system/htmlsanitize"
	"github.com/dalemusser/waitlist/internal/app/system/normalize"
	"go.uber.org/zap"
)

// Handler serves the JSON signup endpoints: initial email capture and
// the follow-up details form.
type Handler struct {
	Users  *userstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

// NewHandler creates a signup Handler.
func NewHandler(users *userstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger, ErrLog: errLog}
}

type registerRequest struct {
	Email string `json:"email"`
}

type detailsRequest struct {
	Email      string `json:"email"`
	FullName   string `json:"fullName"`
	Country    string `json:"country"`
	Profession string `json:"profession"`
	Source     string `json:"source"`
}

// ServeRegisterEmail handles POST /api/register-email.
//
// Request:  { "email": "a@x.com" }
// Response: 200 { "message": "...", "userId": "..." }
//
// Validation is deliberately minimal: present and contains "@". The
// real gate is the confirmation the landing page owner runs later; a
// stricter check here just rejects unusual-but-deliverable addresses.
func (h *Handler) ServeRegisterEmail(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email := normalize.Email(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	u, err := h.Users.UpsertEmail(r.Context(), email)
	if err != nil {
		h.ErrLog.Internal(r, "register-email: upsert failed", err)
		writeError(w, http.StatusInternalServerError, "could not save your signup")
		return
	}

	h.Log.Info("waitlist signup",
		zap.String("user_id", u.ID.Hex()))

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "You're on the list.",
		"userId":  u.ID.Hex(),
	})
}

// ServeUpdateDetails handles POST /api/update-details.
//
// Request:  { "email", "fullName", "country", "profession", "source" }
// Response: 200 { "message": "...", "data": record }
//
// All four detail fields are written as supplied; a field the client
// omits clears the stored value. The form always posts the full set, so
// a partial update would only matter to hand-rolled clients.
func (h *Handler) ServeUpdateDetails(w http.ResponseWriter, r *http.Request) {
	var req detailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if normalize.Email(req.Email) == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	u, err := h.Users.UpsertDetails(r.Context(), req.Email, userstore.Details{
		FullName:   htmlsanitize.Strip(req.FullName),
		Country:    htmlsanitize.Strip(req.Country),
		Profession: htmlsanitize.Strip(req.Profession),
		Source:     htmlsanitize.Strip(req.Source),
	})
	if err != nil {
		if errors.Is(err, userstore.ErrEmptyEmail) {
			writeError(w, http.StatusBadRequest, "email is required")
			return
		}
		h.ErrLog.Internal(r, "update-details: upsert failed", err)
		writeError(w, http.StatusInternalServerError, "could not save your details")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Details saved.",
		"data":    u,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}
