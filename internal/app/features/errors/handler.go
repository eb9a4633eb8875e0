// internal/app/features/errors/handler.go
package errors

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
)

// reasonMessages maps the error codes the OAuth flow redirects with to
// copy a person can act on. Unknown codes fall back to a generic line so
// the page never echoes attacker-chosen text.
var reasonMessages = map[string]string{
	"denied":        "Sign-in was cancelled. You can try again whenever you like.",
	"invalid_state": "The sign-in link expired or was already used. Please start again.",
	"no_email":      "Your account did not share an email address, so we could not sign you in.",
	"internal":      "Something went wrong on our side. Please try again in a moment.",
}

const fallbackMessage = "Something went wrong. Please try again."

var pageTmpl = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Sign-in problem</title>
</head>
<body>
  <h1>Sign-in problem</h1>
  <p>{{.Message}}</p>
  <p><a href="{{.BackURL}}">Back to the waitlist</a></p>
</body>
</html>
`))

// Handler renders the error landing page the OAuth flow redirects to.
type Handler struct {
	SiteURL string
}

// NewHandler constructs an errors Handler. siteURL is where the "back"
// link points; empty means the service root.
func NewHandler(siteURL string) *Handler {
	return &Handler{SiteURL: siteURL}
}

// ServePage handles GET /error.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	msg, ok := reasonMessages[query.Get(r, "reason")]
	if !ok {
		msg = fallbackMessage
	}

	back := h.SiteURL
	if back == "" {
		back = "/"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = pageTmpl.Execute(w, struct {
		Message string
		BackURL string
	}{Message: msg, BackURL: back})
}
