// internal/app/features/oauth/provider.go
package oauth

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
)

// Assertion is the normalized identity a provider hands back after a
// successful login: the claimed email and a display name. Email is the
// join key for the user record; a login whose assertion carries no
// email cannot be linked to anything and fails.
type Assertion struct {
	Email       string
	DisplayName string
}

// Provider is one external identity provider. Adding a provider means
// adding a type here and a route in bootstrap, not runtime
// registration.
type Provider interface {
	// Name is the stable identifier stored on the user record
	// ("google", "linkedin").
	Name() string

	// Endpoint is the provider's OAuth2 authorize/token endpoint pair.
	Endpoint() oauth2.Endpoint

	// Scopes are the OAuth2 scopes needed to read email and name.
	Scopes() []string

	// FetchIdentity calls the provider's userinfo endpoint with a
	// token-bearing client and returns the normalized assertion.
	FetchIdentity(ctx context.Context, client *http.Client) (Assertion, error)
}
