// internal/app/features/oauth/linkedin.go
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dalemusser/waitlist/internal/domain/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/linkedin"
)

// LinkedIn is the LinkedIn identity provider, using the OpenID Connect
// userinfo endpoint.
type LinkedIn struct{}

func (LinkedIn) Name() string { return models.ProviderLinkedIn }

func (LinkedIn) Endpoint() oauth2.Endpoint { return linkedin.Endpoint }

func (LinkedIn) Scopes() []string {
	return []string{"openid", "profile", "email"}
}

// linkedinUserInfo is the subset of LinkedIn's OIDC userinfo response
// we use. Email may be absent when the member's address is unconfirmed.
type linkedinUserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FetchIdentity retrieves the signed-in member's email and name from
// LinkedIn's userinfo endpoint.
func (LinkedIn) FetchIdentity(ctx context.Context, client *http.Client) (Assertion, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://api.linkedin.com/v2/userinfo", nil)
	if err != nil {
		return Assertion{}, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return Assertion{}, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Assertion{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info linkedinUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return Assertion{}, fmt.Errorf("failed to decode user info: %w", err)
	}

	return Assertion{Email: info.Email, DisplayName: info.Name}, nil
}
