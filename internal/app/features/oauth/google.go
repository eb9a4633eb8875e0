// internal/app/features/oauth/google.go
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dalemusser/waitlist/internal/domain/models"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Google is the Google identity provider.
type Google struct{}

func (Google) Name() string { return models.ProviderGoogle }

func (Google) Endpoint() oauth2.Endpoint { return google.Endpoint }

func (Google) Scopes() []string {
	return []string{
		"openid",
		"https://www.googleapis.com/auth/userinfo.email",
		"https://www.googleapis.com/auth/userinfo.profile",
	}
}

// googleUserInfo is the subset of Google's userinfo response we use.
type googleUserInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// FetchIdentity retrieves the signed-in user's email and name from
// Google's userinfo endpoint.
func (Google) FetchIdentity(ctx context.Context, client *http.Client) (Assertion, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.googleapis.com/oauth2/v2/userinfo", nil)
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

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return Assertion{}, fmt.Errorf("failed to decode user info: %w", err)
	}

	return Assertion{Email: info.Email, DisplayName: info.Name}, nil
}
