package signup_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/waitlist/internal/app/features/errors"
	"github.com/dalemusser/waitlist/internal/app/features/signup"
	userstore "github.com/dalemusser/waitlist/internal/app/store/users"
	"github.com/dalemusser/waitlist/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*signup.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	users := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := users.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	return signup.NewHandler(users, uierrors.NewErrorLogger(logger), logger), testutil.NewFixtures(t, db)
}

func postJSON(t *testing.T, h http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestRegisterEmail_Success(t *testing.T) {
	h, fx := newTestHandler(t)

	rec := postJSON(t, h.ServeRegisterEmail, "/api/register-email", `{"email":"ada@example.com"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Message string `json:"message"`
		UserID  string `json:"userId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.UserID == "" {
		t.Error("expected a userId in the response")
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if n := fx.CountUsers(ctx, "ada@example.com"); n != 1 {
		t.Errorf("expected 1 record, found %d", n)
	}
}

func TestRegisterEmail_Idempotent(t *testing.T) {
	h, fx := newTestHandler(t)

	first := postJSON(t, h.ServeRegisterEmail, "/api/register-email", `{"email":"ada@example.com"}`)
	second := postJSON(t, h.ServeRegisterEmail, "/api/register-email", `{"email":"Ada@Example.com"}`)

	var a, b struct {
		UserID string `json:"userId"`
	}
	if err := json.Unmarshal(first.Body.Bytes(), &a); err != nil {
		t.Fatalf("first response: %v", err)
	}
	if err := json.Unmarshal(second.Body.Bytes(), &b); err != nil {
		t.Fatalf("second response: %v", err)
	}
	if a.UserID != b.UserID {
		t.Errorf("repeat signup must return the same id: %q vs %q", a.UserID, b.UserID)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if n := fx.CountUsers(ctx, "ada@example.com"); n != 1 {
		t.Errorf("expected 1 record, found %d", n)
	}
}

func TestRegisterEmail_Invalid(t *testing.T) {
	h, fx := newTestHandler(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{}`},
		{"blank email", `{"email":"   "}`},
		{"no at sign", `{"email":"not-an-email"}`},
		{"malformed json", `{"email":`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, h.ServeRegisterEmail, "/api/register-email", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rec.Code)
			}
		})
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if n := fx.CountUsers(ctx, "not-an-email"); n != 0 {
		t.Errorf("invalid requests must not create records, found %d", n)
	}
}

func TestUpdateDetails_Success(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := postJSON(t, h.ServeUpdateDetails, "/api/update-details",
		`{"email":"ada@example.com","fullName":"Ada Lovelace","country":"UK","profession":"Mathematician","source":"friend"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Message string `json:"message"`
		Data    struct {
			Email      string `json:"email"`
			FullName   string `json:"fullName"`
			Country    string `json:"country"`
			Profession string `json:"profession"`
			Source     string `json:"source"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Data.Email != "ada@example.com" || resp.Data.FullName != "Ada Lovelace" ||
		resp.Data.Country != "UK" || resp.Data.Profession != "Mathematician" || resp.Data.Source != "friend" {
		t.Errorf("returned record mismatch: %+v", resp.Data)
	}
}

func TestUpdateDetails_MissingEmail(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := postJSON(t, h.ServeUpdateDetails, "/api/update-details", `{"fullName":"Ada"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
}

func TestUpdateDetails_StripsMarkup(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := postJSON(t, h.ServeUpdateDetails, "/api/update-details",
		`{"email":"ada@example.com","fullName":"<script>alert(1)</script>Ada","country":"<b>UK</b>"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Data struct {
			FullName string `json:"fullName"`
			Country  string `json:"country"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if strings.Contains(resp.Data.FullName, "<") || resp.Data.FullName != "Ada" {
		t.Errorf("fullName not stripped: %q", resp.Data.FullName)
	}
	if resp.Data.Country != "UK" {
		t.Errorf("country not stripped: %q", resp.Data.Country)
	}
}
