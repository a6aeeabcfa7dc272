package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aarifhsn/nexthire-backend/pkg/errx"
	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	known map[string]kernel.Role
	err   error
}

func (s *stubResolver) SubjectExists(_ context.Context, role kernel.Role, id string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	r, ok := s.known[id]
	return ok && r == role, nil
}

func setupTestApp(t *testing.T, tokens TokenService, resolver SubjectResolver) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var e *errx.Error
			if errors.As(err, &e) {
				return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
			}
			return c.SendStatus(http.StatusInternalServerError)
		},
	})
	mw := NewAuthMiddleware(tokens, resolver)
	app.Get("/company-only", mw.Authenticate(), mw.RequireScope(ScopeJobsWrite), func(c *fiber.Ctx) error {
		ac, _ := GetAuthContext(c)
		return c.SendString(ac.SubjectID)
	})
	app.Get("/users-only", mw.Authenticate(), mw.RequireRole(kernel.RoleUser), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func request(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestJWTServiceRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, "nexthire")

	token, err := svc.GenerateAccessToken("c-1", kernel.RoleCompany)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "c-1", claims.SubjectID)
	assert.Equal(t, kernel.RoleCompany, claims.Role)

	other := NewJWTService("different", time.Hour, "nexthire")
	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTServiceRejectsExpiredTokens(t *testing.T) {
	svc := NewJWTService("secret", time.Minute, "nexthire")
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := svc.GenerateAccessToken("u-1", kernel.RoleUser)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	tokens := NewJWTService("secret", time.Hour, "nexthire")
	resolver := &stubResolver{known: map[string]kernel.Role{
		"c-1": kernel.RoleCompany,
		"u-1": kernel.RoleUser,
	}}
	app := setupTestApp(t, tokens, resolver)

	companyToken, _ := tokens.GenerateAccessToken("c-1", kernel.RoleCompany)
	userToken, _ := tokens.GenerateAccessToken("u-1", kernel.RoleUser)
	ghostToken, _ := tokens.GenerateAccessToken("c-9", kernel.RoleCompany)
	badRoleToken, _ := tokens.GenerateAccessToken("c-1", kernel.Role("ADMIN"))

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{"no token", "/company-only", "", http.StatusUnauthorized},
		{"garbage token", "/company-only", "not-a-jwt", http.StatusUnauthorized},
		{"deleted subject", "/company-only", ghostToken, http.StatusUnauthorized},
		{"unknown role", "/company-only", badRoleToken, http.StatusUnauthorized},
		{"company with scope", "/company-only", companyToken, http.StatusOK},
		{"user lacks scope", "/company-only", userToken, http.StatusForbidden},
		{"user role allowed", "/users-only", userToken, http.StatusOK},
		{"company role refused", "/users-only", companyToken, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, request(t, app, tt.path, tt.token))
		})
	}
}

func TestExtractToken(t *testing.T) {
	tok, err := ExtractToken("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	_, err = ExtractToken("")
	assert.True(t, errx.HasCode(err, CodeMissingToken))

	_, err = ExtractToken("Token abc")
	assert.True(t, errx.HasCode(err, CodeInvalidToken))
}

func TestBcryptPasswordService(t *testing.T) {
	svc := NewBcryptPasswordService(4)
	hash, err := svc.Hash("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)
	assert.True(t, svc.Compare(hash, "hunter2"))
	assert.False(t, svc.Compare(hash, "hunter3"))
}

func TestRoleScopes(t *testing.T) {
	assert.True(t, RoleHasScope(kernel.RoleCompany, ScopeApplicationsReview))
	assert.False(t, RoleHasScope(kernel.RoleUser, ScopeApplicationsReview))
	assert.True(t, RoleHasScope(kernel.RoleUser, ScopeApplicationsWithdraw))
	assert.False(t, RoleHasScope(kernel.RoleCompany, ScopeApplicationsWithdraw))
}
