package accountapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aarifhsn/nexthire-backend/pkg/errx"
	"github.com/aarifhsn/nexthire-backend/pkg/iam/auth"
	"github.com/aarifhsn/nexthire-backend/recruitment/account/accountsrv"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every case below is rejected before a repository is consulted.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	tokens := auth.NewJWTService("test-secret", time.Hour, "test")
	svc := accountsrv.NewAccountService(nil, nil, auth.NewBcryptPasswordService(4), tokens)
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var e *errx.Error
			if errors.As(err, &e) {
				return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
			}
			return c.SendStatus(http.StatusInternalServerError)
		},
	})
	RegisterRoutes(app, NewHandlers(svc), auth.NewAuthMiddleware(tokens, nil))
	return app
}

func TestRejectedRequests(t *testing.T) {
	app := setupTestApp(t)

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		token   string
		status  int
		message string
	}{
		{"register missing password", http.MethodPost, "/api/auth/register", `{"name":"Ann","email":"ann@example.com","role":"USER"}`, "", http.StatusBadRequest, "Please add all required fields"},
		{"register malformed body", http.MethodPost, "/api/auth/register", `{"name":`, "", http.StatusBadRequest, ""},
		{"login missing role", http.MethodPost, "/api/auth/login", `{"email":"ann@example.com","password":"secret"}`, "", http.StatusBadRequest, "Please add all fields"},
		{"me anonymous", http.MethodGet, "/api/auth/me", "", "", http.StatusUnauthorized, ""},
		{"me forged token", http.MethodGet, "/api/auth/me", "", "not-a-jwt", http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)

			if tt.message != "" {
				var body map[string]any
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tt.message, body["message"])
			}
		})
	}
}
