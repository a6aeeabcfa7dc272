package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aarifhsn/nexthire-backend/pkg/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalErrorHandler(t *testing.T) {
	registry := errx.NewRegistry("TEST")
	errMissing := registry.Register("MISSING", errx.TypeNotFound, http.StatusNotFound, "Thing not found")

	tests := []struct {
		name        string
		development bool
		err         error
		status      int
		message     string
		wantDetail  bool
	}{
		{"registered error", false, registry.New(errMissing), http.StatusNotFound, "Thing not found", false},
		{"fiber error", false, fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "Method Not Allowed", false},
		{"unknown error hidden", false, errors.New("pq: boom"), http.StatusInternalServerError, "Server Error", false},
		{"unknown error in development", true, errors.New("pq: boom"), http.StatusInternalServerError, "Server Error", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: globalErrorHandler(tt.development)})
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.message, body["message"])
			_, hasDetail := body["error"]
			assert.Equal(t, tt.wantDetail, hasDetail)
		})
	}
}
