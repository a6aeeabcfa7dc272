package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aarifhsn/nexthire-backend/pkg/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/api/jobs/:slug", func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/jobs/:slug", "200"))

	for _, slug := range []string{"a", "b"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/jobs/"+slug, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/jobs/:slug", "200"))
	assert.Equal(t, 2.0, after-before)
}

func TestObserveCache(t *testing.T) {
	before := testutil.ToFloat64(cacheLookups.WithLabelValues("skills", "hit"))
	ObserveCache("skills", true)
	assert.Equal(t, 1.0, testutil.ToFloat64(cacheLookups.WithLabelValues("skills", "hit"))-before)
}

func TestMiddlewareUsesErrorStatus(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(http.StatusNotFound)
		},
	})
	app.Use(Middleware())
	app.Get("/missing", func(c *fiber.Ctx) error {
		return errx.New("X_NOT_FOUND", errx.TypeNotFound, "missing")
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/missing", "404"))
	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/missing", "404"))-before)
}
