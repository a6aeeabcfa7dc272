package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/aarifhsn/nexthire-backend/pkg/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nexthire_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nexthire_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	applicationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nexthire_applications_total",
		Help: "Job applications by outcome",
	}, []string{"result"})

	recommendationScanSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "nexthire_recommendations_scored_jobs",
		Help:    "Number of active jobs scored per recommendation request",
		Buckets: prometheus.ExponentialBuckets(10, 4, 6),
	})

	tasksProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nexthire_tasks_processed_total",
		Help: "Background tasks processed by kind and result",
	}, []string{"kind", "result"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nexthire_cache_lookups_total",
		Help: "Catalog cache lookups by key and result",
	}, []string{"key", "result"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveApplication counts an apply attempt: created, duplicate, rejected
func ObserveApplication(result string) {
	applicationsTotal.WithLabelValues(result).Inc()
}

// ObserveRecommendationScan records how many jobs one request scored
func ObserveRecommendationScan(jobs int) {
	recommendationScanSize.Observe(float64(jobs))
}

// ObserveTask counts a processed background task
func ObserveTask(kind, result string) {
	tasksProcessed.WithLabelValues(kind, result).Inc()
}

// ObserveCache counts a cache hit or miss
func ObserveCache(key string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(key, result).Inc()
}

// Middleware records request count and latency, labelled by route pattern
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			var xe *errx.Error
			switch {
			case errors.As(err, &fe):
				status = fe.Code
			case errors.As(err, &xe):
				status = xe.HTTPStatus
			}
		}

		path := c.Route().Path
		if path == "" {
			path = "unmatched"
		}
		ObserveHTTPRequest(c.Method(), path, strconv.Itoa(status), time.Since(start))
		return err
	}
}
