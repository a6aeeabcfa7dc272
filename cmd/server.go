package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aarifhsn/nexthire-backend/internal/uploads"
	"github.com/aarifhsn/nexthire-backend/pkg/config"
	"github.com/aarifhsn/nexthire-backend/pkg/errx"
	"github.com/aarifhsn/nexthire-backend/pkg/logx"
	"github.com/aarifhsn/nexthire-backend/pkg/metrics"
	"github.com/aarifhsn/nexthire-backend/pkg/tracing"
	"github.com/aarifhsn/nexthire-backend/recruitment/account/accountapi"
	"github.com/aarifhsn/nexthire-backend/recruitment/application/applicationapi"
	"github.com/aarifhsn/nexthire-backend/recruitment/catalog/catalogapi"
	"github.com/aarifhsn/nexthire-backend/recruitment/company/companyapi"
	"github.com/aarifhsn/nexthire-backend/recruitment/job/jobapi"
	"github.com/aarifhsn/nexthire-backend/recruitment/user/userapi"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// 1. Load configuration and initialize logger
	cfg, err := config.Load()
	if err != nil {
		logx.Fatalf("Invalid configuration: %v", err)
	}
	logx.SetOutput(os.Stdout, !cfg.IsDevelopment())
	logx.SetLevel(logx.ParseLevel(cfg.LogLevel))
	logx.Info("Starting NextHire API Server...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.OTLPEndpoint, "nexthire-api", cfg.Environment)
	if err != nil {
		logx.Fatalf("Failed to initialize tracing: %v", err)
	}

	// 2. Initialize Dependency Container
	container := NewContainer(cfg)
	defer container.Close()

	// 3. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "NextHire API",
		DisableStartupMessage: true,
		BodyLimit:             uploads.MaxBodySize,
		ErrorHandler:          globalErrorHandler(cfg.IsDevelopment()),
	})

	// 4. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(tracing.Middleware())
	app.Use(metrics.Middleware())

	// 5. Health Check and metrics
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"db":     container.DB.PingContext(c.UserContext()) == nil,
			"redis":  container.Redis.Ping(c.UserContext()).Err() == nil,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// 6. Register Routes
	accountapi.RegisterRoutes(app, container.AccountHandlers, container.AuthMiddleware)
	userapi.RegisterRoutes(app, container.UserHandlers, container.AuthMiddleware)
	companyapi.RegisterRoutes(app, container.CompanyHandlers, container.AuthMiddleware)
	jobapi.RegisterRoutes(app, container.JobHandlers, container.AuthMiddleware)
	applicationapi.RegisterRoutes(app, container.ApplicationHandlers, container.AuthMiddleware)
	catalogapi.RegisterRoutes(app, container.CatalogHandlers)

	// Local uploads; with S3 the stored URLs point at the bucket
	if cfg.Storage.Driver == "local" {
		app.Get(uploads.PublicPrefix+"*", container.Uploads.Serve)
	}

	// 7. Start background worker
	container.Worker.Start(ctx)

	// 8. Start Server with Graceful Shutdown
	go func() {
		logx.Infof("Server listening on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	logx.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}
	container.Worker.Wait()

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		logx.Warnf("Failed to flush traces: %v", err)
	}

	logx.Info("Server exited")
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(development bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		// Our custom errx.Error
		var xe *errx.Error
		if errors.As(err, &xe) {
			if xe.Type == errx.TypeInternal {
				logx.Errorf("%s %s: %v", c.Method(), c.Path(), err)
			}
			return c.Status(xe.HTTPStatus).JSON(xe.ToHTTPResponse())
		}

		// A Fiber error (e.g., 404 handler not found)
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{
				"success": false,
				"message": fe.Message,
			})
		}

		// Default unknown error
		logx.Errorf("Internal Server Error: %v", err)
		body := fiber.Map{
			"success": false,
			"message": "Server Error",
		}
		if development {
			body["error"] = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}
}
