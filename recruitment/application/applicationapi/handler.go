package applicationapi

import (
	"github.com/aarifhsn/nexthire-backend/pkg/iam/auth"
	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
	"github.com/aarifhsn/nexthire-backend/recruitment/application"
	"github.com/aarifhsn/nexthire-backend/recruitment/application/applicationsrv"
	"github.com/aarifhsn/nexthire-backend/recruitment/job"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for application operations
type Handlers struct {
	service *applicationsrv.ApplicationService
}

// NewHandlers creates a new application handlers instance
func NewHandlers(service *applicationsrv.ApplicationService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Apply submits an application to a job for the authenticated user
// POST /api/applications/jobs/:jobId/apply
func (h *Handlers) Apply(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	jobID := kernel.NewJobID(c.Params("jobId"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("jobId", "missing or empty")
	}

	var req application.ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	newApplication, err := h.service.Apply(c.UserContext(), authContext.UserID(), jobID, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    newApplication,
	})
}

// MyApplications lists the authenticated user's applications
// GET /api/applications/my-applications
func (h *Handlers) MyApplications(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	params := application.FilterParams{
		Status: c.Query("status"),
		Date:   c.Query("date"),
		Sort:   c.Query("sort"),
	}

	apps, err := h.service.MyApplications(c.UserContext(), authContext.UserID(), params)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(apps),
		"data":    apps,
	})
}

// JobApplicants lists the applications to a job of the authenticated company
// GET /api/applications/jobs/:jobId/applicants
func (h *Handlers) JobApplicants(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	jobID := kernel.NewJobID(c.Params("jobId"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("jobId", "missing or empty")
	}

	apps, err := h.service.JobApplicants(c.UserContext(), authContext.CompanyID(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(apps),
		"data":    apps,
	})
}

// UpdateStatus changes the status of an application
// PATCH /api/applications/:id/status
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	applicationID := kernel.NewApplicationID(c.Params("id"))
	if applicationID.IsEmpty() {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	var req application.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateStatus(c.UserContext(), authContext.CompanyID(), applicationID, req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    updated,
	})
}

// Withdraw deletes an application of the authenticated user
// DELETE /api/applications/:id
func (h *Handlers) Withdraw(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	applicationID := kernel.NewApplicationID(c.Params("id"))
	if applicationID.IsEmpty() {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.Withdraw(c.UserContext(), authContext.UserID(), applicationID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Application withdrawn successfully",
	})
}

// RegisterRoutes registers all application routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/applications", authMiddleware.Authenticate())

	// Job seeker routes
	api.Post("/jobs/:jobId/apply",
		authMiddleware.RequireScope(auth.ScopeApplicationsApply),
		handlers.Apply,
	)

	api.Get("/my-applications",
		authMiddleware.RequireScope(auth.ScopeApplicationsReadOwn),
		handlers.MyApplications,
	)

	api.Delete("/:id",
		authMiddleware.RequireScope(auth.ScopeApplicationsWithdraw),
		handlers.Withdraw,
	)

	// Company routes
	api.Get("/jobs/:jobId/applicants",
		authMiddleware.RequireScope(auth.ScopeApplicationsReview),
		handlers.JobApplicants,
	)

	api.Patch("/:id/status",
		authMiddleware.RequireScope(auth.ScopeApplicationsReview),
		handlers.UpdateStatus,
	)
}
