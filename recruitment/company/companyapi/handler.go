package companyapi

import (
	"github.com/aarifhsn/nexthire-backend/internal/uploads"
	"github.com/aarifhsn/nexthire-backend/pkg/iam/auth"
	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
	"github.com/aarifhsn/nexthire-backend/recruitment/application"
	"github.com/aarifhsn/nexthire-backend/recruitment/company"
	"github.com/aarifhsn/nexthire-backend/recruitment/company/companysrv"
	"github.com/aarifhsn/nexthire-backend/recruitment/job"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for company operations
type Handlers struct {
	service *companysrv.CompanyService
}

// NewHandlers creates a new company handlers instance
func NewHandlers(service *companysrv.CompanyService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// GetProfile returns the profile of the authenticated company
// GET /api/companies/profile
func (h *Handlers) GetProfile(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	profile, err := h.service.GetProfile(c.UserContext(), authContext.CompanyID())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    profile,
	})
}

// UpdateProfile applies a partial update to the authenticated company
// PUT /api/companies/profile
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req company.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return company.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	profile, err := h.service.UpdateProfile(c.UserContext(), authContext.CompanyID(), req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    profile,
	})
}

// ListJobs lists every posting of the authenticated company
// GET /api/companies/jobs
func (h *Handlers) ListJobs(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	params := job.CompanyJobsParams{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", job.DefaultPageSize),
	}

	page, err := h.service.Jobs(c.UserContext(), authContext.CompanyID(), params)
	if err != nil {
		return err
	}

	return c.JSON(job.NewListResponse(page))
}

// ListApplicants lists applications across the authenticated company's jobs
// GET /api/companies/applicants
func (h *Handlers) ListApplicants(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	params := application.FilterParams{
		Status:          c.Query("status"),
		Date:            c.Query("date"),
		ExperienceLevel: c.Query("experienceLevel"),
		Search:          c.Query("search"),
		Sort:            c.Query("sort"),
		Page:            c.QueryInt("page", 1),
		Limit:           c.QueryInt("limit", application.DefaultPageSize),
	}

	page, err := h.service.Applicants(c.UserContext(), authContext.CompanyID(), params)
	if err != nil {
		return err
	}

	return c.JSON(application.NewListResponse(page))
}

// DashboardStats returns the counters shown on the company dashboard
// GET /api/companies/dashboard/stats
func (h *Handlers) DashboardStats(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	stats, err := h.service.DashboardStats(c.UserContext(), authContext.CompanyID())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}

// UploadLogo stores a new logo for the authenticated company
// POST /api/companies/logo
func (h *Handlers) UploadLogo(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	file, err := uploads.ReadForm(c, "logo", uploads.Logo)
	if err != nil {
		return err
	}

	profile, err := h.service.UploadLogo(c.UserContext(), authContext.CompanyID(), file)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logo uploaded successfully",
		"data":    profile,
	})
}

// GetBySlug returns a public company page with its active jobs
// GET /api/companies/:slug
func (h *Handlers) GetBySlug(c *fiber.Ctx) error {
	slug := kernel.NewSlug(c.Params("slug"))
	if slug.IsEmpty() {
		return company.ErrCompanyNotFound().WithDetail("slug", "missing or empty")
	}

	page, err := h.service.GetPublicProfile(c.UserContext(), slug)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    page,
	})
}

// OpenPositions lists the active jobs of a company
// GET /api/companies/:slug/jobs
func (h *Handlers) OpenPositions(c *fiber.Ctx) error {
	slug := kernel.NewSlug(c.Params("slug"))
	if slug.IsEmpty() {
		return company.ErrCompanyNotFound().WithDetail("slug", "missing or empty")
	}

	jobs, err := h.service.OpenPositions(c.UserContext(), slug)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(jobs),
		"data":    jobs,
	})
}

// RegisterRoutes registers all company routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/companies")

	// Company routes, registered before /:slug
	api.Get("/profile",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCompanyManage),
		handlers.GetProfile,
	)

	api.Put("/profile",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCompanyManage),
		handlers.UpdateProfile,
	)

	api.Get("/jobs",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCompanyManage),
		handlers.ListJobs,
	)

	api.Get("/applicants",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeApplicationsReview),
		handlers.ListApplicants,
	)

	api.Get("/dashboard/stats",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCompanyManage),
		handlers.DashboardStats,
	)

	api.Post("/logo",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeCompanyManage),
		handlers.UploadLogo,
	)

	// Public
	api.Get("/:slug", handlers.GetBySlug)
	api.Get("/:slug/jobs", handlers.OpenPositions)
}
