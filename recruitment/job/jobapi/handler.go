package jobapi

import (
	"github.com/aarifhsn/nexthire-backend/pkg/iam/auth"
	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
	"github.com/aarifhsn/nexthire-backend/recruitment/job"
	"github.com/aarifhsn/nexthire-backend/recruitment/job/jobsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// SearchJobs lists active jobs matching the query string
// GET /api/jobs
func (h *Handlers) SearchJobs(c *fiber.Ctx) error {
	params := job.SearchParams{
		Search:          c.Query("search"),
		Type:            c.Query("type"),
		ExperienceLevel: c.Query("experienceLevel"),
		Skills:          c.Query("skills"),
		MinSalary:       c.Query("minSalary"),
		MaxSalary:       c.Query("maxSalary"),
		Sort:            c.Query("sort"),
		Page:            c.QueryInt("page", 1),
		Limit:           c.QueryInt("limit", job.DefaultPageSize),
	}

	page, err := h.service.SearchJobs(c.UserContext(), params)
	if err != nil {
		return err
	}

	return c.JSON(job.NewListResponse(page))
}

// GetRecommendations ranks active jobs for the authenticated user
// GET /api/jobs/recommendations
func (h *Handlers) GetRecommendations(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	jobs, err := h.service.Recommendations(c.UserContext(), authContext.UserID())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(jobs),
		"data":    jobs,
	})
}

// GetJobBySlug retrieves a job with its company and applicants count
// GET /api/jobs/:slug
func (h *Handlers) GetJobBySlug(c *fiber.Ctx) error {
	jobSlug := kernel.NewSlug(c.Params("slug"))
	if jobSlug.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("slug", "missing or empty")
	}

	details, err := h.service.GetJobBySlug(c.UserContext(), jobSlug)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    details,
	})
}

// GetSimilarJobs returns up to five related active jobs
// GET /api/jobs/:id/similar
func (h *Handlers) GetSimilarJobs(c *fiber.Ctx) error {
	jobID := kernel.NewJobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	jobs, err := h.service.SimilarJobs(c.UserContext(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(jobs),
		"data":    jobs,
	})
}

// CreateJob posts a new job for the authenticated company
// POST /api/jobs
func (h *Handlers) CreateJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req job.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	newJob, err := h.service.CreateJob(c.UserContext(), authContext.CompanyID(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    newJob,
	})
}

// UpdateJob updates a job owned by the authenticated company
// PUT /api/jobs/:id
func (h *Handlers) UpdateJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	jobID := kernel.NewJobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	var req job.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateJob(c.UserContext(), authContext.CompanyID(), jobID, req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    updated,
	})
}

// DeleteJob deletes a job owned by the authenticated company
// DELETE /api/jobs/:id
func (h *Handlers) DeleteJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	jobID := kernel.NewJobID(c.Params("id"))
	if jobID.IsEmpty() {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	if err := h.service.DeleteJob(c.UserContext(), authContext.CompanyID(), jobID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Job removed",
	})
}

// RegisterRoutes registers all job routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/jobs")

	// Public routes
	api.Get("/", handlers.SearchJobs)

	// Must precede /:slug
	api.Get("/recommendations",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsRecommend),
		handlers.GetRecommendations,
	)

	api.Get("/:slug", handlers.GetJobBySlug)
	api.Get("/:id/similar", handlers.GetSimilarJobs)

	// Company routes
	api.Post("/",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsWrite),
		handlers.CreateJob,
	)

	api.Put("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsWrite),
		handlers.UpdateJob,
	)

	api.Delete("/:id",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeJobsWrite),
		handlers.DeleteJob,
	)
}
