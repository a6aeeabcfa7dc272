package catalogapi

import (
	"github.com/aarifhsn/nexthire-backend/recruitment/catalog/catalogsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for the search pick lists
type Handlers struct {
	service *catalogsrv.CatalogService
}

// NewHandlers creates a new catalog handlers instance
func NewHandlers(service *catalogsrv.CatalogService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Skills returns every known skill
// GET /api/utils/skills
func (h *Handlers) Skills(c *fiber.Ctx) error {
	skills, err := h.service.Skills(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    skills,
	})
}

// Locations returns every location a job is posted in
// GET /api/utils/locations
func (h *Handlers) Locations(c *fiber.Ctx) error {
	locations, err := h.service.Locations(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    locations,
	})
}

// RegisterRoutes registers the public catalog routes
func RegisterRoutes(app *fiber.App, handlers *Handlers) {
	api := app.Group("/api/utils")

	api.Get("/skills", handlers.Skills)
	api.Get("/locations", handlers.Locations)
}
