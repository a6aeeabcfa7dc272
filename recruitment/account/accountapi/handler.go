package accountapi

import (
	"github.com/aarifhsn/nexthire-backend/pkg/iam/auth"
	"github.com/aarifhsn/nexthire-backend/recruitment/account"
	"github.com/aarifhsn/nexthire-backend/recruitment/account/accountsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for registration and login
type Handlers struct {
	service *accountsrv.AccountService
}

// NewHandlers creates a new account handlers instance
func NewHandlers(service *accountsrv.AccountService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Register creates a job seeker or company account
// POST /api/auth/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req account.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return account.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	session, err := h.service.Register(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    session.Subject,
		"token":   session.Token,
	})
}

// Login signs in with email, password and role
// POST /api/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req account.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return account.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	session, err := h.service.Login(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    session.Subject,
		"token":   session.Token,
	})
}

// Me returns the authenticated user or company
// GET /api/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	subject, err := h.service.Me(c.UserContext(), authContext)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    subject,
	})
}

// RegisterRoutes registers all auth routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/auth")

	api.Post("/register", handlers.Register)
	api.Post("/login", handlers.Login)
	api.Get("/me", authMiddleware.Authenticate(), handlers.Me)
}
