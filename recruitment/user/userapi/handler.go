package userapi

import (
	"github.com/aarifhsn/nexthire-backend/internal/uploads"
	"github.com/aarifhsn/nexthire-backend/pkg/iam/auth"
	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
	"github.com/aarifhsn/nexthire-backend/recruitment/user"
	"github.com/aarifhsn/nexthire-backend/recruitment/user/usersrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for job seeker profiles
type Handlers struct {
	service *usersrv.UserService
}

// NewHandlers creates a new user handlers instance
func NewHandlers(service *usersrv.UserService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// GetProfile returns the profile of the authenticated user
// GET /api/users/profile
func (h *Handlers) GetProfile(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	u, err := h.service.GetProfile(c.UserContext(), authContext.UserID())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    u,
	})
}

// UpdateProfile applies a partial update to the authenticated user's profile
// PUT /api/users/profile
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	var req user.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	u, err := h.service.UpdateProfile(c.UserContext(), authContext.UserID(), req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    u,
	})
}

// UploadResume stores a PDF resume for the authenticated user
// POST /api/users/resume
func (h *Handlers) UploadResume(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	file, err := uploads.ReadForm(c, "resume", uploads.Resume)
	if err != nil {
		return err
	}

	resp, err := h.service.UploadResume(c.UserContext(), authContext.UserID(), file)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Resume uploaded successfully",
		"data":    resp,
	})
}

// UploadProfilePicture stores a new profile picture
// POST /api/users/profile-picture
func (h *Handlers) UploadProfilePicture(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return auth.ErrMissingToken()
	}

	file, err := uploads.ReadForm(c, "profilePicture", uploads.ProfilePicture)
	if err != nil {
		return err
	}

	u, err := h.service.UploadProfilePicture(c.UserContext(), authContext.UserID(), file)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile picture uploaded successfully",
		"data": fiber.Map{
			"profilePictureUrl": u.ProfilePictureURL,
		},
	})
}

// GetPublicProfile returns a user's profile without credentials
// GET /api/users/:id
func (h *Handlers) GetPublicProfile(c *fiber.Ctx) error {
	id := kernel.NewUserID(c.Params("id"))
	if id.IsEmpty() {
		return user.ErrUserNotFound().WithDetail("id", "missing or empty")
	}

	u, err := h.service.GetProfile(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    u,
	})
}

// RegisterRoutes registers all user routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.TokenMiddleware) {
	api := app.Group("/api/users")

	// Own profile routes, registered before /:id
	api.Get("/profile",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeProfileManage),
		handlers.GetProfile,
	)

	api.Put("/profile",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeProfileManage),
		handlers.UpdateProfile,
	)

	api.Post("/resume",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeProfileManage),
		handlers.UploadResume,
	)

	api.Post("/profile-picture",
		authMiddleware.Authenticate(),
		authMiddleware.RequireScope(auth.ScopeProfileManage),
		handlers.UploadProfilePicture,
	)

	// Public
	api.Get("/:id", handlers.GetPublicProfile)
}
