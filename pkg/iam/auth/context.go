package auth

import (
	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

const authContextKey = "auth_context"

// AuthContext describes the authenticated subject of a request
type AuthContext struct {
	SubjectID string
	Role      kernel.Role
	Scopes    []string
}

// IsUser reports whether the subject is a job seeker
func (a *AuthContext) IsUser() bool {
	return a.Role == kernel.RoleUser
}

// IsCompany reports whether the subject is an employer
func (a *AuthContext) IsCompany() bool {
	return a.Role == kernel.RoleCompany
}

func (a *AuthContext) UserID() kernel.UserID {
	return kernel.NewUserID(a.SubjectID)
}

func (a *AuthContext) CompanyID() kernel.CompanyID {
	return kernel.NewCompanyID(a.SubjectID)
}

// SetAuthContext stores the subject on the request
func SetAuthContext(c *fiber.Ctx, ac *AuthContext) {
	c.Locals(authContextKey, ac)
}

// GetAuthContext returns the subject stored by Authenticate
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	ac, ok := c.Locals(authContextKey).(*AuthContext)
	return ac, ok && ac != nil
}
