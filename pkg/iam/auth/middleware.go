package auth

import (
	"context"
	"slices"
	"strings"

	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
	"github.com/aarifhsn/nexthire-backend/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

// SubjectResolver confirms that the subject named by a token still exists
type SubjectResolver interface {
	SubjectExists(ctx context.Context, role kernel.Role, subjectID string) (bool, error)
}

// TokenMiddleware authenticates bearer tokens and enforces role scopes
type TokenMiddleware struct {
	tokens   TokenService
	subjects SubjectResolver
}

// NewAuthMiddleware creates the middleware. subjects may be nil to skip the existence check.
func NewAuthMiddleware(tokens TokenService, subjects SubjectResolver) *TokenMiddleware {
	return &TokenMiddleware{
		tokens:   tokens,
		subjects: subjects,
	}
}

// Authenticate validates the Authorization header and loads the AuthContext
func (m *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := ExtractToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}

		claims, err := m.tokens.ValidateAccessToken(token)
		if err != nil {
			return ErrInvalidToken()
		}

		if !slices.Contains(kernel.RoleValues, claims.Role) {
			return ErrInvalidRole()
		}

		if m.subjects != nil {
			exists, err := m.subjects.SubjectExists(c.UserContext(), claims.Role, claims.SubjectID)
			if err != nil {
				logx.Errorf("auth: resolve subject %s: %v", claims.SubjectID, err)
				return ErrInvalidToken()
			}
			if !exists {
				return ErrSubjectNotFound().WithDetail("role", claims.Role)
			}
		}

		SetAuthContext(c, &AuthContext{
			SubjectID: claims.SubjectID,
			Role:      claims.Role,
			Scopes:    ScopesFor(claims.Role),
		})
		return c.Next()
	}
}

// RequireScope rejects subjects whose role lacks any of the scopes
func (m *TokenMiddleware) RequireScope(scopes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingToken()
		}
		for _, scope := range scopes {
			if !RoleHasScope(ac.Role, scope) {
				return ErrForbidden().
					WithMessage("User role " + string(ac.Role) + " is not authorized to access this route").
					WithDetail("required_scope", scope)
			}
		}
		return c.Next()
	}
}

// RequireRole rejects subjects whose role is not listed
func (m *TokenMiddleware) RequireRole(roles ...kernel.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ac, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingToken()
		}
		for _, r := range roles {
			if ac.Role == r {
				return c.Next()
			}
		}
		return ErrForbidden().WithMessage("User role " + string(ac.Role) + " is not authorized to access this route")
	}
}

// ExtractToken returns the token of a "Bearer <token>" header
func ExtractToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken()
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", ErrInvalidToken()
	}
	return strings.TrimSpace(parts[1]), nil
}
