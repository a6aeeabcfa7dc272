// Package account registers and signs in job seekers and companies.
package account

import (
	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
)

// Subject is the identity returned after registration or login
type Subject struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Email kernel.Email `json:"email"`
	Role  kernel.Role  `json:"role"`
	Slug  kernel.Slug  `json:"slug,omitempty"`
}

// Session is a subject together with its access token
type Session struct {
	Subject Subject
	Token   string
}

// ParseRole accepts exactly USER or COMPANY
func ParseRole(raw string) (kernel.Role, error) {
	for _, r := range kernel.RoleValues {
		if string(r) == raw {
			return r, nil
		}
	}
	return "", ErrInvalidRole().WithDetail("role", raw)
}
