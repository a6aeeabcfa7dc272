package user

import (
	"context"

	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
)

type Repository interface {
	// Create creates a new user. A duplicate email returns ErrEmailTaken.
	Create(ctx context.Context, user *User) error

	// Update saves the profile, resume metadata and picture of a user
	Update(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id kernel.UserID) (*User, error)

	// GetByEmail retrieves a user by (lowercased) email
	GetByEmail(ctx context.Context, email kernel.Email) (*User, error)

	// Exists checks if a user exists by ID
	Exists(ctx context.Context, id kernel.UserID) (bool, error)

	// EmailExists checks if an email is registered to a user
	EmailExists(ctx context.Context, email kernel.Email) (bool, error)
}
