package company

import (
	"context"

	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
)

type Repository interface {
	// Create creates a new company. A duplicate email returns ErrEmailTaken
	// and a duplicate slug ErrSlugTaken.
	Create(ctx context.Context, company *Company) error

	// Update saves the profile and logo of a company
	Update(ctx context.Context, company *Company) error

	// GetByID retrieves a company by ID
	GetByID(ctx context.Context, id kernel.CompanyID) (*Company, error)

	// GetBySlug retrieves a company by slug
	GetBySlug(ctx context.Context, slug kernel.Slug) (*Company, error)

	// GetByEmail retrieves a company by (lowercased) email
	GetByEmail(ctx context.Context, email kernel.Email) (*Company, error)

	// Exists checks if a company exists by ID
	Exists(ctx context.Context, id kernel.CompanyID) (bool, error)

	// EmailExists checks if an email is registered to a company
	EmailExists(ctx context.Context, email kernel.Email) (bool, error)

	// SlugExists checks if a slug is already used by any company
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// StatsReader reads the rows behind the company dashboard from one snapshot
type StatsReader interface {
	DashboardSnapshot(ctx context.Context, id kernel.CompanyID) ([]JobStatusRow, []ApplicationStatusRow, error)
}
