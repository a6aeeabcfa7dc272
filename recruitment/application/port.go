package application

import (
	"context"
	"time"

	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
)

type Repository interface {
	// Create creates a new application. A second application by the same
	// user to the same job returns ErrAlreadyApplied.
	Create(ctx context.Context, application *Application) error

	// GetByID retrieves an application by ID
	GetByID(ctx context.Context, id kernel.ApplicationID) (*Application, error)

	// UpdateStatus sets the status of an application
	UpdateStatus(ctx context.Context, id kernel.ApplicationID, status Status, at time.Time) error

	// Delete deletes an application by ID
	Delete(ctx context.Context, id kernel.ApplicationID) error

	// Search runs a compiled filter, returning applications with their job,
	// company and applicant summaries
	Search(ctx context.Context, filter Filter) (*PaginatedDetails, error)
}
