package job

import (
	"context"

	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
)

type PaginatedJobs = kernel.Paginated[JobDetails]

type Repository interface {
	// Create inserts a new job. A slug collision returns ErrSlugTaken.
	Create(ctx context.Context, job *Job) error

	// Update saves every mutable field of an existing job
	Update(ctx context.Context, job *Job) error

	// GetByID retrieves a job by ID
	GetByID(ctx context.Context, id kernel.JobID) (*Job, error)

	// GetBySlug retrieves a job with its company and applicants count
	GetBySlug(ctx context.Context, slug kernel.Slug) (*JobDetails, error)

	// Delete deletes a job by ID; its applications cascade
	Delete(ctx context.Context, id kernel.JobID) error

	// SlugExists checks if a slug is already used by any job
	SlugExists(ctx context.Context, slug string) (bool, error)

	// Search runs a compiled filter and returns one page
	Search(ctx context.Context, filter Filter) (*PaginatedJobs, error)

	// ListActive returns the newest limit active jobs in insertion order.
	// limit <= 0 means no cap.
	ListActive(ctx context.Context, limit int) ([]JobDetails, error)

	// ListSimilar returns active jobs related to source by category or skill,
	// newest first
	ListSimilar(ctx context.Context, source Job, limit int) ([]JobDetails, error)

	// ListActiveByCompany returns a company's active jobs, newest first
	ListActiveByCompany(ctx context.Context, companyID kernel.CompanyID) ([]JobDetails, error)
}

// EmbeddingIndex stores job vectors for semantic matching
type EmbeddingIndex interface {
	// SetEmbedding replaces the stored vector of a job
	SetEmbedding(ctx context.Context, id kernel.JobID, vector []float32) error

	// NearestActive returns the active jobs closest to vector by cosine distance
	NearestActive(ctx context.Context, vector []float32, limit int) ([]JobDetails, error)
}
