package companysrv

import (
	"context"
	"time"

	"github.com/aarifhsn/nexthire-backend/internal/uploads"
	"github.com/aarifhsn/nexthire-backend/pkg/errx"
	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
	"github.com/aarifhsn/nexthire-backend/pkg/validatex"
	"github.com/aarifhsn/nexthire-backend/recruitment/application"
	"github.com/aarifhsn/nexthire-backend/recruitment/company"
	"github.com/aarifhsn/nexthire-backend/recruitment/job"
)

// JobLister is the slice of the job service a company page needs
type JobLister interface {
	OpenPositions(ctx context.Context, companyID kernel.CompanyID) ([]job.JobDetails, error)
	CompanyJobs(ctx context.Context, companyID kernel.CompanyID, params job.CompanyJobsParams) (*job.PaginatedJobs, error)
}

// ApplicantLister lists applications across a company's jobs
type ApplicantLister interface {
	CompanyApplicants(ctx context.Context, companyID kernel.CompanyID, params application.FilterParams) (*application.PaginatedDetails, error)
}

// CompanyService provides business operations for employer profiles
type CompanyService struct {
	companyRepo company.Repository
	stats       company.StatsReader
	jobs        JobLister
	applicants  ApplicantLister
	uploads     *uploads.Store
	now         func() time.Time
}

// NewCompanyService creates a new instance of the company service
func NewCompanyService(
	companyRepo company.Repository,
	stats company.StatsReader,
	jobs JobLister,
	applicants ApplicantLister,
	store *uploads.Store,
) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		stats:       stats,
		jobs:        jobs,
		applicants:  applicants,
		uploads:     store,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// GetProfile retrieves a company by ID
func (s *CompanyService) GetProfile(ctx context.Context, id kernel.CompanyID) (*company.Company, error) {
	c, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get company", errx.TypeInternal)
	}
	return c, nil
}

// UpdateProfile applies a partial profile update
func (s *CompanyService) UpdateProfile(ctx context.Context, id kernel.CompanyID, req company.UpdateProfileRequest) (*company.Company, error) {
	if err := validatex.Struct(req); err != nil {
		return nil, err
	}

	c, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get company", errx.TypeInternal)
	}

	c.ApplyProfileUpdate(req, s.now())

	if err := s.companyRepo.Update(ctx, c); err != nil {
		return nil, errx.Wrap(err, "failed to update company", errx.TypeInternal).
			WithDetail("company_id", id.String())
	}
	return c, nil
}

// GetPublicProfile returns a company page with its active jobs
func (s *CompanyService) GetPublicProfile(ctx context.Context, slug kernel.Slug) (*company.PublicProfile, error) {
	c, err := s.companyRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get company", errx.TypeInternal)
	}

	jobs, err := s.jobs.OpenPositions(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []job.JobDetails{}
	}

	return &company.PublicProfile{Company: c, Jobs: jobs}, nil
}

// OpenPositions lists the active jobs of the company with the given slug
func (s *CompanyService) OpenPositions(ctx context.Context, slug kernel.Slug) ([]job.JobDetails, error) {
	c, err := s.companyRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get company", errx.TypeInternal)
	}
	return s.jobs.OpenPositions(ctx, c.ID)
}

// Jobs lists every posting of the company, whatever its status
func (s *CompanyService) Jobs(ctx context.Context, id kernel.CompanyID, params job.CompanyJobsParams) (*job.PaginatedJobs, error) {
	return s.jobs.CompanyJobs(ctx, id, params)
}

// Applicants lists applications across the company's jobs
func (s *CompanyService) Applicants(ctx context.Context, id kernel.CompanyID, params application.FilterParams) (*application.PaginatedDetails, error) {
	return s.applicants.CompanyApplicants(ctx, id, params)
}

// DashboardStats summarizes the company's postings and applications
func (s *CompanyService) DashboardStats(ctx context.Context, id kernel.CompanyID) (*company.DashboardStats, error) {
	jobs, apps, err := s.stats.DashboardSnapshot(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to read dashboard", errx.TypeInternal).
			WithDetail("company_id", id.String())
	}

	stats := company.Summarize(jobs, apps)
	return &stats, nil
}

// UploadLogo stores a new logo and removes the previous one
func (s *CompanyService) UploadLogo(ctx context.Context, id kernel.CompanyID, file *uploads.File) (*company.Company, error) {
	c, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get company", errx.TypeInternal)
	}

	url, err := s.uploads.Save(ctx, uploads.Logo, file)
	if err != nil {
		return nil, errx.Wrap(err, "failed to store logo", errx.TypeInternal)
	}

	previous := c.LogoURL
	c.LogoURL = url
	c.UpdatedAt = s.now()
	if err := s.companyRepo.Update(ctx, c); err != nil {
		s.uploads.Discard(ctx, url)
		return nil, errx.Wrap(err, "failed to save logo", errx.TypeInternal).
			WithDetail("company_id", id.String())
	}

	if previous != "" {
		s.uploads.Replace(ctx, previous)
	}
	return c, nil
}
