package applicationsrv

import (
	"context"
	"strings"
	"time"

	"github.com/aarifhsn/nexthire-backend/pkg/errx"
	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
	"github.com/aarifhsn/nexthire-backend/pkg/metrics"
	"github.com/aarifhsn/nexthire-backend/recruitment/application"
	"github.com/aarifhsn/nexthire-backend/recruitment/job"
	"github.com/aarifhsn/nexthire-backend/recruitment/user"
	"github.com/google/uuid"
)

// ApplicationService provides business operations for applications
type ApplicationService struct {
	appRepo  application.Repository
	jobRepo  job.Repository
	userRepo user.Repository
	now      func() time.Time
}

// NewApplicationService creates a new instance of the application service
func NewApplicationService(
	appRepo application.Repository,
	jobRepo job.Repository,
	userRepo user.Repository,
) *ApplicationService {
	return &ApplicationService{
		appRepo:  appRepo,
		jobRepo:  jobRepo,
		userRepo: userRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Apply submits the user's current resume and a cover letter to a job
func (s *ApplicationService) Apply(ctx context.Context, userID kernel.UserID, jobID kernel.JobID, req application.ApplyRequest) (*application.Application, error) {
	if strings.TrimSpace(req.CoverLetter) == "" {
		metrics.ObserveApplication("rejected")
		return nil, application.ErrCoverLetterRequired()
	}

	posting, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		metrics.ObserveApplication("rejected")
		return nil, errx.Wrap(err, "failed to get job", errx.TypeInternal)
	}
	if !posting.IsActive() {
		metrics.ObserveApplication("rejected")
		return nil, application.ErrJobNotActive().WithDetail("status", string(posting.Status))
	}

	applicant, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get user", errx.TypeInternal)
	}
	if !applicant.HasResume() {
		metrics.ObserveApplication("rejected")
		return nil, application.ErrResumeRequired()
	}

	now := s.now()
	app := &application.Application{
		ID:          kernel.NewApplicationID(uuid.NewString()),
		JobID:       jobID,
		UserID:      userID,
		Status:      application.StatusNew,
		CoverLetter: req.CoverLetter,
		ResumeURL:   applicant.ResumeURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		if errx.HasCode(err, application.CodeAlreadyApplied) {
			metrics.ObserveApplication("duplicate")
		}
		return nil, errx.Wrap(err, "failed to create application", errx.TypeInternal).
			WithDetail("job_id", jobID.String())
	}

	metrics.ObserveApplication("created")
	return app, nil
}

// MyApplications lists every application of a user with its job and company
func (s *ApplicationService) MyApplications(ctx context.Context, userID kernel.UserID, params application.FilterParams) ([]application.Details, error) {
	filter := application.CompileFilter(params, s.now())
	filter.UserID = userID
	// The applicant axis does not apply to one's own applications
	filter.Levels, filter.Search = nil, ""

	page, err := s.appRepo.Search(ctx, filter)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applications", errx.TypeInternal).
			WithDetail("user_id", userID.String())
	}
	return page.Items, nil
}

// JobApplicants lists the applications to one job owned by companyID
func (s *ApplicationService) JobApplicants(ctx context.Context, companyID kernel.CompanyID, jobID kernel.JobID) ([]application.Details, error) {
	posting, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get job", errx.TypeInternal)
	}
	if !posting.OwnedBy(companyID) {
		return nil, application.ErrNotJobOwner().WithDetail("job_id", jobID.String())
	}

	page, err := s.appRepo.Search(ctx, application.Filter{JobID: jobID})
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applicants", errx.TypeInternal).
			WithDetail("job_id", jobID.String())
	}
	return page.Items, nil
}

// CompanyApplicants lists applications across all jobs of a company
func (s *ApplicationService) CompanyApplicants(ctx context.Context, companyID kernel.CompanyID, params application.FilterParams) (*application.PaginatedDetails, error) {
	filter := application.CompileFilter(params, s.now()).Paginate(params.Page, params.Limit)
	filter.CompanyID = companyID

	page, err := s.appRepo.Search(ctx, filter)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list applicants", errx.TypeInternal).
			WithDetail("company_id", companyID.String())
	}
	return page, nil
}

// UpdateStatus changes the status of an application to a job owned by companyID
func (s *ApplicationService) UpdateStatus(ctx context.Context, companyID kernel.CompanyID, id kernel.ApplicationID, req application.UpdateStatusRequest) (*application.Application, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get application", errx.TypeInternal)
	}

	posting, err := s.jobRepo.GetByID(ctx, app.JobID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get job", errx.TypeInternal)
	}
	if !posting.OwnedBy(companyID) {
		return nil, application.ErrNotJobOwner().WithDetail("application_id", id.String())
	}

	status, err := application.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	at := s.now()
	if err := s.appRepo.UpdateStatus(ctx, id, status, at); err != nil {
		return nil, errx.Wrap(err, "failed to update application status", errx.TypeInternal).
			WithDetail("application_id", id.String())
	}

	app.SetStatus(status, at)
	return app, nil
}

// Withdraw deletes an application submitted by userID
func (s *ApplicationService) Withdraw(ctx context.Context, userID kernel.UserID, id kernel.ApplicationID) error {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return errx.Wrap(err, "failed to get application", errx.TypeInternal)
	}
	if !app.SubmittedBy(userID) {
		return application.ErrNotApplicationOwner().WithDetail("application_id", id.String())
	}

	if err := s.appRepo.Delete(ctx, id); err != nil {
		return errx.Wrap(err, "failed to withdraw application", errx.TypeInternal).
			WithDetail("application_id", id.String())
	}
	return nil
}
