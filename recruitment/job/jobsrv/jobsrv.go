package jobsrv

import (
	"context"
	"strings"
	"time"

	"github.com/aarifhsn/nexthire-backend/pkg/errx"
	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
	"github.com/aarifhsn/nexthire-backend/pkg/logx"
	"github.com/aarifhsn/nexthire-backend/pkg/retry"
	"github.com/aarifhsn/nexthire-backend/pkg/slug"
	"github.com/aarifhsn/nexthire-backend/pkg/taskq"
	"github.com/aarifhsn/nexthire-backend/pkg/validatex"
	"github.com/aarifhsn/nexthire-backend/recruitment/job"
	"github.com/aarifhsn/nexthire-backend/recruitment/job/jobmatch"
	"github.com/aarifhsn/nexthire-backend/recruitment/user"
	"github.com/google/uuid"
)

// JobService provides business operations for jobs
type JobService struct {
	jobRepo     job.Repository
	userRepo    user.Repository
	recommender jobmatch.Recommender
	tasks       taskq.Enqueuer
}

// NewJobService creates a new instance of the job service. tasks may be nil,
// in which case job embeddings are not refreshed on write.
func NewJobService(
	jobRepo job.Repository,
	userRepo user.Repository,
	recommender jobmatch.Recommender,
	tasks taskq.Enqueuer,
) *JobService {
	return &JobService{
		jobRepo:     jobRepo,
		userRepo:    userRepo,
		recommender: recommender,
		tasks:       tasks,
	}
}

// CreateJob creates a new posting owned by companyID
func (s *JobService) CreateJob(ctx context.Context, companyID kernel.CompanyID, req job.CreateJobRequest) (*job.Job, error) {
	if err := validatex.Struct(req); err != nil {
		return nil, err
	}

	newJob := &job.Job{
		ID:           kernel.NewJobID(uuid.NewString()),
		CompanyID:    companyID,
		Title:        strings.TrimSpace(req.Title),
		Location:     req.Location,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		Description:  req.Description,
		Requirements: req.Requirements,
		Benefits:     req.Benefits,
		Skills:       req.Skills,
		Status:       job.StatusActive,
		Vacancies:    1,
		Deadline:     req.Deadline,
	}
	if newJob.Skills == nil {
		newJob.Skills = []string{}
	}
	if req.Vacancies != nil {
		newJob.Vacancies = *req.Vacancies
	}

	var err error
	if newJob.Type, err = requireEnum("type", req.Type, job.TypeValues); err != nil {
		return nil, err
	}
	if newJob.WorkMode, err = requireEnum("workMode", req.WorkMode, job.WorkModeValues); err != nil {
		return nil, err
	}
	if newJob.SalaryPeriod, err = optionalEnum("salaryPeriod", req.SalaryPeriod, job.SalaryPeriodValues); err != nil {
		return nil, err
	}
	if newJob.Category, err = optionalEnum("category", req.Category, job.CategoryValues); err != nil {
		return nil, err
	}
	if newJob.ExperienceLevel, err = optionalEnum("experienceLevel", req.ExperienceLevel, kernel.ExperienceLevelValues); err != nil {
		return nil, err
	}

	// A concurrent insert can claim the slug between the check and the
	// insert; regenerate once when that happens.
	_, err = retry.Do(ctx, retry.Once(isSlugTaken), "create job", func(ctx context.Context) (struct{}, error) {
		generated, err := slug.Generate(ctx, newJob.Title, s.jobRepo.SlugExists)
		if err != nil {
			return struct{}{}, err
		}
		now := time.Now().UTC()
		newJob.Slug = kernel.NewSlug(generated)
		newJob.CreatedAt = now
		newJob.UpdatedAt = now
		return struct{}{}, s.jobRepo.Create(ctx, newJob)
	})
	if err != nil {
		return nil, errx.Wrap(err, "failed to create job", errx.TypeInternal).
			WithDetail("company_id", companyID.String())
	}

	s.scheduleEmbedding(ctx, newJob.ID)
	return newJob, nil
}

// UpdateJob applies a partial update to a job owned by companyID
func (s *JobService) UpdateJob(ctx context.Context, companyID kernel.CompanyID, id kernel.JobID, req job.UpdateJobRequest) (*job.Job, error) {
	if err := validatex.Struct(req); err != nil {
		return nil, err
	}

	existing, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get job", errx.TypeInternal)
	}
	if !existing.OwnedBy(companyID) {
		return nil, job.ErrNotOwner().WithDetail("job_id", id.String())
	}

	if err := canonicalizeUpdate(&req); err != nil {
		return nil, err
	}

	existing.ApplyUpdate(req)

	if err := s.jobRepo.Update(ctx, existing); err != nil {
		return nil, errx.Wrap(err, "failed to update job", errx.TypeInternal).
			WithDetail("job_id", id.String())
	}

	s.scheduleEmbedding(ctx, existing.ID)
	return existing, nil
}

// DeleteJob removes a job owned by companyID together with its applications
func (s *JobService) DeleteJob(ctx context.Context, companyID kernel.CompanyID, id kernel.JobID) error {
	existing, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return errx.Wrap(err, "failed to get job", errx.TypeInternal)
	}
	if !existing.OwnedBy(companyID) {
		return job.ErrNotOwner().
			WithMessage("Not authorized to delete this job").
			WithDetail("job_id", id.String())
	}

	if err := s.jobRepo.Delete(ctx, id); err != nil {
		return errx.Wrap(err, "failed to delete job", errx.TypeInternal).
			WithDetail("job_id", id.String())
	}
	return nil
}

// GetJobBySlug retrieves a job with its company and applicants count
func (s *JobService) GetJobBySlug(ctx context.Context, jobSlug kernel.Slug) (*job.JobDetails, error) {
	details, err := s.jobRepo.GetBySlug(ctx, jobSlug)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get job", errx.TypeInternal)
	}
	return details, nil
}

// SearchJobs runs the public job search over active postings
func (s *JobService) SearchJobs(ctx context.Context, params job.SearchParams) (*job.PaginatedJobs, error) {
	page, err := s.jobRepo.Search(ctx, job.CompileFilter(params))
	if err != nil {
		return nil, errx.Wrap(err, "failed to search jobs", errx.TypeInternal)
	}
	return page, nil
}

// CompanyJobs lists every job of one company, whatever its status
func (s *JobService) CompanyJobs(ctx context.Context, companyID kernel.CompanyID, params job.CompanyJobsParams) (*job.PaginatedJobs, error) {
	filter, err := job.CompileCompanyFilter(companyID, params)
	if err != nil {
		return nil, err
	}

	page, err := s.jobRepo.Search(ctx, filter)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list company jobs", errx.TypeInternal).
			WithDetail("company_id", companyID.String())
	}
	return page, nil
}

// OpenPositions lists a company's active jobs, newest first
func (s *JobService) OpenPositions(ctx context.Context, companyID kernel.CompanyID) ([]job.JobDetails, error) {
	jobs, err := s.jobRepo.ListActiveByCompany(ctx, companyID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to list open positions", errx.TypeInternal).
			WithDetail("company_id", companyID.String())
	}
	return jobs, nil
}

// Recommendations ranks active jobs against the user's skills and level
func (s *JobService) Recommendations(ctx context.Context, userID kernel.UserID) ([]job.JobDetails, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get user", errx.TypeInternal)
	}

	jobs, err := s.recommender.Recommend(ctx, jobmatch.Profile{
		Skills:          u.Skills,
		ExperienceLevel: u.ExperienceLevel,
	})
	if err != nil {
		return nil, errx.Wrap(err, "failed to compute recommendations", errx.TypeInternal).
			WithDetail("user_id", userID.String())
	}
	return jobs, nil
}

// SimilarJobs returns up to five active jobs related to the given one
func (s *JobService) SimilarJobs(ctx context.Context, id kernel.JobID) ([]job.JobDetails, error) {
	source, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get job", errx.TypeInternal)
	}

	similar, err := s.jobRepo.ListSimilar(ctx, *source, jobmatch.MaxSimilar)
	if err != nil {
		return nil, errx.Wrap(err, "failed to find similar jobs", errx.TypeInternal).
			WithDetail("job_id", id.String())
	}
	return similar, nil
}

func (s *JobService) scheduleEmbedding(ctx context.Context, id kernel.JobID) {
	if s.tasks == nil {
		return
	}
	task, err := taskq.NewTask(jobmatch.TaskEmbedJob, jobmatch.EmbedJobPayload{JobID: id.String()})
	if err == nil {
		err = s.tasks.Enqueue(ctx, task)
	}
	if err != nil {
		logx.Warnf("job %s: schedule embedding: %v", id, err)
	}
}

// ============================================================================
// Helpers
// ============================================================================

func isSlugTaken(err error) bool {
	return errx.HasCode(err, job.CodeSlugTaken)
}

func requireEnum[T ~string](field, raw string, values []T) (T, error) {
	if strings.TrimSpace(raw) == "" {
		return "", job.ErrInvalidField().WithMessage(field + " is required").WithDetail("field", field)
	}
	return optionalEnum(field, raw, values)
}

func optionalEnum[T ~string](field, raw string, values []T) (T, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	v, ok := kernel.Normalize(raw, values)
	if !ok {
		return "", job.ErrInvalidField().
			WithMessage("Invalid " + field).
			WithDetail("field", field).
			WithDetail("value", raw).
			WithDetail("allowed", values)
	}
	return v, nil
}

// canonicalizeUpdate rewrites the enum fields of req to their canonical form
func canonicalizeUpdate(req *job.UpdateJobRequest) error {
	if req.Status != nil {
		status, err := job.ParseStatus(*req.Status)
		if err != nil {
			return err
		}
		*req.Status = string(status)
	}
	if err := canonicalize(req.Type, "type", job.TypeValues, true); err != nil {
		return err
	}
	if err := canonicalize(req.WorkMode, "workMode", job.WorkModeValues, true); err != nil {
		return err
	}
	if err := canonicalize(req.SalaryPeriod, "salaryPeriod", job.SalaryPeriodValues, false); err != nil {
		return err
	}
	if err := canonicalize(req.Category, "category", job.CategoryValues, false); err != nil {
		return err
	}
	return canonicalize(req.ExperienceLevel, "experienceLevel", kernel.ExperienceLevelValues, false)
}

func canonicalize[T ~string](raw *string, field string, values []T, required bool) error {
	if raw == nil {
		return nil
	}
	var (
		v   T
		err error
	)
	if required {
		v, err = requireEnum(field, *raw, values)
	} else {
		v, err = optionalEnum(field, *raw, values)
	}
	if err != nil {
		return err
	}
	*raw = string(v)
	return nil
}
