package jobsrv

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aarifhsn/nexthire-backend/pkg/errx"
	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
	"github.com/aarifhsn/nexthire-backend/pkg/taskq"
	"github.com/aarifhsn/nexthire-backend/recruitment/job"
	"github.com/aarifhsn/nexthire-backend/recruitment/job/jobmatch"
	"github.com/aarifhsn/nexthire-backend/recruitment/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memJobRepo is an in-memory job.Repository. Search applies Filter.Matches
// and keeps insertion order; ListSimilar applies jobmatch.Similar.
type memJobRepo struct {
	mu    sync.Mutex
	jobs  []*job.Job
	slugs map[string]bool
	// stealSlug simulates a concurrent insert claiming the slug once
	stealSlug bool
}

func newMemJobRepo(jobs ...*job.Job) *memJobRepo {
	r := &memJobRepo{slugs: map[string]bool{}}
	for _, j := range jobs {
		r.jobs = append(r.jobs, j)
		r.slugs[j.Slug.String()] = true
	}
	return r
}

func (r *memJobRepo) Create(_ context.Context, j *job.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stealSlug {
		r.stealSlug = false
		r.slugs[j.Slug.String()] = true
		return job.ErrSlugTaken()
	}
	if r.slugs[j.Slug.String()] {
		return job.ErrSlugTaken()
	}
	r.slugs[j.Slug.String()] = true
	cp := *j
	cp.Seq = int64(len(r.jobs) + 1)
	r.jobs = append(r.jobs, &cp)
	return nil
}

func (r *memJobRepo) find(id kernel.JobID) (int, *job.Job) {
	for i, j := range r.jobs {
		if j.ID == id {
			return i, j
		}
	}
	return -1, nil
}

func (r *memJobRepo) Update(_ context.Context, j *job.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, _ := r.find(j.ID)
	if i < 0 {
		return job.ErrJobNotFound()
	}
	cp := *j
	r.jobs[i] = &cp
	return nil
}

func (r *memJobRepo) GetByID(_ context.Context, id kernel.JobID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, j := r.find(id)
	if j == nil {
		return nil, job.ErrJobNotFound()
	}
	cp := *j
	return &cp, nil
}

func (r *memJobRepo) GetBySlug(_ context.Context, s kernel.Slug) (*job.JobDetails, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, j := range r.jobs {
		if j.Slug == s {
			return &job.JobDetails{Job: *j}, nil
		}
	}
	return nil, job.ErrJobNotFound()
}

func (r *memJobRepo) Delete(_ context.Context, id kernel.JobID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, _ := r.find(id)
	if i < 0 {
		return job.ErrJobNotFound()
	}
	r.jobs = append(r.jobs[:i], r.jobs[i+1:]...)
	return nil
}

func (r *memJobRepo) SlugExists(_ context.Context, s string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.slugs[s], nil
}

func (r *memJobRepo) Search(_ context.Context, f job.Filter) (*job.PaginatedJobs, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []job.JobDetails
	for _, j := range r.jobs {
		if f.Matches(*j) {
			matched = append(matched, job.JobDetails{Job: *j})
		}
	}
	return kernel.NewPaginated(matched, f.Pagination, len(matched)), nil
}

func (r *memJobRepo) ListActive(_ context.Context, limit int) ([]job.JobDetails, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []job.JobDetails
	for _, j := range r.jobs {
		if j.IsActive() {
			out = append(out, job.JobDetails{Job: *j})
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (r *memJobRepo) ListSimilar(ctx context.Context, source job.Job, limit int) ([]job.JobDetails, error) {
	all, _ := r.ListActive(ctx, 0)
	return jobmatch.Similar(source, all, limit), nil
}

func (r *memJobRepo) ListActiveByCompany(ctx context.Context, companyID kernel.CompanyID) ([]job.JobDetails, error) {
	all, _ := r.ListActive(ctx, 0)
	var out []job.JobDetails
	for _, j := range all {
		if j.CompanyID == companyID {
			out = append(out, j)
		}
	}
	return out, nil
}

type stubUserRepo struct {
	user.Repository
	users map[kernel.UserID]*user.User
}

func (s *stubUserRepo) GetByID(_ context.Context, id kernel.UserID) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrUserNotFound()
	}
	return u, nil
}

type recordingQueue struct {
	tasks []taskq.Task
}

func (q *recordingQueue) Enqueue(_ context.Context, task taskq.Task) error {
	q.tasks = append(q.tasks, task)
	return nil
}

func newTestService(repo *memJobRepo, users map[kernel.UserID]*user.User, tasks taskq.Enqueuer) *JobService {
	return NewJobService(
		repo,
		&stubUserRepo{users: users},
		jobmatch.NewHeuristicRecommender(repo, 0),
		tasks,
	)
}

func ptr[T any](v T) *T { return &v }

func validCreate(title string) job.CreateJobRequest {
	return job.CreateJobRequest{
		Title:       title,
		Type:        "full-time",
		WorkMode:    "remote",
		Location:    "Dhaka",
		Description: "Build APIs",
		Skills:      []string{"Go", "PostgreSQL"},
	}
}

func TestCreateJob(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults and canonical enums", func(t *testing.T) {
		svc := newTestService(newMemJobRepo(), nil, nil)

		j, err := svc.CreateJob(ctx, "c1", validCreate("Go Developer"))
		require.NoError(t, err)
		assert.Equal(t, kernel.Slug("go-developer"), j.Slug)
		assert.Equal(t, job.TypeFullTime, j.Type)
		assert.Equal(t, job.WorkModeRemote, j.WorkMode)
		assert.Equal(t, job.StatusActive, j.Status)
		assert.Equal(t, 1, j.Vacancies)
		assert.Equal(t, kernel.CompanyID("c1"), j.CompanyID)
	})

	t.Run("slug suffixes", func(t *testing.T) {
		svc := newTestService(newMemJobRepo(), nil, nil)

		first, err := svc.CreateJob(ctx, "c1", validCreate("Go Developer"))
		require.NoError(t, err)
		second, err := svc.CreateJob(ctx, "c1", validCreate("Go Developer"))
		require.NoError(t, err)
		third, err := svc.CreateJob(ctx, "c2", validCreate("Go  Developer!"))
		require.NoError(t, err)

		assert.Equal(t, kernel.Slug("go-developer"), first.Slug)
		assert.Equal(t, kernel.Slug("go-developer-1"), second.Slug)
		assert.Equal(t, kernel.Slug("go-developer-2"), third.Slug)
	})

	t.Run("insert race regenerates the slug once", func(t *testing.T) {
		repo := newMemJobRepo()
		repo.stealSlug = true
		svc := newTestService(repo, nil, nil)

		j, err := svc.CreateJob(ctx, "c1", validCreate("Go Developer"))
		require.NoError(t, err)
		assert.Equal(t, kernel.Slug("go-developer-1"), j.Slug)
	})

	t.Run("invalid enum", func(t *testing.T) {
		svc := newTestService(newMemJobRepo(), nil, nil)
		req := validCreate("Go Developer")
		req.Type = "gig"

		_, err := svc.CreateJob(ctx, "c1", req)
		assert.True(t, errx.HasCode(err, job.CodeInvalidField))
	})

	t.Run("missing required fields", func(t *testing.T) {
		svc := newTestService(newMemJobRepo(), nil, nil)

		_, err := svc.CreateJob(ctx, "c1", job.CreateJobRequest{Title: "x"})
		assert.True(t, errx.IsType(err, errx.TypeValidation))
	})

	t.Run("schedules embedding", func(t *testing.T) {
		q := &recordingQueue{}
		svc := newTestService(newMemJobRepo(), nil, q)

		j, err := svc.CreateJob(ctx, "c1", validCreate("Go Developer"))
		require.NoError(t, err)
		require.Len(t, q.tasks, 1)
		assert.Equal(t, jobmatch.TaskEmbedJob, q.tasks[0].Kind)

		var payload jobmatch.EmbedJobPayload
		require.NoError(t, q.tasks[0].Decode(&payload))
		assert.Equal(t, j.ID.String(), payload.JobID)
	})
}

func TestUpdateJob(t *testing.T) {
	ctx := context.Background()
	existing := &job.Job{ID: "j1", CompanyID: "c1", Title: "Go Dev", Slug: "go-dev", Type: job.TypeFullTime, Status: job.StatusActive}

	tests := []struct {
		name     string
		company  kernel.CompanyID
		id       kernel.JobID
		req      job.UpdateJobRequest
		wantCode string
	}{
		{"not owner", "c2", "j1", job.UpdateJobRequest{Title: ptr("x")}, job.CodeNotOwner},
		{"missing", "c1", "nope", job.UpdateJobRequest{Title: ptr("x")}, job.CodeJobNotFound},
		{"status must be exact", "c1", "j1", job.UpdateJobRequest{Status: ptr("closed")}, job.CodeInvalidStatus},
		{"bad type", "c1", "j1", job.UpdateJobRequest{Type: ptr("gig")}, job.CodeInvalidField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp := *existing
			svc := newTestService(newMemJobRepo(&cp), nil, nil)

			_, err := svc.UpdateJob(ctx, tt.company, tt.id, tt.req)
			assert.True(t, errx.HasCode(err, tt.wantCode), "got %v", err)
		})
	}

	t.Run("partial update", func(t *testing.T) {
		cp := *existing
		repo := newMemJobRepo(&cp)
		svc := newTestService(repo, nil, nil)

		updated, err := svc.UpdateJob(ctx, "c1", "j1", job.UpdateJobRequest{
			Status:   ptr("Closed"),
			WorkMode: ptr("hybrid"),
		})
		require.NoError(t, err)
		assert.Equal(t, job.StatusClosed, updated.Status)
		assert.Equal(t, job.WorkModeHybrid, updated.WorkMode)
		assert.Equal(t, "Go Dev", updated.Title)

		stored, _ := repo.GetByID(ctx, "j1")
		assert.Equal(t, job.StatusClosed, stored.Status)
	})
}

func TestDeleteJob(t *testing.T) {
	ctx := context.Background()
	repo := newMemJobRepo(&job.Job{ID: "j1", CompanyID: "c1", Slug: "a"})
	svc := newTestService(repo, nil, nil)

	err := svc.DeleteJob(ctx, "c2", "j1")
	assert.True(t, errx.HasCode(err, job.CodeNotOwner))

	require.NoError(t, svc.DeleteJob(ctx, "c1", "j1"))
	_, err = repo.GetByID(ctx, "j1")
	assert.True(t, errx.HasCode(err, job.CodeJobNotFound))
}

func TestSearchJobs_TypeFilter(t *testing.T) {
	repo := newMemJobRepo(
		&job.Job{ID: "1", Slug: "1", Type: job.TypeFullTime, Status: job.StatusActive},
		&job.Job{ID: "2", Slug: "2", Type: job.TypeContract, Status: job.StatusActive},
		&job.Job{ID: "3", Slug: "3", Type: job.TypePartTime, Status: job.StatusActive},
		&job.Job{ID: "4", Slug: "4", Type: job.TypeFullTime, Status: job.StatusClosed},
	)
	svc := newTestService(repo, nil, nil)

	page, err := svc.SearchJobs(context.Background(), job.SearchParams{Type: "full-time,CONTRACT"})
	require.NoError(t, err)

	var got []kernel.JobID
	for _, j := range page.Items {
		got = append(got, j.ID)
	}
	assert.Equal(t, []kernel.JobID{"1", "2"}, got)
	assert.Equal(t, 2, page.Page.Total)
}

func TestCompanyJobs_StrictParams(t *testing.T) {
	svc := newTestService(newMemJobRepo(), nil, nil)
	ctx := context.Background()

	_, err := svc.CompanyJobs(ctx, "c1", job.CompanyJobsParams{Status: "Pending"})
	assert.True(t, errx.HasCode(err, job.CodeInvalidStatus))

	_, err = svc.CompanyJobs(ctx, "c1", job.CompanyJobsParams{Sort: "salary_high"})
	assert.True(t, errx.HasCode(err, job.CodeInvalidSort))

	page, err := svc.CompanyJobs(ctx, "c1", job.CompanyJobsParams{Status: "Closed", Sort: "oldest"})
	require.NoError(t, err)
	assert.True(t, page.Empty)
}

func TestRecommendations(t *testing.T) {
	repo := newMemJobRepo(
		&job.Job{ID: "j1", Slug: "j1", Status: job.StatusActive, Skills: []string{"React", "Node.js"}, ExperienceLevel: kernel.LevelMid},
		&job.Job{ID: "j2", Slug: "j2", Status: job.StatusActive, Skills: []string{"Python", "Django"}},
	)
	users := map[kernel.UserID]*user.User{
		"u1": {ID: "u1", Skills: []string{"React", "Node"}, ExperienceLevel: kernel.LevelMid},
		"u2": {ID: "u2"},
	}
	svc := newTestService(repo, users, nil)
	ctx := context.Background()

	got, err := svc.Recommendations(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, kernel.JobID("j1"), got[0].ID)

	got, err = svc.Recommendations(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = svc.Recommendations(ctx, "ghost")
	assert.True(t, errx.HasCode(err, user.CodeUserNotFound))
}

func TestSimilarJobs(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := newMemJobRepo(
		&job.Job{ID: "src", Slug: "src", Status: job.StatusActive, Category: job.CategoryEngineering, CreatedAt: base},
		&job.Job{ID: "a", Slug: "a", Status: job.StatusActive, Category: job.CategoryEngineering, CreatedAt: base.Add(time.Hour)},
		&job.Job{ID: "b", Slug: "b", Status: job.StatusActive, Category: job.CategoryDesign, CreatedAt: base.Add(2 * time.Hour)},
	)
	svc := newTestService(repo, nil, nil)
	ctx := context.Background()

	got, err := svc.SimilarJobs(ctx, "src")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, kernel.JobID("a"), got[0].ID)

	_, err = svc.SimilarJobs(ctx, "missing")
	assert.True(t, errx.HasCode(err, job.CodeJobNotFound))
}

// largeCatalog holds twelve active Engineering jobs, j00 being the oldest
func largeCatalog(base time.Time) *memJobRepo {
	jobs := make([]*job.Job, 0, 12)
	for i := range 12 {
		id := fmt.Sprintf("j%02d", i)
		jobs = append(jobs, &job.Job{
			ID:        kernel.JobID(id),
			Slug:      kernel.Slug(id),
			Status:    job.StatusActive,
			Category:  job.CategoryEngineering,
			Skills:    []string{"Go"},
			Seq:       int64(i + 1),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	return newMemJobRepo(jobs...)
}

func ids(jobs []job.JobDetails) []kernel.JobID {
	out := make([]kernel.JobID, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}

func TestSimilarJobs_CatalogLargerThanScanLimit(t *testing.T) {
	repo := largeCatalog(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	svc := NewJobService(repo, &stubUserRepo{}, jobmatch.NewHeuristicRecommender(repo, 6), nil)

	got, err := svc.SimilarJobs(context.Background(), "j00")
	require.NoError(t, err)
	assert.Equal(t, []kernel.JobID{"j11", "j10", "j09", "j08", "j07"}, ids(got))
}

func TestRecommendations_ScansNewestJobs(t *testing.T) {
	repo := largeCatalog(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	users := map[kernel.UserID]*user.User{
		"u1": {ID: "u1", Skills: []string{"Go"}},
	}
	svc := NewJobService(repo, &stubUserRepo{users: users}, jobmatch.NewHeuristicRecommender(repo, 6), nil)

	got, err := svc.Recommendations(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []kernel.JobID{"j06", "j07", "j08", "j09", "j10", "j11"}, ids(got))
}

func TestCreateJob_SalaryBoundsNotCrossChecked(t *testing.T) {
	repo := newMemJobRepo()
	svc := newTestService(repo, nil, nil)

	req := validCreate("Backend Engineer")
	req.SalaryMin = ptr(90000)
	req.SalaryMax = ptr(50000)

	created, err := svc.CreateJob(context.Background(), "company-acme", req)
	require.NoError(t, err)
	require.NotNil(t, created.SalaryMin)
	require.NotNil(t, created.SalaryMax)
	assert.Equal(t, 90000, *created.SalaryMin)
	assert.Equal(t, 50000, *created.SalaryMax)
}
