package companysrv

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"sync"
	"testing"

	"github.com/aarifhsn/nexthire-backend/internal/uploads"
	"github.com/aarifhsn/nexthire-backend/pkg/errx"
	"github.com/aarifhsn/nexthire-backend/pkg/fsx/fsxlocal"
	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
	"github.com/aarifhsn/nexthire-backend/recruitment/application"
	"github.com/aarifhsn/nexthire-backend/recruitment/company"
	"github.com/aarifhsn/nexthire-backend/recruitment/job"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCompanyRepo struct {
	company.Repository
	mu        sync.Mutex
	companies map[kernel.CompanyID]company.Company
}

func (r *memCompanyRepo) Update(_ context.Context, c *company.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[c.ID]; !ok {
		return company.ErrCompanyNotFound()
	}
	r.companies[c.ID] = *c
	return nil
}

func (r *memCompanyRepo) GetByID(_ context.Context, id kernel.CompanyID) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return nil, company.ErrCompanyNotFound()
	}
	return &c, nil
}

func (r *memCompanyRepo) GetBySlug(_ context.Context, slug kernel.Slug) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.companies {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, company.ErrCompanyNotFound()
}

type stubStats struct {
	jobs []company.JobStatusRow
	apps []company.ApplicationStatusRow
	err  error
}

func (s stubStats) DashboardSnapshot(context.Context, kernel.CompanyID) ([]company.JobStatusRow, []company.ApplicationStatusRow, error) {
	return s.jobs, s.apps, s.err
}

type stubJobs struct {
	open map[kernel.CompanyID][]job.JobDetails
}

func (s stubJobs) OpenPositions(_ context.Context, id kernel.CompanyID) ([]job.JobDetails, error) {
	return s.open[id], nil
}

func (s stubJobs) CompanyJobs(_ context.Context, id kernel.CompanyID, params job.CompanyJobsParams) (*job.PaginatedJobs, error) {
	filter, err := job.CompileCompanyFilter(id, params)
	if err != nil {
		return nil, err
	}
	return kernel.NewPaginated(s.open[id], filter.Pagination, len(s.open[id])), nil
}

type stubApplicants struct{}

func (stubApplicants) CompanyApplicants(_ context.Context, _ kernel.CompanyID, params application.FilterParams) (*application.PaginatedDetails, error) {
	f := application.Filter{}.Paginate(params.Page, params.Limit)
	return kernel.NewPaginated([]application.Details(nil), f.Pagination, 0), nil
}

const acme = kernel.CompanyID("c1")

func newTestService(t *testing.T, stats stubStats) (*CompanyService, *memCompanyRepo, *fsxlocal.LocalFileSystem) {
	t.Helper()

	fs, err := fsxlocal.NewLocalFileSystem(t.TempDir())
	require.NoError(t, err)

	repo := &memCompanyRepo{companies: map[kernel.CompanyID]company.Company{
		acme: {ID: acme, Name: "Acme", Slug: "acme", Email: "hr@acme.io", Role: kernel.RoleCompany},
		"c2": {ID: "c2", Name: "Globex", Slug: "globex", Email: "jobs@globex.io", Role: kernel.RoleCompany},
	}}
	jobs := stubJobs{open: map[kernel.CompanyID][]job.JobDetails{
		acme: {
			{Job: job.Job{ID: "j2", CompanyID: acme, Title: "SRE", Status: job.StatusActive}, Applicants: 1},
			{Job: job.Job{ID: "j1", CompanyID: acme, Title: "Go Developer", Status: job.StatusActive}},
		},
	}}

	svc := NewCompanyService(repo, stats, jobs, stubApplicants{}, uploads.NewStore(fs, nil))
	return svc, repo, fs
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update", func(t *testing.T) {
		svc, repo, _ := newTestService(t, stubStats{})

		c, err := svc.UpdateProfile(ctx, acme, company.UpdateProfileRequest{
			Industry:    "Robotics",
			SocialLinks: map[string]string{"x": "https://x.com/acme"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Acme", c.Name)

		stored, _ := repo.GetByID(ctx, acme)
		assert.Equal(t, "Robotics", stored.Industry)
		assert.Equal(t, "https://x.com/acme", stored.SocialLinks["x"])
	})

	t.Run("invalid hr email", func(t *testing.T) {
		svc, _, _ := newTestService(t, stubStats{})

		_, err := svc.UpdateProfile(ctx, acme, company.UpdateProfileRequest{HREmail: "nope"})
		assert.True(t, errx.IsType(err, errx.TypeValidation))
	})

	t.Run("unknown company", func(t *testing.T) {
		svc, _, _ := newTestService(t, stubStats{})

		_, err := svc.UpdateProfile(ctx, "ghost", company.UpdateProfileRequest{Name: "x"})
		assert.True(t, errx.HasCode(err, company.CodeCompanyNotFound))
	})
}

func TestGetPublicProfile(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, stubStats{})

	page, err := svc.GetPublicProfile(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme", page.Name)
	require.Len(t, page.Jobs, 2)
	assert.Equal(t, 1, page.Jobs[0].Applicants)

	page, err = svc.GetPublicProfile(ctx, "globex")
	require.NoError(t, err)
	assert.NotNil(t, page.Jobs)
	assert.Empty(t, page.Jobs)

	_, err = svc.GetPublicProfile(ctx, "initech")
	assert.True(t, errx.HasCode(err, company.CodeCompanyNotFound))
}

func TestOpenPositions(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, stubStats{})

	jobs, err := svc.OpenPositions(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, kernel.JobID("j2"), jobs[0].ID)

	_, err = svc.OpenPositions(ctx, "initech")
	assert.True(t, errx.HasCode(err, company.CodeCompanyNotFound))
}

func TestJobsRejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newTestService(t, stubStats{})

	_, err := svc.Jobs(context.Background(), acme, job.CompanyJobsParams{Status: "active"})
	assert.True(t, errx.HasCode(err, job.CodeInvalidStatus))
}

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()

	svc, _, _ := newTestService(t, stubStats{
		jobs: []company.JobStatusRow{{Status: job.StatusActive}, {Status: job.StatusClosed}},
		apps: []company.ApplicationStatusRow{
			{UserID: "u1", Status: "New"},
			{UserID: "u1", Status: "Shortlisted"},
		},
	})
	stats, err := svc.DashboardStats(ctx, acme)
	require.NoError(t, err)
	assert.Equal(t, company.DashboardStats{
		TotalJobs:         2,
		ActiveJobs:        1,
		TotalApplicants:   1,
		TotalApplications: 2,
		PendingReviews:    1,
		ShortLists:        1,
	}, *stats)

	failing, _, _ := newTestService(t, stubStats{err: errors.New("db down")})
	_, err = failing.DashboardStats(ctx, acme)
	assert.True(t, errx.IsType(err, errx.TypeInternal))
}

func TestUploadLogo(t *testing.T) {
	ctx := context.Background()
	svc, repo, fs := newTestService(t, stubStats{})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	logo := func() *uploads.File {
		return &uploads.File{OriginalName: "logo.png", Size: int64(buf.Len()), Data: buf.Bytes()}
	}

	first, err := svc.UploadLogo(ctx, acme, logo())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.LogoURL, "/uploads/logos/"))
	firstURL := first.LogoURL

	second, err := svc.UploadLogo(ctx, acme, logo())
	require.NoError(t, err)

	ok, err := fs.Exists(ctx, strings.TrimPrefix(firstURL, uploads.PublicPrefix))
	require.NoError(t, err)
	assert.False(t, ok, "previous logo is removed")

	stored, _ := repo.GetByID(ctx, acme)
	assert.Equal(t, second.LogoURL, stored.LogoURL)

	_, err = svc.UploadLogo(ctx, acme, &uploads.File{OriginalName: "logo.txt", Size: 4, Data: []byte("text")})
	assert.True(t, errx.HasCode(err, uploads.CodeInvalidType))
}
