package jobinfra

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aarifhsn/nexthire-backend/pkg/errx"
	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
	"github.com/aarifhsn/nexthire-backend/recruitment/job"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PostgresJobRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresJobRepository(sqlx.NewDb(db, "postgres")), mock
}

var detailsColumns = []string{
	"id", "company_id", "title", "slug", "type", "work_mode", "location",
	"salary_min", "salary_max", "salary_period", "description", "requirements", "benefits",
	"category", "experience_level", "skills", "status", "vacancies", "deadline", "seq",
	"created_at", "updated_at",
	"applicants", "company_name", "company_slug", "company_logo_url", "company_location",
	"company_industry", "company_website_url", "company_description",
}

func TestCreate_SlugConflict(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO jobs")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "jobs_slug_key"})

	err := repo.Create(context.Background(), &job.Job{ID: "j1", Slug: "go-dev", Status: job.StatusActive})
	require.Error(t, err)
	assert.ErrorIs(t, err, job.ErrSlugTaken())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBySlug(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE j.slug = $1")).
		WithArgs("go-dev").
		WillReturnRows(sqlmock.NewRows(detailsColumns).AddRow(
			"j1", "c1", "Go Dev", "go-dev", "Full-time", "Remote", "Dhaka",
			nil, 90000, "Monthly", "desc", "", "",
			"Engineering", "Mid", []byte(`["Go","SQL"]`), "Active", 1, nil, 7,
			now, now,
			3, "Acme", "acme", "", "Dhaka", "", "", "",
		))

	got, err := repo.GetBySlug(context.Background(), "go-dev")
	require.NoError(t, err)
	assert.Equal(t, kernel.JobID("j1"), got.ID)
	assert.Nil(t, got.SalaryMin)
	require.NotNil(t, got.SalaryMax)
	assert.Equal(t, 90000, *got.SalaryMax)
	assert.Equal(t, []string{"Go", "SQL"}, got.Skills)
	assert.Equal(t, 3, got.Applicants)
	assert.Equal(t, "Acme", got.Company.Name)
	assert.Equal(t, int64(7), got.Seq)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE j.slug = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)
	_, err = repo.GetBySlug(context.Background(), "missing")
	assert.True(t, errx.IsType(err, errx.TypeNotFound))
}

func TestSearch_CountsThenPages(t *testing.T) {
	repo, mock := newMockRepo(t)

	f := job.CompileFilter(job.SearchParams{Type: "contract", Page: 2, Limit: 5, Sort: "salary_high"})

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM jobs j WHERE j.status = ANY($1) AND j.type = ANY($2)")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY j.salary_max DESC NULLS LAST, j.seq ASC")).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), 5, 5).
		WillReturnRows(sqlmock.NewRows(detailsColumns))

	page, err := repo.Search(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 11, page.Page.Total)
	assert.Equal(t, 3, page.Page.Pages)
	assert.Equal(t, 2, page.Page.Number)
	assert.True(t, page.Empty)
	assert.NotNil(t, page.Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM jobs WHERE id = $1")).
		WithArgs("j1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "j1")
	assert.ErrorIs(t, err, job.ErrJobNotFound())
}

func TestListActive_Limit(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`ORDER BY j\.seq DESC\s+LIMIT \$1\s+\) recent ORDER BY recent\.seq ASC`).
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows(detailsColumns))
	_, err := repo.ListActive(context.Background(), 50)
	require.NoError(t, err)

	mock.ExpectQuery(`ORDER BY j\.seq ASC$`).
		WillReturnRows(sqlmock.NewRows(detailsColumns))
	_, err = repo.ListActive(context.Background(), 0)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListSimilar(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	source := job.Job{ID: "src", Category: job.CategoryEngineering, Skills: []string{"Go", "100%"}}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE j.status = 'Active' AND j.id <> $1 AND (j.category = $2 OR j.skills::text ILIKE ANY($3))")).
		WithArgs("src", "Engineering", pq.Array([]string{"%Go%", `%100\%%`}), 5).
		WillReturnRows(sqlmock.NewRows(detailsColumns).AddRow(
			"j2", "c1", "Go Dev", "go-dev", "Full-time", "Remote", "Dhaka",
			nil, nil, "", "desc", "", "",
			"Design", "", []byte(`["Go"]`), "Active", 1, nil, 2,
			now, now,
			0, "Acme", "acme", "", "", "", "", "",
		))

	got, err := repo.ListSimilar(context.Background(), source, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, kernel.JobID("j2"), got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_SalaryMinAboveMax(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	args := make([]driver.Value, 21)
	for i := range args {
		args[i] = sqlmock.AnyArg()
	}
	args[7], args[8] = 90000, 50000

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO jobs")).
		WithArgs(args...).
		WillReturnResult(sqlmock.NewResult(0, 1))

	low, high := 90000, 50000
	err := repo.Create(context.Background(), &job.Job{
		ID: "j1", CompanyID: "c1", Slug: "go-dev", Status: job.StatusActive,
		SalaryMin: &low, SalaryMax: &high, Skills: []string{}, Vacancies: 1,
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
