package jobinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
	"github.com/aarifhsn/nexthire-backend/recruitment/job"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// PostgresJobRepository implements job.Repository and job.EmbeddingIndex using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type jobModel struct {
	ID              string          `db:"id"`
	CompanyID       string          `db:"company_id"`
	Title           string          `db:"title"`
	Slug            string          `db:"slug"`
	Type            string          `db:"type"`
	WorkMode        string          `db:"work_mode"`
	Location        string          `db:"location"`
	SalaryMin       *int            `db:"salary_min"`
	SalaryMax       *int            `db:"salary_max"`
	SalaryPeriod    string          `db:"salary_period"`
	Description     string          `db:"description"`
	Requirements    string          `db:"requirements"`
	Benefits        string          `db:"benefits"`
	Category        string          `db:"category"`
	ExperienceLevel string          `db:"experience_level"`
	Skills          json.RawMessage `db:"skills"`
	Status          string          `db:"status"`
	Vacancies       int             `db:"vacancies"`
	Deadline        *time.Time      `db:"deadline"`
	Seq             int64           `db:"seq"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

type jobDetailsModel struct {
	jobModel
	Applicants         int    `db:"applicants"`
	CompanyName        string `db:"company_name"`
	CompanySlug        string `db:"company_slug"`
	CompanyLogoURL     string `db:"company_logo_url"`
	CompanyLocation    string `db:"company_location"`
	CompanyIndustry    string `db:"company_industry"`
	CompanyWebsiteURL  string `db:"company_website_url"`
	CompanyDescription string `db:"company_description"`
}

// toEntity converts database model to domain entity
func (m *jobModel) toEntity() (*job.Job, error) {
	skills := []string{}
	if len(m.Skills) > 0 {
		if err := json.Unmarshal(m.Skills, &skills); err != nil {
			return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
		}
	}

	return &job.Job{
		ID:              kernel.NewJobID(m.ID),
		CompanyID:       kernel.NewCompanyID(m.CompanyID),
		Title:           m.Title,
		Slug:            kernel.NewSlug(m.Slug),
		Type:            job.Type(m.Type),
		WorkMode:        job.WorkMode(m.WorkMode),
		Location:        m.Location,
		SalaryMin:       m.SalaryMin,
		SalaryMax:       m.SalaryMax,
		SalaryPeriod:    job.SalaryPeriod(m.SalaryPeriod),
		Description:     m.Description,
		Requirements:    m.Requirements,
		Benefits:        m.Benefits,
		Category:        job.Category(m.Category),
		ExperienceLevel: kernel.ExperienceLevel(m.ExperienceLevel),
		Skills:          skills,
		Status:          job.Status(m.Status),
		Vacancies:       m.Vacancies,
		Deadline:        m.Deadline,
		Seq:             m.Seq,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}, nil
}

func (m *jobDetailsModel) toDetails() (*job.JobDetails, error) {
	j, err := m.jobModel.toEntity()
	if err != nil {
		return nil, err
	}
	return &job.JobDetails{
		Job:        *j,
		Applicants: m.Applicants,
		Company: &job.CompanySummary{
			ID:          j.CompanyID,
			Name:        m.CompanyName,
			Slug:        kernel.NewSlug(m.CompanySlug),
			LogoURL:     m.CompanyLogoURL,
			Location:    m.CompanyLocation,
			Industry:    m.CompanyIndustry,
			WebsiteURL:  m.CompanyWebsiteURL,
			Description: m.CompanyDescription,
		},
	}, nil
}

// fromEntity converts domain entity to database model
func fromEntity(j *job.Job) (*jobModel, error) {
	skills := j.Skills
	if skills == nil {
		skills = []string{}
	}
	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}

	return &jobModel{
		ID:              j.ID.String(),
		CompanyID:       j.CompanyID.String(),
		Title:           j.Title,
		Slug:            j.Slug.String(),
		Type:            string(j.Type),
		WorkMode:        string(j.WorkMode),
		Location:        j.Location,
		SalaryMin:       j.SalaryMin,
		SalaryMax:       j.SalaryMax,
		SalaryPeriod:    string(j.SalaryPeriod),
		Description:     j.Description,
		Requirements:    j.Requirements,
		Benefits:        j.Benefits,
		Category:        string(j.Category),
		ExperienceLevel: string(j.ExperienceLevel),
		Skills:          skillsJSON,
		Status:          string(j.Status),
		Vacancies:       j.Vacancies,
		Deadline:        j.Deadline,
		CreatedAt:       j.CreatedAt,
		UpdatedAt:       j.UpdatedAt,
	}, nil
}

func toDetailsList(models []jobDetailsModel) ([]job.JobDetails, error) {
	out := make([]job.JobDetails, 0, len(models))
	for i := range models {
		d, err := models[i].toDetails()
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new job
func (r *PostgresJobRepository) Create(ctx context.Context, jobEntity *job.Job) error {
	model, err := fromEntity(jobEntity)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO jobs (
			id, company_id, title, slug, type, work_mode, location,
			salary_min, salary_max, salary_period,
			description, requirements, benefits,
			category, experience_level, skills,
			status, vacancies, deadline, created_at, updated_at
		) VALUES (
			:id, :company_id, :title, :slug, :type, :work_mode, :location,
			:salary_min, :salary_max, NULLIF(:salary_period, ''),
			:description, :requirements, :benefits,
			NULLIF(:category, ''), NULLIF(:experience_level, ''), :skills,
			:status, :vacancies, :deadline, :created_at, :updated_at
		)
	`

	_, err = r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code == "23505" { // unique_violation
				return job.ErrSlugTaken().WithDetail("slug", model.Slug)
			}
			if pqErr.Code == "23503" { // foreign_key_violation
				return fmt.Errorf("invalid company_id: %w", err)
			}
		}
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

// Update updates an existing job
func (r *PostgresJobRepository) Update(ctx context.Context, jobEntity *job.Job) error {
	model, err := fromEntity(jobEntity)
	if err != nil {
		return err
	}

	query := `
		UPDATE jobs SET
			title = :title,
			type = :type,
			work_mode = :work_mode,
			location = :location,
			salary_min = :salary_min,
			salary_max = :salary_max,
			salary_period = NULLIF(:salary_period, ''),
			description = :description,
			requirements = :requirements,
			benefits = :benefits,
			category = NULLIF(:category, ''),
			experience_level = NULLIF(:experience_level, ''),
			skills = :skills,
			status = :status,
			vacancies = :vacancies,
			deadline = :deadline,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return job.ErrJobNotFound()
	}

	return nil
}

// GetByID retrieves a job by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs j WHERE j.id = $1`

	var model jobModel
	err := r.db.GetContext(ctx, &model, query, id.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound()
		}
		return nil, fmt.Errorf("failed to get job by id: %w", err)
	}

	return model.toEntity()
}

// GetBySlug retrieves a job with its company by slug
func (r *PostgresJobRepository) GetBySlug(ctx context.Context, slug kernel.Slug) (*job.JobDetails, error) {
	query := detailsSelect + ` WHERE j.slug = $1`

	var model jobDetailsModel
	err := r.db.GetContext(ctx, &model, query, slug.String())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound()
		}
		return nil, fmt.Errorf("failed to get job by slug: %w", err)
	}

	return model.toDetails()
}

// Delete deletes a job by ID
func (r *PostgresJobRepository) Delete(ctx context.Context, id kernel.JobID) error {
	query := `DELETE FROM jobs WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return job.ErrJobNotFound()
	}

	return nil
}

// SlugExists checks if a slug is taken
func (r *PostgresJobRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM jobs WHERE slug = $1)`
	if err := r.db.GetContext(ctx, &exists, query, slug); err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

// Search runs a compiled filter and returns one page
func (r *PostgresJobRepository) Search(ctx context.Context, filter job.Filter) (*job.PaginatedJobs, error) {
	whereClause, args := buildSearchQuery(filter)

	// Count total
	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM jobs j %s", whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count search results: %w", err)
	}

	pagination := filter.Pagination
	argCount := len(args) + 1
	query := fmt.Sprintf(`%s
		%s
		%s
		LIMIT $%d OFFSET $%d
	`, detailsSelect, whereClause, orderClause(filter.Sort), argCount, argCount+1)

	args = append(args, pagination.PageSize, pagination.Offset())

	var models []jobDetailsModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search jobs: %w", err)
	}

	items, err := toDetailsList(models)
	if err != nil {
		return nil, err
	}

	return kernel.NewPaginated(items, pagination, total), nil
}

// ListActive returns the most recent active jobs in insertion order
func (r *PostgresJobRepository) ListActive(ctx context.Context, limit int) ([]job.JobDetails, error) {
	query := detailsSelect + ` WHERE j.status = 'Active' ORDER BY j.seq ASC`
	args := []any{}
	if limit > 0 {
		query = `SELECT * FROM (` + detailsSelect + `
			WHERE j.status = 'Active'
			ORDER BY j.seq DESC
			LIMIT $1
		) recent ORDER BY recent.seq ASC`
		args = append(args, limit)
	}

	var models []jobDetailsModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list active jobs: %w", err)
	}
	return toDetailsList(models)
}

// ListSimilar returns active jobs sharing the source's category or one of its skills
func (r *PostgresJobRepository) ListSimilar(ctx context.Context, source job.Job, limit int) ([]job.JobDetails, error) {
	query, args := buildSimilarQuery(source, limit)

	var models []jobDetailsModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list similar jobs: %w", err)
	}
	return toDetailsList(models)
}

// ListActiveByCompany returns a company's active jobs, newest first
func (r *PostgresJobRepository) ListActiveByCompany(ctx context.Context, companyID kernel.CompanyID) ([]job.JobDetails, error) {
	query := detailsSelect + `
		WHERE j.company_id = $1 AND j.status = 'Active'
		ORDER BY j.created_at DESC, j.seq ASC`

	var models []jobDetailsModel
	if err := r.db.SelectContext(ctx, &models, query, companyID.String()); err != nil {
		return nil, fmt.Errorf("failed to list company jobs: %w", err)
	}
	return toDetailsList(models)
}

// ============================================================================
// Embeddings with pgvector
// ============================================================================

// SetEmbedding replaces the stored vector of a job
func (r *PostgresJobRepository) SetEmbedding(ctx context.Context, id kernel.JobID, vector []float32) error {
	query := `UPDATE jobs SET embedding = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id.String(), pgvector.NewVector(vector))
	if err != nil {
		return fmt.Errorf("failed to store job embedding: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return job.ErrJobNotFound()
	}
	return nil
}

// NearestActive returns active jobs ordered by cosine distance to vector
func (r *PostgresJobRepository) NearestActive(ctx context.Context, vector []float32, limit int) ([]job.JobDetails, error) {
	query := detailsSelect + `
		WHERE j.status = 'Active' AND j.embedding IS NOT NULL
		ORDER BY j.embedding <=> $1, j.seq ASC
		LIMIT $2`

	var models []jobDetailsModel
	if err := r.db.SelectContext(ctx, &models, query, pgvector.NewVector(vector), limit); err != nil {
		return nil, fmt.Errorf("failed to query nearest jobs: %w", err)
	}
	return toDetailsList(models)
}
