package applicationinfra

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
	"github.com/aarifhsn/nexthire-backend/recruitment/application"
	"github.com/aarifhsn/nexthire-backend/recruitment/job"
	"github.com/aarifhsn/nexthire-backend/recruitment/user"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresApplicationRepository implements application.Repository using PostgreSQL
type PostgresApplicationRepository struct {
	db *sqlx.DB
}

// NewPostgresApplicationRepository creates a new PostgreSQL application repository
func NewPostgresApplicationRepository(db *sqlx.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{
		db: db,
	}
}

// ============================================================================
// Database Models
// ============================================================================

type applicationModel struct {
	ID          string    `db:"id"`
	JobID       string    `db:"job_id"`
	UserID      string    `db:"user_id"`
	Status      string    `db:"status"`
	CoverLetter string    `db:"cover_letter"`
	ResumeURL   string    `db:"resume_url"`
	Seq         int64     `db:"seq"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// detailsModel for joined queries
type detailsModel struct {
	applicationModel
	JobTitle              string `db:"job_title"`
	JobSlug               string `db:"job_slug"`
	JobType               string `db:"job_type"`
	JobLocation           string `db:"job_location"`
	JobStatus             string `db:"job_status"`
	CompanyID             string `db:"company_id"`
	CompanyName           string `db:"company_name"`
	CompanySlug           string `db:"company_slug"`
	CompanyLogoURL        string `db:"company_logo_url"`
	CompanyLocation       string `db:"company_location"`
	UserName              string `db:"user_name"`
	UserEmail             string `db:"user_email"`
	UserExperienceLevel   string `db:"user_experience_level"`
	UserProfilePictureURL string `db:"user_profile_picture_url"`
}

// toEntity converts database model to domain entity
func (m *applicationModel) toEntity() *application.Application {
	return &application.Application{
		ID:          kernel.NewApplicationID(m.ID),
		JobID:       kernel.NewJobID(m.JobID),
		UserID:      kernel.NewUserID(m.UserID),
		Status:      application.Status(m.Status),
		CoverLetter: m.CoverLetter,
		ResumeURL:   m.ResumeURL,
		Seq:         m.Seq,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (m *detailsModel) toDetails() application.Details {
	return application.Details{
		Application: *m.applicationModel.toEntity(),
		Job: &application.JobSummary{
			ID:       kernel.NewJobID(m.JobID),
			Title:    m.JobTitle,
			Slug:     kernel.NewSlug(m.JobSlug),
			Type:     job.Type(m.JobType),
			Location: m.JobLocation,
			Status:   job.Status(m.JobStatus),
			Company: &job.CompanySummary{
				ID:       kernel.NewCompanyID(m.CompanyID),
				Name:     m.CompanyName,
				Slug:     kernel.NewSlug(m.CompanySlug),
				LogoURL:  m.CompanyLogoURL,
				Location: m.CompanyLocation,
			},
		},
		User: &user.Summary{
			ID:                kernel.NewUserID(m.UserID),
			Name:              m.UserName,
			Email:             kernel.Email(m.UserEmail),
			ExperienceLevel:   kernel.ExperienceLevel(m.UserExperienceLevel),
			ProfilePictureURL: m.UserProfilePictureURL,
		},
	}
}

// fromEntity converts domain entity to database model
func fromEntity(a *application.Application) *applicationModel {
	return &applicationModel{
		ID:          a.ID.String(),
		JobID:       a.JobID.String(),
		UserID:      a.UserID.String(),
		Status:      string(a.Status),
		CoverLetter: a.CoverLetter,
		ResumeURL:   a.ResumeURL,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new application
func (r *PostgresApplicationRepository) Create(ctx context.Context, app *application.Application) error {
	query := `
		INSERT INTO applications (
			id, job_id, user_id, status, cover_letter, resume_url, created_at, updated_at
		) VALUES (
			:id, :job_id, :user_id, :status, :cover_letter, :resume_url, :created_at, :updated_at
		)
	`

	_, err := r.db.NamedExecContext(ctx, query, fromEntity(app))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code == "23505" { // unique_violation on (job_id, user_id)
				return application.ErrAlreadyApplied().WithDetail("job_id", app.JobID.String())
			}
			if pqErr.Code == "23503" { // foreign_key_violation
				return job.ErrJobNotFound().WithDetail("job_id", app.JobID.String())
			}
		}
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// GetByID retrieves an application by ID
func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id kernel.ApplicationID) (*application.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications a WHERE a.id = $1`

	var model applicationModel
	if err := r.db.GetContext(ctx, &model, query, id.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, application.ErrApplicationNotFound()
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return model.toEntity(), nil
}

// UpdateStatus sets the status of an application
func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id kernel.ApplicationID, status application.Status, at time.Time) error {
	query := `UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, string(status), at, id.String())
	if err != nil {
		return fmt.Errorf("failed to update application status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return application.ErrApplicationNotFound()
	}

	return nil
}

// Delete deletes an application by ID
func (r *PostgresApplicationRepository) Delete(ctx context.Context, id kernel.ApplicationID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM applications WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return application.ErrApplicationNotFound()
	}

	return nil
}

// Search runs a compiled filter. Unpaginated filters return every match.
func (r *PostgresApplicationRepository) Search(ctx context.Context, filter application.Filter) (*application.PaginatedDetails, error) {
	whereClause, args := buildFilterQuery(filter)
	query := fmt.Sprintf("%s\n\t%s\n\t%s", detailsSelect, whereClause, orderClause(filter.Oldest))

	if !filter.Paginated() {
		var models []detailsModel
		if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
			return nil, fmt.Errorf("failed to list applications: %w", err)
		}
		items := toDetailsList(models)
		return kernel.NewPaginated(items, kernel.PaginationOptions{Page: 1, PageSize: len(items)}, len(items)), nil
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) %s %s", detailsFrom, whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	pagination := filter.Pagination
	argCount := len(args) + 1
	query += fmt.Sprintf("\n\tLIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, pagination.PageSize, pagination.Offset())

	var models []detailsModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search applications: %w", err)
	}

	return kernel.NewPaginated(toDetailsList(models), pagination, total), nil
}

func toDetailsList(models []detailsModel) []application.Details {
	out := make([]application.Details, 0, len(models))
	for i := range models {
		out = append(out, models[i].toDetails())
	}
	return out
}
