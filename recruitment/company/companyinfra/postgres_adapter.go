package companyinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
	"github.com/aarifhsn/nexthire-backend/recruitment/company"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresCompanyRepository implements company.Repository using PostgreSQL
type PostgresCompanyRepository struct {
	db *sqlx.DB
}

// NewPostgresCompanyRepository creates a new PostgreSQL company repository
func NewPostgresCompanyRepository(db *sqlx.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type companyModel struct {
	ID            string          `db:"id"`
	Name          string          `db:"name"`
	Slug          string          `db:"slug"`
	Email         string          `db:"email"`
	Password      string          `db:"password"`
	Role          string          `db:"role"`
	Industry      string          `db:"industry"`
	Description   string          `db:"description"`
	Location      string          `db:"location"`
	City          string          `db:"city"`
	State         string          `db:"state"`
	Country       string          `db:"country"`
	Phone         string          `db:"phone"`
	SocialLinks   json.RawMessage `db:"social_links"`
	WebsiteURL    string          `db:"website_url"`
	HREmail       string          `db:"hr_email"`
	InfoEmail     string          `db:"info_email"`
	LogoURL       string          `db:"logo_url"`
	EmployeeCount string          `db:"employee_count"`
	FoundedYear   *int            `db:"founded_year"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

const companyColumns = `
	id, name, slug, email, password, role, industry, description, location,
	city, state, country, phone, social_links, website_url, hr_email, info_email,
	logo_url, employee_count, founded_year, created_at, updated_at`

// toEntity converts database model to domain entity
func (m *companyModel) toEntity() (*company.Company, error) {
	links := map[string]string{}
	if len(m.SocialLinks) > 0 {
		if err := json.Unmarshal(m.SocialLinks, &links); err != nil {
			return nil, fmt.Errorf("failed to unmarshal social links: %w", err)
		}
	}

	return &company.Company{
		ID:            kernel.NewCompanyID(m.ID),
		Name:          m.Name,
		Slug:          kernel.NewSlug(m.Slug),
		Email:         kernel.Email(m.Email),
		PasswordHash:  m.Password,
		Role:          kernel.Role(m.Role),
		Industry:      m.Industry,
		Description:   m.Description,
		Location:      m.Location,
		City:          m.City,
		State:         m.State,
		Country:       m.Country,
		Phone:         m.Phone,
		SocialLinks:   links,
		WebsiteURL:    m.WebsiteURL,
		HREmail:       m.HREmail,
		InfoEmail:     m.InfoEmail,
		LogoURL:       m.LogoURL,
		EmployeeCount: m.EmployeeCount,
		FoundedYear:   m.FoundedYear,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

// fromEntity converts domain entity to database model
func fromEntity(c *company.Company) (*companyModel, error) {
	links := c.SocialLinks
	if links == nil {
		links = map[string]string{}
	}
	raw, err := json.Marshal(links)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal social links: %w", err)
	}

	return &companyModel{
		ID:            c.ID.String(),
		Name:          c.Name,
		Slug:          c.Slug.String(),
		Email:         c.Email.String(),
		Password:      c.PasswordHash,
		Role:          string(c.Role),
		Industry:      c.Industry,
		Description:   c.Description,
		Location:      c.Location,
		City:          c.City,
		State:         c.State,
		Country:       c.Country,
		Phone:         c.Phone,
		SocialLinks:   raw,
		WebsiteURL:    c.WebsiteURL,
		HREmail:       c.HREmail,
		InfoEmail:     c.InfoEmail,
		LogoURL:       c.LogoURL,
		EmployeeCount: c.EmployeeCount,
		FoundedYear:   c.FoundedYear,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new company
func (r *PostgresCompanyRepository) Create(ctx context.Context, c *company.Company) error {
	model, err := fromEntity(c)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO companies (
			id, name, slug, email, password, role, industry, description, location,
			city, state, country, phone, social_links, website_url, hr_email, info_email,
			logo_url, employee_count, founded_year, created_at, updated_at
		) VALUES (
			:id, :name, :slug, :email, :password, :role, :industry, :description, :location,
			:city, :state, :country, :phone, :social_links, :website_url, :hr_email, :info_email,
			:logo_url, :employee_count, :founded_year, :created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			if pqErr.Constraint == "companies_slug_key" {
				return company.ErrSlugTaken().WithDetail("slug", model.Slug)
			}
			return company.ErrEmailTaken().WithDetail("email", model.Email)
		}
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

// Update updates an existing company
func (r *PostgresCompanyRepository) Update(ctx context.Context, c *company.Company) error {
	model, err := fromEntity(c)
	if err != nil {
		return err
	}

	query := `
		UPDATE companies SET
			name = :name,
			industry = :industry,
			description = :description,
			location = :location,
			city = :city,
			state = :state,
			country = :country,
			phone = :phone,
			social_links = :social_links,
			website_url = :website_url,
			hr_email = :hr_email,
			info_email = :info_email,
			logo_url = :logo_url,
			employee_count = :employee_count,
			founded_year = :founded_year,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return company.ErrCompanyNotFound()
	}
	return nil
}

// GetByID retrieves a company by ID
func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id kernel.CompanyID) (*company.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id.String())
}

// GetBySlug retrieves a company by slug
func (r *PostgresCompanyRepository) GetBySlug(ctx context.Context, slug kernel.Slug) (*company.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE slug = $1`, slug.String())
}

// GetByEmail retrieves a company by email
func (r *PostgresCompanyRepository) GetByEmail(ctx context.Context, email kernel.Email) (*company.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE email = $1`, email.String())
}

func (r *PostgresCompanyRepository) getOne(ctx context.Context, query string, arg any) (*company.Company, error) {
	var model companyModel
	if err := r.db.GetContext(ctx, &model, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, company.ErrCompanyNotFound()
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return model.toEntity()
}

// Exists checks if a company exists by ID
func (r *PostgresCompanyRepository) Exists(ctx context.Context, id kernel.CompanyID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM companies WHERE id = $1)`, id.String())
}

// EmailExists checks if an email is registered to a company
func (r *PostgresCompanyRepository) EmailExists(ctx context.Context, email kernel.Email) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM companies WHERE email = $1)`, email.String())
}

// SlugExists checks if a slug is already used by a company
func (r *PostgresCompanyRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM companies WHERE slug = $1)`, slug)
}

func (r *PostgresCompanyRepository) exists(ctx context.Context, query string, arg any) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, arg); err != nil {
		return false, fmt.Errorf("failed to check company existence: %w", err)
	}
	return exists, nil
}

// ============================================================================
// Dashboard
// ============================================================================

// DashboardSnapshot reads the job and application rows of a company inside
// one read-only REPEATABLE READ transaction so both counts agree.
func (r *PostgresCompanyRepository) DashboardSnapshot(ctx context.Context, id kernel.CompanyID) ([]company.JobStatusRow, []company.ApplicationStatusRow, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin dashboard snapshot: %w", err)
	}
	defer tx.Rollback()

	var jobs []company.JobStatusRow
	if err := tx.SelectContext(ctx, &jobs, `SELECT status FROM jobs WHERE company_id = $1`, id.String()); err != nil {
		return nil, nil, fmt.Errorf("failed to read company jobs: %w", err)
	}

	var apps []company.ApplicationStatusRow
	query := `
		SELECT a.user_id, a.status
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE j.company_id = $1
	`
	if err := tx.SelectContext(ctx, &apps, query, id.String()); err != nil {
		return nil, nil, fmt.Errorf("failed to read company applications: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to close dashboard snapshot: %w", err)
	}
	return jobs, apps, nil
}
