package userinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
	"github.com/aarifhsn/nexthire-backend/recruitment/user"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresUserRepository implements user.Repository using PostgreSQL
type PostgresUserRepository struct {
	db *sqlx.DB
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(db *sqlx.DB) *PostgresUserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

// ============================================================================
// Database Model
// ============================================================================

type userModel struct {
	ID                 string          `db:"id"`
	Name               string          `db:"name"`
	Email              string          `db:"email"`
	Password           string          `db:"password"`
	Role               string          `db:"role"`
	Title              string          `db:"title"`
	Bio                string          `db:"bio"`
	City               string          `db:"city"`
	State              string          `db:"state"`
	Country            string          `db:"country"`
	ZipCode            string          `db:"zip_code"`
	Location           string          `db:"location"`
	Phone              string          `db:"phone"`
	PortfolioURL       string          `db:"portfolio_url"`
	LinkedinURL        string          `db:"linkedin_url"`
	GithubURL          string          `db:"github_url"`
	ResumeURL          string          `db:"resume_url"`
	ResumeOriginalName string          `db:"resume_original_name"`
	ResumeSize         string          `db:"resume_size"`
	ResumeUploadDate   *time.Time      `db:"resume_upload_date"`
	ProfilePictureURL  string          `db:"profile_picture_url"`
	ExperienceLevel    string          `db:"experience_level"`
	Skills             json.RawMessage `db:"skills"`
	Experience         json.RawMessage `db:"experience"`
	Education          json.RawMessage `db:"education"`
	CreatedAt          time.Time       `db:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at"`
}

const userColumns = `
	id, name, email, password, role, title, bio, city, state, country, zip_code,
	location, phone, portfolio_url, linkedin_url, github_url,
	resume_url, resume_original_name, resume_size, resume_upload_date,
	profile_picture_url, COALESCE(experience_level, '') AS experience_level,
	skills, experience, education, created_at, updated_at`

// toEntity converts database model to domain entity
func (m *userModel) toEntity() (*user.User, error) {
	skills := []string{}
	experience := []user.ExperienceEntry{}
	education := []user.EducationEntry{}

	if err := unmarshalList(m.Skills, &skills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
	}
	if err := unmarshalList(m.Experience, &experience); err != nil {
		return nil, fmt.Errorf("failed to unmarshal experience: %w", err)
	}
	if err := unmarshalList(m.Education, &education); err != nil {
		return nil, fmt.Errorf("failed to unmarshal education: %w", err)
	}

	return &user.User{
		ID:                 kernel.NewUserID(m.ID),
		Name:               m.Name,
		Email:              kernel.Email(m.Email),
		PasswordHash:       m.Password,
		Role:               kernel.Role(m.Role),
		Title:              m.Title,
		Bio:                m.Bio,
		City:               m.City,
		State:              m.State,
		Country:            m.Country,
		ZipCode:            m.ZipCode,
		Location:           m.Location,
		Phone:              m.Phone,
		PortfolioURL:       m.PortfolioURL,
		LinkedinURL:        m.LinkedinURL,
		GithubURL:          m.GithubURL,
		ResumeURL:          m.ResumeURL,
		ResumeOriginalName: m.ResumeOriginalName,
		ResumeSize:         m.ResumeSize,
		ResumeUploadDate:   m.ResumeUploadDate,
		ProfilePictureURL:  m.ProfilePictureURL,
		ExperienceLevel:    kernel.ExperienceLevel(m.ExperienceLevel),
		Skills:             skills,
		Experience:         experience,
		Education:          education,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}, nil
}

// fromEntity converts domain entity to database model
func fromEntity(u *user.User) (*userModel, error) {
	skills, err := marshalList(u.Skills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}
	experience, err := marshalList(u.Experience)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal experience: %w", err)
	}
	education, err := marshalList(u.Education)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal education: %w", err)
	}

	return &userModel{
		ID:                 u.ID.String(),
		Name:               u.Name,
		Email:              u.Email.String(),
		Password:           u.PasswordHash,
		Role:               string(u.Role),
		Title:              u.Title,
		Bio:                u.Bio,
		City:               u.City,
		State:              u.State,
		Country:            u.Country,
		ZipCode:            u.ZipCode,
		Location:           u.Location,
		Phone:              u.Phone,
		PortfolioURL:       u.PortfolioURL,
		LinkedinURL:        u.LinkedinURL,
		GithubURL:          u.GithubURL,
		ResumeURL:          u.ResumeURL,
		ResumeOriginalName: u.ResumeOriginalName,
		ResumeSize:         u.ResumeSize,
		ResumeUploadDate:   u.ResumeUploadDate,
		ProfilePictureURL:  u.ProfilePictureURL,
		ExperienceLevel:    string(u.ExperienceLevel),
		Skills:             skills,
		Experience:         experience,
		Education:          education,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}, nil
}

func unmarshalList(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

// marshalList stores nil slices as [] so the column never holds JSON null
func marshalList[T any](list []T) (json.RawMessage, error) {
	if list == nil {
		list = []T{}
	}
	return json.Marshal(list)
}

// ============================================================================
// Repository Implementation
// ============================================================================

// Create creates a new user
func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	model, err := fromEntity(u)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO users (
			id, name, email, password, role, title, bio, city, state, country, zip_code,
			location, phone, portfolio_url, linkedin_url, github_url,
			resume_url, resume_original_name, resume_size, resume_upload_date,
			profile_picture_url, experience_level, skills, experience, education,
			created_at, updated_at
		) VALUES (
			:id, :name, :email, :password, :role, :title, :bio, :city, :state, :country, :zip_code,
			:location, :phone, :portfolio_url, :linkedin_url, :github_url,
			:resume_url, :resume_original_name, :resume_size, :resume_upload_date,
			:profile_picture_url, NULLIF(:experience_level, ''), :skills, :experience, :education,
			:created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return user.ErrEmailTaken().WithDetail("email", model.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update updates an existing user
func (r *PostgresUserRepository) Update(ctx context.Context, u *user.User) error {
	model, err := fromEntity(u)
	if err != nil {
		return err
	}

	query := `
		UPDATE users SET
			name = :name,
			title = :title,
			bio = :bio,
			city = :city,
			state = :state,
			country = :country,
			zip_code = :zip_code,
			location = :location,
			phone = :phone,
			portfolio_url = :portfolio_url,
			linkedin_url = :linkedin_url,
			github_url = :github_url,
			resume_url = :resume_url,
			resume_original_name = :resume_original_name,
			resume_size = :resume_size,
			resume_upload_date = :resume_upload_date,
			profile_picture_url = :profile_picture_url,
			experience_level = NULLIF(:experience_level, ''),
			skills = :skills,
			experience = :experience,
			education = :education,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return user.ErrUserNotFound()
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id.String())
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email.String())
}

func (r *PostgresUserRepository) getOne(ctx context.Context, query string, arg any) (*user.User, error) {
	var model userModel
	if err := r.db.GetContext(ctx, &model, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrUserNotFound()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return model.toEntity()
}

// Exists checks if a user exists by ID
func (r *PostgresUserRepository) Exists(ctx context.Context, id kernel.UserID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`
	if err := r.db.GetContext(ctx, &exists, query, id.String()); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// EmailExists checks if an email is registered to a user
func (r *PostgresUserRepository) EmailExists(ctx context.Context, email kernel.Email) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	if err := r.db.GetContext(ctx, &exists, query, email.String()); err != nil {
		return false, fmt.Errorf("failed to check user email: %w", err)
	}
	return exists, nil
}
