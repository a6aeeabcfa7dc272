package accountsrv

import (
	"context"
	"strings"
	"time"

	"github.com/aarifhsn/nexthire-backend/pkg/errx"
	"github.com/aarifhsn/nexthire-backend/pkg/iam/auth"
	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
	"github.com/aarifhsn/nexthire-backend/pkg/retry"
	"github.com/aarifhsn/nexthire-backend/pkg/slug"
	"github.com/aarifhsn/nexthire-backend/pkg/validatex"
	"github.com/aarifhsn/nexthire-backend/recruitment/account"
	"github.com/aarifhsn/nexthire-backend/recruitment/company"
	"github.com/aarifhsn/nexthire-backend/recruitment/user"
	"github.com/google/uuid"
)

// AccountService registers, authenticates and resolves subjects
type AccountService struct {
	userRepo    user.Repository
	companyRepo company.Repository
	passwords   auth.PasswordService
	tokens      auth.TokenService
	now         func() time.Time
}

// NewAccountService creates a new instance of the account service
func NewAccountService(
	userRepo user.Repository,
	companyRepo company.Repository,
	passwords auth.PasswordService,
	tokens auth.TokenService,
) *AccountService {
	return &AccountService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		passwords:   passwords,
		tokens:      tokens,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a job seeker or company account and signs it in
func (s *AccountService) Register(ctx context.Context, req account.RegisterRequest) (*account.Session, error) {
	name := strings.TrimSpace(req.Name)
	email := kernel.NewEmail(req.Email)
	if name == "" || email.IsEmpty() || req.Password == "" || req.Role == "" {
		return nil, account.ErrMissingFields()
	}
	if err := validatex.Struct(req); err != nil {
		return nil, err
	}
	role, err := account.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	// Emails are unique across both account tables
	taken, err := s.emailTaken(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, account.ErrEmailTaken().WithDetail("email", email.String())
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		return nil, errx.Wrap(err, "failed to hash password", errx.TypeInternal)
	}

	var subject account.Subject
	switch role {
	case kernel.RoleUser:
		subject, err = s.registerUser(ctx, name, email, hash, req)
	case kernel.RoleCompany:
		subject, err = s.registerCompany(ctx, name, email, hash, req)
	}
	if err != nil {
		return nil, err
	}

	return s.issue(subject)
}

func (s *AccountService) registerUser(ctx context.Context, name string, email kernel.Email, hash string, req account.RegisterRequest) (account.Subject, error) {
	now := s.now()
	u := &user.User{
		ID:           kernel.NewUserID(uuid.NewString()),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         kernel.RoleUser,
		Title:        req.Title,
		Phone:        req.Phone,
		Skills:       []string{},
		Experience:   []user.ExperienceEntry{},
		Education:    []user.EducationEntry{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		if errx.HasCode(err, user.CodeEmailTaken) {
			return account.Subject{}, account.ErrEmailTaken().WithDetail("email", email.String())
		}
		return account.Subject{}, errx.Wrap(err, "failed to create user", errx.TypeInternal)
	}

	return account.Subject{ID: u.ID.String(), Name: u.Name, Email: u.Email, Role: u.Role}, nil
}

func (s *AccountService) registerCompany(ctx context.Context, name string, email kernel.Email, hash string, req account.RegisterRequest) (account.Subject, error) {
	now := s.now()
	c := &company.Company{
		ID:           kernel.NewCompanyID(uuid.NewString()),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         kernel.RoleCompany,
		Industry:     req.Industry,
		Description:  req.Description,
		Location:     req.Location,
		WebsiteURL:   req.WebsiteURL,
		SocialLinks:  map[string]string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// A concurrent registration can claim the slug between the check and
	// the insert; regenerate once when that happens.
	_, err := retry.Do(ctx, retry.Once(isSlugTaken), "register company", func(ctx context.Context) (struct{}, error) {
		generated, err := slug.Generate(ctx, c.Name, s.companyRepo.SlugExists)
		if err != nil {
			return struct{}{}, err
		}
		c.Slug = kernel.NewSlug(generated)
		return struct{}{}, s.companyRepo.Create(ctx, c)
	})
	if err != nil {
		if errx.HasCode(err, company.CodeEmailTaken) {
			return account.Subject{}, account.ErrEmailTaken().WithDetail("email", email.String())
		}
		return account.Subject{}, errx.Wrap(err, "failed to create company", errx.TypeInternal)
	}

	return account.Subject{ID: c.ID.String(), Name: c.Name, Email: c.Email, Role: c.Role, Slug: c.Slug}, nil
}

// Login checks a password against the account of the given role
func (s *AccountService) Login(ctx context.Context, req account.LoginRequest) (*account.Session, error) {
	email := kernel.NewEmail(req.Email)
	if email.IsEmpty() || req.Password == "" || req.Role == "" {
		return nil, account.ErrMissingFields().WithMessage("Please add all fields")
	}
	role, err := account.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	var (
		subject account.Subject
		hash    string
	)
	switch role {
	case kernel.RoleUser:
		u, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, credentialsError(err)
		}
		subject = account.Subject{ID: u.ID.String(), Name: u.Name, Email: u.Email, Role: kernel.RoleUser}
		hash = u.PasswordHash
	case kernel.RoleCompany:
		c, err := s.companyRepo.GetByEmail(ctx, email)
		if err != nil {
			return nil, credentialsError(err)
		}
		subject = account.Subject{ID: c.ID.String(), Name: c.Name, Email: c.Email, Role: kernel.RoleCompany, Slug: c.Slug}
		hash = c.PasswordHash
	}

	if !s.passwords.Compare(hash, req.Password) {
		return nil, auth.ErrInvalidCredentials()
	}

	return s.issue(subject)
}

// Me returns the full record of the authenticated subject
func (s *AccountService) Me(ctx context.Context, ac *auth.AuthContext) (any, error) {
	if ac.IsCompany() {
		c, err := s.companyRepo.GetByID(ctx, ac.CompanyID())
		if err != nil {
			return nil, errx.Wrap(err, "failed to get company", errx.TypeInternal)
		}
		return c, nil
	}

	u, err := s.userRepo.GetByID(ctx, ac.UserID())
	if err != nil {
		return nil, errx.Wrap(err, "failed to get user", errx.TypeInternal)
	}
	return u, nil
}

// SubjectExists reports whether the account named by a token still exists
func (s *AccountService) SubjectExists(ctx context.Context, role kernel.Role, subjectID string) (bool, error) {
	switch role {
	case kernel.RoleUser:
		return s.userRepo.Exists(ctx, kernel.NewUserID(subjectID))
	case kernel.RoleCompany:
		return s.companyRepo.Exists(ctx, kernel.NewCompanyID(subjectID))
	default:
		return false, nil
	}
}

// ============================================================================
// Helpers
// ============================================================================

func (s *AccountService) emailTaken(ctx context.Context, email kernel.Email) (bool, error) {
	taken, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return false, errx.Wrap(err, "failed to check email", errx.TypeInternal)
	}
	if taken {
		return true, nil
	}

	taken, err = s.companyRepo.EmailExists(ctx, email)
	if err != nil {
		return false, errx.Wrap(err, "failed to check email", errx.TypeInternal)
	}
	return taken, nil
}

func (s *AccountService) issue(subject account.Subject) (*account.Session, error) {
	token, err := s.tokens.GenerateAccessToken(subject.ID, subject.Role)
	if err != nil {
		return nil, errx.Wrap(err, "failed to generate token", errx.TypeInternal)
	}
	return &account.Session{Subject: subject, Token: token}, nil
}

// credentialsError hides whether an email is registered
func credentialsError(err error) error {
	if errx.IsType(err, errx.TypeNotFound) {
		return auth.ErrInvalidCredentials()
	}
	return errx.Wrap(err, "failed to load account", errx.TypeInternal)
}

func isSlugTaken(err error) bool {
	return errx.HasCode(err, company.CodeSlugTaken)
}
