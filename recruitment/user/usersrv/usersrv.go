package usersrv

import (
	"context"
	"time"

	"github.com/aarifhsn/nexthire-backend/internal/uploads"
	"github.com/aarifhsn/nexthire-backend/pkg/errx"
	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
	"github.com/aarifhsn/nexthire-backend/pkg/validatex"
	"github.com/aarifhsn/nexthire-backend/recruitment/user"
)

// UserService provides business operations for job seeker profiles
type UserService struct {
	userRepo user.Repository
	uploads  *uploads.Store
	now      func() time.Time
}

// NewUserService creates a new instance of the user service
func NewUserService(userRepo user.Repository, store *uploads.Store) *UserService {
	return &UserService{
		userRepo: userRepo,
		uploads:  store,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetProfile retrieves a user by ID
func (s *UserService) GetProfile(ctx context.Context, id kernel.UserID) (*user.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get user", errx.TypeInternal)
	}
	return u, nil
}

// UpdateProfile applies a partial profile update
func (s *UserService) UpdateProfile(ctx context.Context, id kernel.UserID, req user.UpdateProfileRequest) (*user.User, error) {
	for i, entry := range req.Experience {
		if err := validatex.Struct(entry); err != nil {
			return nil, user.ErrInvalidExperience().WithDetail("index", i).WithCause(err)
		}
	}
	if err := validatex.Struct(req); err != nil {
		return nil, err
	}

	var level kernel.ExperienceLevel
	if req.ExperienceLevel != "" {
		normalized, ok := kernel.Normalize(req.ExperienceLevel, kernel.ExperienceLevelValues)
		if !ok {
			return nil, user.ErrInvalidLevel().WithDetail("experienceLevel", req.ExperienceLevel)
		}
		level = normalized
	}

	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get user", errx.TypeInternal)
	}

	u.ApplyProfileUpdate(req, level)

	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, errx.Wrap(err, "failed to update user", errx.TypeInternal).
			WithDetail("user_id", id.String())
	}
	return u, nil
}

// UploadResume stores a PDF resume and records its metadata. Earlier resumes
// are kept because applications reference them by URL.
func (s *UserService) UploadResume(ctx context.Context, id kernel.UserID, file *uploads.File) (*user.ResumeResponse, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get user", errx.TypeInternal)
	}

	url, err := s.uploads.Save(ctx, uploads.Resume, file)
	if err != nil {
		return nil, errx.Wrap(err, "failed to store resume", errx.TypeInternal)
	}

	u.SetResume(url, file.OriginalName, file.Size, s.now())
	if err := s.userRepo.Update(ctx, u); err != nil {
		s.uploads.Discard(ctx, url)
		return nil, errx.Wrap(err, "failed to save resume", errx.TypeInternal).
			WithDetail("user_id", id.String())
	}

	return &user.ResumeResponse{
		ResumeURL:          u.ResumeURL,
		ResumeOriginalName: u.ResumeOriginalName,
		ResumeSize:         u.ResumeSize,
		ResumeUploadDate:   u.ResumeUploadDate,
	}, nil
}

// UploadProfilePicture stores a new picture and removes the previous one
func (s *UserService) UploadProfilePicture(ctx context.Context, id kernel.UserID, file *uploads.File) (*user.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errx.Wrap(err, "failed to get user", errx.TypeInternal)
	}

	url, err := s.uploads.Save(ctx, uploads.ProfilePicture, file)
	if err != nil {
		return nil, errx.Wrap(err, "failed to store profile picture", errx.TypeInternal)
	}

	previous := u.ProfilePictureURL
	u.ProfilePictureURL = url
	u.UpdatedAt = s.now()
	if err := s.userRepo.Update(ctx, u); err != nil {
		s.uploads.Discard(ctx, url)
		return nil, errx.Wrap(err, "failed to save profile picture", errx.TypeInternal).
			WithDetail("user_id", id.String())
	}

	if previous != "" {
		s.uploads.Replace(ctx, previous)
	}
	return u, nil
}
