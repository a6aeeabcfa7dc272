package user

import (
	"time"

	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
)

// UpdateProfileRequest - DTO for a partial profile update. Empty strings and
// nil slices leave the stored value untouched.
type UpdateProfileRequest struct {
	Name            string            `json:"name"`
	Title           string            `json:"title"`
	Bio             string            `json:"bio"`
	City            string            `json:"city"`
	State           string            `json:"state"`
	Country         string            `json:"country"`
	ZipCode         string            `json:"zipCode"`
	Phone           string            `json:"phone"`
	PortfolioURL    string            `json:"portfolioUrl" validate:"omitempty,url"`
	LinkedinURL     string            `json:"linkedinUrl" validate:"omitempty,url"`
	GithubURL       string            `json:"githubUrl" validate:"omitempty,url"`
	ExperienceLevel string            `json:"experienceLevel"`
	Skills          []string          `json:"skills" validate:"omitempty,dive,required"`
	Experience      []ExperienceEntry `json:"experience" validate:"omitempty,dive"`
	Education       []EducationEntry  `json:"education" validate:"omitempty,dive"`
}

// Summary - applicant card shown in company views
type Summary struct {
	ID                kernel.UserID          `json:"id"`
	Name              string                 `json:"name"`
	Email             kernel.Email           `json:"email"`
	ExperienceLevel   kernel.ExperienceLevel `json:"experienceLevel,omitempty"`
	ProfilePictureURL string                 `json:"profilePictureUrl"`
}

// ResumeResponse - returned after a resume upload
type ResumeResponse struct {
	ResumeURL          string     `json:"resumeUrl"`
	ResumeOriginalName string     `json:"resumeOriginalName"`
	ResumeSize         string     `json:"resumeSize"`
	ResumeUploadDate   *time.Time `json:"resumeUploadDate"`
}
