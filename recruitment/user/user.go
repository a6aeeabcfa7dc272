package user

import (
	"time"

	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
)

// ExperienceEntry is one position in a job seeker's work history
type ExperienceEntry struct {
	Title          string `json:"title" validate:"required"`
	CompanyName    string `json:"companyName" validate:"required"`
	EmploymentType string `json:"employmentType" validate:"required"`
	StartDate      string `json:"startDate" validate:"required"`
	EndDate        string `json:"endDate,omitempty"`
	Location       string `json:"location" validate:"required"`
	Description    string `json:"description" validate:"required"`
}

// EducationEntry is one degree or course of study
type EducationEntry struct {
	Institution  string `json:"institution" validate:"required"`
	Degree       string `json:"degree" validate:"required"`
	FieldOfStudy string `json:"fieldOfStudy" validate:"required"`
	StartDate    string `json:"startDate" validate:"required"`
	EndDate      string `json:"endDate,omitempty"`
	Grade        string `json:"grade,omitempty"`
	Description  string `json:"description,omitempty"`
}

// User is a job seeker account and profile
type User struct {
	ID                 kernel.UserID          `json:"id"`
	Name               string                 `json:"name"`
	Email              kernel.Email           `json:"email"`
	PasswordHash       string                 `json:"-"`
	Role               kernel.Role            `json:"role"`
	Title              string                 `json:"title"`
	Bio                string                 `json:"bio"`
	City               string                 `json:"city"`
	State              string                 `json:"state"`
	Country            string                 `json:"country"`
	ZipCode            string                 `json:"zipCode"`
	Location           string                 `json:"location"`
	Phone              string                 `json:"phone"`
	PortfolioURL       string                 `json:"portfolioUrl"`
	LinkedinURL        string                 `json:"linkedinUrl"`
	GithubURL          string                 `json:"githubUrl"`
	ResumeURL          string                 `json:"resumeUrl"`
	ResumeOriginalName string                 `json:"resumeOriginalName"`
	ResumeSize         string                 `json:"resumeSize"`
	ResumeUploadDate   *time.Time             `json:"resumeUploadDate"`
	ProfilePictureURL  string                 `json:"profilePictureUrl"`
	ExperienceLevel    kernel.ExperienceLevel `json:"experienceLevel,omitempty"`
	Skills             []string               `json:"skills"`
	Experience         []ExperienceEntry      `json:"experience"`
	Education          []EducationEntry       `json:"education"`
	CreatedAt          time.Time              `json:"createdAt"`
	UpdatedAt          time.Time              `json:"updatedAt"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// HasResume checks if a resume has been uploaded
func (u *User) HasResume() bool {
	return u.ResumeURL != ""
}

// ApplyProfileUpdate copies the non-empty fields of req onto the profile and
// keeps Location in sync with city and country.
func (u *User) ApplyProfileUpdate(req UpdateProfileRequest, level kernel.ExperienceLevel) {
	setIfPresent(&u.Name, req.Name)
	setIfPresent(&u.Title, req.Title)
	setIfPresent(&u.Bio, req.Bio)
	setIfPresent(&u.City, req.City)
	setIfPresent(&u.State, req.State)
	setIfPresent(&u.Country, req.Country)
	setIfPresent(&u.ZipCode, req.ZipCode)
	if req.City != "" && req.Country != "" {
		u.Location = req.City + ", " + req.Country
	}
	setIfPresent(&u.Phone, req.Phone)
	setIfPresent(&u.PortfolioURL, req.PortfolioURL)
	setIfPresent(&u.LinkedinURL, req.LinkedinURL)
	setIfPresent(&u.GithubURL, req.GithubURL)
	if level != "" {
		u.ExperienceLevel = level
	}
	if req.Skills != nil {
		u.Skills = req.Skills
	}
	if req.Experience != nil {
		u.Experience = req.Experience
	}
	if req.Education != nil {
		u.Education = req.Education
	}
	u.UpdatedAt = time.Now().UTC()
}

// SetResume records a newly uploaded resume
func (u *User) SetResume(url, originalName string, size int64, at time.Time) {
	u.ResumeURL = url
	u.ResumeOriginalName = originalName
	u.ResumeSize = kernel.FileSize(size)
	u.ResumeUploadDate = &at
	u.UpdatedAt = at
}

// Summary is the public slice of a user shown to companies
func (u *User) Summary() Summary {
	return Summary{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		ExperienceLevel:   u.ExperienceLevel,
		ProfilePictureURL: u.ProfilePictureURL,
	}
}

func setIfPresent(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
