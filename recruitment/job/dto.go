package job

import (
	"time"
)

// CreateJobRequest - DTO for posting a new job. Enum fields are matched
// case-insensitively by the service.
type CreateJobRequest struct {
	Title           string     `json:"title" validate:"required"`
	Type            string     `json:"type" validate:"required"`
	WorkMode        string     `json:"workMode" validate:"required"`
	Location        string     `json:"location" validate:"required"`
	SalaryMin       *int       `json:"salaryMin" validate:"omitempty,min=0"`
	SalaryMax       *int       `json:"salaryMax" validate:"omitempty,min=0"`
	SalaryPeriod    string     `json:"salaryPeriod"`
	Description     string     `json:"description" validate:"required"`
	Requirements    string     `json:"requirements"`
	Benefits        string     `json:"benefits"`
	Category        string     `json:"category"`
	ExperienceLevel string     `json:"experienceLevel"`
	Skills          []string   `json:"skills" validate:"omitempty,dive,required"`
	Vacancies       *int       `json:"vacancies" validate:"omitempty,min=1"`
	Deadline        *time.Time `json:"deadline"`
}

// UpdateJobRequest - DTO for updating a job. Only non-nil fields change.
type UpdateJobRequest struct {
	Title           *string    `json:"title,omitempty" validate:"omitempty,min=1"`
	Type            *string    `json:"type,omitempty"`
	WorkMode        *string    `json:"workMode,omitempty"`
	Location        *string    `json:"location,omitempty"`
	SalaryMin       *int       `json:"salaryMin,omitempty" validate:"omitempty,min=0"`
	SalaryMax       *int       `json:"salaryMax,omitempty" validate:"omitempty,min=0"`
	SalaryPeriod    *string    `json:"salaryPeriod,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Requirements    *string    `json:"requirements,omitempty"`
	Benefits        *string    `json:"benefits,omitempty"`
	Category        *string    `json:"category,omitempty"`
	ExperienceLevel *string    `json:"experienceLevel,omitempty"`
	Skills          *[]string  `json:"skills,omitempty"`
	Status          *string    `json:"status,omitempty"`
	Vacancies       *int       `json:"vacancies,omitempty" validate:"omitempty,min=1"`
	Deadline        *time.Time `json:"deadline,omitempty"`
}

// SearchParams carries the raw query string of the public job search
type SearchParams struct {
	Search          string
	Type            string
	ExperienceLevel string
	Skills          string
	MinSalary       string
	MaxSalary       string
	Sort            string
	Page            int
	Limit           int
}

// CompanyJobsParams carries the raw query string of a company's own listing
type CompanyJobsParams struct {
	Status string
	Search string
	Sort   string
	Page   int
	Limit  int
}

// ListResponse - paginated envelope used by job listings
type ListResponse struct {
	Success     bool         `json:"success"`
	Count       int          `json:"count"`
	TotalPages  int          `json:"totalPages"`
	CurrentPage int          `json:"currentPage"`
	Data        []JobDetails `json:"data"`
}

// NewListResponse converts a page of jobs into the listing envelope
func NewListResponse(page *PaginatedJobs) ListResponse {
	return ListResponse{
		Success:     true,
		Count:       page.Page.Total,
		TotalPages:  page.Page.Pages,
		CurrentPage: page.Page.Number,
		Data:        page.Items,
	}
}
