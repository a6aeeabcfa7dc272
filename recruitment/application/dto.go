package application

import (
	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
)

type PaginatedDetails = kernel.Paginated[Details]

// ApplyRequest - DTO for applying to a job
type ApplyRequest struct {
	CoverLetter string `json:"coverLetter"`
}

// UpdateStatusRequest - DTO for a company changing an application's status
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// FilterParams carries the raw query string of an application listing
type FilterParams struct {
	Status          string
	Date            string
	ExperienceLevel string
	Search          string
	Sort            string
	Page            int
	Limit           int
}

// ListResponse - paginated envelope for company applicant listings
type ListResponse struct {
	Success     bool      `json:"success"`
	Count       int       `json:"count"`
	TotalPages  int       `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
	Data        []Details `json:"data"`
}

// NewListResponse converts a page of applications into the listing envelope
func NewListResponse(page *PaginatedDetails) ListResponse {
	return ListResponse{
		Success:     true,
		Count:       page.Page.Total,
		TotalPages:  page.Page.Pages,
		CurrentPage: page.Page.Number,
		Data:        page.Items,
	}
}
