package application

import (
	"slices"
	"strings"
	"time"

	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Filter is the compiled predicate and ordering of an application listing.
// Exactly the scopes that are set apply; a zero Pagination returns every row.
type Filter struct {
	UserID    kernel.UserID
	CompanyID kernel.CompanyID
	JobID     kernel.JobID

	Statuses []Status
	Since    *time.Time

	// Applicant constraints
	Levels []kernel.ExperienceLevel
	Search string

	Oldest     bool
	Pagination kernel.PaginationOptions
}

// Paginated reports whether the listing is cut into pages
func (f Filter) Paginated() bool {
	return f.Pagination.PageSize > 0
}

// CompileFilter builds the shared application filter. Unknown status and
// level tokens are dropped; an unknown date key imposes no constraint.
func CompileFilter(p FilterParams, now time.Time) Filter {
	f := Filter{
		Statuses: kernel.NormalizeList(p.Status, StatusValues),
		Since:    DateWindow(p.Date, now),
		Levels:   kernel.NormalizeList(p.ExperienceLevel, kernel.ExperienceLevelValues),
		Search:   strings.TrimSpace(p.Search),
	}

	switch strings.ToLower(strings.TrimSpace(p.Sort)) {
	case "oldest", "oldest first":
		f.Oldest = true
	}
	return f
}

// Paginate cuts the listing into pages of the requested size
func (f Filter) Paginate(page, limit int) Filter {
	f.Pagination = kernel.NewPaginationOptions(page, limit, DefaultPageSize, MaxPageSize)
	return f
}

// Matches evaluates the filter against an application in memory. It agrees
// with the SQL built by the Postgres repository.
func (f Filter) Matches(d Details) bool {
	if !f.UserID.IsEmpty() && d.UserID != f.UserID {
		return false
	}
	if !f.JobID.IsEmpty() && d.JobID != f.JobID {
		return false
	}
	if !f.CompanyID.IsEmpty() && (d.Job == nil || d.Job.Company == nil || d.Job.Company.ID != f.CompanyID) {
		return false
	}
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, d.Status) {
		return false
	}
	if f.Since != nil && d.CreatedAt.Before(*f.Since) {
		return false
	}
	if len(f.Levels) > 0 || f.Search != "" {
		if d.User == nil {
			return false
		}
		if len(f.Levels) > 0 && !slices.Contains(f.Levels, d.User.ExperienceLevel) {
			return false
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(d.User.Name), strings.ToLower(f.Search)) {
			return false
		}
	}
	return true
}
