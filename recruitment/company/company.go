package company

import (
	"time"

	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
	"github.com/aarifhsn/nexthire-backend/recruitment/application"
	"github.com/aarifhsn/nexthire-backend/recruitment/job"
)

// Company is an employer account and its public profile
type Company struct {
	ID            kernel.CompanyID  `json:"id"`
	Name          string            `json:"name"`
	Slug          kernel.Slug       `json:"slug"`
	Email         kernel.Email      `json:"email"`
	PasswordHash  string            `json:"-"`
	Role          kernel.Role       `json:"role"`
	Industry      string            `json:"industry"`
	Description   string            `json:"description"`
	Location      string            `json:"location"`
	City          string            `json:"city"`
	State         string            `json:"state"`
	Country       string            `json:"country"`
	Phone         string            `json:"phone"`
	SocialLinks   map[string]string `json:"socialLinks"`
	WebsiteURL    string            `json:"websiteUrl"`
	HREmail       string            `json:"hrEmail"`
	InfoEmail     string            `json:"infoEmail"`
	LogoURL       string            `json:"logoUrl"`
	EmployeeCount string            `json:"employeeCount"`
	FoundedYear   *int              `json:"foundedYear"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// PublicProfile is a company page together with its active jobs
type PublicProfile struct {
	*Company
	Jobs []job.JobDetails `json:"jobs"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// ApplyProfileUpdate copies the provided fields of req onto the profile
func (c *Company) ApplyProfileUpdate(req UpdateProfileRequest, at time.Time) {
	setIfPresent(&c.Name, req.Name)
	setIfPresent(&c.Industry, req.Industry)
	setIfPresent(&c.Description, req.Description)
	setIfPresent(&c.Location, req.Location)
	setIfPresent(&c.City, req.City)
	setIfPresent(&c.State, req.State)
	setIfPresent(&c.Country, req.Country)
	setIfPresent(&c.Phone, req.Phone)
	setIfPresent(&c.WebsiteURL, req.WebsiteURL)
	setIfPresent(&c.HREmail, req.HREmail)
	setIfPresent(&c.InfoEmail, req.InfoEmail)
	setIfPresent(&c.EmployeeCount, req.EmployeeCount)
	if len(req.SocialLinks) > 0 {
		c.SocialLinks = req.SocialLinks
	}
	if req.FoundedYear != nil && *req.FoundedYear != 0 {
		c.FoundedYear = req.FoundedYear
	}
	c.UpdatedAt = at
}

func setIfPresent(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// ============================================================================
// Dashboard
// ============================================================================

// legacyPending is a status written by older clients; it counts as unreviewed
const legacyPending = "Pending"

// JobStatusRow is one job of a company as read for the dashboard
type JobStatusRow struct {
	Status job.Status `db:"status"`
}

// ApplicationStatusRow is one application to a company's jobs
type ApplicationStatusRow struct {
	UserID kernel.UserID `db:"user_id"`
	Status string        `db:"status"`
}

// DashboardStats summarizes a company's postings and applications
type DashboardStats struct {
	TotalJobs         int `json:"totalJobs"`
	ActiveJobs        int `json:"activeJobs"`
	TotalApplicants   int `json:"totalApplicants"`
	TotalApplications int `json:"totalApplications"`
	PendingReviews    int `json:"pendingReviews"`
	ShortLists        int `json:"shortLists"`
}

// Summarize folds the job and application rows of one company into its
// dashboard counters. Applicants are distinct users.
func Summarize(jobs []JobStatusRow, apps []ApplicationStatusRow) DashboardStats {
	stats := DashboardStats{
		TotalJobs:         len(jobs),
		TotalApplications: len(apps),
	}
	for _, j := range jobs {
		if j.Status == job.StatusActive {
			stats.ActiveJobs++
		}
	}

	applicants := make(map[kernel.UserID]struct{}, len(apps))
	for _, a := range apps {
		applicants[a.UserID] = struct{}{}
		switch a.Status {
		case string(application.StatusNew), legacyPending:
			stats.PendingReviews++
		case string(application.StatusShortlisted):
			stats.ShortLists++
		}
	}
	stats.TotalApplicants = len(applicants)
	return stats
}
