package application

import (
	"strings"
	"time"

	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
	"github.com/aarifhsn/nexthire-backend/recruitment/job"
	"github.com/aarifhsn/nexthire-backend/recruitment/user"
)

// Status represents where an application stands with the hiring company.
// The set is flat: any status may follow any other.
type Status string

const (
	StatusNew         Status = "New"
	StatusShortlisted Status = "Shortlisted"
	StatusInterviewed Status = "Interviewed"
	StatusRejected    Status = "Rejected"
	StatusHired       Status = "Hired"
)

var StatusValues = []Status{StatusNew, StatusShortlisted, StatusInterviewed, StatusRejected, StatusHired}

type Application struct {
	ID          kernel.ApplicationID `json:"id"`
	JobID       kernel.JobID         `json:"jobId"`
	UserID      kernel.UserID        `json:"userId"`
	Status      Status               `json:"status"`
	CoverLetter string               `json:"coverLetter"`
	ResumeURL   string               `json:"resumeUrl"`
	Seq         int64                `json:"-"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// JobSummary is the slice of the job shown next to an application
type JobSummary struct {
	ID       kernel.JobID        `json:"id"`
	Title    string              `json:"title"`
	Slug     kernel.Slug         `json:"slug"`
	Type     job.Type            `json:"type,omitempty"`
	Location string              `json:"location,omitempty"`
	Status   job.Status          `json:"status,omitempty"`
	Company  *job.CompanySummary `json:"company,omitempty"`
}

// Details is an application as read back with its job and applicant
type Details struct {
	Application
	Job  *JobSummary   `json:"job,omitempty"`
	User *user.Summary `json:"user,omitempty"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// SubmittedBy checks if userID owns the application
func (a *Application) SubmittedBy(userID kernel.UserID) bool {
	return a.UserID == userID
}

// SetStatus moves the application to status
func (a *Application) SetStatus(status Status, at time.Time) {
	a.Status = status
	a.UpdatedAt = at
}

// ParseStatus accepts exactly one of the canonical statuses
func ParseStatus(raw string) (Status, error) {
	for _, s := range StatusValues {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", ErrInvalidStatus().WithDetail("status", raw)
}

// DateWindow returns the earliest creation time admitted by a relative date
// key, or nil when the key imposes no constraint. Keys are matched
// case-insensitively.
func DateWindow(key string, now time.Time) *time.Time {
	var since time.Time
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "last 7 day", "last 7 days":
		since = now.AddDate(0, 0, -7)
	case "last 30 day", "last 30 days":
		since = now.AddDate(0, 0, -30)
	case "3 month", "3 months":
		since = now.AddDate(0, -3, 0)
	default:
		return nil
	}
	return &since
}
