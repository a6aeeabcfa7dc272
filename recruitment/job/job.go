package job

import (
	"strings"
	"time"

	"github.com/aarifhsn/nexthire-backend/pkg/kernel"
)

// Status represents the status of a job posting
type Status string

const (
	StatusActive   Status = "Active"   // Listed and accepting applications
	StatusClosed   Status = "Closed"   // No longer accepting applications
	StatusArchived Status = "Archived" // Hidden from listings
)

var StatusValues = []Status{StatusActive, StatusClosed, StatusArchived}

type Type string

const (
	TypeFullTime   Type = "Full-time"
	TypePartTime   Type = "Part-time"
	TypeContract   Type = "Contract"
	TypeFreelance  Type = "Freelance"
	TypeInternship Type = "Internship"
)

var TypeValues = []Type{TypeFullTime, TypePartTime, TypeContract, TypeFreelance, TypeInternship}

type WorkMode string

const (
	WorkModeRemote WorkMode = "Remote"
	WorkModeOnSite WorkMode = "On-site"
	WorkModeHybrid WorkMode = "Hybrid"
)

var WorkModeValues = []WorkMode{WorkModeRemote, WorkModeOnSite, WorkModeHybrid}

type SalaryPeriod string

const (
	SalaryHourly  SalaryPeriod = "Hourly"
	SalaryDaily   SalaryPeriod = "Daily"
	SalaryWeekly  SalaryPeriod = "Weekly"
	SalaryMonthly SalaryPeriod = "Monthly"
	SalaryYearly  SalaryPeriod = "Yearly"
)

var SalaryPeriodValues = []SalaryPeriod{SalaryHourly, SalaryDaily, SalaryWeekly, SalaryMonthly, SalaryYearly}

type Category string

const (
	CategoryEngineering Category = "Engineering"
	CategoryDesign      Category = "Design"
	CategoryProduct     Category = "Product"
	CategoryMarketing   Category = "Marketing"
	CategorySales       Category = "Sales"
	CategoryHR          Category = "HR"
	CategoryFinance     Category = "Finance"
	CategoryOther       Category = "Other"
)

var CategoryValues = []Category{
	CategoryEngineering, CategoryDesign, CategoryProduct, CategoryMarketing,
	CategorySales, CategoryHR, CategoryFinance, CategoryOther,
}

type Job struct {
	ID              kernel.JobID           `json:"id"`
	CompanyID       kernel.CompanyID       `json:"companyId"`
	Title           string                 `json:"title"`
	Slug            kernel.Slug            `json:"slug"`
	Type            Type                   `json:"type"`
	WorkMode        WorkMode               `json:"workMode"`
	Location        string                 `json:"location"`
	SalaryMin       *int                   `json:"salaryMin"`
	SalaryMax       *int                   `json:"salaryMax"`
	SalaryPeriod    SalaryPeriod           `json:"salaryPeriod,omitempty"`
	Description     string                 `json:"description"`
	Requirements    string                 `json:"requirements"`
	Benefits        string                 `json:"benefits"`
	Category        Category               `json:"category,omitempty"`
	ExperienceLevel kernel.ExperienceLevel `json:"experienceLevel,omitempty"`
	Skills          []string               `json:"skills"`
	Status          Status                 `json:"status"`
	Vacancies       int                    `json:"vacancies"`
	Deadline        *time.Time             `json:"deadline"`
	Seq             int64                  `json:"-"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

// CompanySummary is the slice of the owning company shown next to a job
type CompanySummary struct {
	ID          kernel.CompanyID `json:"id"`
	Name        string           `json:"name"`
	Slug        kernel.Slug      `json:"slug"`
	LogoURL     string           `json:"logoUrl"`
	Location    string           `json:"location"`
	Industry    string           `json:"industry,omitempty"`
	WebsiteURL  string           `json:"websiteUrl,omitempty"`
	Description string           `json:"description,omitempty"`
}

// JobDetails is a job as read back from the store, with derived fields
type JobDetails struct {
	Job
	Applicants int             `json:"applicants"`
	Company    *CompanySummary `json:"company,omitempty"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsActive checks if the job is listed publicly
func (j *Job) IsActive() bool {
	return j.Status == StatusActive
}

// OwnedBy checks if companyID posted the job
func (j *Job) OwnedBy(companyID kernel.CompanyID) bool {
	return j.CompanyID == companyID
}

// ApplyUpdate copies the provided fields of req onto the job. Enum fields
// must already be canonical.
func (j *Job) ApplyUpdate(req UpdateJobRequest) {
	if req.Title != nil {
		j.Title = *req.Title
	}
	if req.Type != nil {
		j.Type = Type(*req.Type)
	}
	if req.WorkMode != nil {
		j.WorkMode = WorkMode(*req.WorkMode)
	}
	if req.Location != nil {
		j.Location = *req.Location
	}
	if req.SalaryMin != nil {
		j.SalaryMin = req.SalaryMin
	}
	if req.SalaryMax != nil {
		j.SalaryMax = req.SalaryMax
	}
	if req.SalaryPeriod != nil {
		j.SalaryPeriod = SalaryPeriod(*req.SalaryPeriod)
	}
	if req.Description != nil {
		j.Description = *req.Description
	}
	if req.Requirements != nil {
		j.Requirements = *req.Requirements
	}
	if req.Benefits != nil {
		j.Benefits = *req.Benefits
	}
	if req.Category != nil {
		j.Category = Category(*req.Category)
	}
	if req.ExperienceLevel != nil {
		j.ExperienceLevel = kernel.ExperienceLevel(*req.ExperienceLevel)
	}
	if req.Skills != nil {
		j.Skills = *req.Skills
	}
	if req.Status != nil {
		j.Status = Status(*req.Status)
	}
	if req.Vacancies != nil {
		j.Vacancies = *req.Vacancies
	}
	if req.Deadline != nil {
		j.Deadline = req.Deadline
	}
	j.UpdatedAt = time.Now().UTC()
}

// EmbeddingText is the text indexed for semantic matching
func (j *Job) EmbeddingText() string {
	text := j.Title
	if len(j.Skills) > 0 {
		text += "\nSkills: " + strings.Join(j.Skills, ", ")
	}
	if j.ExperienceLevel != "" {
		text += "\nLevel: " + string(j.ExperienceLevel)
	}
	if j.Category != "" {
		text += "\nCategory: " + string(j.Category)
	}
	if j.Description != "" {
		desc := j.Description
		if len(desc) > 2000 {
			desc = desc[:2000]
		}
		text += "\n" + desc
	}
	return text
}
