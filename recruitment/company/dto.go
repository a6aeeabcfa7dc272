package company

// UpdateProfileRequest - DTO for a partial company profile update. Empty
// values leave the stored field untouched.
type UpdateProfileRequest struct {
	Name          string            `json:"name"`
	Industry      string            `json:"industry"`
	Description   string            `json:"description"`
	Location      string            `json:"location"`
	City          string            `json:"city"`
	State         string            `json:"state"`
	Country       string            `json:"country"`
	Phone         string            `json:"phone"`
	SocialLinks   map[string]string `json:"socialLinks"`
	WebsiteURL    string            `json:"websiteUrl" validate:"omitempty,url"`
	HREmail       string            `json:"hrEmail" validate:"omitempty,email"`
	InfoEmail     string            `json:"infoEmail" validate:"omitempty,email"`
	EmployeeCount string            `json:"employeeCount"`
	FoundedYear   *int              `json:"foundedYear" validate:"omitempty,min=1800,max=2100"`
}
