package account

// RegisterRequest - DTO for creating a job seeker or company account. The
// optional profile fields apply to the role that has them.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`

	// Job seeker
	Title string `json:"title"`
	Phone string `json:"phone"`

	// Company
	Industry    string `json:"industry"`
	Description string `json:"description"`
	Location    string `json:"location"`
	WebsiteURL  string `json:"websiteUrl" validate:"omitempty,url"`
}

// LoginRequest - DTO for signing in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
