package user

import (
	"net/http"

	"github.com/aarifhsn/nexthire-backend/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("USER")

// Error codes
var (
	CodeUserNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "User not found")
	CodeEmailTaken        = ErrRegistry.Register("EMAIL_TAKEN", errx.TypeConflict, http.StatusBadRequest, "User already exists")
	CodeInvalidExperience = ErrRegistry.Register("INVALID_EXPERIENCE", errx.TypeValidation, http.StatusBadRequest, "Experience items must have companyName, employmentType, startDate, location, and description")
	CodeInvalidLevel      = ErrRegistry.Register("INVALID_LEVEL", errx.TypeValidation, http.StatusBadRequest, "Invalid experience level. Allowed: Entry, Mid, Senior, Expert, Lead")
)

// Helper functions
func ErrUserNotFound() *errx.Error {
	return ErrRegistry.New(CodeUserNotFound)
}

func ErrEmailTaken() *errx.Error {
	return ErrRegistry.New(CodeEmailTaken)
}

func ErrInvalidExperience() *errx.Error {
	return ErrRegistry.New(CodeInvalidExperience)
}

func ErrInvalidLevel() *errx.Error {
	return ErrRegistry.New(CodeInvalidLevel)
}
