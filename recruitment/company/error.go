package company

import (
	"net/http"

	"github.com/aarifhsn/nexthire-backend/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("COMPANY")

// Error codes
var (
	CodeCompanyNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Company not found")
	CodeEmailTaken      = ErrRegistry.Register("EMAIL_TAKEN", errx.TypeConflict, http.StatusBadRequest, "User already exists")
	CodeSlugTaken       = ErrRegistry.Register("SLUG_TAKEN", errx.TypeConflict, http.StatusBadRequest, "Company slug already taken")
	CodeInvalidRequest  = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request body")
)

// Helper functions
func ErrCompanyNotFound() *errx.Error {
	return ErrRegistry.New(CodeCompanyNotFound)
}

func ErrEmailTaken() *errx.Error {
	return ErrRegistry.New(CodeEmailTaken)
}

func ErrSlugTaken() *errx.Error {
	return ErrRegistry.New(CodeSlugTaken)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
