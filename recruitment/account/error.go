package account

import (
	"net/http"

	"github.com/aarifhsn/nexthire-backend/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("ACCOUNT")

// Error codes
var (
	CodeMissingFields  = ErrRegistry.Register("MISSING_FIELDS", errx.TypeValidation, http.StatusBadRequest, "Please add all required fields")
	CodeInvalidRole    = ErrRegistry.Register("INVALID_ROLE", errx.TypeValidation, http.StatusBadRequest, "Invalid role")
	CodeEmailTaken     = ErrRegistry.Register("EMAIL_TAKEN", errx.TypeConflict, http.StatusBadRequest, "User already exists")
	CodeInvalidRequest = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request body")
)

// Helper functions
func ErrMissingFields() *errx.Error {
	return ErrRegistry.New(CodeMissingFields)
}

func ErrInvalidRole() *errx.Error {
	return ErrRegistry.New(CodeInvalidRole)
}

func ErrEmailTaken() *errx.Error {
	return ErrRegistry.New(CodeEmailTaken)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
