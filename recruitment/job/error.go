package job

import (
	"net/http"

	"github.com/aarifhsn/nexthire-backend/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("JOB")

// Error codes
var (
	CodeJobNotFound    = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job not found")
	CodeSlugTaken      = ErrRegistry.Register("SLUG_TAKEN", errx.TypeConflict, http.StatusBadRequest, "Job slug already taken")
	CodeNotOwner       = ErrRegistry.Register("NOT_OWNER", errx.TypeAuthorization, http.StatusForbidden, "Not authorized to update this job")
	CodeInvalidField   = ErrRegistry.Register("INVALID_FIELD", errx.TypeValidation, http.StatusBadRequest, "Invalid job field")
	CodeInvalidStatus  = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Invalid status. Allowed: Active, Closed, Archived")
	CodeInvalidSort    = ErrRegistry.Register("INVALID_SORT", errx.TypeValidation, http.StatusBadRequest, "Invalid sort. Allowed: newest, oldest")
	CodeInvalidRequest = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request body")
)

// Helper functions
func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrSlugTaken() *errx.Error {
	return ErrRegistry.New(CodeSlugTaken)
}

func ErrNotOwner() *errx.Error {
	return ErrRegistry.New(CodeNotOwner)
}

func ErrInvalidField() *errx.Error {
	return ErrRegistry.New(CodeInvalidField)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}

func ErrInvalidSort() *errx.Error {
	return ErrRegistry.New(CodeInvalidSort)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
