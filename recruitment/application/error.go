package application

import (
	"net/http"

	"github.com/aarifhsn/nexthire-backend/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("APPLICATION")

// Error codes
var (
	CodeApplicationNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Application not found")
	CodeAlreadyApplied      = ErrRegistry.Register("ALREADY_APPLIED", errx.TypeConflict, http.StatusBadRequest, "You have already applied for this job")
	CodeCoverLetterRequired = ErrRegistry.Register("COVER_LETTER_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "Cover letter is required")
	CodeResumeRequired      = ErrRegistry.Register("RESUME_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "Please upload a resume to your profile first")
	CodeJobNotActive        = ErrRegistry.Register("JOB_NOT_ACTIVE", errx.TypeValidation, http.StatusBadRequest, "This job is no longer accepting applications")
	CodeInvalidStatus       = ErrRegistry.Register("INVALID_STATUS", errx.TypeValidation, http.StatusBadRequest, "Invalid status")
	CodeNotJobOwner         = ErrRegistry.Register("NOT_JOB_OWNER", errx.TypeAuthorization, http.StatusForbidden, "Not authorized")
	CodeNotApplicationOwner = ErrRegistry.Register("NOT_OWNER", errx.TypeAuthorization, http.StatusForbidden, "Not authorized to withdraw this application")
	CodeInvalidRequest      = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrApplicationNotFound() *errx.Error {
	return ErrRegistry.New(CodeApplicationNotFound)
}

func ErrAlreadyApplied() *errx.Error {
	return ErrRegistry.New(CodeAlreadyApplied)
}

func ErrCoverLetterRequired() *errx.Error {
	return ErrRegistry.New(CodeCoverLetterRequired)
}

func ErrResumeRequired() *errx.Error {
	return ErrRegistry.New(CodeResumeRequired)
}

func ErrJobNotActive() *errx.Error {
	return ErrRegistry.New(CodeJobNotActive)
}

func ErrInvalidStatus() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatus)
}

func ErrNotJobOwner() *errx.Error {
	return ErrRegistry.New(CodeNotJobOwner)
}

func ErrNotApplicationOwner() *errx.Error {
	return ErrRegistry.New(CodeNotApplicationOwner)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
