package auth

import (
	"net/http"

	"github.com/aarifhsn/nexthire-backend/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeMissingToken      = ErrRegistry.Register("MISSING_TOKEN", errx.TypeAuthentication, http.StatusUnauthorized, "Not authorized, no token")
	CodeInvalidToken      = ErrRegistry.Register("INVALID_TOKEN", errx.TypeAuthentication, http.StatusUnauthorized, "Not authorized, token failed")
	CodeSubjectNotFound   = ErrRegistry.Register("SUBJECT_NOT_FOUND", errx.TypeAuthentication, http.StatusUnauthorized, "Not authorized, account not found")
	CodeInvalidRole       = ErrRegistry.Register("INVALID_ROLE", errx.TypeAuthentication, http.StatusUnauthorized, "Not authorized, invalid role")
	CodeForbidden         = ErrRegistry.Register("FORBIDDEN", errx.TypeAuthorization, http.StatusForbidden, "Not authorized to access this route")
	CodeInvalidCredential = ErrRegistry.Register("INVALID_CREDENTIALS", errx.TypeValidation, http.StatusBadRequest, "Invalid credentials")
)

func ErrMissingToken() *errx.Error {
	return ErrRegistry.New(CodeMissingToken)
}

func ErrInvalidToken() *errx.Error {
	return ErrRegistry.New(CodeInvalidToken)
}

func ErrSubjectNotFound() *errx.Error {
	return ErrRegistry.New(CodeSubjectNotFound)
}

func ErrInvalidRole() *errx.Error {
	return ErrRegistry.New(CodeInvalidRole)
}

func ErrForbidden() *errx.Error {
	return ErrRegistry.New(CodeForbidden)
}

func ErrInvalidCredentials() *errx.Error {
	return ErrRegistry.New(CodeInvalidCredential)
}
