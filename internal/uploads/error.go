package uploads

import (
	"net/http"

	"github.com/aarifhsn/nexthire-backend/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("UPLOAD")

var (
	CodeMissingFile = ErrRegistry.Register("MISSING_FILE", errx.TypeValidation, http.StatusBadRequest, "Please upload a file")
	CodeTooLarge    = ErrRegistry.Register("TOO_LARGE", errx.TypeValidation, http.StatusBadRequest, "File too large")
	CodeInvalidType = ErrRegistry.Register("INVALID_TYPE", errx.TypeValidation, http.StatusBadRequest, "Unsupported file type")
	CodeNotFound    = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "File not found")
)

func ErrMissingFile() *errx.Error {
	return ErrRegistry.New(CodeMissingFile)
}

func ErrTooLarge() *errx.Error {
	return ErrRegistry.New(CodeTooLarge)
}

func ErrInvalidType() *errx.Error {
	return ErrRegistry.New(CodeInvalidType)
}

func ErrNotFound() *errx.Error {
	return ErrRegistry.New(CodeNotFound)
}
