package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// Type classifies an error independently of its code
type Type string

const (
	TypeValidation     Type = "VALIDATION"
	TypeNotFound       Type = "NOT_FOUND"
	TypeConflict       Type = "CONFLICT"
	TypeAuthentication Type = "AUTHENTICATION"
	TypeAuthorization  Type = "AUTHORIZATION"
	TypeBusiness       Type = "BUSINESS"
	TypeExternal       Type = "EXTERNAL"
	TypeInternal       Type = "INTERNAL"
)

// defaultStatus is used when an error is created without a registry entry
var defaultStatus = map[Type]int{
	TypeValidation:     http.StatusBadRequest,
	TypeNotFound:       http.StatusNotFound,
	TypeConflict:       http.StatusConflict,
	TypeAuthentication: http.StatusUnauthorized,
	TypeAuthorization:  http.StatusForbidden,
	TypeBusiness:       http.StatusUnprocessableEntity,
	TypeExternal:       http.StatusBadGateway,
	TypeInternal:       http.StatusInternalServerError,
}

// Error is the error value every layer returns to the HTTP boundary
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

// New creates an unregistered error
func New(code string, t Type, message string) *Error {
	return &Error{
		Code:       code,
		Type:       t,
		Message:    message,
		HTTPStatus: StatusFor(t),
	}
}

// Wrap attaches a message and type to a lower-level error. Errors that are
// already *Error pass through untouched so domain errors raised by a
// repository keep their status.
func Wrap(err error, message string, t Type) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{
		Code:       string(t),
		Type:       t,
		Message:    message,
		HTTPStatus: StatusFor(t),
		Err:        err,
	}
}

// StatusFor returns the default HTTP status of an error type
func StatusFor(t Type) int {
	if s, ok := defaultStatus[t]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on code so that errors.Is(err, job.ErrJobNotFound()) works
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithDetail adds a key/value pair to the response details
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails merges several details at once
func (e *Error) WithDetails(details map[string]any) *Error {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// WithMessage overrides the registered message
func (e *Error) WithMessage(message string) *Error {
	e.Message = message
	return e
}

// WithCause records the underlying error without exposing it to clients
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// ToHTTPResponse renders the JSON body returned to clients
func (e *Error) ToHTTPResponse() map[string]any {
	body := map[string]any{
		"success": false,
		"message": e.Message,
		"code":    e.Code,
		"type":    e.Type,
	}
	if len(e.Details) > 0 {
		body["details"] = e.Details
	}
	return body
}

// IsType reports whether err is an *Error of type t
func IsType(err error, t Type) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == t
}

// HasCode reports whether err is an *Error carrying code
func HasCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
