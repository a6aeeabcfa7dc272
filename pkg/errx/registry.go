package errx

import (
	"fmt"
	"sync"
)

type entry struct {
	errType    Type
	httpStatus int
	message    string
}

// Registry namespaces the error codes of one domain package
type Registry struct {
	prefix string
	mu     sync.RWMutex
	codes  map[string]entry
}

func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		codes:  make(map[string]entry),
	}
}

// Register declares a code and returns its fully-qualified name
func (r *Registry) Register(code string, t Type, httpStatus int, message string) string {
	full := fmt.Sprintf("%s_%s", r.prefix, code)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.codes[full]; exists {
		panic(fmt.Sprintf("errx: duplicate error code %s", full))
	}
	r.codes[full] = entry{errType: t, httpStatus: httpStatus, message: message}
	return full
}

// New builds a fresh error for a registered code
func (r *Registry) New(code string) *Error {
	r.mu.RLock()
	e, ok := r.codes[code]
	r.mu.RUnlock()
	if !ok {
		return New(code, TypeInternal, "unregistered error code")
	}
	return &Error{
		Code:       code,
		Type:       e.errType,
		Message:    e.message,
		HTTPStatus: e.httpStatus,
	}
}
