package plan

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound               = errors.New("resume not found")
	ErrPersistenceUnavailable = errors.New("database not configured")
	ErrProviderUnavailable    = errors.New("generation provider not configured")
	// ErrUnsupportedDocument is wrapped by document sources that cannot
	// extract text from a file type.
	ErrUnsupportedDocument = errors.New("unsupported file type")
)

// ValidationError is returned before any provider call when required input
// is missing or blank.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ProviderError wraps a failed generation call. The provider message is
// surfaced to the caller as is.
type ProviderError struct {
	Task Task
	Err  error
}

func (e *ProviderError) Error() string {
	return e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// StatusCode maps err onto the HTTP status reported to clients.
func StatusCode(err error) int {
	var verr *ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &verr), errors.Is(err, ErrPersistenceUnavailable):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
