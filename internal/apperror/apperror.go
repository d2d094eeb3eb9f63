// Package apperror defines the domain error kinds shared by every layer.
//
// The service and repository layers return these errors; the HTTP handlers
// translate them into status codes at the very edge. Nothing below the
// handler layer knows about HTTP.
package apperror

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Check with errors.Is — they survive any amount of
// fmt.Errorf("%w") wrapping on the way up.
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrThirdParty   = errors.New("third party error")
	ErrStorage      = errors.New("storage error")
)

// AppError carries a kind (Err), a message that is safe to show to clients,
// and optionally the field that caused a validation failure.
//
// The wrapped Err may itself wrap an internal cause (a database error, a
// classifier transport error). That cause is for server-side logs only —
// Message is the only text that crosses the trust boundary.
type AppError struct {
	Err     error  // sentinel kind, possibly wrapping an internal cause
	Message string // client-safe, human-readable description
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// MissingParameters reports that a required query parameter set is absent.
// List endpoints demand an explicit pagination window; there is no default.
func MissingParameters() *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: "missing pagination parameters: limit and offset are required",
	}
}

// ParseError reports a query or path value that failed to parse.
func ParseError(field, value string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: fmt.Sprintf("cannot parse parameter %q: invalid value %q", field, value),
		Field:   field,
	}
}

// ValidationFailed reports an invalid request payload field.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// NotFound reports that a resource does not exist.
func NotFound(resource string, id int) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

// EmailExists reports a registration attempt with a taken email address.
func EmailExists() *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: "an account with this email already exists",
	}
}

// InvalidCredentials is returned for every login failure. Unknown email and
// wrong password deliberately produce the identical error so the response
// never reveals which half of the check failed.
func InvalidCredentials() *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: "invalid email or password",
	}
}

// Unauthorized reports a rejected request on a protected route. The cause
// (missing header, expired token, bad signature) is wrapped for logging but
// the client message stays generic.
func Unauthorized(cause error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %w", ErrUnauthorized, cause),
		Message: "valid authentication required",
	}
}

// ThirdParty reports a failure of an external collaborator (the profanity
// classifier). The write that depended on it fails as a whole.
func ThirdParty(cause error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %w", ErrThirdParty, cause),
		Message: "an external service failed, please retry",
	}
}

// Storage wraps a failure of the storage collaborator.
func Storage(cause error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %w", ErrStorage, cause),
		Message: "an internal error occurred",
	}
}
