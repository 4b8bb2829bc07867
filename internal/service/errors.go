package service

import "errors"

// Error taxonomy shared by all services. Handlers map these onto HTTP
// status codes in exactly one way: validation 400, credentials 401,
// forbidden 403, not found 404, email taken 409.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("user already exists")
)

// ValidationError reports malformed input with a single human-readable
// message rather than a field-by-field list.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validation(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
