package leads

import "errors"

var (
	// ErrNameRequired is returned when the submitter's name is missing
	ErrNameRequired = errors.New("name is required")

	// ErrEmailRequired is returned when the submitter's email is missing
	ErrEmailRequired = errors.New("email is required")

	// ErrEmailInvalid is returned when the email is not syntactically valid
	ErrEmailInvalid = errors.New("email address is not valid")

	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")
)

// IsValidationError reports whether err is a client-input validation error,
// as opposed to a storage failure. Validation errors never reach the
// repository.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrEmailRequired) ||
		errors.Is(err, ErrEmailInvalid)
}
