package types

import "errors"

// Entity operation errors. Validation errors map to a client error at the
// HTTP boundary; ErrNotFound maps to 404.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidID     = errors.New("invalid entity ID")
	ErrInvalidData   = errors.New("invalid entity data")
	ErrRequiredField = errors.New("required field is empty")
	ErrInvalidStatus = errors.New("invalid status value")
	ErrEmptyPatch    = errors.New("no valid fields to update")
)

// IsValidation reports whether err is one of the client-side validation
// errors declared in this package.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidData) ||
		errors.Is(err, ErrRequiredField) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrEmptyPatch)
}
