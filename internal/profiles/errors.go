package profiles

import (
	"errors"

	"github.com/diewo77/go-profiles/validation"
)

// ErrNotFound reports a profile id with no row behind it.
var ErrNotFound = errors.New("profile not found")

// ErrBadCredentials covers both an unknown username and a wrong password,
// so a login response never reveals which half failed.
var ErrBadCredentials = errors.New("invalid credentials")

// ValidationError carries every rule violation found in one submission.
// Handlers translate the codes per field; nothing here is user-facing text.
type ValidationError struct {
	Fields validation.Violations
}

func (e *ValidationError) Error() string { return "validation failed" }

// ConflictError reports a uniqueness violation that storage caught after
// the validation-time lookups had passed, i.e. a concurrent writer won.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return "duplicate value"
	}
	return e.Field + " already taken"
}
