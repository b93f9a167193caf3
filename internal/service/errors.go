package service

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Store implementations when a lookup by ID
// matches no row. The service translates it into a *NotFoundError carrying
// the requested ID.
var ErrNotFound = errors.New("user not found")

// ValidationError reports invalid input on create/update. The reason is
// human-readable and safe to return to clients.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NotFoundError reports a find/update/delete against an ID that does not
// exist.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("user with ID %s not found", e.ID)
}

// IsValidationError reports whether err is a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFoundError reports whether err is a *NotFoundError.
func IsNotFoundError(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}
