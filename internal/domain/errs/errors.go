// Package errs holds the failure taxonomy shared by every domain package.
// Domain sentinels wrap one of these so the transport layer can classify
// any error with errors.Is.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrBadRequest       = errors.New("bad request")
	ErrValidation       = errors.New("validation failed")
	ErrConflict         = errors.New("conflict")
)

// MissingFields reports required fields absent from a full replacement.
func MissingFields(fields ...string) error {
	return fmt.Errorf("%w: missing required fields: %s", ErrValidation, strings.Join(fields, ", "))
}
