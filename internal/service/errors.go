package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/suagrafica/portal/internal/repo"
)

var (
	ErrUnauthorized = errors.New("unauthorized") // 401
	ErrValidation   = errors.New("validation")   // 400
	ErrForbidden    = errors.New("forbidden")    // 403
	ErrNotFound     = errors.New("not found")    // 404
	ErrConflict     = errors.New("conflict")     // 409
)

// storeError maps repository sentinels onto the service taxonomy. Anything
// unrecognised is returned as is and treated as an internal fault.
func storeError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	case errors.Is(err, repo.ErrDuplicate):
		return fmt.Errorf("%w: %s already exists", ErrConflict, what)
	case errors.Is(err, repo.ErrInUse):
		return fmt.Errorf("%w: %s is still referenced", ErrConflict, what)
	case errors.Is(err, repo.ErrLastAdmin):
		return fmt.Errorf("%w: cannot delete the last admin", ErrConflict)
	case errors.Is(err, repo.ErrMissingReference):
		return fmt.Errorf("%w: %s references a missing record", ErrValidation, what)
	}
	return err
}
