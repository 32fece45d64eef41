package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a referenced record does not exist
var ErrNotFound = errors.New("record not found")

// ConflictError reports a store-level uniqueness violation that slipped past
// application validation (a race between check and write). The caller may
// retry the whole operation against fresh state; the service does not.
type ConflictError struct {
	Entity string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflicts with an existing record", e.Entity)
}

// RestrictedError reports a delete blocked because dependent rows exist
type RestrictedError struct {
	Entity    string
	Dependent string
}

func (e *RestrictedError) Error() string {
	if e.Dependent != "" {
		return fmt.Sprintf("cannot delete %s: %s records exist", e.Entity, e.Dependent)
	}
	return fmt.Sprintf("cannot delete %s: it is in use", e.Entity)
}

// translateStoreError maps gorm/store errors into the service error taxonomy
// at the mutation boundary.
func translateStoreError(entity string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &ConflictError{Entity: entity}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &RestrictedError{Entity: entity}
	}
	return err
}
