package services

import (
	"errors"
	"fmt"

	"github.com/tourbook/catalog/internal/repository"
)

const (
	EntityUser      = "user"
	EntityZone      = "zone"
	EntityTour      = "tour"
	EntityDeparture = "departure"
)

// ValidationError lists the fields a write rejected, keyed by Go field name.
type ValidationError = repository.ValidationError

var (
	ErrNotFound   = repository.ErrNotFound
	ErrValidation = repository.ErrValidation
	ErrReferenced = errors.New("record is still referenced")
)

// NotFoundError names a missing record. Ref holds the identifier as the
// caller sent it when it could not be parsed into an ID.
type NotFoundError struct {
	Entity string
	ID     uint
	Ref    string
}

func (e *NotFoundError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("%s %q not found", e.Entity, e.Ref)
	}
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ReferencedError refuses a delete that would leave dangling references.
type ReferencedError struct {
	Entity    string
	ID        uint
	Dependent string
	Count     int
}

func (e *ReferencedError) Error() string {
	return fmt.Sprintf("%s %d is referenced by %d %s(s)", e.Entity, e.ID, e.Count, e.Dependent)
}

func (e *ReferencedError) Is(target error) bool {
	return target == ErrReferenced
}

func notFound(err error, entity string, id uint) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return err
}
