// Package repository persists catalog entities. Every entity type gets the
// same CRUD contract; Store bundles one repository per entity so callers can
// swap the gorm-backed implementation for the in-memory one.
package repository

import (
	"context"
	"errors"

	"github.com/tourbook/catalog/internal/models"
)

var ErrNotFound = errors.New("record not found")

// Patch overwrites the fields it carries on an entity.
type Patch[E any] interface {
	Apply(*E)
}

// CRUD is the per-entity contract. List returns records ordered by id.
// Delete reports false, not an error, when no row had the id.
type CRUD[E any, P Patch[E]] interface {
	List(ctx context.Context) ([]E, error)
	Get(ctx context.Context, id uint) (*E, error)
	Create(ctx context.Context, entity *E) error
	Update(ctx context.Context, id uint, patch P) (*E, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type UserRepository interface {
	CRUD[models.User, models.UserPatch]
}

type ZoneRepository interface {
	CRUD[models.Zone, models.ZonePatch]
}

type TourRepository interface {
	CRUD[models.Tour, models.TourPatch]
	ListDepartingFrom(ctx context.Context, zoneID uint) ([]models.Tour, error)
	ListArrivingAt(ctx context.Context, zoneID uint) ([]models.Tour, error)
}

type DepartureRepository interface {
	CRUD[models.Departure, models.DeparturePatch]
	ListByTour(ctx context.Context, tourID uint) ([]models.Departure, error)
}

type Store struct {
	Users      UserRepository
	Zones      ZoneRepository
	Tours      TourRepository
	Departures DepartureRepository

	// Ping checks the backing storage. Nil for stores without one.
	Ping func(ctx context.Context) error
}
