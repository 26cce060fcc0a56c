package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tourbook/catalog/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormCRUD[E any, P Patch[E]] struct {
	db *gorm.DB
}

func (r *gormCRUD[E, P]) List(ctx context.Context) ([]E, error) {
	return r.find(ctx, r.db)
}

func (r *gormCRUD[E, P]) find(ctx context.Context, query *gorm.DB) ([]E, error) {
	out := []E{}

	if err := query.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}

	return out, nil
}

func (r *gormCRUD[E, P]) Get(ctx context.Context, id uint) (*E, error) {
	var entity E

	if err := r.db.WithContext(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &entity, nil
}

func (r *gormCRUD[E, P]) Create(ctx context.Context, entity *E) error {
	if err := Validate(entity); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error
}

func (r *gormCRUD[E, P]) Update(ctx context.Context, id uint, patch P) (*E, error) {
	var updated E

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&updated, id).Error; err != nil {
			return err
		}

		patch.Apply(&updated)

		if err := Validate(&updated); err != nil {
			return err
		}

		return tx.Omit(clause.Associations).Save(&updated).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &updated, nil
}

func (r *gormCRUD[E, P]) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(new(E), id)

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

type gormTours struct {
	*gormCRUD[models.Tour, models.TourPatch]
}

func (r gormTours) ListDepartingFrom(ctx context.Context, zoneID uint) ([]models.Tour, error) {
	return r.find(ctx, r.db.Where("zona_salida_id = ?", zoneID))
}

func (r gormTours) ListArrivingAt(ctx context.Context, zoneID uint) ([]models.Tour, error) {
	return r.find(ctx, r.db.Where("zona_llegada_id = ?", zoneID))
}

type gormDepartures struct {
	*gormCRUD[models.Departure, models.DeparturePatch]
}

func (r gormDepartures) ListByTour(ctx context.Context, tourID uint) ([]models.Departure, error) {
	return r.find(ctx, r.db.Where("tour_id = ?", tourID))
}

// NewGormStore backs every repository with the given connection.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:      &gormCRUD[models.User, models.UserPatch]{db: db},
		Zones:      &gormCRUD[models.Zone, models.ZonePatch]{db: db},
		Tours:      gormTours{&gormCRUD[models.Tour, models.TourPatch]{db: db}},
		Departures: gormDepartures{&gormCRUD[models.Departure, models.DeparturePatch]{db: db}},
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()

			if err != nil {
				return fmt.Errorf("failed to get database handle: %w", err)
			}

			return sqlDB.PingContext(ctx)
		},
	}
}
