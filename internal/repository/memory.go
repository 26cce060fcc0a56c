package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tourbook/catalog/internal/models"
)

type entity interface {
	GetID() uint
	SetID(uint)
	Touch(time.Time)
}

// memoryCRUD keeps rows by value so callers never alias stored state.
type memoryCRUD[E any, PE interface {
	*E
	entity
}, P Patch[E]] struct {
	mu     sync.RWMutex
	rows   map[uint]E
	nextID uint
}

func newMemoryCRUD[E any, PE interface {
	*E
	entity
}, P Patch[E]]() *memoryCRUD[E, PE, P] {
	return &memoryCRUD[E, PE, P]{rows: make(map[uint]E)}
}

func (r *memoryCRUD[E, PE, P]) List(_ context.Context) ([]E, error) {
	return r.filter(func(*E) bool { return true }), nil
}

func (r *memoryCRUD[E, PE, P]) filter(keep func(*E) bool) []E {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]uint, 0, len(r.rows))

	for id := range r.rows {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := []E{}

	for _, id := range ids {
		row := r.rows[id]
		if keep(&row) {
			out = append(out, row)
		}
	}

	return out
}

func (r *memoryCRUD[E, PE, P]) Get(_ context.Context, id uint) (*E, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[id]

	if !ok {
		return nil, ErrNotFound
	}

	return &row, nil
}

func (r *memoryCRUD[E, PE, P]) Create(_ context.Context, e *E) error {
	if err := Validate(e); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	PE(e).SetID(r.nextID)
	PE(e).Touch(time.Now())
	r.rows[r.nextID] = *e

	return nil
}

func (r *memoryCRUD[E, PE, P]) Update(_ context.Context, id uint, patch P) (*E, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]

	if !ok {
		return nil, ErrNotFound
	}

	patch.Apply(&row)

	if err := Validate(&row); err != nil {
		return nil, err
	}

	PE(&row).Touch(time.Now())
	r.rows[id] = row

	return &row, nil
}

func (r *memoryCRUD[E, PE, P]) Delete(_ context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return false, nil
	}

	delete(r.rows, id)

	return true, nil
}

type memoryTours struct {
	*memoryCRUD[models.Tour, *models.Tour, models.TourPatch]
}

func (r memoryTours) ListDepartingFrom(_ context.Context, zoneID uint) ([]models.Tour, error) {
	return r.filter(func(t *models.Tour) bool { return t.ZonaSalidaID == zoneID }), nil
}

func (r memoryTours) ListArrivingAt(_ context.Context, zoneID uint) ([]models.Tour, error) {
	return r.filter(func(t *models.Tour) bool { return t.ZonaLlegadaID == zoneID }), nil
}

type memoryDepartures struct {
	*memoryCRUD[models.Departure, *models.Departure, models.DeparturePatch]
}

func (r memoryDepartures) ListByTour(_ context.Context, tourID uint) ([]models.Departure, error) {
	return r.filter(func(d *models.Departure) bool { return d.TourID == tourID }), nil
}

// NewMemoryStore keeps everything in process memory. Used by tests and by
// DB_DRIVER=memory for local runs.
func NewMemoryStore() *Store {
	return &Store{
		Users:      newMemoryCRUD[models.User, *models.User, models.UserPatch](),
		Zones:      newMemoryCRUD[models.Zone, *models.Zone, models.ZonePatch](),
		Tours:      memoryTours{newMemoryCRUD[models.Tour, *models.Tour, models.TourPatch]()},
		Departures: memoryDepartures{newMemoryCRUD[models.Departure, *models.Departure, models.DeparturePatch]()},
	}
}
