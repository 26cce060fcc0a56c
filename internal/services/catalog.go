package services

import (
	"context"

	"github.com/tourbook/catalog/internal/models"
	"github.com/tourbook/catalog/internal/observability"
	"github.com/tourbook/catalog/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("github.com/tourbook/catalog/internal/services")

// Catalog is the single entry point the REST and GraphQL layers share. It
// resolves references between entities, refuses deletes that would leave
// dangling references, and announces every committed write.
type Catalog struct {
	store     *repository.Store
	publisher Publisher
}

func NewCatalog(store *repository.Store, publisher Publisher) *Catalog {
	if publisher == nil {
		publisher = nopPublisher{}
	}

	return &Catalog{store: store, publisher: publisher}
}

func startSpan(ctx context.Context, name string) (context.Context, func(*error)) {
	ctx, span := tracer.Start(ctx, "catalog."+name)

	return ctx, func(errp *error) {
		if errp != nil && *errp != nil {
			span.RecordError(*errp)
			span.SetStatus(codes.Error, (*errp).Error())
		}
		span.End()
	}
}

func (c *Catalog) emit(entity, action string, id uint) {
	observability.MutationsTotal.WithLabelValues(entity, action).Inc()
	c.publisher.Publish(NewEvent(entity, action, id))
}

// Ping reports whether the backing storage is reachable.
func (c *Catalog) Ping(ctx context.Context) error {
	if c.store.Ping == nil {
		return nil
	}
	return c.store.Ping(ctx)
}

// Users

func (c *Catalog) ListUsers(ctx context.Context) ([]models.User, error) {
	return c.store.Users.List(ctx)
}

func (c *Catalog) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := c.store.Users.Get(ctx, id)
	return user, notFound(err, EntityUser, id)
}

func (c *Catalog) CreateUser(ctx context.Context, user *models.User) (err error) {
	ctx, end := startSpan(ctx, "CreateUser")
	defer end(&err)

	if err = c.store.Users.Create(ctx, user); err != nil {
		return err
	}

	c.emit(EntityUser, ActionCreated, user.ID)
	return nil
}

func (c *Catalog) UpdateUser(ctx context.Context, id uint, patch models.UserPatch) (user *models.User, err error) {
	ctx, end := startSpan(ctx, "UpdateUser")
	defer end(&err)

	if user, err = c.store.Users.Update(ctx, id, patch); err != nil {
		return nil, notFound(err, EntityUser, id)
	}

	c.emit(EntityUser, ActionUpdated, id)
	return user, nil
}

func (c *Catalog) DeleteUser(ctx context.Context, id uint) (ok bool, err error) {
	ctx, end := startSpan(ctx, "DeleteUser")
	defer end(&err)

	if ok, err = c.store.Users.Delete(ctx, id); err != nil || !ok {
		return ok, err
	}

	c.emit(EntityUser, ActionDeleted, id)
	return true, nil
}

// Zones

func (c *Catalog) ListZones(ctx context.Context) ([]models.Zone, error) {
	return c.store.Zones.List(ctx)
}

func (c *Catalog) GetZone(ctx context.Context, id uint) (*models.Zone, error) {
	zone, err := c.store.Zones.Get(ctx, id)
	return zone, notFound(err, EntityZone, id)
}

func (c *Catalog) ToursDepartingFrom(ctx context.Context, zoneID uint) ([]models.Tour, error) {
	return c.store.Tours.ListDepartingFrom(ctx, zoneID)
}

func (c *Catalog) ToursArrivingAt(ctx context.Context, zoneID uint) ([]models.Tour, error) {
	return c.store.Tours.ListArrivingAt(ctx, zoneID)
}

func (c *Catalog) CreateZone(ctx context.Context, zone *models.Zone) (err error) {
	ctx, end := startSpan(ctx, "CreateZone")
	defer end(&err)

	if err = c.store.Zones.Create(ctx, zone); err != nil {
		return err
	}

	c.emit(EntityZone, ActionCreated, zone.ID)
	return nil
}

func (c *Catalog) UpdateZone(ctx context.Context, id uint, patch models.ZonePatch) (zone *models.Zone, err error) {
	ctx, end := startSpan(ctx, "UpdateZone")
	defer end(&err)

	if zone, err = c.store.Zones.Update(ctx, id, patch); err != nil {
		return nil, notFound(err, EntityZone, id)
	}

	c.emit(EntityZone, ActionUpdated, id)
	return zone, nil
}

// DeleteZone refuses to remove a zone any tour departs from or arrives at.
func (c *Catalog) DeleteZone(ctx context.Context, id uint) (ok bool, err error) {
	ctx, end := startSpan(ctx, "DeleteZone")
	defer end(&err)

	departing, err := c.store.Tours.ListDepartingFrom(ctx, id)

	if err != nil {
		return false, err
	}

	arriving, err := c.store.Tours.ListArrivingAt(ctx, id)

	if err != nil {
		return false, err
	}

	if n := len(departing) + len(arriving); n > 0 {
		return false, &ReferencedError{Entity: EntityZone, ID: id, Dependent: EntityTour, Count: n}
	}

	if ok, err = c.store.Zones.Delete(ctx, id); err != nil || !ok {
		return ok, err
	}

	c.emit(EntityZone, ActionDeleted, id)
	return true, nil
}

// Tours

func (c *Catalog) ListTours(ctx context.Context) ([]models.Tour, error) {
	return c.store.Tours.List(ctx)
}

func (c *Catalog) GetTour(ctx context.Context, id uint) (*models.Tour, error) {
	tour, err := c.store.Tours.Get(ctx, id)
	return tour, notFound(err, EntityTour, id)
}

func (c *Catalog) DeparturesOf(ctx context.Context, tourID uint) ([]models.Departure, error) {
	return c.store.Departures.ListByTour(ctx, tourID)
}

func (c *Catalog) requireZones(ctx context.Context, ids ...uint) error {
	for _, id := range ids {
		if id == 0 {
			continue
		}

		if _, err := c.GetZone(ctx, id); err != nil {
			return err
		}
	}

	return nil
}

// CreateTour rejects a tour whose zones do not exist; nothing is written.
func (c *Catalog) CreateTour(ctx context.Context, tour *models.Tour) (err error) {
	ctx, end := startSpan(ctx, "CreateTour")
	defer end(&err)

	if err = c.requireZones(ctx, tour.ZonaSalidaID, tour.ZonaLlegadaID); err != nil {
		return err
	}

	if err = c.store.Tours.Create(ctx, tour); err != nil {
		return err
	}

	c.emit(EntityTour, ActionCreated, tour.ID)
	return nil
}

func (c *Catalog) UpdateTour(ctx context.Context, id uint, patch models.TourPatch) (tour *models.Tour, err error) {
	ctx, end := startSpan(ctx, "UpdateTour")
	defer end(&err)

	if _, err = c.GetTour(ctx, id); err != nil {
		return nil, err
	}

	if err = c.requireZones(ctx, patch.ZoneIDs()...); err != nil {
		return nil, err
	}

	if tour, err = c.store.Tours.Update(ctx, id, patch); err != nil {
		return nil, notFound(err, EntityTour, id)
	}

	c.emit(EntityTour, ActionUpdated, id)
	return tour, nil
}

// DeleteTour refuses to remove a tour that still has departures.
func (c *Catalog) DeleteTour(ctx context.Context, id uint) (ok bool, err error) {
	ctx, end := startSpan(ctx, "DeleteTour")
	defer end(&err)

	departures, err := c.store.Departures.ListByTour(ctx, id)

	if err != nil {
		return false, err
	}

	if len(departures) > 0 {
		return false, &ReferencedError{Entity: EntityTour, ID: id, Dependent: EntityDeparture, Count: len(departures)}
	}

	if ok, err = c.store.Tours.Delete(ctx, id); err != nil || !ok {
		return ok, err
	}

	c.emit(EntityTour, ActionDeleted, id)
	return true, nil
}

// Departures

func (c *Catalog) ListDepartures(ctx context.Context) ([]models.Departure, error) {
	return c.store.Departures.List(ctx)
}

func (c *Catalog) GetDeparture(ctx context.Context, id uint) (*models.Departure, error) {
	departure, err := c.store.Departures.Get(ctx, id)
	return departure, notFound(err, EntityDeparture, id)
}

func (c *Catalog) requireTour(ctx context.Context, id uint) error {
	if id == 0 {
		return nil
	}

	_, err := c.GetTour(ctx, id)
	return err
}

func (c *Catalog) CreateDeparture(ctx context.Context, departure *models.Departure) (err error) {
	ctx, end := startSpan(ctx, "CreateDeparture")
	defer end(&err)

	if err = c.requireTour(ctx, departure.TourID); err != nil {
		return err
	}

	if err = c.store.Departures.Create(ctx, departure); err != nil {
		return err
	}

	c.emit(EntityDeparture, ActionCreated, departure.ID)
	return nil
}

func (c *Catalog) UpdateDeparture(ctx context.Context, id uint, patch models.DeparturePatch) (departure *models.Departure, err error) {
	ctx, end := startSpan(ctx, "UpdateDeparture")
	defer end(&err)

	if _, err = c.GetDeparture(ctx, id); err != nil {
		return nil, err
	}

	if tourID, set := patch.TourID.Get(); set {
		if err = c.requireTour(ctx, tourID); err != nil {
			return nil, err
		}
	}

	if departure, err = c.store.Departures.Update(ctx, id, patch); err != nil {
		return nil, notFound(err, EntityDeparture, id)
	}

	c.emit(EntityDeparture, ActionUpdated, id)
	return departure, nil
}

func (c *Catalog) DeleteDeparture(ctx context.Context, id uint) (ok bool, err error) {
	ctx, end := startSpan(ctx, "DeleteDeparture")
	defer end(&err)

	if ok, err = c.store.Departures.Delete(ctx, id); err != nil || !ok {
		return ok, err
	}

	c.emit(EntityDeparture, ActionDeleted, id)
	return true, nil
}
