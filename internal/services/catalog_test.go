package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourbook/catalog/internal/models"
	"github.com/tourbook/catalog/internal/repository"
	"github.com/tourbook/catalog/internal/types"
)

type recorder struct {
	events []Event
}

func (r *recorder) Publish(e Event) {
	r.events = append(r.events, e)
}

func newTestCatalog(t *testing.T) (*Catalog, *recorder) {
	t.Helper()
	rec := &recorder{}
	return NewCatalog(repository.NewMemoryStore(), rec), rec
}

func seedZones(t *testing.T, c *Catalog) (models.Zone, models.Zone) {
	t.Helper()
	ctx := context.Background()

	a := models.Zone{Name: "Cancún"}
	b := models.Zone{Name: "Tulum"}
	require.NoError(t, c.CreateZone(ctx, &a))
	require.NoError(t, c.CreateZone(ctx, &b))

	return a, b
}

func TestCatalog_CreateTourLinksZones(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	a, b := seedZones(t, c)

	tour := models.Tour{Name: "Beach Hop", Description: "...", ZonaSalidaID: a.ID, ZonaLlegadaID: b.ID}
	require.NoError(t, c.CreateTour(ctx, &tour))

	got, err := c.GetTour(ctx, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ZonaSalidaID)
	assert.Equal(t, b.ID, got.ZonaLlegadaID)
	assert.Nil(t, got.Slug)

	tours, err := c.ListTours(ctx)
	require.NoError(t, err)
	require.Len(t, tours, 1)
	assert.Equal(t, tour.ID, tours[0].ID)
}

func TestCatalog_CreateTourWithMissingZoneWritesNothing(t *testing.T) {
	c, rec := newTestCatalog(t)
	ctx := context.Background()
	a, _ := seedZones(t, c)

	err := c.CreateTour(ctx, &models.Tour{Name: "Ghost", Description: "...", ZonaSalidaID: 9999, ZonaLlegadaID: a.ID})

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, EntityZone, nf.Entity)
	assert.Equal(t, uint(9999), nf.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	tours, err := c.ListTours(ctx)
	require.NoError(t, err)
	assert.Empty(t, tours)
	assert.Len(t, rec.events, 2)
}

func TestCatalog_UpdateZoneKeepsUnsetFields(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	lat, lon, desc := 21.16, -86.85, "Caribe mexicano"
	zone := models.Zone{Name: "Cancún", Description: &desc, Latitud: &lat, Longitud: &lon}
	require.NoError(t, c.CreateZone(ctx, &zone))

	got, err := c.UpdateZone(ctx, zone.ID, models.ZonePatch{Name: types.Some("Cancun City")})
	require.NoError(t, err)
	assert.Equal(t, "Cancun City", got.Name)
	assert.Equal(t, desc, *got.Description)
	assert.Equal(t, lat, *got.Latitud)
	assert.Equal(t, lon, *got.Longitud)
}

func TestCatalog_UpdateSameValueStillWrites(t *testing.T) {
	c, rec := newTestCatalog(t)
	ctx := context.Background()
	a, _ := seedZones(t, c)

	_, err := c.UpdateZone(ctx, a.ID, models.ZonePatch{Name: types.Some(a.Name)})
	require.NoError(t, err)

	last := rec.events[len(rec.events)-1]
	assert.Equal(t, "zone.updated", last.Type)
	assert.Equal(t, a.ID, last.ID)
}

func TestCatalog_UpdateMissing(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	_, err := c.UpdateZone(ctx, 42, models.ZonePatch{Name: types.Some("x")})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.UpdateTour(ctx, 42, models.TourPatch{Name: types.Some("x")})

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, EntityTour, nf.Entity)
}

func TestCatalog_UpdateTourWithMissingZone(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	a, b := seedZones(t, c)

	tour := models.Tour{Name: "Beach Hop", Description: "...", ZonaSalidaID: a.ID, ZonaLlegadaID: b.ID}
	require.NoError(t, c.CreateTour(ctx, &tour))

	_, err := c.UpdateTour(ctx, tour.ID, models.TourPatch{ZonaLlegadaID: types.Some(uint(777))})

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, EntityZone, nf.Entity)

	got, err := c.GetTour(ctx, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ZonaLlegadaID)
}

func TestCatalog_DeleteZoneIsGuarded(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	a, b := seedZones(t, c)

	tour := models.Tour{Name: "Beach Hop", Description: "...", ZonaSalidaID: a.ID, ZonaLlegadaID: b.ID}
	require.NoError(t, c.CreateTour(ctx, &tour))

	ok, err := c.DeleteZone(ctx, a.ID)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrReferenced)

	ok, err = c.DeleteTour(ctx, tour.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.DeleteZone(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCatalog_DeleteTwice(t *testing.T) {
	c, rec := newTestCatalog(t)
	ctx := context.Background()
	a, _ := seedZones(t, c)

	ok, err := c.DeleteZone(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	n := len(rec.events)

	ok, err = c.DeleteZone(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, rec.events, n, "a no-op delete publishes nothing")
}

func TestCatalog_DeleteMissingZone(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	seedZones(t, c)

	ok, err := c.DeleteZone(ctx, 9999)
	require.NoError(t, err)
	assert.False(t, ok)

	zones, err := c.ListZones(ctx)
	require.NoError(t, err)
	assert.Len(t, zones, 2)
}

func TestCatalog_DeleteTourWithDepartures(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()
	a, b := seedZones(t, c)

	tour := models.Tour{Name: "Beach Hop", Description: "...", ZonaSalidaID: a.ID, ZonaLlegadaID: b.ID}
	require.NoError(t, c.CreateTour(ctx, &tour))

	dep := models.Departure{Asientos: 10, Precio: 100, TourID: tour.ID}
	dep.FechaInicio = mustDate(t, "2024-05-01")
	dep.FechaFin = mustDate(t, "2024-05-03")
	require.NoError(t, c.CreateDeparture(ctx, &dep))

	_, err := c.DeleteTour(ctx, tour.ID)

	var ref *ReferencedError
	require.True(t, errors.As(err, &ref))
	assert.Equal(t, 1, ref.Count)
	assert.Equal(t, EntityDeparture, ref.Dependent)
}

func TestCatalog_CreateDepartureForMissingTour(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	dep := models.Departure{Asientos: 10, TourID: 5}
	dep.FechaInicio = mustDate(t, "2024-05-01")
	dep.FechaFin = mustDate(t, "2024-05-03")

	err := c.CreateDeparture(ctx, &dep)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalog_CreateUserValidation(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	err := c.CreateUser(ctx, &models.User{Name: "Ana", Email: "ana", Genre: models.GenreMujer})
	assert.ErrorIs(t, err, ErrValidation)

	user := models.User{Name: "Ana", Email: "ana@example.com", Genre: models.GenreMujer}
	require.NoError(t, c.CreateUser(ctx, &user))

	got, err := c.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Nil(t, got.LastName)
	assert.Nil(t, got.Birthday)
}

func TestCatalog_PingWithoutStorage(t *testing.T) {
	c, _ := newTestCatalog(t)
	assert.NoError(t, c.Ping(context.Background()))
}
