package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourbook/catalog/internal/models"
	"github.com/tourbook/catalog/internal/repository"
	"github.com/tourbook/catalog/internal/types"
	"gorm.io/datatypes"
)

type storeFactory func(t *testing.T) *repository.Store

func date(s string) datatypes.Date {
	d, err := time.Parse(types.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return datatypes.Date(d)
}

func runContract(t *testing.T, newStore storeFactory) {
	t.Run("zone create and get", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		zone := models.Zone{Name: "Cancún"}
		require.NoError(t, store.Zones.Create(ctx, &zone))
		require.NotZero(t, zone.ID)

		got, err := store.Zones.Get(ctx, zone.ID)
		require.NoError(t, err)
		assert.Equal(t, "Cancún", got.Name)
		assert.Nil(t, got.Description)
		assert.Nil(t, got.Latitud)
		assert.Nil(t, got.Longitud)
	})

	t.Run("list is ordered by id", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		for _, name := range []string{"Tulum", "Bacalar", "Cancún"} {
			require.NoError(t, store.Zones.Create(ctx, &models.Zone{Name: name}))
		}

		zones, err := store.Zones.List(ctx)
		require.NoError(t, err)
		require.Len(t, zones, 3)
		assert.Equal(t, "Tulum", zones[0].Name)
		assert.Less(t, zones[0].ID, zones[1].ID)
		assert.Less(t, zones[1].ID, zones[2].ID)
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		store := newStore(t)

		users, err := store.Users.List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})

	t.Run("get missing returns ErrNotFound", func(t *testing.T) {
		store := newStore(t)

		_, err := store.Tours.Get(context.Background(), 9999)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("update with empty patch leaves record unchanged", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		lat := 21.16
		zone := models.Zone{Name: "Cancún", Latitud: &lat}
		require.NoError(t, store.Zones.Create(ctx, &zone))

		got, err := store.Zones.Update(ctx, zone.ID, models.ZonePatch{})
		require.NoError(t, err)
		assert.Equal(t, "Cancún", got.Name)
		require.NotNil(t, got.Latitud)
		assert.InDelta(t, 21.16, *got.Latitud, 1e-6)
	})

	t.Run("update overwrites only provided fields", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		desc := "Caribe"
		zone := models.Zone{Name: "Cancún", Description: &desc}
		require.NoError(t, store.Zones.Create(ctx, &zone))

		got, err := store.Zones.Update(ctx, zone.ID, models.ZonePatch{Name: types.Some("Cancun City")})
		require.NoError(t, err)
		assert.Equal(t, "Cancun City", got.Name)
		require.NotNil(t, got.Description)
		assert.Equal(t, "Caribe", *got.Description)

		again, err := store.Zones.Get(ctx, zone.ID)
		require.NoError(t, err)
		assert.Equal(t, "Cancun City", again.Name)
	})

	t.Run("update missing returns ErrNotFound", func(t *testing.T) {
		store := newStore(t)

		_, err := store.Zones.Update(context.Background(), 9999, models.ZonePatch{Name: types.Some("x")})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("update rejects invalid result", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		user := models.User{Name: "Ana", Email: "ana@example.com", Genre: models.GenreMujer}
		require.NoError(t, store.Users.Create(ctx, &user))

		_, err := store.Users.Update(ctx, user.ID, models.UserPatch{Email: types.Some("not-an-email")})
		assert.ErrorIs(t, err, repository.ErrValidation)

		got, err := store.Users.Get(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", got.Email)
	})

	t.Run("delete twice", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		zone := models.Zone{Name: "Tulum"}
		require.NoError(t, store.Zones.Create(ctx, &zone))

		ok, err := store.Zones.Delete(ctx, zone.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = store.Zones.Delete(ctx, zone.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = store.Zones.Get(ctx, zone.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("create validates required fields", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		err := store.Users.Create(ctx, &models.User{Email: "x@example.com", Genre: "X"})

		var verr *repository.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "required", verr.Fields["Name"])
		assert.Equal(t, "oneof=H M", verr.Fields["Genre"])

		users, err := store.Users.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("tours by zone", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		a := models.Zone{Name: "Cancún"}
		b := models.Zone{Name: "Tulum"}
		require.NoError(t, store.Zones.Create(ctx, &a))
		require.NoError(t, store.Zones.Create(ctx, &b))

		out := models.Tour{Name: "Beach Hop", Description: "...", ZonaSalidaID: a.ID, ZonaLlegadaID: b.ID}
		back := models.Tour{Name: "Return", Description: "...", ZonaSalidaID: b.ID, ZonaLlegadaID: a.ID}
		require.NoError(t, store.Tours.Create(ctx, &out))
		require.NoError(t, store.Tours.Create(ctx, &back))

		departing, err := store.Tours.ListDepartingFrom(ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, departing, 1)
		assert.Equal(t, out.ID, departing[0].ID)

		arriving, err := store.Tours.ListArrivingAt(ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, arriving, 1)
		assert.Equal(t, back.ID, arriving[0].ID)
	})

	t.Run("tour zones must differ", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		a := models.Zone{Name: "Cancún"}
		require.NoError(t, store.Zones.Create(ctx, &a))

		err := store.Tours.Create(ctx, &models.Tour{Name: "Loop", Description: "...", ZonaSalidaID: a.ID, ZonaLlegadaID: a.ID})
		assert.ErrorIs(t, err, repository.ErrValidation)
	})

	t.Run("departures by tour", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		a := models.Zone{Name: "Cancún"}
		b := models.Zone{Name: "Tulum"}
		require.NoError(t, store.Zones.Create(ctx, &a))
		require.NoError(t, store.Zones.Create(ctx, &b))

		tour := models.Tour{Name: "Beach Hop", Description: "...", ZonaSalidaID: a.ID, ZonaLlegadaID: b.ID}
		require.NoError(t, store.Tours.Create(ctx, &tour))

		dep := models.Departure{
			FechaInicio: date("2024-03-01"),
			FechaFin:    date("2024-03-05"),
			Asientos:    12,
			Precio:      499.5,
			TourID:      tour.ID,
		}
		require.NoError(t, store.Departures.Create(ctx, &dep))

		deps, err := store.Departures.ListByTour(ctx, tour.ID)
		require.NoError(t, err)
		require.Len(t, deps, 1)
		assert.Equal(t, 12, deps[0].Asientos)
		assert.InDelta(t, 499.5, deps[0].Precio, 1e-6)

		none, err := store.Departures.ListByTour(ctx, tour.ID+1)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("departure dates and seats are checked", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		err := store.Departures.Create(ctx, &models.Departure{
			FechaInicio: date("2024-03-05"),
			FechaFin:    date("2024-03-01"),
			Asientos:    -1,
			TourID:      1,
		})

		var verr *repository.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "gtefield=FechaInicio", verr.Fields["FechaFin"])
		assert.Equal(t, "gte=0", verr.Fields["Asientos"])
	})

	t.Run("seat count fits a 32-bit int", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		a := models.Zone{Name: "Cancún"}
		b := models.Zone{Name: "Tulum"}
		require.NoError(t, store.Zones.Create(ctx, &a))
		require.NoError(t, store.Zones.Create(ctx, &b))

		tour := models.Tour{Name: "Beach Hop", Description: "...", ZonaSalidaID: a.ID, ZonaLlegadaID: b.ID}
		require.NoError(t, store.Tours.Create(ctx, &tour))

		dep := models.Departure{
			FechaInicio: date("2024-03-01"),
			FechaFin:    date("2024-03-05"),
			Asientos:    models.MaxAsientos + 1,
			TourID:      tour.ID,
		}

		err := store.Departures.Create(ctx, &dep)

		var verr *repository.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "lte=2147483647", verr.Fields["Asientos"])

		dep.Asientos = models.MaxAsientos
		require.NoError(t, store.Departures.Create(ctx, &dep))

		_, err = store.Departures.Update(ctx, dep.ID, models.DeparturePatch{Asientos: types.Some(3000000000)})
		assert.ErrorIs(t, err, repository.ErrValidation)

		deps, err := store.Departures.List(ctx)
		require.NoError(t, err)
		require.Len(t, deps, 1)
		assert.Equal(t, models.MaxAsientos, deps[0].Asientos)
	})
}

func TestMemoryStore(t *testing.T) {
	runContract(t, func(t *testing.T) *repository.Store {
		return repository.NewMemoryStore()
	})
}
