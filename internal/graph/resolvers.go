package graph

import (
	"errors"
	"fmt"

	"github.com/graphql-go/graphql"
	"github.com/tourbook/catalog/internal/models"
	"github.com/tourbook/catalog/internal/services"
	"github.com/tourbook/catalog/internal/types"
)

type resolver struct {
	catalog *services.Catalog
}

func optString(args map[string]interface{}, name string) types.Optional[string] {
	if v, ok := args[name].(string); ok {
		return types.Some(v)
	}
	return types.None[string]()
}

func optFloat(args map[string]interface{}, name string) types.Optional[float64] {
	switch v := args[name].(type) {
	case float64:
		return types.Some(v)
	case int:
		return types.Some(float64(v))
	}
	return types.None[float64]()
}

// optZoneRef reads a zone id argument. An id that cannot name a row is
// reported the same way as an id with no row behind it.
func optZoneRef(args map[string]interface{}, name string) (types.Optional[uint], error) {
	raw, present := args[name]

	if !present || raw == nil {
		return types.None[uint](), nil
	}

	id, ok := parseID(raw)

	if !ok {
		return types.None[uint](), &services.NotFoundError{Entity: services.EntityZone, Ref: fmt.Sprint(raw)}
	}

	return types.Some(id), nil
}

func isNotFound(err error, entity string) bool {
	var nf *services.NotFoundError
	return errors.As(err, &nf) && nf.Entity == entity
}

// Queries

func (r *resolver) allUsers(p graphql.ResolveParams) (interface{}, error) {
	users, err := r.catalog.ListUsers(p.Context)
	if err != nil {
		return nil, toGraphError(err)
	}
	return ptrs(users), nil
}

func (r *resolver) allZones(p graphql.ResolveParams) (interface{}, error) {
	zones, err := r.catalog.ListZones(p.Context)
	if err != nil {
		return nil, toGraphError(err)
	}
	return ptrs(zones), nil
}

func (r *resolver) allTours(p graphql.ResolveParams) (interface{}, error) {
	tours, err := r.catalog.ListTours(p.Context)
	if err != nil {
		return nil, toGraphError(err)
	}
	return ptrs(tours), nil
}

func (r *resolver) allSalidas(p graphql.ResolveParams) (interface{}, error) {
	departures, err := r.catalog.ListDepartures(p.Context)
	if err != nil {
		return nil, toGraphError(err)
	}
	return ptrs(departures), nil
}

func (r *resolver) zone(p graphql.ResolveParams) (interface{}, error) {
	id, ok := parseID(p.Args["id"])
	if !ok {
		return nil, nil
	}

	zone, err := r.catalog.GetZone(p.Context, id)
	if isNotFound(err, services.EntityZone) {
		return nil, nil
	}
	if err != nil {
		return nil, toGraphError(err)
	}
	return zone, nil
}

func (r *resolver) tour(p graphql.ResolveParams) (interface{}, error) {
	id, ok := parseID(p.Args["id"])
	if !ok {
		return nil, nil
	}

	tour, err := r.catalog.GetTour(p.Context, id)
	if isNotFound(err, services.EntityTour) {
		return nil, nil
	}
	if err != nil {
		return nil, toGraphError(err)
	}
	return tour, nil
}

// Relations

func (r *resolver) zoneToursSalida(p graphql.ResolveParams) (interface{}, error) {
	tours, err := r.catalog.ToursDepartingFrom(p.Context, p.Source.(*models.Zone).ID)
	if err != nil {
		return nil, toGraphError(err)
	}
	return ptrs(tours), nil
}

func (r *resolver) zoneToursLlegada(p graphql.ResolveParams) (interface{}, error) {
	tours, err := r.catalog.ToursArrivingAt(p.Context, p.Source.(*models.Zone).ID)
	if err != nil {
		return nil, toGraphError(err)
	}
	return ptrs(tours), nil
}

func (r *resolver) tourZonaSalida(p graphql.ResolveParams) (interface{}, error) {
	zone, err := r.catalog.GetZone(p.Context, p.Source.(*models.Tour).ZonaSalidaID)
	if err != nil {
		return nil, toGraphError(err)
	}
	return zone, nil
}

func (r *resolver) tourZonaLlegada(p graphql.ResolveParams) (interface{}, error) {
	zone, err := r.catalog.GetZone(p.Context, p.Source.(*models.Tour).ZonaLlegadaID)
	if err != nil {
		return nil, toGraphError(err)
	}
	return zone, nil
}

func (r *resolver) tourSalidas(p graphql.ResolveParams) (interface{}, error) {
	departures, err := r.catalog.DeparturesOf(p.Context, p.Source.(*models.Tour).ID)
	if err != nil {
		return nil, toGraphError(err)
	}
	return ptrs(departures), nil
}

func (r *resolver) departureTour(p graphql.ResolveParams) (interface{}, error) {
	tour, err := r.catalog.GetTour(p.Context, p.Source.(*models.Departure).TourID)
	if err != nil {
		return nil, toGraphError(err)
	}
	return tour, nil
}

// Mutations

func (r *resolver) createZone(p graphql.ResolveParams) (interface{}, error) {
	var zone models.Zone

	models.ZonePatch{
		Name:        optString(p.Args, "name"),
		Description: optString(p.Args, "description"),
		Latitud:     optFloat(p.Args, "latitud"),
		Longitud:    optFloat(p.Args, "longitud"),
	}.Apply(&zone)

	if err := r.catalog.CreateZone(p.Context, &zone); err != nil {
		return nil, toGraphError(err)
	}

	return map[string]interface{}{"zone": &zone}, nil
}

// updateZone answers {zone: null} for an unknown id.
func (r *resolver) updateZone(p graphql.ResolveParams) (interface{}, error) {
	id, ok := parseID(p.Args["id"])
	if !ok {
		return map[string]interface{}{"zone": nil}, nil
	}

	patch := models.ZonePatch{
		Name:        optString(p.Args, "name"),
		Description: optString(p.Args, "description"),
		Latitud:     optFloat(p.Args, "latitud"),
		Longitud:    optFloat(p.Args, "longitud"),
	}

	zone, err := r.catalog.UpdateZone(p.Context, id, patch)

	if isNotFound(err, services.EntityZone) {
		return map[string]interface{}{"zone": nil}, nil
	}

	if err != nil {
		return nil, toGraphError(err)
	}

	return map[string]interface{}{"zone": zone}, nil
}

func (r *resolver) deleteZone(p graphql.ResolveParams) (interface{}, error) {
	id, ok := parseID(p.Args["id"])
	if !ok {
		return map[string]interface{}{"ok": false}, nil
	}

	deleted, err := r.catalog.DeleteZone(p.Context, id)
	if err != nil {
		return nil, toGraphError(err)
	}

	return map[string]interface{}{"ok": deleted}, nil
}

func (r *resolver) tourPatch(args map[string]interface{}) (models.TourPatch, error) {
	patch := models.TourPatch{
		Name:        optString(args, "name"),
		Slug:        optString(args, "slug"),
		Operator:    optString(args, "operator"),
		Type:        optString(args, "type"),
		Description: optString(args, "description"),
		Img:         optString(args, "img"),
		Pais:        optString(args, "pais"),
	}

	var err error

	if patch.ZonaSalidaID, err = optZoneRef(args, "idZonaSalida"); err != nil {
		return patch, err
	}

	if patch.ZonaLlegadaID, err = optZoneRef(args, "idZonaLlegada"); err != nil {
		return patch, err
	}

	return patch, nil
}

func (r *resolver) createTour(p graphql.ResolveParams) (interface{}, error) {
	patch, err := r.tourPatch(p.Args)
	if err != nil {
		return nil, toGraphError(err)
	}

	var tour models.Tour
	patch.Apply(&tour)

	if err := r.catalog.CreateTour(p.Context, &tour); err != nil {
		return nil, toGraphError(err)
	}

	return map[string]interface{}{"tour": &tour}, nil
}

// updateTour answers {tour: null} for an unknown tour id and a NOT_FOUND
// error for an unknown zone id.
func (r *resolver) updateTour(p graphql.ResolveParams) (interface{}, error) {
	id, ok := parseID(p.Args["id"])
	if !ok {
		return map[string]interface{}{"tour": nil}, nil
	}

	patch, err := r.tourPatch(p.Args)
	if err != nil {
		return nil, toGraphError(err)
	}

	tour, err := r.catalog.UpdateTour(p.Context, id, patch)

	if isNotFound(err, services.EntityTour) {
		return map[string]interface{}{"tour": nil}, nil
	}

	if err != nil {
		return nil, toGraphError(err)
	}

	return map[string]interface{}{"tour": tour}, nil
}

func (r *resolver) deleteTour(p graphql.ResolveParams) (interface{}, error) {
	id, ok := parseID(p.Args["id"])
	if !ok {
		return map[string]interface{}{"ok": false}, nil
	}

	deleted, err := r.catalog.DeleteTour(p.Context, id)
	if err != nil {
		return nil, toGraphError(err)
	}

	return map[string]interface{}{"ok": deleted}, nil
}
