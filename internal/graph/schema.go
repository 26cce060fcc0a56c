// Package graph exposes the catalog as a GraphQL schema: four list queries
// and the zone and tour mutations.
package graph

import (
	"github.com/graphql-go/graphql"
	"github.com/tourbook/catalog/internal/services"
)

func payload(name, field string, fieldType graphql.Output) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			field: &graphql.Field{Type: fieldType},
		},
	})
}

func NewSchema(catalog *services.Catalog) (graphql.Schema, error) {
	r := &resolver{catalog: catalog}
	t := r.buildTypes()

	listOf := func(obj *graphql.Object) graphql.Output {
		return graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(obj)))
	}

	idArg := &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"allUsers":   &graphql.Field{Type: listOf(t.user), Resolve: r.allUsers},
			"allZones":   &graphql.Field{Type: listOf(t.zone), Resolve: r.allZones},
			"allTours":   &graphql.Field{Type: listOf(t.tour), Resolve: r.allTours},
			"allSalidas": &graphql.Field{Type: listOf(t.departure), Resolve: r.allSalidas},
			"zone": &graphql.Field{
				Type:    t.zone,
				Args:    graphql.FieldConfigArgument{"id": idArg},
				Resolve: r.zone,
			},
			"tour": &graphql.Field{
				Type:    t.tour,
				Args:    graphql.FieldConfigArgument{"id": idArg},
				Resolve: r.tour,
			},
		},
	})

	zoneArgs := func(nameType graphql.Input) graphql.FieldConfigArgument {
		return graphql.FieldConfigArgument{
			"name":        &graphql.ArgumentConfig{Type: nameType},
			"description": &graphql.ArgumentConfig{Type: graphql.String},
			"latitud":     &graphql.ArgumentConfig{Type: graphql.Float},
			"longitud":    &graphql.ArgumentConfig{Type: graphql.Float},
		}
	}

	tourArgs := func(required bool) graphql.FieldConfigArgument {
		str, id := graphql.Input(graphql.String), graphql.Input(graphql.ID)
		if required {
			str, id = graphql.NewNonNull(graphql.String), graphql.NewNonNull(graphql.ID)
		}

		return graphql.FieldConfigArgument{
			"name":          &graphql.ArgumentConfig{Type: str},
			"description":   &graphql.ArgumentConfig{Type: str},
			"idZonaSalida":  &graphql.ArgumentConfig{Type: id},
			"idZonaLlegada": &graphql.ArgumentConfig{Type: id},
			"slug":          &graphql.ArgumentConfig{Type: graphql.String},
			"operator":      &graphql.ArgumentConfig{Type: graphql.String},
			"type":          &graphql.ArgumentConfig{Type: graphql.String},
			"img":           &graphql.ArgumentConfig{Type: graphql.String},
			"pais":          &graphql.ArgumentConfig{Type: graphql.String},
		}
	}

	updateZoneArgs := zoneArgs(graphql.String)
	updateZoneArgs["id"] = idArg

	updateTourArgs := tourArgs(false)
	updateTourArgs["id"] = idArg

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createZone": &graphql.Field{
				Type:    payload("CreateZone", "zone", t.zone),
				Args:    zoneArgs(graphql.NewNonNull(graphql.String)),
				Resolve: r.createZone,
			},
			"updateZone": &graphql.Field{
				Type:    payload("UpdateZone", "zone", t.zone),
				Args:    updateZoneArgs,
				Resolve: r.updateZone,
			},
			"deleteZone": &graphql.Field{
				Type:    payload("DeleteZone", "ok", graphql.Boolean),
				Args:    graphql.FieldConfigArgument{"id": idArg},
				Resolve: r.deleteZone,
			},
			"createTour": &graphql.Field{
				Type:    payload("CreateTour", "tour", t.tour),
				Args:    tourArgs(true),
				Resolve: r.createTour,
			},
			"updateTour": &graphql.Field{
				Type:    payload("UpdateTour", "tour", t.tour),
				Args:    updateTourArgs,
				Resolve: r.updateTour,
			},
			"deleteTour": &graphql.Field{
				Type:    payload("DeleteTour", "ok", graphql.Boolean),
				Args:    graphql.FieldConfigArgument{"id": idArg},
				Resolve: r.deleteTour,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
