package graph

import (
	"strconv"

	"github.com/graphql-go/graphql"
	"github.com/tourbook/catalog/internal/models"
	"github.com/tourbook/catalog/internal/utils"
)

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// parseID treats anything that is not a positive integer as an id with no
// matching row.
func parseID(v interface{}) (uint, bool) {
	s, ok := v.(string)
	if !ok {
		return 0, false
	}

	id, err := utils.ParseID(s)
	if err != nil {
		return 0, false
	}

	return id, true
}

func derefString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func derefFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

func ptrs[T any](items []T) []*T {
	out := make([]*T, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}

type objectTypes struct {
	user      *graphql.Object
	zone      *graphql.Object
	tour      *graphql.Object
	departure *graphql.Object
}

func (r *resolver) buildTypes() objectTypes {
	var t objectTypes

	t.user = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return formatID(p.Source.(*models.User).ID), nil
			}},
			"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(*models.User).Name, nil
			}},
			"lastName": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return derefString(p.Source.(*models.User).LastName), nil
			}},
			"email": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(*models.User).Email, nil
			}},
			"birthday": &graphql.Field{Type: dateScalar, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if b := p.Source.(*models.User).Birthday; b != nil {
					return *b, nil
				}
				return nil, nil
			}},
			"genre": &graphql.Field{Type: graphql.NewNonNull(genreEnum), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return string(p.Source.(*models.User).Genre), nil
			}},
			"key": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return derefString(p.Source.(*models.User).Key), nil
			}},
			"type": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return derefString(p.Source.(*models.User).Type), nil
			}},
		},
	})

	t.zone = graphql.NewObject(graphql.ObjectConfig{
		Name: "Zone",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return formatID(p.Source.(*models.Zone).ID), nil
				}},
				"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Zone).Name, nil
				}},
				"description": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return derefString(p.Source.(*models.Zone).Description), nil
				}},
				"latitud": &graphql.Field{Type: graphql.Float, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return derefFloat(p.Source.(*models.Zone).Latitud), nil
				}},
				"longitud": &graphql.Field{Type: graphql.Float, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return derefFloat(p.Source.(*models.Zone).Longitud), nil
				}},
				"toursSalida": &graphql.Field{
					Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.tour))),
					Description: "Tours departing from this zone.",
					Resolve:     r.zoneToursSalida,
				},
				"toursLlegada": &graphql.Field{
					Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.tour))),
					Description: "Tours arriving at this zone.",
					Resolve:     r.zoneToursLlegada,
				},
			}
		}),
	})

	t.tour = graphql.NewObject(graphql.ObjectConfig{
		Name: "Tour",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return formatID(p.Source.(*models.Tour).ID), nil
				}},
				"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Tour).Name, nil
				}},
				"slug": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return derefString(p.Source.(*models.Tour).Slug), nil
				}},
				"operator": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return derefString(p.Source.(*models.Tour).Operator), nil
				}},
				"type": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return derefString(p.Source.(*models.Tour).Type), nil
				}},
				"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Tour).Description, nil
				}},
				"img": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return derefString(p.Source.(*models.Tour).Img), nil
				}},
				"pais": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return derefString(p.Source.(*models.Tour).Pais), nil
				}},
				"zonaSalida": &graphql.Field{
					Type:    graphql.NewNonNull(t.zone),
					Resolve: r.tourZonaSalida,
				},
				"zonaLlegada": &graphql.Field{
					Type:    graphql.NewNonNull(t.zone),
					Resolve: r.tourZonaLlegada,
				},
				"salidas": &graphql.Field{
					Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(t.departure))),
					Resolve: r.tourSalidas,
				},
			}
		}),
	})

	t.departure = graphql.NewObject(graphql.ObjectConfig{
		Name: "Departure",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return formatID(p.Source.(*models.Departure).ID), nil
				}},
				"fechaInicio": &graphql.Field{Type: graphql.NewNonNull(dateScalar), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Departure).FechaInicio, nil
				}},
				"fechaFin": &graphql.Field{Type: graphql.NewNonNull(dateScalar), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Departure).FechaFin, nil
				}},
				"asientos": &graphql.Field{Type: graphql.NewNonNull(graphql.Int), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Departure).Asientos, nil
				}},
				"precio": &graphql.Field{Type: graphql.NewNonNull(graphql.Float), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Departure).Precio, nil
				}},
				"tour": &graphql.Field{
					Type:    graphql.NewNonNull(t.tour),
					Resolve: r.departureTour,
				},
			}
		}),
	})

	return t
}
