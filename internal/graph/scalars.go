package graph

import (
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/tourbook/catalog/internal/models"
	"github.com/tourbook/catalog/internal/utils"
	"gorm.io/datatypes"
)

// dateScalar travels as a YYYY-MM-DD string.
var dateScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Date",
	Description: "A calendar date formatted as YYYY-MM-DD.",
	Serialize: func(value interface{}) interface{} {
		switch v := value.(type) {
		case datatypes.Date:
			return utils.FormatDate(v)
		case *datatypes.Date:
			if v == nil {
				return nil
			}
			return utils.FormatDate(*v)
		case time.Time:
			return utils.FormatDate(datatypes.Date(v))
		default:
			return nil
		}
	},
	ParseValue: func(value interface{}) interface{} {
		s, ok := value.(string)
		if !ok {
			return nil
		}
		return parseDate(s)
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		s, ok := valueAST.(*ast.StringValue)
		if !ok {
			return nil
		}
		return parseDate(s.Value)
	},
})

func parseDate(s string) interface{} {
	d, err := utils.ParseDate(s)
	if err != nil {
		return nil
	}
	return d
}

var genreEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "Genre",
	Values: graphql.EnumValueConfigMap{
		string(models.GenreHombre): &graphql.EnumValueConfig{Value: string(models.GenreHombre), Description: "Hombre"},
		string(models.GenreMujer):  &graphql.EnumValueConfig{Value: string(models.GenreMujer), Description: "Mujer"},
	},
})
