package graph

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/tourbook/catalog/internal/services"
)

const (
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION"
	CodeReferenced = "REFERENCED"
	CodeInternal   = "INTERNAL"
)

// Error is returned from resolvers; graphql-go copies Extensions into the
// response's error entry.
type Error struct {
	Code    string
	Message string
	Fields  map[string]string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.Code}
	if len(e.Fields) > 0 {
		ext["fields"] = e.Fields
	}
	return ext
}

// argNames maps Go field names to mutation argument names.
var argNames = map[string]string{
	"ZonaSalidaID":  "idZonaSalida",
	"ZonaLlegadaID": "idZonaLlegada",
	"TourID":        "tour",
	"LastName":      "lastName",
}

func argName(field string) string {
	if name, ok := argNames[field]; ok {
		return name
	}
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func toGraphError(err error) error {
	if err == nil {
		return nil
	}

	var (
		validationErr *services.ValidationError
		notFoundErr   *services.NotFoundError
		referencedErr *services.ReferencedError
	)

	switch {
	case errors.As(err, &validationErr):
		fields := make(map[string]string, len(validationErr.Fields))
		for field, rule := range validationErr.Fields {
			fields[argName(field)] = rule
		}
		return &Error{Code: CodeValidation, Message: "validation failed", Fields: fields, cause: err}
	case errors.As(err, &notFoundErr):
		return &Error{Code: CodeNotFound, Message: notFoundErr.Error(), cause: err}
	case errors.As(err, &referencedErr):
		return &Error{Code: CodeReferenced, Message: referencedErr.Error(), cause: err}
	default:
		slog.Error("GraphQL resolver failed", "error", err)
		return &Error{Code: CodeInternal, Message: "internal error", cause: err}
	}
}
