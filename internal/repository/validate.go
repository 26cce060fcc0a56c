package repository

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tourbook/catalog/internal/models"
)

var ErrValidation = errors.New("validation failed")

// ValidationError maps a field name to the rule it broke.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))

	for name := range e.Fields {
		names = append(names, name)
	}

	sort.Strings(names)

	parts := make([]string, 0, len(names))

	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}

	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateDeparture, models.Departure{})
	v.RegisterStructValidation(validateUser, models.User{})
	return v
}

func validateDeparture(sl validator.StructLevel) {
	d := sl.Current().Interface().(models.Departure)
	start := time.Time(d.FechaInicio)
	end := time.Time(d.FechaFin)

	if start.IsZero() {
		sl.ReportError(d.FechaInicio, "FechaInicio", "FechaInicio", "required", "")
	}

	if end.IsZero() {
		sl.ReportError(d.FechaFin, "FechaFin", "FechaFin", "required", "")
		return
	}

	if !start.IsZero() && end.Before(start) {
		sl.ReportError(d.FechaFin, "FechaFin", "FechaFin", "gtefield", "FechaInicio")
	}
}

func validateUser(sl validator.StructLevel) {
	u := sl.Current().Interface().(models.User)

	if u.Birthday != nil && time.Time(*u.Birthday).After(time.Now()) {
		sl.ReportError(u.Birthday, "Birthday", "Birthday", "past", "")
	}
}

// Validate checks an entity against its declared constraints.
func Validate(entity any) error {
	err := validate.Struct(entity)

	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors

	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}

	for _, fe := range fieldErrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		out.Fields[fe.Field()] = rule
	}

	return out
}
