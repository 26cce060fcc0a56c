package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tourbook/catalog/internal/services"
	"github.com/tourbook/catalog/internal/utils"
)

// Handler serves the REST resources on top of the catalog service.
type Handler struct {
	catalog *services.Catalog
	jobs    JobStatus
}

// JobStatus reports on background jobs for the health check.
type JobStatus interface {
	Status() map[string]interface{}
}

func NewHandler(catalog *services.Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// WithJobs adds the background job summary to /health.
func (h *Handler) WithJobs(jobs JobStatus) *Handler {
	h.jobs = jobs
	return h
}

var entityTitles = map[string]string{
	services.EntityUser:      "User",
	services.EntityZone:      "Zone",
	services.EntityTour:      "Tour",
	services.EntityDeparture: "Salida",
}

// respondError maps catalog errors to status codes. fieldNames translates Go
// field names in validation errors to the resource's JSON names.
func respondError(ctx *gin.Context, err error, fieldNames map[string]string) {
	var (
		validationErr *services.ValidationError
		notFoundErr   *services.NotFoundError
		referencedErr *services.ReferencedError
	)

	switch {
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":  "Validation failed",
			"fields": wireFields(validationErr.Fields, fieldNames),
		})
	case errors.As(err, &notFoundErr):
		ctx.JSON(http.StatusNotFound, gin.H{"error": entityTitles[notFoundErr.Entity] + " not found"})
	case errors.As(err, &referencedErr):
		ctx.JSON(http.StatusConflict, gin.H{"error": referencedErr.Error()})
	default:
		slog.Error("Request failed",
			"error", err,
			"method", ctx.Request.Method,
			"route", ctx.FullPath(),
			"request_id", utils.RequestID(ctx),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func wireFields(fields map[string]string, names map[string]string) map[string]string {
	out := make(map[string]string, len(fields))

	for field, rule := range fields {
		name, ok := names[field]
		if !ok {
			name = strings.ToLower(field)
		}
		out[name] = rule
	}

	return out
}

// requireFields rejects a full replacement that leaves out required fields.
func requireFields(present map[string]bool) error {
	missing := make(map[string]string)

	for field, ok := range present {
		if !ok {
			missing[field] = "required"
		}
	}

	if len(missing) == 0 {
		return nil
	}

	return &services.ValidationError{Fields: missing}
}

func bindID(ctx *gin.Context) (uint, bool) {
	id, err := utils.GetID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, false
	}

	return id, true
}

func bindBody(ctx *gin.Context, body any) bool {
	if err := ctx.ShouldBindJSON(body); err != nil {
		slog.Debug("Failed to bind JSON", "error", err, "request_id", utils.RequestID(ctx))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return false
	}

	return true
}

func isReplace(ctx *gin.Context) bool {
	return ctx.Request.Method == http.MethodPut
}
