package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tourbook/catalog/internal/models"
	"github.com/tourbook/catalog/internal/services"
	"github.com/tourbook/catalog/internal/types"
	"github.com/tourbook/catalog/internal/utils"
)

type DepartureRequest struct {
	FechaInicio types.Optional[string]  `json:"fechaInicio"`
	FechaFin    types.Optional[string]  `json:"fechaFin"`
	Asientos    types.Optional[int]     `json:"asientos"`
	Precio      types.Optional[float64] `json:"precio"`
	Tour        types.Optional[uint]    `json:"tour"`
}

type DepartureResponse struct {
	ID          uint    `json:"id"`
	FechaInicio string  `json:"fechaInicio"`
	FechaFin    string  `json:"fechaFin"`
	Asientos    int     `json:"asientos"`
	Precio      float64 `json:"precio"`
	Tour        uint    `json:"tour"`
}

var departureFields = map[string]string{
	"FechaInicio": "fechaInicio",
	"FechaFin":    "fechaFin",
	"Asientos":    "asientos",
	"Precio":      "precio",
	"TourID":      "tour",
}

func (r DepartureRequest) patch() (models.DeparturePatch, error) {
	patch := models.DeparturePatch{
		Asientos: r.Asientos,
		Precio:   r.Precio,
		TourID:   r.Tour,
	}
	invalid := make(map[string]string)

	if raw, ok := r.FechaInicio.Get(); ok {
		if d, err := utils.ParseDate(raw); err != nil {
			invalid["FechaInicio"] = "datetime=" + types.DateLayout
		} else {
			patch.FechaInicio = types.Some(d)
		}
	}

	if raw, ok := r.FechaFin.Get(); ok {
		if d, err := utils.ParseDate(raw); err != nil {
			invalid["FechaFin"] = "datetime=" + types.DateLayout
		} else {
			patch.FechaFin = types.Some(d)
		}
	}

	if len(invalid) > 0 {
		return patch, &services.ValidationError{Fields: invalid}
	}

	return patch, nil
}

func (r DepartureRequest) required() map[string]bool {
	return map[string]bool{
		"FechaInicio": r.FechaInicio.IsSet(),
		"FechaFin":    r.FechaFin.IsSet(),
		"Asientos":    r.Asientos.IsSet(),
		"Precio":      r.Precio.IsSet(),
		"TourID":      r.Tour.IsSet(),
	}
}

func toDepartureResponse(d *models.Departure) DepartureResponse {
	return DepartureResponse{
		ID:          d.ID,
		FechaInicio: utils.FormatDate(d.FechaInicio),
		FechaFin:    utils.FormatDate(d.FechaFin),
		Asientos:    d.Asientos,
		Precio:      d.Precio,
		Tour:        d.TourID,
	}
}

func (h *Handler) ListDepartures(ctx *gin.Context) {
	departures, err := h.catalog.ListDepartures(ctx.Request.Context())

	if err != nil {
		respondError(ctx, err, departureFields)
		return
	}

	response := make([]DepartureResponse, 0, len(departures))

	for i := range departures {
		response = append(response, toDepartureResponse(&departures[i]))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) GetDeparture(ctx *gin.Context) {
	id, ok := bindID(ctx)

	if !ok {
		return
	}

	departure, err := h.catalog.GetDeparture(ctx.Request.Context(), id)

	if err != nil {
		respondError(ctx, err, departureFields)
		return
	}

	ctx.JSON(http.StatusOK, toDepartureResponse(departure))
}

func (h *Handler) CreateDeparture(ctx *gin.Context) {
	var body DepartureRequest

	if !bindBody(ctx, &body) {
		return
	}

	patch, err := body.patch()

	if err != nil {
		respondError(ctx, err, departureFields)
		return
	}

	var departure models.Departure
	patch.Apply(&departure)

	if err := h.catalog.CreateDeparture(ctx.Request.Context(), &departure); err != nil {
		respondError(ctx, err, departureFields)
		return
	}

	ctx.JSON(http.StatusCreated, toDepartureResponse(&departure))
}

func (h *Handler) UpdateDeparture(ctx *gin.Context) {
	id, ok := bindID(ctx)

	if !ok {
		return
	}

	var body DepartureRequest

	if !bindBody(ctx, &body) {
		return
	}

	if isReplace(ctx) {
		if err := requireFields(body.required()); err != nil {
			respondError(ctx, err, departureFields)
			return
		}
	}

	patch, err := body.patch()

	if err != nil {
		respondError(ctx, err, departureFields)
		return
	}

	departure, err := h.catalog.UpdateDeparture(ctx.Request.Context(), id, patch)

	if err != nil {
		respondError(ctx, err, departureFields)
		return
	}

	ctx.JSON(http.StatusOK, toDepartureResponse(departure))
}

func (h *Handler) DeleteDeparture(ctx *gin.Context) {
	id, ok := bindID(ctx)

	if !ok {
		return
	}

	deleted, err := h.catalog.DeleteDeparture(ctx.Request.Context(), id)

	if err != nil {
		respondError(ctx, err, departureFields)
		return
	}

	if !deleted {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Salida not found"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
