package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tourbook/catalog/internal/models"
	"github.com/tourbook/catalog/internal/types"
)

type TourRequest struct {
	Name        types.Optional[string] `json:"name"`
	Operator    types.Optional[string] `json:"operator"`
	Type        types.Optional[string] `json:"type"`
	Description types.Optional[string] `json:"description"`
	Img         types.Optional[string] `json:"img"`
	Pais        types.Optional[string] `json:"pais"`
	ZonaSalida  types.Optional[uint]   `json:"zonaSalida"`
	ZonaLlegada types.Optional[uint]   `json:"zonaLlegada"`
}

type TourResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Operator    *string `json:"operator"`
	Type        *string `json:"type"`
	Description string  `json:"description"`
	Img         *string `json:"img"`
	Pais        *string `json:"pais"`
	ZonaSalida  uint    `json:"zonaSalida"`
	ZonaLlegada uint    `json:"zonaLlegada"`
}

var tourFields = map[string]string{
	"Name":          "name",
	"Slug":          "slug",
	"Operator":      "operator",
	"Type":          "type",
	"Description":   "description",
	"Img":           "img",
	"Pais":          "pais",
	"ZonaSalidaID":  "zonaSalida",
	"ZonaLlegadaID": "zonaLlegada",
}

func (r TourRequest) patch() models.TourPatch {
	return models.TourPatch{
		Name:          r.Name,
		Operator:      r.Operator,
		Type:          r.Type,
		Description:   r.Description,
		Img:           r.Img,
		Pais:          r.Pais,
		ZonaSalidaID:  r.ZonaSalida,
		ZonaLlegadaID: r.ZonaLlegada,
	}
}

func (r TourRequest) required() map[string]bool {
	return map[string]bool{
		"Name":          r.Name.IsSet(),
		"Description":   r.Description.IsSet(),
		"ZonaSalidaID":  r.ZonaSalida.IsSet(),
		"ZonaLlegadaID": r.ZonaLlegada.IsSet(),
	}
}

func toTourResponse(tour *models.Tour) TourResponse {
	return TourResponse{
		ID:          tour.ID,
		Name:        tour.Name,
		Operator:    tour.Operator,
		Type:        tour.Type,
		Description: tour.Description,
		Img:         tour.Img,
		Pais:        tour.Pais,
		ZonaSalida:  tour.ZonaSalidaID,
		ZonaLlegada: tour.ZonaLlegadaID,
	}
}

func toTourResponses(tours []models.Tour) []TourResponse {
	response := make([]TourResponse, 0, len(tours))

	for i := range tours {
		response = append(response, toTourResponse(&tours[i]))
	}

	return response
}

func (h *Handler) ListTours(ctx *gin.Context) {
	tours, err := h.catalog.ListTours(ctx.Request.Context())

	if err != nil {
		respondError(ctx, err, tourFields)
		return
	}

	ctx.JSON(http.StatusOK, toTourResponses(tours))
}

func (h *Handler) GetTour(ctx *gin.Context) {
	id, ok := bindID(ctx)

	if !ok {
		return
	}

	tour, err := h.catalog.GetTour(ctx.Request.Context(), id)

	if err != nil {
		respondError(ctx, err, tourFields)
		return
	}

	ctx.JSON(http.StatusOK, toTourResponse(tour))
}

func (h *Handler) CreateTour(ctx *gin.Context) {
	var body TourRequest

	if !bindBody(ctx, &body) {
		return
	}

	var tour models.Tour
	body.patch().Apply(&tour)

	if err := h.catalog.CreateTour(ctx.Request.Context(), &tour); err != nil {
		respondError(ctx, err, tourFields)
		return
	}

	ctx.JSON(http.StatusCreated, toTourResponse(&tour))
}

func (h *Handler) UpdateTour(ctx *gin.Context) {
	id, ok := bindID(ctx)

	if !ok {
		return
	}

	var body TourRequest

	if !bindBody(ctx, &body) {
		return
	}

	if isReplace(ctx) {
		if err := requireFields(body.required()); err != nil {
			respondError(ctx, err, tourFields)
			return
		}
	}

	tour, err := h.catalog.UpdateTour(ctx.Request.Context(), id, body.patch())

	if err != nil {
		respondError(ctx, err, tourFields)
		return
	}

	ctx.JSON(http.StatusOK, toTourResponse(tour))
}

func (h *Handler) DeleteTour(ctx *gin.Context) {
	id, ok := bindID(ctx)

	if !ok {
		return
	}

	deleted, err := h.catalog.DeleteTour(ctx.Request.Context(), id)

	if err != nil {
		respondError(ctx, err, tourFields)
		return
	}

	if !deleted {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Tour not found"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
