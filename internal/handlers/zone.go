package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tourbook/catalog/internal/models"
	"github.com/tourbook/catalog/internal/types"
)

type ZoneRequest struct {
	Name        types.Optional[string]  `json:"name"`
	Description types.Optional[string]  `json:"description"`
	Latitud     types.Optional[float64] `json:"latitud"`
	Longitud    types.Optional[float64] `json:"longitud"`
}

// ZoneResponse embeds the tours departing from and arriving at the zone.
type ZoneResponse struct {
	ID           uint           `json:"id"`
	Name         string         `json:"name"`
	Description  *string        `json:"description"`
	Latitud      *float64       `json:"latitud"`
	Longitud     *float64       `json:"longitud"`
	ToursSalida  []TourResponse `json:"tours_salida"`
	ToursLlegada []TourResponse `json:"tours_llegada"`
}

var zoneFields = map[string]string{
	"Name":        "name",
	"Description": "description",
	"Latitud":     "latitud",
	"Longitud":    "longitud",
}

func (r ZoneRequest) patch() models.ZonePatch {
	return models.ZonePatch{
		Name:        r.Name,
		Description: r.Description,
		Latitud:     r.Latitud,
		Longitud:    r.Longitud,
	}
}

func (r ZoneRequest) required() map[string]bool {
	return map[string]bool{"Name": r.Name.IsSet()}
}

func toZoneResponse(zone *models.Zone, departing, arriving []models.Tour) ZoneResponse {
	return ZoneResponse{
		ID:           zone.ID,
		Name:         zone.Name,
		Description:  zone.Description,
		Latitud:      zone.Latitud,
		Longitud:     zone.Longitud,
		ToursSalida:  toTourResponses(departing),
		ToursLlegada: toTourResponses(arriving),
	}
}

func (h *Handler) zoneResponse(ctx context.Context, zone *models.Zone) (ZoneResponse, error) {
	departing, err := h.catalog.ToursDepartingFrom(ctx, zone.ID)

	if err != nil {
		return ZoneResponse{}, err
	}

	arriving, err := h.catalog.ToursArrivingAt(ctx, zone.ID)

	if err != nil {
		return ZoneResponse{}, err
	}

	return toZoneResponse(zone, departing, arriving), nil
}

// zoneResponses groups one tour listing by zone instead of querying per zone.
func zoneResponses(zones []models.Zone, tours []models.Tour) []ZoneResponse {
	departing := make(map[uint][]models.Tour)
	arriving := make(map[uint][]models.Tour)

	for _, tour := range tours {
		departing[tour.ZonaSalidaID] = append(departing[tour.ZonaSalidaID], tour)
		arriving[tour.ZonaLlegadaID] = append(arriving[tour.ZonaLlegadaID], tour)
	}

	response := make([]ZoneResponse, 0, len(zones))

	for i := range zones {
		zone := &zones[i]
		response = append(response, toZoneResponse(zone, departing[zone.ID], arriving[zone.ID]))
	}

	return response
}

func (h *Handler) ListZones(ctx *gin.Context) {
	zones, err := h.catalog.ListZones(ctx.Request.Context())

	if err != nil {
		respondError(ctx, err, zoneFields)
		return
	}

	tours, err := h.catalog.ListTours(ctx.Request.Context())

	if err != nil {
		respondError(ctx, err, zoneFields)
		return
	}

	ctx.JSON(http.StatusOK, zoneResponses(zones, tours))
}

func (h *Handler) GetZone(ctx *gin.Context) {
	id, ok := bindID(ctx)

	if !ok {
		return
	}

	zone, err := h.catalog.GetZone(ctx.Request.Context(), id)

	if err != nil {
		respondError(ctx, err, zoneFields)
		return
	}

	h.writeZone(ctx, http.StatusOK, zone)
}

func (h *Handler) CreateZone(ctx *gin.Context) {
	var body ZoneRequest

	if !bindBody(ctx, &body) {
		return
	}

	var zone models.Zone
	body.patch().Apply(&zone)

	if err := h.catalog.CreateZone(ctx.Request.Context(), &zone); err != nil {
		respondError(ctx, err, zoneFields)
		return
	}

	h.writeZone(ctx, http.StatusCreated, &zone)
}

func (h *Handler) UpdateZone(ctx *gin.Context) {
	id, ok := bindID(ctx)

	if !ok {
		return
	}

	var body ZoneRequest

	if !bindBody(ctx, &body) {
		return
	}

	if isReplace(ctx) {
		if err := requireFields(body.required()); err != nil {
			respondError(ctx, err, zoneFields)
			return
		}
	}

	zone, err := h.catalog.UpdateZone(ctx.Request.Context(), id, body.patch())

	if err != nil {
		respondError(ctx, err, zoneFields)
		return
	}

	h.writeZone(ctx, http.StatusOK, zone)
}

func (h *Handler) DeleteZone(ctx *gin.Context) {
	id, ok := bindID(ctx)

	if !ok {
		return
	}

	deleted, err := h.catalog.DeleteZone(ctx.Request.Context(), id)

	if err != nil {
		respondError(ctx, err, zoneFields)
		return
	}

	if !deleted {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Zone not found"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *Handler) writeZone(ctx *gin.Context, status int, zone *models.Zone) {
	response, err := h.zoneResponse(ctx.Request.Context(), zone)

	if err != nil {
		respondError(ctx, err, zoneFields)
		return
	}

	ctx.JSON(status, response)
}
