package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type AdminCatalogResponse struct {
	Tours []TourResponse `json:"tours"`
	Zonas []ZoneResponse `json:"zonas"`
}

// AdminCatalog is the back-office overview of every tour and zone.
func (h *Handler) AdminCatalog(ctx *gin.Context) {
	tours, err := h.catalog.ListTours(ctx.Request.Context())

	if err != nil {
		respondError(ctx, err, nil)
		return
	}

	zones, err := h.catalog.ListZones(ctx.Request.Context())

	if err != nil {
		respondError(ctx, err, nil)
		return
	}

	ctx.JSON(http.StatusOK, AdminCatalogResponse{
		Tours: toTourResponses(tours),
		Zonas: zoneResponses(zones, tours),
	})
}
