package handler

import (
	"context"
	"net/http"

	"geocoding-cache/internal/models"

	"github.com/gin-gonic/gin"
)

// GeocodeHandler handles address resolution requests
type GeocodeHandler struct {
	service AddressResolver
}

// Service interface for dependency injection
type AddressResolver interface {
	GeocodeAddress(ctx context.Context, address string) *models.Coordinates
}

// NewGeocodeHandler creates a new geocode handler
func NewGeocodeHandler(svc AddressResolver) *GeocodeHandler {
	return &GeocodeHandler{service: svc}
}

// Geocode handles GET /geocode requests
func (h *GeocodeHandler) Geocode(c *gin.Context) {
	address := c.Query("q")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}

	coords := h.service.GeocodeAddress(c.Request.Context(), address)
	if coords == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no coordinates available for address"})
		return
	}

	c.JSON(http.StatusOK, coords)
}
