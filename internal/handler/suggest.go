package handler

import (
	"context"
	"net/http"
	"strconv"

	"geocoding-cache/internal/models"

	"github.com/gin-gonic/gin"
)

// SuggestHandler handles address autocomplete requests
type SuggestHandler struct {
	service SuggestionProvider
}

// Service interface for dependency injection
type SuggestionProvider interface {
	FetchAddressSuggestions(ctx context.Context, query string, limit int) []models.AddressSuggestion
}

// NewSuggestHandler creates a new suggestion handler
func NewSuggestHandler(svc SuggestionProvider) *SuggestHandler {
	return &SuggestHandler{service: svc}
}

// Suggest handles GET /suggestions requests
func (h *SuggestHandler) Suggest(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'q'"})
		return
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit format"})
			return
		}
		limit = parsed
	}

	suggestions := h.service.FetchAddressSuggestions(c.Request.Context(), query, limit)

	c.JSON(http.StatusOK, suggestions)
}
