package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platebook/backend/internal/service"
)

// SuggestHandler serves complementary-dish suggestions.
type SuggestHandler struct {
	suggestions service.ISuggestionService
}

// NewSuggestHandler creates a new SuggestHandler
func NewSuggestHandler(suggestions service.ISuggestionService) *SuggestHandler {
	return &SuggestHandler{suggestions: suggestions}
}

// SuggestDishes proposes 3-5 dishes that complement the submitted meal
// composition. An empty current_items list is valid.
func (h *SuggestHandler) SuggestDishes(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.CurrentItems == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: current_items"})
		return
	}

	suggestions, err := h.suggestions.Suggest(c.Request.Context(), service.MealContext{
		CurrentItems: req.CurrentItems,
		Servings:     req.Servings,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to generate suggestions",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
