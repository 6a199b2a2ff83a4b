package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platebook/backend/internal/service"
)

// ExtractHandler serves recipe extraction and the draft workflow.
type ExtractHandler struct {
	extraction service.IExtractionService
	recipes    *service.RecipeService
	drafts     *service.DraftStore
}

// NewExtractHandler creates a new ExtractHandler. drafts may be nil when no
// draft store is configured.
func NewExtractHandler(extraction service.IExtractionService, recipes *service.RecipeService, drafts *service.DraftStore) *ExtractHandler {
	return &ExtractHandler{extraction: extraction, recipes: recipes, drafts: drafts}
}

// ParseRecipe extracts structure from pasted text. With save=true the result
// is persisted immediately and the response carries the new recipe id;
// otherwise the parse result is returned (and parked as a draft when a draft
// store is configured).
func (h *ExtractHandler) ParseRecipe(c *gin.Context) {
	var req ParseRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: raw_text"})
		return
	}

	parsed, err := h.extraction.Parse(c.Request.Context(), req.RawText)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Failed to parse recipe",
			"message": err.Error(),
		})
		return
	}

	if req.Save {
		recipe, err := h.recipes.Create(c.Request.Context(), h.extraction.ToRecipe(parsed, req.RawText))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save recipe"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"id":      recipe.ID,
			"parsed":  parsed,
			"message": "Recipe parsed and saved",
		})
		return
	}

	if h.drafts != nil {
		draft, err := h.drafts.Save(c.Request.Context(), parsed, req.RawText)
		if err == nil {
			c.JSON(http.StatusOK, gin.H{
				"draft_id": draft.ID,
				"parsed":   parsed,
			})
			return
		}
		// Draft storage is best-effort; the parse result still goes back.
	}

	c.JSON(http.StatusOK, gin.H{"parsed": parsed})
}

// GetDraft returns a parked extraction draft.
func (h *ExtractHandler) GetDraft(c *gin.Context) {
	if h.drafts == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "draft storage not configured"})
		return
	}

	draft, err := h.drafts.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found or expired"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch draft"})
		return
	}

	c.JSON(http.StatusOK, draft)
}

// DeleteDraft discards a parked extraction draft.
func (h *ExtractHandler) DeleteDraft(c *gin.Context) {
	if h.drafts == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "draft storage not configured"})
		return
	}

	err := h.drafts.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found or expired"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Draft deleted"})
}
