package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platebook/backend/internal/cuisine"
	"github.com/platebook/backend/internal/service"
)

// RecipeHandler serves the recipe resource.
type RecipeHandler struct {
	recipes *service.RecipeService
	images  service.IImageService
}

// NewRecipeHandler creates a new RecipeHandler. images may be nil when image
// storage is not configured.
func NewRecipeHandler(recipes *service.RecipeService, images service.IImageService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, images: images}
}

// ListRecipes returns all recipes, or the filtered subset when any of
// category, cuisine, search or favorites is supplied. A parent cuisine
// selection is expanded through the hierarchy before filtering.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter := service.RecipeFilter{
		Category:      c.Query("category"),
		Search:        c.Query("search"),
		FavoritesOnly: c.Query("favorites") == "true" || c.Query("favorites") == "1",
	}
	if selected := c.Query("cuisine"); selected != "" {
		filter.Cuisines = cuisine.ForFilter(selected)
	}

	recipes, err := h.recipes.Filter(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetRecipe returns one recipe by id.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	recipe, err := h.recipes.Get(c.Request.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// CreateRecipe validates shape and inserts a recipe.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: name, ingredients, or instructions"})
		return
	}

	recipe, err := h.recipes.Create(c.Request.Context(), req.toModel())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      recipe.ID,
		"message": "Recipe created successfully",
	})
}

// UpdateRecipe applies a partial update; absent fields keep their values.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	var update service.RecipeUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changed, err := h.recipes.Update(c.Request.Context(), id, &update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}
	if !changed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found or no changes made"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      id,
		"message": "Recipe updated successfully",
	})
}

// DeleteRecipe removes a recipe. Meal items referencing it are left in place
// and resolve to no recipe on their next read.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	err = h.recipes.Delete(c.Request.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      id,
		"message": "Recipe deleted successfully",
	})
}

// ListCategories returns the distinct categories present in storage.
func (h *RecipeHandler) ListCategories(c *gin.Context) {
	categories, err := h.recipes.Categories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

// ListCuisines returns the distinct cuisines present in storage.
func (h *RecipeHandler) ListCuisines(c *gin.Context) {
	cuisines, err := h.recipes.Cuisines(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cuisines"})
		return
	}
	c.JSON(http.StatusOK, cuisines)
}

// ListCuisineGroups returns the static hierarchy for combined filter
// dropdowns: parent groups shown above individually occurring cuisines.
func (h *RecipeHandler) ListCuisineGroups(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"parents":   cuisine.Parents(),
		"hierarchy": cuisine.Hierarchy,
	})
}

const maxImageSize = 10 << 20 // 10 MiB

// UploadImage stores a multipart image for a recipe and records its URL.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe ID"})
		return
	}

	if _, err := h.recipes.Get(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing image file"})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return
	}

	url, err := h.images.Upload(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	if _, err := h.recipes.Update(c.Request.Context(), id, &service.RecipeUpdate{ImageURL: &url}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}
