package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/platebook/backend/internal/model"
	"github.com/platebook/backend/internal/service"
)

// MealHandler serves the meal and meal item resources.
type MealHandler struct {
	meals *service.MealService
}

// NewMealHandler creates a new MealHandler
func NewMealHandler(meals *service.MealService) *MealHandler {
	return &MealHandler{meals: meals}
}

// ListMeals returns all meals, newest first, without items.
func (h *MealHandler) ListMeals(c *gin.Context) {
	meals, err := h.meals.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// GetMeal returns one meal with its ordered items.
func (h *MealHandler) GetMeal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal ID"})
		return
	}

	meal, err := h.meals.GetWithItems(c.Request.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal"})
		return
	}

	c.JSON(http.StatusOK, meal)
}

// CreateMeal inserts a meal.
func (h *MealHandler) CreateMeal(c *gin.Context) {
	var req CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: name"})
		return
	}

	meal, err := h.meals.Create(c.Request.Context(), &model.Meal{
		Name:     req.Name,
		Servings: req.Servings,
		Notes:    req.Notes,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create meal"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      meal.ID,
		"message": "Meal created successfully",
	})
}

// UpdateMeal applies a partial update.
func (h *MealHandler) UpdateMeal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal ID"})
		return
	}

	var update service.MealUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changed, err := h.meals.Update(c.Request.Context(), id, &update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update meal"})
		return
	}
	if !changed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found or no changes made"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      id,
		"message": "Meal updated successfully",
	})
}

// DeleteMeal removes a meal and all of its items.
func (h *MealHandler) DeleteMeal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal ID"})
		return
	}

	err = h.meals.Delete(c.Request.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete meal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      id,
		"message": "Meal deleted successfully",
	})
}

// ListMealItems returns a meal's items in order, recipe items carrying their
// current recipe detail.
func (h *MealHandler) ListMealItems(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal ID"})
		return
	}

	items, err := h.meals.Items(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AddMealItem validates the tagged variant and appends an item to a meal.
func (h *MealHandler) AddMealItem(c *gin.Context) {
	mealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meal ID"})
		return
	}

	var req AddMealItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": `Invalid item_type. Must be "recipe" or "simple"`})
		return
	}

	if req.ItemType == model.MealItemTypeRecipe && req.RecipeID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipe_id required for recipe items"})
		return
	}
	if req.ItemType == model.MealItemTypeSimple && req.SimpleItemName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "simple_item_name required for simple items"})
		return
	}

	item := &model.MealItem{
		MealID:             mealID,
		ItemType:           req.ItemType,
		OrderIndex:         req.OrderIndex,
		RecipeID:           req.RecipeID,
		SimpleItemName:     req.SimpleItemName,
		SimpleItemCategory: req.SimpleItemCategory,
	}

	item, err = h.meals.AddItem(c.Request.Context(), item)
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add meal item"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      item.ID,
		"message": "Item added to meal",
	})
}

// DeleteMealItem removes one item from a meal.
func (h *MealHandler) DeleteMealItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	err = h.meals.DeleteItem(c.Request.Context(), itemID)
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove meal item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from meal"})
}
