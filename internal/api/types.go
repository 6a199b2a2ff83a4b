package api

import (
	"github.com/google/uuid"

	"github.com/platebook/backend/internal/model"
	"github.com/platebook/backend/internal/service"
)

// CreateRecipeRequest validates the boundary invariant: a recipe is only
// accepted with a name and non-empty ingredients and instructions.
type CreateRecipeRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Author       string   `json:"author"`
	SourceURL    string   `json:"source_url"`
	ImageURL     string   `json:"image_url"`
	PrepTime     *int     `json:"prep_time" binding:"omitempty,min=0"`
	CookTime     *int     `json:"cook_time" binding:"omitempty,min=0"`
	TotalTime    *int     `json:"total_time" binding:"omitempty,min=0"`
	Servings     string   `json:"servings"`
	Category     string   `json:"category"`
	Cuisine      string   `json:"cuisine"`
	Ingredients  []string `json:"ingredients" binding:"required,min=1"`
	Instructions []string `json:"instructions" binding:"required,min=1"`
	Notes        string   `json:"notes"`
	IsFavorite   bool     `json:"is_favorite"`
	RawText      string   `json:"raw_text"`
}

func (r *CreateRecipeRequest) toModel() *model.Recipe {
	return &model.Recipe{
		Name:         r.Name,
		Description:  r.Description,
		Author:       r.Author,
		SourceURL:    r.SourceURL,
		ImageURL:     r.ImageURL,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		TotalTime:    r.TotalTime,
		Servings:     r.Servings,
		Category:     r.Category,
		Cuisine:      r.Cuisine,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Notes:        r.Notes,
		IsFavorite:   r.IsFavorite,
		RawText:      r.RawText,
	}
}

// CreateMealRequest carries a new meal.
type CreateMealRequest struct {
	Name     string `json:"name" binding:"required"`
	Servings string `json:"servings"`
	Notes    string `json:"notes"`
}

// AddMealItemRequest is the tagged meal item variant: recipe items need a
// recipe id, simple items need a name.
type AddMealItemRequest struct {
	ItemType           string     `json:"item_type" binding:"required,oneof=recipe simple"`
	RecipeID           *uuid.UUID `json:"recipe_id"`
	SimpleItemName     string     `json:"simple_item_name"`
	SimpleItemCategory string     `json:"simple_item_category"`
	OrderIndex         int        `json:"order_index"`
}

// ParseRecipeRequest submits raw pasted text for extraction, optionally
// persisting the result immediately.
type ParseRecipeRequest struct {
	RawText string `json:"raw_text" binding:"required"`
	Save    bool   `json:"save"`
}

// SuggestRequest submits the current meal composition. The item list must be
// present but may be empty, so presence is checked in the handler rather than
// with a binding tag (required rejects empty slices).
type SuggestRequest struct {
	CurrentItems []service.MealContextItem `json:"current_items"`
	Servings     string                    `json:"servings"`
}
