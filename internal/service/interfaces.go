package service

import (
	"context"

	"github.com/platebook/backend/internal/model"
)

// IExtractionService lets handlers and tests swap the extraction backend.
type IExtractionService interface {
	Parse(ctx context.Context, rawText string) (*ParsedRecipe, error)
	ToRecipe(parsed *ParsedRecipe, rawText string) *model.Recipe
}

// ISuggestionService lets handlers and tests swap the suggestion backend.
type ISuggestionService interface {
	Suggest(ctx context.Context, mc MealContext) ([]DishSuggestion, error)
}

// IImageService lets handlers and tests swap the image storage backend.
type IImageService interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
}
