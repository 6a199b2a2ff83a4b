package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// MealContextItem is one entry of an in-progress meal, tagged recipe or
// simple.
type MealContextItem struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Cuisine  string `json:"cuisine,omitempty"`
}

// MealContext describes the current (unsaved) meal composition.
type MealContext struct {
	CurrentItems []MealContextItem `json:"current_items"`
	Servings     string            `json:"servings,omitempty"`
}

// DishSuggestion is one advisory complementary-dish proposal. SearchQuery is
// meant to be used verbatim against the recipe search filter.
type DishSuggestion struct {
	Name        string `json:"name"`
	Rationale   string `json:"rationale"`
	Category    string `json:"category"`
	SearchQuery string `json:"searchQuery"`
}

// SuggestionService proposes complementary dishes for a meal in progress.
// Suggestions are never persisted; they are regenerated whenever the caller's
// item set changes.
type SuggestionService struct {
	llm     *LLMClient
	recipes *RecipeService
}

// NewSuggestionService creates a new SuggestionService instance
func NewSuggestionService(llm *LLMClient, recipes *RecipeService) *SuggestionService {
	return &SuggestionService{llm: llm, recipes: recipes}
}

// Suggest asks for 3-5 complementary dishes balancing the current meal. An
// empty item set is valid and yields a full-meal suggestion.
func (s *SuggestionService) Suggest(ctx context.Context, mc MealContext) ([]DishSuggestion, error) {
	categories, err := s.recipes.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load category vocabulary: %w", err)
	}
	cuisines, err := s.recipes.Cuisines(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cuisine vocabulary: %w", err)
	}

	reply, err := s.llm.Complete(ctx, buildSuggestionPrompt(mc, categories, cuisines), 1500)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Suggestions []DishSuggestion `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &parsed); err != nil {
		return nil, fmt.Errorf("malformed suggestion response: %w", err)
	}

	return parsed.Suggestions, nil
}

func buildSuggestionPrompt(mc MealContext, categories, cuisines []string) string {
	var lines []string
	for _, item := range mc.CurrentItems {
		if item.Type == "recipe" {
			category := item.Category
			if category == "" {
				category = "unknown category"
			}
			cuisine := item.Cuisine
			if cuisine == "" {
				cuisine = "unknown cuisine"
			}
			lines = append(lines, fmt.Sprintf("- %s (%s, %s)", item.Name, category, cuisine))
		} else {
			category := item.Category
			if category == "" {
				category = "unspecified"
			}
			lines = append(lines, fmt.Sprintf("- %s (simple item, %s)", item.Name, category))
		}
	}

	itemsList := strings.Join(lines, "\n")
	if itemsList == "" {
		itemsList = "(empty meal - suggest a complete meal)"
	}

	servings := mc.Servings
	if servings == "" {
		servings = "not specified"
	}

	categoryList := strings.Join(categories, ", ")
	if categoryList == "" {
		categoryList = "none"
	}
	cuisineList := strings.Join(cuisines, ", ")
	if cuisineList == "" {
		cuisineList = "none"
	}

	return fmt.Sprintf(`You are a meal planning assistant. Analyze the current meal and suggest 3-5 complementary dishes to create a balanced, cohesive meal.

Current meal items:
%s

Servings: %s

Available recipe categories in database: %s
Available cuisines in database: %s

Guidelines:
1. For BALANCED meals, suggest items that provide:
   - Protein (if missing)
   - Carbohydrate/starch (if missing)
   - Vegetables (if missing)
   - Consider cultural/cuisine compatibility

2. For CONTEXTUAL suggestions:
   - If there's a hearty stew/soup, suggest bread or rice
   - If there's a main protein, suggest appropriate sides
   - If there's Italian cuisine, suggest Italian-compatible sides
   - If meal is incomplete, suggest core components

3. Prioritize suggestions that match recipes in the database categories/cuisines listed above

Return ONLY valid JSON in this exact format:
{
  "suggestions": [
    {
      "name": "Garlic Bread",
      "rationale": "Complements the tomato-based pasta dish and adds a carbohydrate component",
      "category": "side",
      "searchQuery": "garlic bread"
    },
    {
      "name": "Green Salad",
      "rationale": "Adds fresh vegetables to balance the richness of the main dish",
      "category": "veggie",
      "searchQuery": "salad green"
    }
  ]
}`, itemsList, servings, categoryList, cuisineList)
}
