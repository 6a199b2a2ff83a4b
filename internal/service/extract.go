package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/platebook/backend/internal/model"
)

// ServingsValue tolerates both string and number servings in model output.
type ServingsValue string

func (s *ServingsValue) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = ServingsValue(str)
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*s = ServingsValue(fmt.Sprintf("%d", int(num)))
		return nil
	}

	return fmt.Errorf("invalid servings format")
}

// ParsedRecipe is the structured result of extracting a pasted recipe.
type ParsedRecipe struct {
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	PrepTime     *int          `json:"prep_time,omitempty"`
	CookTime     *int          `json:"cook_time,omitempty"`
	TotalTime    *int          `json:"total_time,omitempty"`
	Servings     ServingsValue `json:"servings,omitempty"`
	Category     string        `json:"recipe_category,omitempty"`
	Cuisine      string        `json:"recipe_cuisine,omitempty"`
	Ingredients  []string      `json:"ingredients"`
	Instructions []string      `json:"instructions"`
	Notes        string        `json:"notes,omitempty"`
}

// ExtractionService turns free-form pasted recipe text into a ParsedRecipe.
type ExtractionService struct {
	llm *LLMClient
}

// NewExtractionService creates a new ExtractionService instance
func NewExtractionService(llm *LLMClient) *ExtractionService {
	return &ExtractionService{llm: llm}
}

// Parse submits the raw text for extraction, strips an optional code fence
// from the reply, and validates the required fields. The call can take
// several seconds.
func (s *ExtractionService) Parse(ctx context.Context, rawText string) (*ParsedRecipe, error) {
	reply, err := s.llm.Complete(ctx, buildExtractionPrompt(rawText), 2000)
	if err != nil {
		return nil, err
	}

	var parsed ParsedRecipe
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &parsed); err != nil {
		return nil, fmt.Errorf("malformed extraction response: %w", err)
	}

	if parsed.Name == "" || len(parsed.Ingredients) == 0 || len(parsed.Instructions) == 0 {
		return nil, fmt.Errorf("parsed recipe missing required fields (name, ingredients, or instructions)")
	}

	return &parsed, nil
}

// ToRecipe wraps a parse result plus the original raw text into a recipe
// ready for storage.
func (s *ExtractionService) ToRecipe(parsed *ParsedRecipe, rawText string) *model.Recipe {
	return &model.Recipe{
		Name:         parsed.Name,
		Description:  parsed.Description,
		PrepTime:     parsed.PrepTime,
		CookTime:     parsed.CookTime,
		TotalTime:    parsed.TotalTime,
		Servings:     string(parsed.Servings),
		Category:     parsed.Category,
		Cuisine:      parsed.Cuisine,
		Ingredients:  parsed.Ingredients,
		Instructions: parsed.Instructions,
		Notes:        parsed.Notes,
		RawText:      rawText,
	}
}

func buildExtractionPrompt(rawText string) string {
	return `Parse this recipe text into a structured JSON format. Follow the Schema.org Recipe standard.

Extract the following fields:
- name: Recipe title
- description: Brief intro/description (optional)
- prep_time: Preparation time in minutes (optional, number only)
- cook_time: Cooking time in minutes (optional, number only)
- total_time: Total time in minutes (optional, number only)
- servings: Number of servings as a string (e.g., "4", "6-8 servings")
- recipe_category: Type of dish - choose the MOST SPECIFIC category that applies:
  * "main" - Main course dishes (entrees, casseroles, etc.)
  * "side" - Side dishes (roasted vegetables, rice dishes, etc.)
  * "appetizer" - Appetizers and starters
  * "dessert" - Desserts and sweets
  * "breakfast" - Breakfast dishes
  * "bread" - Bread, rolls, biscuits, muffins, and other baked goods
  * "soup" - Soups, stews, and chilis (NOT main course, even if hearty)
  * "salad" - Salads (NOT side, even if served as one)
  * "condiment" - Sauces, dressings, spreads, salsas, and condiments (NOT side)
  * "drink" - Beverages and cocktails
  * "snack" - Snacks and small bites
- recipe_cuisine: Cuisine type - use SPECIFIC cuisines when possible (e.g., "Japanese" not "Asian", "Italian" not "European"):
  * Asian cuisines: Japanese, Chinese, Thai, Korean, Vietnamese, Indian, Filipino, etc.
  * European cuisines: Italian, French, Spanish, Greek, German, British, etc.
  * Americas: Mexican, American, Brazilian, Peruvian, etc.
  * Middle Eastern: Lebanese, Turkish, Israeli, etc.
  * African cuisines: Ethiopian, Moroccan, etc.
  * Only use broad terms like "Asian" or "European" if the recipe is a fusion or doesn't fit a specific country
- ingredients: Array of ingredient strings, each on a separate line as written
- instructions: Array of step strings, numbered or separated
- notes: Any additional notes, tips, or variations (optional)

Return ONLY valid JSON in this exact format:
{
  "name": "Recipe Name",
  "description": "Optional description",
  "prep_time": 15,
  "cook_time": 30,
  "total_time": 45,
  "servings": "4 servings",
  "recipe_category": "bread",
  "recipe_cuisine": "Italian",
  "ingredients": ["ingredient 1", "ingredient 2"],
  "instructions": ["Step 1", "Step 2"],
  "notes": "Optional notes"
}

Recipe text:
` + rawText
}
