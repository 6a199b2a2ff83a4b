package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platebook/backend/internal/service"
)

func TestSuggestDishesEndpoint(t *testing.T) {
	f := newFixture(t)
	f.suggest.suggestions = []service.DishSuggestion{
		{Name: "Garlic Bread", Rationale: "adds a starch", Category: "side", SearchQuery: "garlic bread"},
	}

	w := f.do(t, http.MethodPost, "/api/v1/suggest-dishes", map[string]interface{}{
		"current_items": []map[string]string{
			{"type": "recipe", "name": "Spaghetti", "category": "main", "cuisine": "Italian"},
		},
		"servings": "4",
	})
	require.Equal(t, http.StatusOK, w.Code)
	suggestions := decode(t, w)["suggestions"].([]interface{})
	require.Len(t, suggestions, 1)
	first := suggestions[0].(map[string]interface{})
	assert.Equal(t, "Garlic Bread", first["name"])
	assert.Equal(t, "garlic bread", first["searchQuery"])
}

func TestSuggestDishesEmptyItemsValid(t *testing.T) {
	f := newFixture(t)
	f.suggest.suggestions = []service.DishSuggestion{}

	w := f.do(t, http.MethodPost, "/api/v1/suggest-dishes", map[string]interface{}{
		"current_items": []map[string]string{},
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSuggestDishesMissingItems(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/suggest-dishes", map[string]interface{}{
		"servings": "4",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggestDishesUpstreamFailure(t *testing.T) {
	f := newFixture(t)
	f.suggest.err = errUpstream

	w := f.do(t, http.MethodPost, "/api/v1/suggest-dishes", map[string]interface{}{
		"current_items": []map[string]string{},
	})
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Failed to generate suggestions", decode(t, w)["error"])
}
