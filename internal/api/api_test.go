package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/platebook/backend/internal/api"
	"github.com/platebook/backend/internal/model"
	"github.com/platebook/backend/internal/router"
	"github.com/platebook/backend/internal/service"
	"github.com/platebook/backend/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubExtraction returns a fixed parse result or error.
type stubExtraction struct {
	parsed *service.ParsedRecipe
	err    error
}

func (s *stubExtraction) Parse(ctx context.Context, rawText string) (*service.ParsedRecipe, error) {
	return s.parsed, s.err
}

func (s *stubExtraction) ToRecipe(parsed *service.ParsedRecipe, rawText string) *model.Recipe {
	return &model.Recipe{
		Name:         parsed.Name,
		Ingredients:  parsed.Ingredients,
		Instructions: parsed.Instructions,
		RawText:      rawText,
	}
}

// stubSuggestions returns fixed suggestions or an error.
type stubSuggestions struct {
	suggestions []service.DishSuggestion
	err         error
}

func (s *stubSuggestions) Suggest(ctx context.Context, mc service.MealContext) ([]service.DishSuggestion, error) {
	return s.suggestions, s.err
}

type fixture struct {
	engine  *gin.Engine
	recipes *service.RecipeService
	meals   *service.MealService
	extract *stubExtraction
	suggest *stubSuggestions
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testhelpers.NewTestDB(t)

	f := &fixture{
		recipes: service.NewRecipeService(db),
		meals:   service.NewMealService(db),
		extract: &stubExtraction{},
		suggest: &stubSuggestions{},
	}
	f.engine = router.New(zap.NewNop(), []string{"http://localhost:3000"}, router.Handlers{
		Recipes: api.NewRecipeHandler(f.recipes, nil),
		Meals:   api.NewMealHandler(f.meals),
		Extract: api.NewExtractHandler(f.extract, f.recipes, nil),
		Suggest: api.NewSuggestHandler(f.suggest),
	})
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func seedRecipe(t *testing.T, f *fixture, name string) *model.Recipe {
	t.Helper()
	recipe, err := f.recipes.Create(context.Background(), &model.Recipe{
		Name:         name,
		Ingredients:  model.StringList{"thing"},
		Instructions: model.StringList{"do it"},
	})
	require.NoError(t, err)
	return recipe
}

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

var errUpstream = errors.New("API request failed with status 529: overloaded")
