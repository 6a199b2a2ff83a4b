package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platebook/backend/config"
	"github.com/platebook/backend/internal/service"
)

// fakeAnthropic serves a canned text reply in the Messages API envelope.
func fakeAnthropic(t *testing.T, status int, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		w.WriteHeader(status)
		if status != http.StatusOK {
			w.Write([]byte(`{"error":{"type":"overloaded_error","message":"overloaded"}}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{{"type": "text", "text": reply}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func llmClientFor(srv *httptest.Server) *service.LLMClient {
	return service.NewLLMClient(&config.Config{
		AnthropicAPIKey: "test-key",
		AnthropicAPIURL: srv.URL,
		AnthropicModel:  "test-model",
	})
}

const validExtraction = `{
  "name": "Garlic Bread",
  "description": "Crusty and rich",
  "prep_time": 10,
  "cook_time": 15,
  "total_time": 25,
  "servings": "4 servings",
  "recipe_category": "bread",
  "recipe_cuisine": "Italian",
  "ingredients": ["1 baguette", "4 cloves garlic", "butter"],
  "instructions": ["Mash garlic into butter", "Spread and bake"],
  "notes": "Broil for the last minute"
}`

func TestExtractionParse(t *testing.T) {
	srv := fakeAnthropic(t, http.StatusOK, validExtraction)
	svc := service.NewExtractionService(llmClientFor(srv))

	parsed, err := svc.Parse(context.Background(), "Garlic bread. Mash garlic...")
	require.NoError(t, err)
	assert.Equal(t, "Garlic Bread", parsed.Name)
	assert.Equal(t, "bread", parsed.Category)
	assert.Equal(t, "Italian", parsed.Cuisine)
	require.NotNil(t, parsed.PrepTime)
	assert.Equal(t, 10, *parsed.PrepTime)
	assert.Equal(t, service.ServingsValue("4 servings"), parsed.Servings)
	assert.Len(t, parsed.Ingredients, 3)
	assert.Len(t, parsed.Instructions, 2)
}

func TestExtractionParseStripsCodeFence(t *testing.T) {
	srv := fakeAnthropic(t, http.StatusOK, "```json\n"+validExtraction+"\n```")
	svc := service.NewExtractionService(llmClientFor(srv))

	parsed, err := svc.Parse(context.Background(), "raw text")
	require.NoError(t, err)
	assert.Equal(t, "Garlic Bread", parsed.Name)
}

func TestExtractionParseNumericServings(t *testing.T) {
	srv := fakeAnthropic(t, http.StatusOK, `{
  "name": "Toast",
  "servings": 2,
  "ingredients": ["bread"],
  "instructions": ["toast it"]
}`)
	svc := service.NewExtractionService(llmClientFor(srv))

	parsed, err := svc.Parse(context.Background(), "raw text")
	require.NoError(t, err)
	assert.Equal(t, service.ServingsValue("2"), parsed.Servings)
}

func TestExtractionParseMissingRequiredFields(t *testing.T) {
	srv := fakeAnthropic(t, http.StatusOK, `{"name":"Nameless","ingredients":[],"instructions":["step"]}`)
	svc := service.NewExtractionService(llmClientFor(srv))

	_, err := svc.Parse(context.Background(), "raw text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required fields")
}

func TestExtractionParseMalformedReply(t *testing.T) {
	srv := fakeAnthropic(t, http.StatusOK, "Sorry, I cannot parse that recipe.")
	svc := service.NewExtractionService(llmClientFor(srv))

	_, err := svc.Parse(context.Background(), "raw text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed extraction response")
}

func TestExtractionParseUpstreamFailure(t *testing.T) {
	srv := fakeAnthropic(t, http.StatusInternalServerError, "")
	svc := service.NewExtractionService(llmClientFor(srv))

	_, err := svc.Parse(context.Background(), "raw text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestExtractionToRecipe(t *testing.T) {
	svc := service.NewExtractionService(nil)

	prep := 10
	parsed := &service.ParsedRecipe{
		Name:         "Garlic Bread",
		PrepTime:     &prep,
		Servings:     "4",
		Category:     "bread",
		Cuisine:      "Italian",
		Ingredients:  []string{"baguette"},
		Instructions: []string{"bake"},
	}

	recipe := svc.ToRecipe(parsed, "the original paste")
	assert.Equal(t, "Garlic Bread", recipe.Name)
	assert.Equal(t, "4", recipe.Servings)
	assert.Equal(t, "the original paste", recipe.RawText)
	require.NotNil(t, recipe.PrepTime)
	assert.Equal(t, 10, *recipe.PrepTime)
}
