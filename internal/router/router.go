package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/platebook/backend/internal/api"
	"github.com/platebook/backend/internal/middleware"
)

// Handlers bundles everything the router mounts. AIRateLimit is optional and
// only wraps the LLM-backed endpoints when present.
type Handlers struct {
	Recipes     *api.RecipeHandler
	Meals       *api.MealHandler
	Extract     *api.ExtractHandler
	Suggest     *api.SuggestHandler
	AIRateLimit *middleware.RateLimiter
}

// New builds the Gin engine with the full route table mounted under /api/v1.
func New(log *zap.Logger, allowedOrigins []string, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(allowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	aiGuard := func(c *gin.Context) { c.Next() }
	if h.AIRateLimit != nil {
		aiGuard = h.AIRateLimit.Middleware()
	}

	v1 := r.Group("/api/v1")
	{
		recipes := v1.Group("/recipes")
		{
			recipes.GET("", h.Recipes.ListRecipes)
			recipes.POST("", h.Recipes.CreateRecipe)
			recipes.GET("/:id", h.Recipes.GetRecipe)
			recipes.PATCH("/:id", h.Recipes.UpdateRecipe)
			recipes.DELETE("/:id", h.Recipes.DeleteRecipe)
			recipes.POST("/:id/image", h.Recipes.UploadImage)
		}

		// Vocabulary routes live beside /recipes rather than under it so the
		// static segments never collide with the :id wildcard.
		v1.GET("/categories", h.Recipes.ListCategories)
		v1.GET("/cuisines", h.Recipes.ListCuisines)
		v1.GET("/cuisines/groups", h.Recipes.ListCuisineGroups)

		meals := v1.Group("/meals")
		{
			meals.GET("", h.Meals.ListMeals)
			meals.POST("", h.Meals.CreateMeal)
			meals.GET("/:id", h.Meals.GetMeal)
			meals.PATCH("/:id", h.Meals.UpdateMeal)
			meals.DELETE("/:id", h.Meals.DeleteMeal)
			meals.GET("/:id/items", h.Meals.ListMealItems)
			meals.POST("/:id/items", h.Meals.AddMealItem)
			meals.DELETE("/:id/items/:itemID", h.Meals.DeleteMealItem)
		}

		v1.POST("/parse-recipe", aiGuard, h.Extract.ParseRecipe)
		v1.GET("/drafts/:id", h.Extract.GetDraft)
		v1.DELETE("/drafts/:id", h.Extract.DeleteDraft)

		v1.POST("/suggest-dishes", aiGuard, h.Suggest.SuggestDishes)
	}

	return r
}
