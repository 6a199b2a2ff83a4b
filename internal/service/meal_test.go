package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platebook/backend/internal/model"
	"github.com/platebook/backend/internal/service"
	"github.com/platebook/backend/internal/testhelpers"
)

func TestMealCreateAndGetWithItems(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	meals := service.NewMealService(db)
	recipes := service.NewRecipeService(db)
	ctx := context.Background()

	recipe, err := recipes.Create(ctx, newRecipe("Roast Chicken", func(r *model.Recipe) { r.Category = "main" }))
	require.NoError(t, err)

	meal, err := meals.Create(ctx, &model.Meal{Name: "Sunday Dinner", Servings: "6"})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, meal.ID)

	_, err = meals.AddItem(ctx, &model.MealItem{
		MealID:   meal.ID,
		ItemType: model.MealItemTypeRecipe,
		RecipeID: &recipe.ID,
	})
	require.NoError(t, err)
	_, err = meals.AddItem(ctx, &model.MealItem{
		MealID:             meal.ID,
		ItemType:           model.MealItemTypeSimple,
		OrderIndex:         1,
		SimpleItemName:     "white rice",
		SimpleItemCategory: "starch",
	})
	require.NoError(t, err)

	got, err := meals.GetWithItems(ctx, meal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sunday Dinner", got.Name)
	require.Len(t, got.Items, 2)

	first := got.Items[0]
	assert.Equal(t, model.MealItemTypeRecipe, first.ItemType)
	require.NotNil(t, first.Recipe)
	assert.Equal(t, "Roast Chicken", first.Recipe.Name)

	second := got.Items[1]
	assert.Equal(t, model.MealItemTypeSimple, second.ItemType)
	assert.Equal(t, "white rice", second.SimpleItemName)
	assert.Nil(t, second.Recipe)
}

func TestMealItemsOrderedByIndex(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	meals := service.NewMealService(db)
	ctx := context.Background()

	meal, err := meals.Create(ctx, &model.Meal{Name: "Ordered"})
	require.NoError(t, err)

	// Inserted out of order on purpose.
	for _, idx := range []int{2, 0, 1} {
		_, err = meals.AddItem(ctx, &model.MealItem{
			MealID:         meal.ID,
			ItemType:       model.MealItemTypeSimple,
			OrderIndex:     idx,
			SimpleItemName: string(rune('a' + idx)),
		})
		require.NoError(t, err)
	}

	items, err := meals.Items(ctx, meal.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{items[0].OrderIndex, items[1].OrderIndex, items[2].OrderIndex})
}

func TestMealAddItemUnknownMeal(t *testing.T) {
	meals := service.NewMealService(testhelpers.NewTestDB(t))

	_, err := meals.AddItem(context.Background(), &model.MealItem{
		MealID:         uuid.New(),
		ItemType:       model.MealItemTypeSimple,
		SimpleItemName: "bread",
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestMealDeleteCascadesItems(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	meals := service.NewMealService(db)
	ctx := context.Background()

	meal, err := meals.Create(ctx, &model.Meal{Name: "Doomed"})
	require.NoError(t, err)
	item, err := meals.AddItem(ctx, &model.MealItem{
		MealID:         meal.ID,
		ItemType:       model.MealItemTypeSimple,
		SimpleItemName: "salad",
	})
	require.NoError(t, err)

	require.NoError(t, meals.Delete(ctx, meal.ID))

	_, err = meals.Get(ctx, meal.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&model.MealItem{}).Where("id = ?", item.ID).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, meals.Delete(ctx, meal.ID), service.ErrNotFound)
}

func TestMealItemSurvivesRecipeDeletion(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	meals := service.NewMealService(db)
	recipes := service.NewRecipeService(db)
	ctx := context.Background()

	recipe, err := recipes.Create(ctx, newRecipe("Soon Gone"))
	require.NoError(t, err)
	meal, err := meals.Create(ctx, &model.Meal{Name: "Resilient"})
	require.NoError(t, err)
	_, err = meals.AddItem(ctx, &model.MealItem{
		MealID:   meal.ID,
		ItemType: model.MealItemTypeRecipe,
		RecipeID: &recipe.ID,
	})
	require.NoError(t, err)

	require.NoError(t, recipes.Delete(ctx, recipe.ID))

	items, err := meals.Items(ctx, meal.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Nil(t, items[0].Recipe)
}

func TestMealPartialUpdate(t *testing.T) {
	meals := service.NewMealService(testhelpers.NewTestDB(t))
	ctx := context.Background()

	meal, err := meals.Create(ctx, &model.Meal{Name: "Weeknight", Servings: "2"})
	require.NoError(t, err)

	notes := "make ahead on Sunday"
	changed, err := meals.Update(ctx, meal.ID, &service.MealUpdate{Notes: &notes})
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := meals.Get(ctx, meal.ID)
	require.NoError(t, err)
	assert.Equal(t, "make ahead on Sunday", got.Notes)
	assert.Equal(t, "Weeknight", got.Name)
	assert.Equal(t, "2", got.Servings)

	changed, err = meals.Update(ctx, meal.ID, &service.MealUpdate{})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestMealDeleteItem(t *testing.T) {
	meals := service.NewMealService(testhelpers.NewTestDB(t))
	ctx := context.Background()

	meal, err := meals.Create(ctx, &model.Meal{Name: "Trim"})
	require.NoError(t, err)
	item, err := meals.AddItem(ctx, &model.MealItem{
		MealID:         meal.ID,
		ItemType:       model.MealItemTypeSimple,
		SimpleItemName: "croutons",
	})
	require.NoError(t, err)

	require.NoError(t, meals.DeleteItem(ctx, item.ID))
	assert.ErrorIs(t, meals.DeleteItem(ctx, item.ID), service.ErrNotFound)

	items, err := meals.Items(ctx, meal.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
