package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/platebook/backend/internal/model"
)

// ErrNotFound is returned by single-entity reads when no row matches.
// Handlers translate it to a 404; it is never a storage failure.
var ErrNotFound = errors.New("record not found")

// RecipeService handles recipe storage operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// Create inserts a recipe and returns it with its generated id and
// timestamps. Validation is the caller's job.
func (s *RecipeService) Create(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// Get retrieves a recipe by ID
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// List returns all recipes, newest first.
func (s *RecipeService) List(ctx context.Context) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// RecipeFilter narrows a listing. All supplied predicates must match.
type RecipeFilter struct {
	Category      string
	Cuisines      []string
	Search        string
	FavoritesOnly bool
}

// Filter returns recipes matching every supplied predicate. Search terms are
// matched as word prefixes against name, ingredients and instructions on both
// backends: "bulg" matches "bulgur". With a search term present, recipes whose
// name starts with the query rank first, then word matches in the name, then
// the rest; otherwise ordering is newest first.
func (s *RecipeService) Filter(ctx context.Context, f RecipeFilter) ([]model.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&model.Recipe{})

	if f.FavoritesOnly {
		query = query.Where("is_favorite = ?", true)
	}
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if len(f.Cuisines) == 1 {
		query = query.Where("cuisine = ?", f.Cuisines[0])
	} else if len(f.Cuisines) > 1 {
		query = query.Where("cuisine IN ?", f.Cuisines)
	}

	terms := strings.Fields(strings.ToLower(f.Search))
	for _, term := range terms {
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(name) LIKE ? OR LOWER(ingredients) LIKE ? OR LOWER(ingredients) LIKE ? OR LOWER(instructions) LIKE ? OR LOWER(instructions) LIKE ?",
			term+"%", "% "+term+"%",
			"% "+term+"%", `%"`+term+"%",
			"% "+term+"%", `%"`+term+"%",
		)
	}

	if len(terms) > 0 {
		query = query.Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "CASE WHEN LOWER(name) LIKE ? THEN 0 WHEN LOWER(name) LIKE ? THEN 1 ELSE 2 END, created_at DESC",
			Vars: []interface{}{strings.ToLower(strings.TrimSpace(f.Search)) + "%", "% " + terms[0] + "%"},
		}})
	} else {
		query = query.Order("created_at DESC")
	}

	var recipes []model.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// RecipeUpdate is a partial recipe: only non-nil fields are written, absent
// fields keep their prior values.
type RecipeUpdate struct {
	Name         *string           `json:"name"`
	Description  *string           `json:"description"`
	Author       *string           `json:"author"`
	SourceURL    *string           `json:"source_url"`
	ImageURL     *string           `json:"image_url"`
	PrepTime     *int              `json:"prep_time"`
	CookTime     *int              `json:"cook_time"`
	TotalTime    *int              `json:"total_time"`
	Servings     *string           `json:"servings"`
	Category     *string           `json:"category"`
	Cuisine      *string           `json:"cuisine"`
	Ingredients  *model.StringList `json:"ingredients"`
	Instructions *model.StringList `json:"instructions"`
	Notes        *string           `json:"notes"`
	IsFavorite   *bool             `json:"is_favorite"`
}

func (u *RecipeUpdate) changes() map[string]interface{} {
	changes := map[string]interface{}{}
	setString := func(col string, v *string) {
		if v != nil {
			changes[col] = *v
		}
	}
	setString("name", u.Name)
	setString("description", u.Description)
	setString("author", u.Author)
	setString("source_url", u.SourceURL)
	setString("image_url", u.ImageURL)
	setString("servings", u.Servings)
	setString("category", u.Category)
	setString("cuisine", u.Cuisine)
	setString("notes", u.Notes)
	if u.PrepTime != nil {
		changes["prep_time"] = *u.PrepTime
	}
	if u.CookTime != nil {
		changes["cook_time"] = *u.CookTime
	}
	if u.TotalTime != nil {
		changes["total_time"] = *u.TotalTime
	}
	if u.Ingredients != nil {
		changes["ingredients"] = *u.Ingredients
	}
	if u.Instructions != nil {
		changes["instructions"] = *u.Instructions
	}
	if u.IsFavorite != nil {
		changes["is_favorite"] = *u.IsFavorite
	}
	return changes
}

// Update applies a partial update and reports whether a row changed. The
// update timestamp advances on any successful change.
func (s *RecipeService) Update(ctx context.Context, id uuid.UUID, update *RecipeUpdate) (bool, error) {
	changes := update.changes()
	if len(changes) == 0 {
		return false, nil
	}
	changes["updated_at"] = time.Now()

	res := s.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Delete removes a recipe. Meal items referencing it keep their row; the
// reference is nulled by the schema and resolves to no recipe on read.
func (s *RecipeService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Categories returns the distinct sorted categories present across all
// recipes. The list reflects stored data, not the suggested enumeration.
func (s *RecipeService) Categories(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "category")
}

// Cuisines returns the distinct sorted cuisines present across all recipes.
func (s *RecipeService) Cuisines(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "cuisine")
}

func (s *RecipeService) distinct(ctx context.Context, column string) ([]string, error) {
	values := []string{}
	err := s.db.WithContext(ctx).
		Model(&model.Recipe{}).
		Distinct().
		Where(column+" <> ''").
		Order(column).
		Pluck(column, &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}
