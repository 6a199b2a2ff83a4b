package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platebook/backend/internal/model"
)

// MealService handles meal and meal item storage operations
type MealService struct {
	db *gorm.DB
}

// NewMealService creates a new MealService instance
func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// Create inserts a meal and returns it with its generated id.
func (s *MealService) Create(ctx context.Context, meal *model.Meal) (*model.Meal, error) {
	if err := s.db.WithContext(ctx).Create(meal).Error; err != nil {
		return nil, err
	}
	return meal, nil
}

// List returns all meals, newest first.
func (s *MealService) List(ctx context.Context) ([]model.Meal, error) {
	var meals []model.Meal
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

// Get retrieves a meal by ID without its items.
func (s *MealService) Get(ctx context.Context, id uuid.UUID) (*model.Meal, error) {
	var meal model.Meal
	if err := s.db.WithContext(ctx).First(&meal, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &meal, nil
}

// GetWithItems retrieves a meal together with its ordered items, each recipe
// item carrying the live state of its recipe.
func (s *MealService) GetWithItems(ctx context.Context, id uuid.UUID) (*model.Meal, error) {
	meal, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.Items(ctx, id)
	if err != nil {
		return nil, err
	}
	meal.Items = items
	return meal, nil
}

// MealUpdate is a partial meal; only non-nil fields are written.
type MealUpdate struct {
	Name     *string `json:"name"`
	Servings *string `json:"servings"`
	Notes    *string `json:"notes"`
}

// Update applies a partial update and reports whether a row changed.
func (s *MealService) Update(ctx context.Context, id uuid.UUID, update *MealUpdate) (bool, error) {
	changes := map[string]interface{}{}
	if update.Name != nil {
		changes["name"] = *update.Name
	}
	if update.Servings != nil {
		changes["servings"] = *update.Servings
	}
	if update.Notes != nil {
		changes["notes"] = *update.Notes
	}
	if len(changes) == 0 {
		return false, nil
	}
	changes["updated_at"] = time.Now()

	res := s.db.WithContext(ctx).Model(&model.Meal{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Delete removes a meal and all of its items in one transaction. The schema
// declares the cascade as well; deleting explicitly keeps the behavior
// identical on both backends.
func (s *MealService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.MealItem{}, "meal_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Meal{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// AddItem appends an item to an existing meal. Shape validation is the
// caller's job; the meal itself must exist.
func (s *MealService) AddItem(ctx context.Context, item *model.MealItem) (*model.MealItem, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Meal{}).Where("id = ?", item.MealID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Items returns a meal's items ordered by order_index, recipe items joined
// with their current recipe. A dangling reference (recipe deleted after the
// item was added) comes back with a nil recipe.
func (s *MealService) Items(ctx context.Context, mealID uuid.UUID) ([]model.MealItem, error) {
	var items []model.MealItem
	err := s.db.WithContext(ctx).
		Preload("Recipe").
		Where("meal_id = ?", mealID).
		Order("order_index ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteItem removes one meal item.
func (s *MealService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&model.MealItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
