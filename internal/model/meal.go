package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal item variants. A meal item is either a reference to a stored recipe or
// a free-text "simple" item like "white rice".
const (
	MealItemTypeRecipe = "recipe"
	MealItemTypeSimple = "simple"
)

// Meal is a named, ordered collection of recipe references and simple items.
type Meal struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Servings  string    `gorm:"size:100" json:"servings,omitempty"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`

	// Items cascade with the meal; the constraint is declared here so both
	// backends create it during migration.
	Items []MealItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// MealItem is one entry in a meal. Recipe items resolve their recipe live at
// read time; deleting the referenced recipe nulls the reference and the item
// is served without recipe detail.
type MealItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	MealID    uuid.UUID `gorm:"type:uuid;not null;index" json:"meal_id"`
	ItemType  string    `gorm:"size:20;not null" json:"item_type"`
	// OrderIndex defines listing order within the meal. Intended unique per
	// meal but not enforced; concurrent writers may interleave values.
	OrderIndex int `gorm:"not null;default:0" json:"order_index"`

	RecipeID *uuid.UUID `gorm:"type:uuid" json:"recipe_id,omitempty"`
	Recipe   *Recipe    `gorm:"constraint:OnDelete:SET NULL" json:"recipe,omitempty"`

	SimpleItemName     string `gorm:"size:255" json:"simple_item_name,omitempty"`
	SimpleItemCategory string `gorm:"size:50" json:"simple_item_category,omitempty"`
}

func (i *MealItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
