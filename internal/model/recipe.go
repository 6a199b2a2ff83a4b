package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList is an ordered list of text lines stored as a JSON-encoded text
// column so sqlite and postgres behave identically. Order is significant and
// duplicates are preserved.
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Recipe is a stored dish definition. Ingredients and instructions are
// non-empty for any recipe accepted at the API boundary; storage itself does
// not enforce that.
type Recipe struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Name         string     `gorm:"size:255;not null" json:"name"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`
	Author       string     `gorm:"size:255" json:"author,omitempty"`
	SourceURL    string     `gorm:"size:255" json:"source_url,omitempty"`
	ImageURL     string     `gorm:"size:255" json:"image_url,omitempty"`
	PrepTime     *int       `json:"prep_time,omitempty"`
	CookTime     *int       `json:"cook_time,omitempty"`
	TotalTime    *int       `json:"total_time,omitempty"`
	Servings     string     `gorm:"size:100" json:"servings,omitempty"`
	Category     string     `gorm:"size:50;index" json:"category,omitempty"`
	Cuisine      string     `gorm:"size:100;index" json:"cuisine,omitempty"`
	Ingredients  StringList `gorm:"type:text;not null;default:'[]'" json:"ingredients"`
	Instructions StringList `gorm:"type:text;not null;default:'[]'" json:"instructions"`
	Notes        string     `gorm:"type:text" json:"notes,omitempty"`
	IsFavorite   bool       `gorm:"not null;default:false" json:"is_favorite"`
	// RawText keeps the verbatim paste the recipe was extracted from, for
	// audit and re-parsing.
	RawText string `gorm:"type:text" json:"raw_text,omitempty"`
}

// BeforeCreate assigns the id in-process so both database backends generate
// identically.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeCategories are the categories suggested to the extraction model and
// UI dropdowns. The column itself is open free text.
var RecipeCategories = []string{
	"main", "side", "appetizer", "dessert", "breakfast",
	"bread", "soup", "salad", "condiment", "drink", "snack",
}
