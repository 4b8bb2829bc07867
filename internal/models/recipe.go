package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultRecipeImage is served from the static assets directory when a
// recipe has neither an uploaded image nor an explicit URL.
const DefaultRecipeImage = "/images/default-recipe.jpg"

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
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

	return json.Unmarshal(bytes, a)
}

// Contains reports whether s is an element of the array.
func (a JSONBStringArray) Contains(s string) bool {
	for _, v := range a {
		if v == s {
			return true
		}
	}
	return false
}

// Add appends s if not already present and reports whether the array changed.
func (a *JSONBStringArray) Add(s string) bool {
	if a.Contains(s) {
		return false
	}
	*a = append(*a, s)
	return true
}

// Remove deletes s preserving order and reports whether the array changed.
func (a *JSONBStringArray) Remove(s string) bool {
	for i, v := range *a {
		if v == s {
			*a = append((*a)[:i], (*a)[i+1:]...)
			return true
		}
	}
	return false
}

type Recipe struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Title       string           `gorm:"size:255;not null" json:"title"`
	Category    string           `gorm:"size:50;not null" json:"category"`
	Chef        string           `gorm:"size:100;default:'Unknown'" json:"chef"`
	PrepTime    string           `gorm:"size:50" json:"prepTime"`
	CookTime    string           `gorm:"size:50" json:"cookTime"`
	Servings    int              `gorm:"not null" json:"servings"`
	Ingredients JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Method      string           `gorm:"type:text;not null" json:"method"`
	Nutrition   string           `gorm:"type:text" json:"nutrition"`
	Image       string           `gorm:"size:255" json:"image"`
	IsPrivate   bool             `gorm:"not null;default:false" json:"isPrivate"`
	UserID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"user"`
}

// BeforeCreate assigns an ID so the model works on both postgres and sqlite.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// VisibleTo reports whether the recipe may be read by the given user.
// Public recipes are visible to every authenticated user, private ones
// only to their owner.
func (r *Recipe) VisibleTo(userID uuid.UUID) bool {
	return !r.IsPrivate || r.UserID == userID
}

// OwnedBy reports whether the given user created the recipe. Only the
// owner may update or delete it.
func (r *Recipe) OwnedBy(userID uuid.UUID) bool {
	return r.UserID == userID
}
