package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a single document: the social graph edges live denormalized on
// both sides as ID arrays, with no referential integrity in the store.
// Keeping the two sides consistent is the service layer's job.
type User struct {
	ID           uuid.UUID        `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	Name         string           `gorm:"not null" json:"name"`
	Email        string           `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string           `gorm:"not null" json:"-"`
	ImageURL     string           `gorm:"size:255" json:"imageUrl,omitempty"`
	Following    JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"following"`
	Followers    JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"followers"`
	Friends      JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"friends"`
	// FriendRequests holds pending inbound requests keyed by sender ID.
	FriendRequests JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"friendRequests"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserSummary is the shape returned by social listings and user search.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	ImageURL string    `json:"imageUrl,omitempty"`
}

// Summary strips the user down to the fields safe to show other users.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		ImageURL: u.ImageURL,
	}
}
