// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered member of the TeamUp board.
// PublicID is the stable identifier handed to the profile/image storage
// collaborator; it never changes after signup.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	PublicID  string    `gorm:"unique;not null" json:"public_id"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a public id when none is set.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.PublicID == "" {
		u.PublicID = uuid.NewString()
	}
	return nil
}

// IsWriterOf reports whether the user owns the given post.
func (u *User) IsWriterOf(post *Post) bool {
	return post != nil && post.UserID == u.ID
}
