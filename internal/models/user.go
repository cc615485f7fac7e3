// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents an account in the identity service.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"uniqueIndex;not null" json:"username"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	FromOAuth bool   `gorm:"default:false" json:"from_oauth"`
	ImageFile string `gorm:"default:'default.jpg'" json:"image_file"`
	// FollowingCount and FollowerCount are not persisted; computed at query time
	FollowingCount int       `gorm:"->;-:migration" json:"following_count"`
	FollowerCount  int       `gorm:"->;-:migration" json:"follower_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
