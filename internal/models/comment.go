package models

import (
	"time"
)

// Comment is an immutable note attached to a post. Comments are removed
// with their post via the FK cascade.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"post_id"`
	Post      *Post     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Author    *Identity `gorm:"-" json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
