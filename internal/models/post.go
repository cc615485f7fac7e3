package models

import (
	"time"
)

// Post represents a post in the content service. AuthorID is an opaque
// identity reference; the content service never joins against user rows.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:100;not null" json:"title"`
	Content  string `gorm:"type:text;not null" json:"content"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	// Likes is mutated only through the atomic increment in the repository.
	Likes int `gorm:"not null;default:0" json:"likes"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->;-:migration" json:"comments_count"`
	// Author is resolved from the identity service; never stored here.
	Author *Identity `gorm:"-" json:"author,omitempty"`
	// Comments is populated only on the post detail endpoint.
	Comments  []*Comment `gorm:"-" json:"comments,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
