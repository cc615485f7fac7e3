package models

import (
	"time"
)

// Follow is a directed edge in the follow graph: follower -> followed.
// The composite primary key guarantees at most one edge per ordered pair;
// the per-column indexes keep both traversal directions cheap.
type Follow struct {
	FollowerID uint      `gorm:"primaryKey;index:idx_follows_follower" json:"follower_id"`
	FollowedID uint      `gorm:"primaryKey;index:idx_follows_followed" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
