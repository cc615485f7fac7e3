package repository

import (
	"context"

	"quill/internal/models"
	"quill/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow-graph operations.
type FollowRepository interface {
	Create(ctx context.Context, followerID, followedID uint) (bool, error)
	Delete(ctx context.Context, followerID, followedID uint) error
	Exists(ctx context.Context, followerID, followedID uint) (bool, error)
	FollowingIDs(ctx context.Context, followerID uint) ([]uint, error)
	FollowerIDs(ctx context.Context, followedID uint) ([]uint, error)
	FollowingUsers(ctx context.Context, followerID uint, limit, offset int) ([]models.User, int64, error)
	FollowerUsers(ctx context.Context, followedID uint, limit, offset int) ([]models.User, int64, error)
}

type followRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewFollowRepository creates a new follow repository.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db, log: observability.NewRepoLogger("follows")}
}

// Create inserts the edge if absent. The ON CONFLICT DO NOTHING clause makes
// repeat follows a no-op, including under concurrent requests. The returned
// bool reports whether a new edge was written.
func (r *followRepository) Create(ctx context.Context, followerID, followedID uint) (bool, error) {
	follow := models.Follow{FollowerID: followerID, FollowedID: followedID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&follow)
	if result.Error != nil {
		r.log.LogError(ctx, result.Error, "create")
		return false, models.NewInternalError(result.Error)
	}
	if result.RowsAffected > 0 {
		r.log.LogMutation(ctx, "create", map[string]interface{}{
			"follower_id": followerID,
			"followed_id": followedID,
		})
	}
	return result.RowsAffected > 0, nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followedID uint) error {
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error; err != nil {
		r.log.LogError(ctx, err, "delete")
		return models.NewInternalError(err)
	}
	r.log.LogMutation(ctx, "delete", map[string]interface{}{
		"follower_id": followerID,
		"followed_id": followedID,
	})
	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) FollowingIDs(ctx context.Context, followerID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Order("followed_id").
		Pluck("followed_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *followRepository) FollowerIDs(ctx context.Context, followedID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("followed_id = ?", followedID).
		Order("follower_id").
		Pluck("follower_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *followRepository) FollowingUsers(ctx context.Context, followerID uint, limit, offset int) ([]models.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Select(userCounts).
		Joins("JOIN follows f ON f.followed_id = users.id").
		Where("f.follower_id = ?", followerID).
		Order("f.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return users, total, nil
}

func (r *followRepository) FollowerUsers(ctx context.Context, followedID uint, limit, offset int) ([]models.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("followed_id = ?", followedID).
		Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Select(userCounts).
		Joins("JOIN follows f ON f.follower_id = users.id").
		Where("f.followed_id = ?", followedID).
		Order("f.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return users, total, nil
}
