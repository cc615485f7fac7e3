package repository

import (
	"context"
	"errors"

	"quill/internal/models"
	"quill/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// postCounts folds the comment count into post queries so list endpoints
// avoid an N+1.
const postCounts = "posts.*, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count"

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, error)
	CountByAuthors(ctx context.Context, authorIDs []uint) (int64, error)
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	IncrementLikes(ctx context.Context, id uint) (int, error)
}

type postRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, log: observability.NewRepoLogger("posts")}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.log.LogMutation(ctx, "create", map[string]interface{}{
		"post_id":   post.ID,
		"author_id": post.AuthorID,
	})
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Select(postCounts).
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// ListByAuthors returns posts by any of the given authors, newest first.
// The id tiebreak keeps pagination stable when timestamps collide.
func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, error) {
	if len(authorIDs) == 0 {
		return []*models.Post{}, nil
	}
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Select(postCounts).
		Where("author_id IN ?", authorIDs).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) CountByAuthors(ctx context.Context, authorIDs []uint) (int64, error) {
	if len(authorIDs) == 0 {
		return 0, nil
	}
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("author_id IN ?", authorIDs).
		Count(&total).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return total, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	if err := r.db.WithContext(ctx).
		Select(postCounts).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&total).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return total, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if result.Error != nil {
		r.log.LogError(ctx, result.Error, "delete")
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	r.log.LogMutation(ctx, "delete", map[string]interface{}{"post_id": id})
	return nil
}

// IncrementLikes bumps the counter with a single relative UPDATE; RETURNING
// hands back this call's exact value even under concurrent likes.
func (r *postRepository) IncrementLikes(ctx context.Context, id uint) (int, error) {
	var post models.Post
	result := r.db.WithContext(ctx).
		Model(&post).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "likes"}}}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1))
	if result.Error != nil {
		return 0, models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, models.NewNotFoundError("Post", id)
	}
	return post.Likes, nil
}
