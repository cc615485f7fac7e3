package service

import (
	"context"
	"io"
	"log/slog"

	"quill/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// userRepoStub lets each test wire only the methods it needs.
type userRepoStub struct {
	getByID       func(ctx context.Context, id uint) (*models.User, error)
	getByEmail    func(ctx context.Context, email string) (*models.User, error)
	getByUsername func(ctx context.Context, username string) (*models.User, error)
	create        func(ctx context.Context, user *models.User) error
	update        func(ctx context.Context, user *models.User) error
	delete        func(ctx context.Context, id uint) error
	list          func(ctx context.Context, limit, offset int) ([]models.User, int64, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByID == nil {
		return &models.User{ID: id}, nil
	}
	return s.getByID(ctx, id)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmail == nil {
		return nil, nil
	}
	return s.getByEmail(ctx, email)
}

func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.getByUsername == nil {
		return nil, nil
	}
	return s.getByUsername(ctx, username)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	if s.create == nil {
		user.ID = 1
		return nil
	}
	return s.create(ctx, user)
}

func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	if s.update == nil {
		return nil
	}
	return s.update(ctx, user)
}

func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	if s.delete == nil {
		return nil
	}
	return s.delete(ctx, id)
}

func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	if s.list == nil {
		return nil, 0, nil
	}
	return s.list(ctx, limit, offset)
}

type followRepoStub struct {
	create         func(ctx context.Context, followerID, followedID uint) (bool, error)
	delete         func(ctx context.Context, followerID, followedID uint) error
	exists         func(ctx context.Context, followerID, followedID uint) (bool, error)
	followingIDs   func(ctx context.Context, followerID uint) ([]uint, error)
	followerIDs    func(ctx context.Context, followedID uint) ([]uint, error)
	followingUsers func(ctx context.Context, followerID uint, limit, offset int) ([]models.User, int64, error)
	followerUsers  func(ctx context.Context, followedID uint, limit, offset int) ([]models.User, int64, error)
}

func (s *followRepoStub) Create(ctx context.Context, followerID, followedID uint) (bool, error) {
	if s.create == nil {
		return true, nil
	}
	return s.create(ctx, followerID, followedID)
}

func (s *followRepoStub) Delete(ctx context.Context, followerID, followedID uint) error {
	if s.delete == nil {
		return nil
	}
	return s.delete(ctx, followerID, followedID)
}

func (s *followRepoStub) Exists(ctx context.Context, followerID, followedID uint) (bool, error) {
	if s.exists == nil {
		return false, nil
	}
	return s.exists(ctx, followerID, followedID)
}

func (s *followRepoStub) FollowingIDs(ctx context.Context, followerID uint) ([]uint, error) {
	if s.followingIDs == nil {
		return nil, nil
	}
	return s.followingIDs(ctx, followerID)
}

func (s *followRepoStub) FollowerIDs(ctx context.Context, followedID uint) ([]uint, error) {
	if s.followerIDs == nil {
		return nil, nil
	}
	return s.followerIDs(ctx, followedID)
}

func (s *followRepoStub) FollowingUsers(ctx context.Context, followerID uint, limit, offset int) ([]models.User, int64, error) {
	if s.followingUsers == nil {
		return nil, 0, nil
	}
	return s.followingUsers(ctx, followerID, limit, offset)
}

func (s *followRepoStub) FollowerUsers(ctx context.Context, followedID uint, limit, offset int) ([]models.User, int64, error) {
	if s.followerUsers == nil {
		return nil, 0, nil
	}
	return s.followerUsers(ctx, followedID, limit, offset)
}

type postRepoStub struct {
	create         func(ctx context.Context, post *models.Post) error
	getByID        func(ctx context.Context, id uint) (*models.Post, error)
	listByAuthors  func(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, error)
	countByAuthors func(ctx context.Context, authorIDs []uint) (int64, error)
	list           func(ctx context.Context, limit, offset int) ([]*models.Post, error)
	count          func(ctx context.Context) (int64, error)
	update         func(ctx context.Context, post *models.Post) error
	delete         func(ctx context.Context, id uint) error
	incrementLikes func(ctx context.Context, id uint) (int, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	if s.create == nil {
		post.ID = 1
		return nil
	}
	return s.create(ctx, post)
}

func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	if s.getByID == nil {
		return &models.Post{ID: id}, nil
	}
	return s.getByID(ctx, id)
}

func (s *postRepoStub) ListByAuthors(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Post, error) {
	if s.listByAuthors == nil {
		return nil, nil
	}
	return s.listByAuthors(ctx, authorIDs, limit, offset)
}

func (s *postRepoStub) CountByAuthors(ctx context.Context, authorIDs []uint) (int64, error) {
	if s.countByAuthors == nil {
		return 0, nil
	}
	return s.countByAuthors(ctx, authorIDs)
}

func (s *postRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	if s.list == nil {
		return nil, nil
	}
	return s.list(ctx, limit, offset)
}

func (s *postRepoStub) Count(ctx context.Context) (int64, error) {
	if s.count == nil {
		return 0, nil
	}
	return s.count(ctx)
}

func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	if s.update == nil {
		return nil
	}
	return s.update(ctx, post)
}

func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	if s.delete == nil {
		return nil
	}
	return s.delete(ctx, id)
}

func (s *postRepoStub) IncrementLikes(ctx context.Context, id uint) (int, error) {
	if s.incrementLikes == nil {
		return 1, nil
	}
	return s.incrementLikes(ctx, id)
}

type commentRepoStub struct {
	create      func(ctx context.Context, comment *models.Comment) error
	getByID     func(ctx context.Context, id uint) (*models.Comment, error)
	listByPost  func(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error)
	countByPost func(ctx context.Context, postID uint) (int64, error)
	delete      func(ctx context.Context, id uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	if s.create == nil {
		comment.ID = 1
		return nil
	}
	return s.create(ctx, comment)
}

func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	if s.getByID == nil {
		return &models.Comment{ID: id}, nil
	}
	return s.getByID(ctx, id)
}

func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	if s.listByPost == nil {
		return nil, nil
	}
	return s.listByPost(ctx, postID, limit, offset)
}

func (s *commentRepoStub) CountByPost(ctx context.Context, postID uint) (int64, error) {
	if s.countByPost == nil {
		return 0, nil
	}
	return s.countByPost(ctx, postID)
}

func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	if s.delete == nil {
		return nil
	}
	return s.delete(ctx, id)
}

type resolverStub struct {
	resolveByID       func(ctx context.Context, id uint) (*models.Identity, error)
	resolveByUsername func(ctx context.Context, username string) (*models.Identity, error)
	followingIDs      func(ctx context.Context, userID uint) ([]uint, error)
}

func (s *resolverStub) ResolveByID(ctx context.Context, id uint) (*models.Identity, error) {
	if s.resolveByID == nil {
		return &models.Identity{ID: id}, nil
	}
	return s.resolveByID(ctx, id)
}

func (s *resolverStub) ResolveByUsername(ctx context.Context, username string) (*models.Identity, error) {
	if s.resolveByUsername == nil {
		return &models.Identity{ID: 1, Username: username}, nil
	}
	return s.resolveByUsername(ctx, username)
}

func (s *resolverStub) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	if s.followingIDs == nil {
		return nil, nil
	}
	return s.followingIDs(ctx, userID)
}
