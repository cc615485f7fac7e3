package service

import (
	"context"
	"log/slog"

	"quill/internal/models"
	"quill/internal/notifications"
	"quill/internal/repository"
)

type FollowService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	notifier   *notifications.Notifier
	logger     *slog.Logger
}

func NewFollowService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	notifier *notifications.Notifier,
	logger *slog.Logger,
) *FollowService {
	return &FollowService{
		userRepo:   userRepo,
		followRepo: followRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// Follow adds an edge from the actor to the named user. Repeating an
// existing follow succeeds without effect; following yourself is rejected.
func (s *FollowService) Follow(ctx context.Context, followerID uint, targetUsername string) (*models.User, error) {
	target, err := s.resolveTarget(ctx, followerID, targetUsername)
	if err != nil {
		return nil, err
	}

	created, err := s.followRepo.Create(ctx, followerID, target.ID)
	if err != nil {
		return nil, err
	}
	if created && s.notifier != nil {
		// Delivery is best effort; a Redis outage must not fail the follow.
		if err := s.notifier.PublishFollow(ctx, followerID, target.ID); err != nil {
			s.logger.WarnContext(ctx, "follow notification dropped", slog.String("error", err.Error()))
		}
	}
	return s.userRepo.GetByID(ctx, target.ID)
}

// Unfollow removes the edge. Unfollowing someone you do not follow is a
// no-op, mirroring Follow's idempotence.
func (s *FollowService) Unfollow(ctx context.Context, followerID uint, targetUsername string) (*models.User, error) {
	target, err := s.resolveTarget(ctx, followerID, targetUsername)
	if err != nil {
		return nil, err
	}
	if err := s.followRepo.Delete(ctx, followerID, target.ID); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, target.ID)
}

func (s *FollowService) resolveTarget(ctx context.Context, actorID uint, targetUsername string) (*models.User, error) {
	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, models.NewNotFoundError("User", targetUsername)
	}
	if target.ID == actorID {
		return nil, models.NewSelfReferenceError("you cannot follow yourself")
	}
	return target, nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, targetID uint) (bool, error) {
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return false, err
	}
	return s.followRepo.Exists(ctx, followerID, targetID)
}

func (s *FollowService) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, int64, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, 0, err
	}
	return s.followRepo.FollowingUsers(ctx, userID, limit, offset)
}

func (s *FollowService) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, int64, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, 0, err
	}
	return s.followRepo.FollowerUsers(ctx, userID, limit, offset)
}

// FollowingIDs backs the content service's feed expansion.
func (s *FollowService) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	ids, err := s.followRepo.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint{}
	}
	return ids, nil
}
