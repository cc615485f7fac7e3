package service

import (
	"context"
	"log/slog"

	"quill/internal/identity"
	"quill/internal/models"
	"quill/internal/notifications"
	"quill/internal/repository"

	"github.com/samber/lo"
)

const maxCommentLen = 5000

type CommentService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	resolver    identity.Resolver
	notifier    *notifications.Notifier
	logger      *slog.Logger
}

type AddCommentInput struct {
	PostID   uint
	AuthorID uint
	Text     string
}

func NewCommentService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	resolver identity.Resolver,
	notifier *notifications.Notifier,
	logger *slog.Logger,
) *CommentService {
	return &CommentService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		resolver:    resolver,
		notifier:    notifier,
		logger:      logger,
	}
}

func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if in.Text == "" {
		return nil, models.NewValidationError("text is required")
	}
	if len(in.Text) > maxCommentLen {
		return nil, models.NewValidationError("text too long (max 5000 characters)")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   in.PostID,
		AuthorID: in.AuthorID,
		Text:     in.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	if s.notifier != nil && post.AuthorID != in.AuthorID {
		if err := s.notifier.PublishComment(ctx, in.AuthorID, post.AuthorID, post.ID, comment.ID); err != nil {
			s.logger.WarnContext(ctx, "comment notification dropped", slog.String("error", err.Error()))
		}
	}
	s.attachAuthors(ctx, comment)
	return comment, nil
}

// ListComments returns a post's comments oldest first. The post is checked
// first so an unknown post answers 404 rather than an empty page.
func (s *CommentService) ListComments(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, int64, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, 0, err
	}

	total, err := s.commentRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, 0, err
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	s.attachAuthors(ctx, comments...)
	return comments, total, nil
}

// AllComments returns every comment on a post, oldest first, for the post
// detail view. The negative limit disables paging.
func (s *CommentService) AllComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	comments, _, err := s.ListComments(ctx, postID, -1, 0)
	return comments, err
}

func (s *CommentService) attachAuthors(ctx context.Context, comments ...*models.Comment) {
	if s.resolver == nil || len(comments) == 0 {
		return
	}

	authorIDs := lo.Uniq(lo.Map(comments, func(c *models.Comment, _ int) uint { return c.AuthorID }))
	resolved := make(map[uint]*models.Identity, len(authorIDs))
	for _, id := range authorIDs {
		author, err := s.resolver.ResolveByID(ctx, id)
		if err != nil {
			s.logger.WarnContext(ctx, "author resolution failed",
				slog.Any("author_id", id),
				slog.String("error", err.Error()),
			)
			continue
		}
		resolved[id] = author
	}

	for _, c := range comments {
		c.Author = resolved[c.AuthorID]
	}
}
