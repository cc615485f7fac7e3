package service

import (
	"context"
	"log/slog"

	"quill/internal/identity"
	"quill/internal/models"
	"quill/internal/notifications"
	"quill/internal/repository"
	"quill/internal/validation"

	"github.com/samber/lo"
)

const maxContentLen = 50000

type PostService struct {
	postRepo repository.PostRepository
	resolver identity.Resolver
	notifier *notifications.Notifier
	logger   *slog.Logger
}

type CreatePostInput struct {
	AuthorID uint
	Title    string
	Content  string
}

type UpdatePostInput struct {
	ActorID uint
	PostID  uint
	Title   string
	Content string
}

type DeletePostInput struct {
	ActorID uint
	PostID  uint
}

func NewPostService(
	postRepo repository.PostRepository,
	resolver identity.Resolver,
	notifier *notifications.Notifier,
	logger *slog.Logger,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		resolver: resolver,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validation.ValidatePostTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Content == "" {
		return nil, models.NewValidationError("content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("content too long (max 50000 characters)")
	}

	post := &models.Post{
		Title:    in.Title,
		Content:  in.Content,
		AuthorID: in.AuthorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	s.attachAuthors(ctx, post)
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.attachAuthors(ctx, post)
	return post, nil
}

// ListPosts returns the global timeline, newest first.
func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, int64, error) {
	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	posts, err := s.postRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	s.attachAuthors(ctx, posts...)
	return posts, total, nil
}

// ListPostsByAuthor returns one author's posts, newest first. The author is
// resolved first so an unknown username answers 404 rather than an empty page.
func (s *PostService) ListPostsByAuthor(ctx context.Context, username string, limit, offset int) ([]*models.Post, int64, error) {
	author, err := s.resolver.ResolveByUsername(ctx, username)
	if err != nil {
		return nil, 0, err
	}

	authorIDs := []uint{author.ID}
	total, err := s.postRepo.CountByAuthors(ctx, authorIDs)
	if err != nil {
		return nil, 0, err
	}
	posts, err := s.postRepo.ListByAuthors(ctx, authorIDs, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for _, p := range posts {
		p.Author = author
	}
	return posts, total, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != in.ActorID {
		return nil, models.NewPermissionError("you can only update your own posts")
	}

	if in.Title != "" {
		if err := validation.ValidatePostTitle(in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Title = in.Title
	}
	if in.Content != "" {
		if len(in.Content) > maxContentLen {
			return nil, models.NewValidationError("content too long (max 50000 characters)")
		}
		post.Content = in.Content
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	s.attachAuthors(ctx, post)
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}
	if post.AuthorID != in.ActorID {
		return models.NewPermissionError("you can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, in.PostID)
}

// Like bumps the post's like counter. Every call increments; there is no
// per-user like record to dedupe against.
func (s *PostService) Like(ctx context.Context, actorID, postID uint) (*models.Post, error) {
	likes, err := s.postRepo.IncrementLikes(ctx, postID)
	if err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	// The re-read can see later concurrent likes; report this call's value.
	post.Likes = likes
	if s.notifier != nil && post.AuthorID != actorID {
		if err := s.notifier.PublishLike(ctx, actorID, post.AuthorID, post.ID); err != nil {
			s.logger.WarnContext(ctx, "like notification dropped", slog.String("error", err.Error()))
		}
	}
	s.attachAuthors(ctx, post)
	return post, nil
}

// attachAuthors resolves author identities best effort. Posts still render
// without author details when the identity service is down, so resolver
// failures are logged and swallowed here.
func (s *PostService) attachAuthors(ctx context.Context, posts ...*models.Post) {
	if s.resolver == nil || len(posts) == 0 {
		return
	}

	authorIDs := lo.Uniq(lo.Map(posts, func(p *models.Post, _ int) uint { return p.AuthorID }))
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

	for _, p := range posts {
		p.Author = resolved[p.AuthorID]
	}
}
