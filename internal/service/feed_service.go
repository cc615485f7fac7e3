package service

import (
	"context"
	"log/slog"

	"quill/internal/identity"
	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/pagination"
	"quill/internal/repository"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
)

// FeedService assembles a viewer's home feed: the union of their own posts
// and posts by everyone they follow, newest first.
type FeedService struct {
	postRepo repository.PostRepository
	resolver identity.Resolver
	logger   *slog.Logger
}

func NewFeedService(
	postRepo repository.PostRepository,
	resolver identity.Resolver,
	logger *slog.Logger,
) *FeedService {
	return &FeedService{
		postRepo: postRepo,
		resolver: resolver,
		logger:   logger,
	}
}

// GetFeed returns one page of the viewer's feed. The follow graph lives in
// the identity service; if it cannot be reached the whole feed request fails
// with an unavailable error, because a feed silently missing followed
// authors would be worse than no feed.
func (s *FeedService) GetFeed(ctx context.Context, viewerID uint, page, pageSize int) (pagination.Page[*models.Post], error) {
	span, ctx := observability.NewSpan(ctx, "feed.assemble")
	span.AddAttributes(attribute.Int("feed.viewer_id", int(viewerID)))
	defer span.End()

	timer := prometheus.NewTimer(observability.FeedAssemblyLatency)
	defer timer.ObserveDuration()

	var empty pagination.Page[*models.Post]

	followedIDs, err := s.resolver.FollowingIDs(ctx, viewerID)
	if err != nil {
		span.SetError(err)
		return empty, err
	}

	// The viewer sees their own posts too. Uniq guards against the identity
	// service ever returning the viewer in their own following list.
	authorIDs := lo.Uniq(append(followedIDs, viewerID))
	span.AddAttributes(attribute.Int("feed.author_count", len(authorIDs)))

	total, err := s.postRepo.CountByAuthors(ctx, authorIDs)
	if err != nil {
		span.SetError(err)
		return empty, err
	}

	posts, err := s.postRepo.ListByAuthors(ctx, authorIDs, pageSize, pagination.Offset(page, pageSize))
	if err != nil {
		span.SetError(err)
		return empty, err
	}

	s.attachAuthors(ctx, posts)
	s.logger.DebugContext(ctx, "feed assembled",
		slog.String("trace_id", span.TraceID()),
		slog.Int("posts", len(posts)),
		slog.Int64("total", total),
	)
	return pagination.NewPage(posts, page, pageSize, total), nil
}

func (s *FeedService) attachAuthors(ctx context.Context, posts []*models.Post) {
	if len(posts) == 0 {
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
