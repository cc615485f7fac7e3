package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"quill/internal/models"
	"quill/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPost(t *testing.T, repo PostRepository, authorID uint, title string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:     title,
		Content:   "content of " + title,
		AuthorID:  authorID,
		CreatedAt: createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), post))
	return post
}

func TestPostGetByID(t *testing.T) {
	db := testutil.OpenContentTestDB(t)
	posts := NewPostRepository(db)
	ctx := context.Background()

	created := seedPost(t, posts, 1, "hello", time.Now())

	got, err := posts.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Title)
	assert.Equal(t, uint(1), got.AuthorID)
	assert.Equal(t, 0, got.Likes)

	_, err = posts.GetByID(ctx, 9999)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostIncrementLikes(t *testing.T) {
	db := testutil.OpenContentTestDB(t)
	posts := NewPostRepository(db)
	ctx := context.Background()

	created := seedPost(t, posts, 1, "likeable", time.Now())

	t.Run("sequential", func(t *testing.T) {
		for want := 1; want <= 3; want++ {
			likes, err := posts.IncrementLikes(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, want, likes)
		}
	})

	t.Run("concurrent increments are not lost", func(t *testing.T) {
		const workers = 20
		var wg sync.WaitGroup
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()
				_, err := posts.IncrementLikes(ctx, created.ID)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		got, err := posts.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 3+workers, got.Likes)
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := posts.IncrementLikes(ctx, 9999)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeNotFound, appErr.Code)
	})
}

func TestPostListByAuthors(t *testing.T) {
	db := testutil.OpenContentTestDB(t)
	posts := NewPostRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// Viewer (author 1) follows authors 2 and 3; author 4 is noise.
	p1 := seedPost(t, posts, 1, "own old", base.Add(1*time.Hour))
	p2 := seedPost(t, posts, 2, "followed mid", base.Add(2*time.Hour))
	p3 := seedPost(t, posts, 3, "followed new", base.Add(3*time.Hour))
	seedPost(t, posts, 4, "stranger", base.Add(4*time.Hour))

	authorIDs := []uint{1, 2, 3}

	t.Run("union newest first, stranger excluded", func(t *testing.T) {
		got, err := posts.ListByAuthors(ctx, authorIDs, 10, 0)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, p3.ID, got[0].ID)
		assert.Equal(t, p2.ID, got[1].ID)
		assert.Equal(t, p1.ID, got[2].ID)
	})

	t.Run("id tiebreak on identical timestamps", func(t *testing.T) {
		tie := base.Add(5 * time.Hour)
		q1 := seedPost(t, posts, 2, "tie a", tie)
		q2 := seedPost(t, posts, 3, "tie b", tie)

		got, err := posts.ListByAuthors(ctx, authorIDs, 2, 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, q2.ID, got[0].ID)
		assert.Equal(t, q1.ID, got[1].ID)
	})

	t.Run("count", func(t *testing.T) {
		total, err := posts.CountByAuthors(ctx, authorIDs)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
	})

	t.Run("offset past the end yields empty page", func(t *testing.T) {
		got, err := posts.ListByAuthors(ctx, authorIDs, 10, 100)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("no authors yields empty page", func(t *testing.T) {
		got, err := posts.ListByAuthors(ctx, nil, 10, 0)
		require.NoError(t, err)
		assert.Empty(t, got)

		total, err := posts.CountByAuthors(ctx, nil)
		require.NoError(t, err)
		assert.Zero(t, total)
	})
}

func TestPostUpdateAndDelete(t *testing.T) {
	db := testutil.OpenContentTestDB(t)
	posts := NewPostRepository(db)
	ctx := context.Background()

	created := seedPost(t, posts, 1, "before", time.Now())
	created.Title = "after"
	require.NoError(t, posts.Update(ctx, created))

	got, err := posts.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)

	require.NoError(t, posts.Delete(ctx, created.ID))

	err = posts.Delete(ctx, created.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostCommentsCount(t *testing.T) {
	db := testutil.OpenContentTestDB(t)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	created := seedPost(t, posts, 1, "discussed", time.Now())
	for i := 0; i < 2; i++ {
		require.NoError(t, comments.Create(ctx, &models.Comment{
			PostID:   created.ID,
			AuthorID: 2,
			Text:     "nice",
		}))
	}

	got, err := posts.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CommentsCount)
}
