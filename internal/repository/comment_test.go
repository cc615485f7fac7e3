package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"quill/internal/models"
	"quill/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentListByPost(t *testing.T) {
	db := testutil.OpenContentTestDB(t)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	post := seedPost(t, posts, 1, "thread", time.Now())
	other := seedPost(t, posts, 1, "other thread", time.Now())

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	texts := []string{"first", "second", "third"}
	for i, text := range texts {
		require.NoError(t, comments.Create(ctx, &models.Comment{
			PostID:    post.ID,
			AuthorID:  2,
			Text:      text,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, comments.Create(ctx, &models.Comment{PostID: other.ID, AuthorID: 3, Text: "elsewhere"}))

	t.Run("oldest first, scoped to post", func(t *testing.T) {
		got, err := comments.ListByPost(ctx, post.ID, 10, 0)
		require.NoError(t, err)
		require.Len(t, got, 3)
		for i, text := range texts {
			assert.Equal(t, text, got[i].Text)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		got, err := comments.ListByPost(ctx, post.ID, 2, 2)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "third", got[0].Text)
	})

	t.Run("count", func(t *testing.T) {
		total, err := comments.CountByPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})
}

func TestCommentDelete(t *testing.T) {
	db := testutil.OpenContentTestDB(t)
	posts := NewPostRepository(db)
	comments := NewCommentRepository(db)
	ctx := context.Background()

	post := seedPost(t, posts, 1, "thread", time.Now())
	c := &models.Comment{PostID: post.ID, AuthorID: 2, Text: "gone soon"}
	require.NoError(t, comments.Create(ctx, c))

	require.NoError(t, comments.Delete(ctx, c.ID))

	err := comments.Delete(ctx, c.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
