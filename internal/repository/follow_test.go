package repository

import (
	"context"
	"testing"

	"quill/internal/models"
	"quill/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUsers(t *testing.T, repo UserRepository, usernames ...string) []uint {
	t.Helper()
	ids := make([]uint, 0, len(usernames))
	for _, name := range usernames {
		u := &models.User{Username: name, Email: name + "@example.com", Password: "x"}
		require.NoError(t, repo.Create(context.Background(), u))
		ids = append(ids, u.ID)
	}
	return ids
}

func TestFollowCreateIsIdempotent(t *testing.T) {
	db := testutil.OpenIdentityTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	ids := seedUsers(t, users, "alice", "bob")

	created, err := follows.Create(ctx, ids[0], ids[1])
	require.NoError(t, err)
	assert.True(t, created)

	// Second follow is a no-op, not an error.
	created, err = follows.Create(ctx, ids[0], ids[1])
	require.NoError(t, err)
	assert.False(t, created)

	following, err := follows.FollowingIDs(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, []uint{ids[1]}, following)
}

func TestFollowDirectionality(t *testing.T) {
	db := testutil.OpenIdentityTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	ids := seedUsers(t, users, "alice", "bob")

	_, err := follows.Create(ctx, ids[0], ids[1])
	require.NoError(t, err)

	forward, err := follows.Exists(ctx, ids[0], ids[1])
	require.NoError(t, err)
	assert.True(t, forward)

	// The reverse edge does not exist until bob follows back.
	reverse, err := follows.Exists(ctx, ids[1], ids[0])
	require.NoError(t, err)
	assert.False(t, reverse)

	_, err = follows.Create(ctx, ids[1], ids[0])
	require.NoError(t, err)

	reverse, err = follows.Exists(ctx, ids[1], ids[0])
	require.NoError(t, err)
	assert.True(t, reverse)
}

func TestFollowDelete(t *testing.T) {
	db := testutil.OpenIdentityTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	ids := seedUsers(t, users, "alice", "bob")

	_, err := follows.Create(ctx, ids[0], ids[1])
	require.NoError(t, err)
	require.NoError(t, follows.Delete(ctx, ids[0], ids[1]))

	exists, err := follows.Exists(ctx, ids[0], ids[1])
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting an absent edge is a no-op.
	assert.NoError(t, follows.Delete(ctx, ids[0], ids[1]))
}

func TestFollowListings(t *testing.T) {
	db := testutil.OpenIdentityTestDB(t)
	users := NewUserRepository(db)
	follows := NewFollowRepository(db)
	ctx := context.Background()

	ids := seedUsers(t, users, "alice", "bob", "carol", "dave")

	for _, target := range ids[1:] {
		_, err := follows.Create(ctx, ids[0], target)
		require.NoError(t, err)
	}
	_, err := follows.Create(ctx, ids[1], ids[0])
	require.NoError(t, err)

	t.Run("following users with totals", func(t *testing.T) {
		list, total, err := follows.FollowingUsers(ctx, ids[0], 2, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, list, 2)
	})

	t.Run("follower users", func(t *testing.T) {
		list, total, err := follows.FollowerUsers(ctx, ids[0], 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, list, 1)
		assert.Equal(t, "bob", list[0].Username)
	})

	t.Run("counts surface on the user row", func(t *testing.T) {
		alice, err := users.GetByID(ctx, ids[0])
		require.NoError(t, err)
		assert.Equal(t, 3, alice.FollowingCount)
		assert.Equal(t, 1, alice.FollowerCount)
	})

	t.Run("follower ids", func(t *testing.T) {
		got, err := follows.FollowerIDs(ctx, ids[1])
		require.NoError(t, err)
		assert.Equal(t, []uint{ids[0]}, got)
	})
}
