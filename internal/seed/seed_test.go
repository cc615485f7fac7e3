package seed

import (
	"testing"

	"quill/internal/models"
	"quill/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeederRun(t *testing.T) {
	identityDB := testutil.OpenIdentityTestDB(t)
	contentDB := testutil.OpenContentTestDB(t)

	seeder := NewSeeder(identityDB, contentDB, Options{NumUsers: 10, NumPosts: 30})
	users, err := seeder.Run()
	require.NoError(t, err)
	require.Len(t, users, 10)

	var userCount, followCount int64
	require.NoError(t, identityDB.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, identityDB.Model(&models.Follow{}).Count(&followCount).Error)
	assert.EqualValues(t, 10, userCount)
	assert.Positive(t, followCount)

	var postCount int64
	require.NoError(t, contentDB.Model(&models.Post{}).Count(&postCount).Error)
	assert.EqualValues(t, 30, postCount)

	t.Run("no self follows", func(t *testing.T) {
		var selfFollows int64
		require.NoError(t, identityDB.Model(&models.Follow{}).
			Where("follower_id = followed_id").Count(&selfFollows).Error)
		assert.Zero(t, selfFollows)
	})

	t.Run("posts reference seeded users", func(t *testing.T) {
		ids := map[uint]bool{}
		for _, u := range users {
			ids[u.ID] = true
		}
		var posts []models.Post
		require.NoError(t, contentDB.Find(&posts).Error)
		for _, p := range posts {
			assert.True(t, ids[p.AuthorID])
		}
	})
}

func TestSeederClearAll(t *testing.T) {
	identityDB := testutil.OpenIdentityTestDB(t)
	contentDB := testutil.OpenContentTestDB(t)

	seeder := NewSeeder(identityDB, contentDB, Options{NumUsers: 5, NumPosts: 10})
	_, err := seeder.Run()
	require.NoError(t, err)

	require.NoError(t, seeder.ClearAll())

	var userCount, postCount int64
	require.NoError(t, identityDB.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, contentDB.Model(&models.Post{}).Count(&postCount).Error)
	assert.Zero(t, userCount)
	assert.Zero(t, postCount)
}

func TestSeederDryRun(t *testing.T) {
	identityDB := testutil.OpenIdentityTestDB(t)
	contentDB := testutil.OpenContentTestDB(t)

	seeder := NewSeeder(identityDB, contentDB, Options{NumUsers: 5, NumPosts: 10, DryRun: true})
	users, err := seeder.Run()
	require.NoError(t, err)
	require.Len(t, users, 5)
	for _, u := range users {
		assert.NotZero(t, u.ID)
	}

	var userCount int64
	require.NoError(t, identityDB.Model(&models.User{}).Count(&userCount).Error)
	assert.Zero(t, userCount)
}
