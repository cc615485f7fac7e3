package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db, mock
}

// The like counter must be bumped inside the database, not read-modify-write
// in Go. This pins the generated SQL to a single relative UPDATE whose
// RETURNING clause yields this call's exact value; a separate re-read could
// pick up other callers' concurrent increments.
func TestIncrementLikesIssuesRelativeUpdate(t *testing.T) {
	db, mock := openMockDB(t)
	posts := NewPostRepository(db)

	mock.ExpectQuery(`UPDATE "posts" SET "likes"=likes \+ \$1 WHERE id = \$2 RETURNING "likes"`).
		WithArgs(1, 42).
		WillReturnRows(sqlmock.NewRows([]string{"likes"}).AddRow(7))

	likes, err := posts.IncrementLikes(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 7, likes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementLikesMissingPost(t *testing.T) {
	db, mock := openMockDB(t)
	posts := NewPostRepository(db)

	mock.ExpectQuery(`UPDATE "posts" SET "likes"=likes \+ \$1 WHERE id = \$2 RETURNING "likes"`).
		WithArgs(1, 999).
		WillReturnRows(sqlmock.NewRows([]string{"likes"}))

	_, err := posts.IncrementLikes(context.Background(), 999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}
