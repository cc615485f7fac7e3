package service

import (
	"context"
	"errors"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterValidation(t *testing.T) {
	svc := NewUserService(&userRepoStub{})

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"bad username", RegisterInput{Username: "a", Email: "a@example.com", Password: "SecurePass12!"}},
		{"reserved username", RegisterInput{Username: "admin", Email: "a@example.com", Password: "SecurePass12!"}},
		{"bad email", RegisterInput{Username: "alice", Email: "not-an-email", Password: "SecurePass12!"}},
		{"weak password", RegisterInput{Username: "alice", Email: "a@example.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.input)
			var appErr *models.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, models.CodeValidation, appErr.Code)
		})
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	var stored *models.User
	repo := &userRepoStub{
		create: func(_ context.Context, user *models.User) error {
			user.ID = 7
			stored = user
			return nil
		},
	}
	svc := NewUserService(repo)

	user, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "SecurePass12!",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, "default.jpg", user.ImageFile)

	require.NotNil(t, stored)
	assert.NotEqual(t, "SecurePass12!", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("SecurePass12!")))
}

func TestRegisterOAuthSkipsPasswordRules(t *testing.T) {
	svc := NewUserService(&userRepoStub{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "placeholder",
		FromOAuth: true,
	})
	assert.NoError(t, err)
}

func TestAuthenticate(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("SecurePass12!"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := &userRepoStub{
		getByEmail: func(_ context.Context, email string) (*models.User, error) {
			if email == "alice@example.com" {
				return &models.User{ID: 3, Email: email, Password: string(hashed)}, nil
			}
			return nil, nil
		},
	}
	svc := NewUserService(repo)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Authenticate(context.Background(), "alice@example.com", "SecurePass12!")
		require.NoError(t, err)
		assert.Equal(t, uint(3), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "alice@example.com", "WrongPass12!")
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeUnauthorized, appErr.Code)
	})

	t.Run("unknown email answers identically", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "nobody@example.com", "SecurePass12!")
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeUnauthorized, appErr.Code)
	})
}

func TestGetUserByUsernameNotFound(t *testing.T) {
	svc := NewUserService(&userRepoStub{})

	_, err := svc.GetUserByUsername(context.Background(), "nobody")
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestUpdateProfile(t *testing.T) {
	t.Run("self only", func(t *testing.T) {
		svc := NewUserService(&userRepoStub{})
		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{ActorID: 1, TargetID: 2})
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeForbidden, appErr.Code)
	})

	t.Run("applies provided fields", func(t *testing.T) {
		var saved *models.User
		repo := &userRepoStub{
			getByID: func(_ context.Context, id uint) (*models.User, error) {
				return &models.User{ID: id, Username: "alice", Email: "alice@example.com"}, nil
			},
			update: func(_ context.Context, user *models.User) error {
				saved = user
				return nil
			},
		}
		svc := NewUserService(repo)

		user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			ActorID:   1,
			TargetID:  1,
			ImageFile: "avatar.png",
		})
		require.NoError(t, err)
		assert.Equal(t, "avatar.png", user.ImageFile)
		assert.Equal(t, "alice", user.Username)
		require.NotNil(t, saved)
	})

	t.Run("rejects invalid new username", func(t *testing.T) {
		repo := &userRepoStub{
			getByID: func(_ context.Context, id uint) (*models.User, error) {
				return &models.User{ID: id, Username: "alice"}, nil
			},
		}
		svc := NewUserService(repo)

		_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
			ActorID:  1,
			TargetID: 1,
			Username: "x",
		})
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, models.CodeValidation, appErr.Code)
	})
}
