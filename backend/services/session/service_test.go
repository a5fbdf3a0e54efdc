package session

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mehtaruchit28/ips-ui/backend/services"
	"github.com/mehtaruchit28/ips-ui/backend/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() *Service {
	return NewService(Credentials{Email: "admin@admin.com", Password: "password"}, "test-secret", zap.NewNop())
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("storage down")
}
func (failingStore) Set(context.Context, string, string) error { return errors.New("storage down") }
func (failingStore) Remove(context.Context, string) error      { return errors.New("storage down") }

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials store the session flag", func(t *testing.T) {
		svc := newTestService()
		store := storage.NewMemoryStore()

		result, err := svc.Login(ctx, store, "admin@admin.com", "password")
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "Admin User", result.User.Name)
		assert.Equal(t, "admin@admin.com", result.User.Email)

		stored, ok, err := store.Get(ctx, TokenKey)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, result.Token, stored)

		parsed, err := jwt.Parse(stored, func(*jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		sub, err := parsed.Claims.GetSubject()
		require.NoError(t, err)
		assert.Equal(t, "admin@admin.com", sub)
	})

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "admin@admin.com", "wrong"},
		{"wrong email", "user@admin.com", "password"},
		{"empty pair", "", ""},
		{"email case differs", "Admin@admin.com", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService()
			store := storage.NewMemoryStore()

			result, err := svc.Login(ctx, store, tt.email, tt.password)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, services.ErrInvalidCredentials)
			assert.Equal(t, "Invalid email or password", services.GetNotice(err))
			assert.Equal(t, 0, store.Len())
		})
	}

	t.Run("storage failure is reported", func(t *testing.T) {
		_, err := newTestService().Login(ctx, failingStore{}, "admin@admin.com", "password")
		assert.ErrorIs(t, err, services.ErrStorageFailed)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	store := storage.NewMemoryStore()

	_, err := svc.Login(ctx, store, "admin@admin.com", "password")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, store))

	ok, err := svc.IsAuthenticated(ctx, store)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsAuthenticated(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	t.Run("no flag", func(t *testing.T) {
		ok, err := svc.IsAuthenticated(ctx, storage.NewMemoryStore())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("any non-empty flag is trusted", func(t *testing.T) {
		store := storage.NewMemoryStore()
		require.NoError(t, store.Set(ctx, TokenKey, "fake-jwt-token"))

		ok, err := svc.IsAuthenticated(ctx, store)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("empty flag", func(t *testing.T) {
		store := storage.NewMemoryStore()
		require.NoError(t, store.Set(ctx, TokenKey, ""))

		ok, err := svc.IsAuthenticated(ctx, store)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("storage error surfaces as session check failure", func(t *testing.T) {
		ok, err := svc.IsAuthenticated(ctx, failingStore{})
		assert.False(t, ok)
		assert.ErrorIs(t, err, services.ErrSessionCheck)
	})
}
