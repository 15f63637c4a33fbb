package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simplecrud/internal/config"
	"simplecrud/internal/repository"
)

func newService(t *testing.T) *AuthService {
	t.Helper()
	cfg := &config.AppConfig{
		Environment: "test",
		Security:    config.SecurityConfig{TokenSecret: "test-secret"},
	}
	return NewAuthService(repository.NewUserDirectory(), cfg, zerolog.Nop())
}

func TestLogin_IssuesTokenForAnyNonEmptyPair(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	result, err := s.Login(ctx, LoginInput{Email: "anyone@example.com", Password: "anything"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, 1, result.User.ID)
	assert.Equal(t, "anyone@example.com", result.User.Email)
	assert.False(t, result.User.CreatedAt.IsZero())
}

func TestLogin_MissingFieldFails(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	for _, input := range []LoginInput{
		{},
		{Email: "a@b.c"},
		{Password: "secret"},
	} {
		_, err := s.Login(ctx, input)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
}

func TestLogin_SeededEmailGetsDirectoryCreatedAt(t *testing.T) {
	s := newService(t)

	result, err := s.Login(context.Background(), LoginInput{Email: "user@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), result.User.CreatedAt)
	// Last login is refreshed, not the stale seeded value.
	assert.WithinDuration(t, time.Now(), result.User.LastLogin, time.Minute)
}

func TestLogin_TokensAreUnique(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	first, err := s.Login(ctx, LoginInput{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)
	second, err := s.Login(ctx, LoginInput{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)

	// Multiple logins coexist: neither invalidates the other, and each gets
	// its own token value.
	assert.NotEqual(t, first.Token, second.Token)
}

func TestRegister_HandsOutSequentialIDs(t *testing.T) {
	s := newService(t)
	ctx := context.Background()

	first, err := s.Register(ctx, RegisterInput{Email: "one@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, 2, first.ID)

	second, err := s.Register(ctx, RegisterInput{Email: "two@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, 3, second.ID)
}

func TestRegister_DoesNotTouchDirectory(t *testing.T) {
	directory := repository.NewUserDirectory()
	cfg := &config.AppConfig{Security: config.SecurityConfig{TokenSecret: "test-secret"}}
	s := NewAuthService(directory, cfg, zerolog.Nop())
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterInput{Email: "ghost@example.com", Password: "pw"})
	require.NoError(t, err)

	users, err := directory.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRegister_MissingFieldFails(t *testing.T) {
	s := newService(t)

	_, err := s.Register(context.Background(), RegisterInput{Email: "a@b.c"})
	require.ErrorIs(t, err, ErrFieldsRequired)
}

func TestLogout_AlwaysNil(t *testing.T) {
	s := newService(t)
	require.NoError(t, s.Logout(context.Background()))
}
