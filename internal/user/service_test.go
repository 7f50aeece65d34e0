package user_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/saulo-duarte/chronos-planner/internal/apperror"
	"github.com/saulo-duarte/chronos-planner/internal/auth"
	"github.com/saulo-duarte/chronos-planner/internal/config"
	"github.com/saulo-duarte/chronos-planner/internal/testutil"
	"github.com/saulo-duarte/chronos-planner/internal/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (user.UserService, user.UserRepository) {
	t.Setenv("JWT_SECRET", "a-long-and-secure-secret-for-tests")
	t.Setenv("CRYPTO_KEY", "01234567890123456789012345678901")
	auth.Init()
	config.InitCrypto()

	repo := user.NewUserRepository(testutil.NewDB(t))
	return user.NewUserService(repo, 15*time.Minute), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, user.RegisterDTO{
		Username: "ada",
		Email:    "Ada@Example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada", created.Username)
	assert.Equal(t, "ada@example.com", created.Email)
	assert.True(t, created.IsActive)
	assert.False(t, created.CalendarConnected)

	stored, err := repo.GetByUsername(ctx, "ada")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct horse battery", stored.HashedPassword)

	t.Run("DuplicateUsername", func(t *testing.T) {
		_, err := svc.Register(ctx, user.RegisterDTO{Username: "ada", Email: "other@example.com", Password: "password123"})
		var conflict *apperror.ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, "username", conflict.Field)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := svc.Register(ctx, user.RegisterDTO{Username: "lovelace", Email: "ada@example.com", Password: "password123"})
		var conflict *apperror.ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, "email", conflict.Field)
	})

	t.Run("Login", func(t *testing.T) {
		token, err := svc.Login(ctx, user.LoginDTO{Username: "ada", Password: "correct horse battery"})
		require.NoError(t, err)
		assert.Equal(t, "bearer", token.TokenType)
		assert.Equal(t, int64(900), token.ExpiresIn)

		claims, err := auth.ValidateJWT(token.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, created.ID.String(), claims.UserID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := svc.Login(ctx, user.LoginDTO{Username: "ada", Password: "nope"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
		assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := svc.Login(ctx, user.LoginDTO{Username: "grace", Password: "whatever"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("Inactive", func(t *testing.T) {
		stored.IsActive = false
		require.NoError(t, repo.Update(ctx, stored))
		t.Cleanup(func() {
			stored.IsActive = true
			_ = repo.Update(ctx, stored)
		})

		_, err := svc.Login(ctx, user.LoginDTO{Username: "ada", Password: "correct horse battery"})
		var unauthorized *apperror.UnauthorizedError
		assert.True(t, errors.As(err, &unauthorized))
	})
}

func TestMeAndLinkCalendar(t *testing.T) {
	svc, repo := newService(t)

	created, err := svc.Register(context.Background(), user.RegisterDTO{
		Username: "grace",
		Email:    "grace@example.com",
		Password: "compilers-are-fun",
	})
	require.NoError(t, err)
	ctx := testutil.AuthContext(created.ID)

	me, err := svc.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.ID, me.ID)

	linked, err := svc.LinkCalendar(ctx, user.LinkCalendarDTO{AccessToken: "ya29.access", RefreshToken: "1//refresh"})
	require.NoError(t, err)
	assert.True(t, linked.CalendarConnected)

	stored, err := repo.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.NotEqual(t, "ya29.access", stored.EncryptedGoogleAccessToken)

	plain, err := config.Decrypt(stored.EncryptedGoogleAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ya29.access", plain)

	refreshed, err := svc.RefreshToken(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.Me(context.Background())
	assert.ErrorIs(t, err, apperror.ErrUnauthenticated)
}
