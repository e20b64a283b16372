package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   "test-secret-key-that-is-32-chars!!",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 1440,
	}
}

func newTestJWTService(t *testing.T) *hmacJWTService {
	t.Helper()

	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)
	return svc.(*hmacJWTService)
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("rejects short secret", func(t *testing.T) {
		t.Parallel()

		cfg := testAuthConfig()
		cfg.JWTSecret = "too-short"
		_, err := NewJWTService(cfg)
		assert.Error(t, err)
	})
}

func TestJWTServiceRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestJWTService(t)
	userID := uuid.New()

	t.Run("access token validates", func(t *testing.T) {
		t.Parallel()

		token, err := svc.GenerateToken(ctx, userID)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, tokenTypeAccess, claims.TokenType)
	})

	t.Run("refresh token validates", func(t *testing.T) {
		t.Parallel()

		token, err := svc.GenerateRefreshToken(ctx, userID)
		require.NoError(t, err)

		claims, err := svc.ValidateRefreshToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, tokenTypeRefresh, claims.TokenType)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		t.Parallel()

		token, err := svc.GenerateToken(ctx, userID)
		require.NoError(t, err)

		_, err = svc.ValidateRefreshToken(ctx, token)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})

	t.Run("refresh token is not an access token", func(t *testing.T) {
		t.Parallel()

		token, err := svc.GenerateRefreshToken(ctx, userID)
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})

	t.Run("garbage is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := svc.ValidateToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong key is invalid", func(t *testing.T) {
		t.Parallel()

		other := newTestJWTService(t)
		other.signingKey = []byte("another-secret-key-32-characters!")

		token, err := svc.GenerateToken(ctx, userID)
		require.NoError(t, err)

		_, err = other.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestJWTServiceExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	userID := uuid.New()
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("expired token is rejected", func(t *testing.T) {
		t.Parallel()

		svc := newTestJWTService(t)
		svc.timeFunc = func() time.Time { return issuedAt }

		token, err := svc.GenerateToken(ctx, userID)
		require.NoError(t, err)

		// Jump past the lifetime plus the clock skew allowance.
		svc.timeFunc = func() time.Time {
			return issuedAt.Add(61*time.Minute + svc.clockSkew)
		}
		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("skew keeps a just-expired token valid", func(t *testing.T) {
		t.Parallel()

		svc := newTestJWTService(t)
		svc.timeFunc = func() time.Time { return issuedAt }

		token, err := svc.GenerateToken(ctx, userID)
		require.NoError(t, err)

		svc.timeFunc = func() time.Time { return issuedAt.Add(61 * time.Minute) }
		_, err = svc.ValidateToken(ctx, token)
		assert.NoError(t, err)
	})
}
