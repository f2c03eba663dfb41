package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/osu-parks/parks-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "test-secret-that-is-long-enough-for-testing"
	wrongSecret = "wrong-secret-that-is-long-enough-for-testing"
)

var fixedTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, secret string, now time.Time) *hmacJWTService {
	t.Helper()
	svc, err := newJWTServiceWithClock(config.AuthConfig{JWTSecret: secret, TokenLifetimeMinutes: 60},
		func() time.Time { return now })
	require.NoError(t, err)
	return svc
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 0})
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, testSecret, fixedTime)

	token, expiresAt, err := svc.GenerateToken(context.Background(), "parks-admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, fixedTime.Add(time.Hour), expiresAt)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "parks-admin", claims.ClientID)
	assert.Equal(t, "parks-admin", claims.Subject)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	issue := func(secret string) string {
		token, _, err := newTestService(t, secret, fixedTime).GenerateToken(context.Background(), "parks-admin")
		require.NoError(t, err)
		return token
	}

	wrongType := func() string {
		claims := jwtCustomClaims{
			ClientID:  "parks-admin",
			TokenType: "refresh",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name    string
		token   string
		now     time.Time
		wantErr error
	}{
		{name: "valid token", token: issue(testSecret), now: fixedTime},
		{name: "within clock skew", token: issue(testSecret), now: fixedTime.Add(time.Hour + time.Minute)},
		{name: "expired token", token: issue(testSecret), now: fixedTime.Add(2 * time.Hour), wantErr: ErrExpiredToken},
		{name: "invalid signature", token: issue(wrongSecret), now: fixedTime, wantErr: ErrInvalidToken},
		{name: "malformed token", token: "this.is.not.a.valid.jwt.token", now: fixedTime, wantErr: ErrInvalidToken},
		{name: "wrong token type", token: wrongType(), now: fixedTime, wantErr: ErrWrongTokenType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := newTestService(t, testSecret, tt.now).ValidateToken(context.Background(), tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "parks-admin", claims.ClientID)
		})
	}
}
