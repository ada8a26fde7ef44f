package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"raspadinha/internal/cache"
	apperrors "raspadinha/internal/errors"
)

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func signed(t *testing.T, secret string, claims *Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthenticator_Authenticate(t *testing.T) {
	const secret = "test-secret"
	userID := uuid.New()
	jwtService := NewJWTService(secret)

	valid, err := jwtService.GenerateAccessToken(userID, "player@example.com", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name      string
		token     string
		setupMock func(*MockTokenStore)
		wantErr   error
	}{
		{
			name:  "valid token",
			token: valid,
			setupMock: func(m *MockTokenStore) {
				m.On("IsAccessTokenBlacklisted", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)
			},
		},
		{
			name:  "revoked token",
			token: valid,
			setupMock: func(m *MockTokenStore) {
				m.On("IsAccessTokenBlacklisted", mock.Anything, mock.AnythingOfType("string")).Return(true, nil)
			},
			wantErr: apperrors.ErrUnauthorized,
		},
		{
			name:      "garbage",
			token:     "not-a-jwt",
			setupMock: func(*MockTokenStore) {},
			wantErr:   apperrors.ErrUnauthorized,
		},
		{
			name: "wrong secret",
			token: signed(t, "other-secret", &Claims{RegisteredClaims: jwt.RegisteredClaims{
				Subject:   userID.String(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}}),
			setupMock: func(*MockTokenStore) {},
			wantErr:   apperrors.ErrUnauthorized,
		},
		{
			name: "expired",
			token: signed(t, secret, &Claims{RegisteredClaims: jwt.RegisteredClaims{
				Subject:   userID.String(),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			}}),
			setupMock: func(*MockTokenStore) {},
			wantErr:   apperrors.ErrUnauthorized,
		},
		{
			name: "subject is not a uuid",
			token: signed(t, secret, &Claims{RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "service-role",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}}),
			setupMock: func(*MockTokenStore) {},
			wantErr:   apperrors.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockTokenStore)
			tt.setupMock(store)
			a := NewAuthenticator(jwtService, store)

			claims, err := a.Authenticate(context.Background(), tt.token)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, claims)
			} else {
				require.NoError(t, err)
				got, err := claims.UserID()
				require.NoError(t, err)
				assert.Equal(t, userID, got)
				assert.Equal(t, "player@example.com", claims.Email)
				assert.Equal(t, RoleAuthenticated, claims.Role)
			}
			store.AssertExpectations(t)
		})
	}
}

func TestAuthenticator_Revoke(t *testing.T) {
	store := new(MockTokenStore)
	a := NewAuthenticator(NewJWTService("s"), store)

	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ID:        "jti-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(10 * time.Minute)),
	}}
	store.On("BlacklistAccessToken", mock.Anything, "jti-1", mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 9*time.Minute && ttl <= 10*time.Minute
	})).Return(nil)

	require.NoError(t, a.Revoke(context.Background(), claims))
	store.AssertExpectations(t)
}

func TestAuthenticator_RevokeExpiredIsNoop(t *testing.T) {
	store := new(MockTokenStore)
	a := NewAuthenticator(NewJWTService("s"), store)

	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ID:        "jti-2",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}}

	require.NoError(t, a.Revoke(context.Background(), claims))
	store.AssertNotCalled(t, "BlacklistAccessToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthenticator_RevokeWithoutIDFails(t *testing.T) {
	a := NewAuthenticator(NewJWTService("s"), new(MockTokenStore))
	err := a.Revoke(context.Background(), &Claims{})
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestTokenStore_BlacklistReportsRedisFailure(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	store := NewTokenStore(cache.NewFromRedis(rdb))
	defer rdb.Close()
	ctx := context.Background()

	assert.Error(t, store.BlacklistAccessToken(ctx, "jti-3", time.Minute))

	revoked, err := store.IsAccessTokenBlacklisted(ctx, "jti-3")
	assert.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenStore_BlacklistWithoutCacheFails(t *testing.T) {
	store := NewTokenStore(nil)
	err := store.BlacklistAccessToken(context.Background(), "jti-4", time.Minute)
	assert.ErrorIs(t, err, cache.ErrUnavailable)
}
