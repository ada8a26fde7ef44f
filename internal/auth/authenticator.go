package auth

import (
	"context"
	"fmt"
	"time"

	apperrors "raspadinha/internal/errors"
)

// Authenticator resolves bearer tokens to player identities.
type Authenticator struct {
	jwt    *JWTService
	tokens TokenStoreInterface
}

// NewAuthenticator creates an authenticator checking signatures with jwtService
// and revocations with tokens.
func NewAuthenticator(jwtService *JWTService, tokens TokenStoreInterface) *Authenticator {
	return &Authenticator{jwt: jwtService, tokens: tokens}
}

// Authenticate validates token and returns its claims. Every failure wraps
// errors.ErrUnauthorized.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := a.jwt.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}
	if _, err := claims.UserID(); err != nil {
		return nil, fmt.Errorf("%w: subject is not a user id", apperrors.ErrUnauthorized)
	}
	if claims.ID != "" {
		revoked, err := a.tokens.IsAccessTokenBlacklisted(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return nil, fmt.Errorf("%w: token revoked", apperrors.ErrUnauthorized)
		}
	}
	return claims, nil
}

// Revoke blacklists the token behind claims for the rest of its lifetime.
func (a *Authenticator) Revoke(ctx context.Context, claims *Claims) error {
	if claims.ID == "" {
		return fmt.Errorf("%w: token has no id", apperrors.ErrUnauthorized)
	}
	ttl := AccessTokenExpiry
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	return a.tokens.BlacklistAccessToken(ctx, claims.ID, ttl)
}
