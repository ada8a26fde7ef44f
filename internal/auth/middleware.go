package auth

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	apperrors "raspadinha/internal/errors"
)

const claimsContextKey = "user"

// Middleware rejects requests without a valid bearer token and stores the
// claims on the echo context.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  claimsContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return a.Authenticate(c.Request().Context(), token)
		},
		SuccessHandler: func(c echo.Context) {
			claims, _ := ClaimsFrom(c)
			ctx := c.Request().Context()
			logger := zerolog.Ctx(ctx).With().Str("user_id", claims.Subject).Logger()
			c.SetRequest(c.Request().WithContext(logger.WithContext(ctx)))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			message := "invalid or expired token"
			var extractErr *echojwt.TokenExtractionError
			if errors.As(err, &extractErr) {
				message = "missing bearer token"
			}
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: message,
				Code:  "UNAUTHORIZED",
			})
		},
	})
}

// ClaimsFrom returns the claims stored by Middleware.
func ClaimsFrom(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(claimsContextKey).(*Claims)
	return claims, ok && claims != nil
}

// UserIDFrom returns the authenticated user id.
func UserIDFrom(c echo.Context) (uuid.UUID, error) {
	claims, ok := ClaimsFrom(c)
	if !ok {
		return uuid.Nil, apperrors.ErrUnauthorized
	}
	id, err := claims.UserID()
	if err != nil {
		return uuid.Nil, apperrors.ErrUnauthorized
	}
	return id, nil
}
