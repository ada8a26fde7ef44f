package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"raspadinha/internal/auth"
	"raspadinha/internal/errors"
)

// TokenRevoker revokes access tokens before they expire.
type TokenRevoker interface {
	Revoke(ctx context.Context, claims *auth.Claims) error
}

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	revoker TokenRevoker
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(revoker TokenRevoker) *AuthHandler {
	return &AuthHandler{revoker: revoker}
}

// Logout godoc
// @Summary Logout
// @Description Revokes the bearer token used for this request until it expires.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return fail(c, errors.ErrUnauthorized)
	}

	if err := h.revoker.Revoke(c.Request().Context(), claims); err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}
