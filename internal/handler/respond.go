package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"raspadinha/internal/errors"
)

// fail converts a service error into an echo HTTP error. Errors that map to
// a 5xx are logged here since the client only sees a generic message.
func fail(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= 500 {
		zerolog.Ctx(c.Request().Context()).Error().Err(err).
			Str("path", c.Path()).
			Msg("request failed")
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
