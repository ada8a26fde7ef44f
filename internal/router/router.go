package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"raspadinha/internal/auth"
	"raspadinha/internal/config"
	"raspadinha/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authenticator *auth.Authenticator,
	chanceHandler *handler.ScratchChanceHandler,
	cardHandler *handler.ScratchCardHandler,
	authHandler *handler.AuthHandler,
) {
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.RequestID())
	e.Use(contextLogger())
	e.Use(traceRequests(cfg.ServiceName))
	e.Use(accessLog())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.GET("/scratch-cards/:id", cardHandler.GetScratchCard)

	// Secured routes (require a bearer token)
	secured := api.Group("", authenticator.Middleware())

	secured.POST("/buy-scratch-chance", chanceHandler.BuyScratchChance)
	secured.GET("/scratch-chances", chanceHandler.ListChances)
	secured.POST("/scratch-chances/:id/reveal", chanceHandler.RevealChance)
	secured.POST("/auth/logout", authHandler.Logout)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
