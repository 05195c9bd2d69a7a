package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/ChrisUBS/DentixPro/internal/auth"
	"github.com/ChrisUBS/DentixPro/internal/config"
	apperrors "github.com/ChrisUBS/DentixPro/internal/errors"
	"github.com/ChrisUBS/DentixPro/internal/handler"
)

// Register wires routes and middleware. The pipeline for protected
// routes is authenticate (echo-jwt) -> authorize (admin guard) ->
// validate -> execute.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	guard *auth.Guard,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	appointmentHandler *handler.AppointmentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Authenticated routes
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: jwtErrorHandler,
	}))

	secured.GET("/users/me", userHandler.Me)
	secured.PUT("/users/me", userHandler.UpdateMe)
	secured.PUT("/users/me/password", userHandler.ChangePassword)
	secured.GET("/users/me/dates", appointmentHandler.ListMine)
	secured.POST("/dates", appointmentHandler.Create)
	secured.DELETE("/dates/:id", appointmentHandler.Cancel)

	// Admin-only routes
	admin := secured.Group("", adminOnly(guard))

	admin.GET("/users", userHandler.ListUsers)
	admin.GET("/users/:id", userHandler.GetUser)
	admin.PUT("/users/:id", userHandler.UpdateUser)
	admin.PUT("/users/:id/reset-password", userHandler.ResetPassword)

	admin.GET("/admin/dates", appointmentHandler.AdminList)
	admin.PUT("/admin/dates/:id", appointmentHandler.AdminUpdate)
	admin.PUT("/admin/dates/:id/complete", appointmentHandler.AdminComplete)
	admin.PUT("/admin/dates/:id/cancel", appointmentHandler.AdminCancel)
}

// jwtErrorHandler maps a missing or unparsable token to the standard
// 401 response instead of echo-jwt's default 400.
func jwtErrorHandler(c echo.Context, err error) error {
	httpErr := apperrors.MapErrorToHTTP(apperrors.Unauthenticated("missing or invalid token"))
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// adminOnly gates a route group behind the authorization guard. The
// caller's role comes from storage, not from the token, so a demoted
// admin loses access on their next request.
func adminOnly(guard *auth.Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			callerID, err := handler.CallerID(c)
			if err != nil {
				return err
			}
			if _, err := guard.RequireAdmin(c.Request().Context(), callerID); err != nil {
				httpErr := apperrors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
