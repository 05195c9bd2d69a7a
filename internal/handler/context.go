package handler

import (
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/ChrisUBS/DentixPro/internal/auth"
	apperrors "github.com/ChrisUBS/DentixPro/internal/errors"
)

const (
	defaultPageSize = 10
)

// CallerID extracts the authenticated subject set by the JWT middleware.
func CallerID(c echo.Context) (string, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: "missing or invalid token",
			Code:  "UNAUTHENTICATED",
		})
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok || claims.UserID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: "missing or invalid token",
			Code:  "UNAUTHENTICATED",
		})
	}
	return claims.UserID, nil
}

// pageParams reads page/page_size query parameters with defaults.
func pageParams(c echo.Context) (page, pageSize int64) {
	page = 1
	pageSize = defaultPageSize
	if v, err := strconv.ParseInt(c.QueryParam("page"), 10, 64); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.ParseInt(c.QueryParam("page_size"), 10, 64); err == nil && v > 0 {
		pageSize = v
	}
	return page, pageSize
}

// domainError converts a service error into an echo HTTP error with the
// standardized response body.
func domainError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
