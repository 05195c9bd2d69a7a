package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ChrisUBS/DentixPro/internal/model"
	"github.com/ChrisUBS/DentixPro/internal/service"
)

// UserHandler handles profile endpoints, both self-service and admin.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ChangePasswordRequest represents a self-service password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// ResetPasswordRequest represents an admin password reset.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required"`
}

// Me godoc
// @Summary Get the current user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.PublicUser
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	callerID, err := CallerID(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Me(c.Request().Context(), callerID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe godoc
// @Summary Update the current user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.SelfUpdate true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	callerID, err := CallerID(c)
	if err != nil {
		return err
	}

	var patch model.SelfUpdate
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.userService.UpdateSelf(c.Request().Context(), callerID, &patch)
	if err != nil {
		return domainError(err)
	}

	c.Logger().Infof("user with ID %s updated their profile", callerID)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "profile updated successfully",
		"user":    user,
	})
}

// ChangePassword godoc
// @Summary Change the current user's password
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Current and new password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/me/password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	callerID, err := CallerID(c)
	if err != nil {
		return err
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.ChangePassword(c.Request().Context(), callerID, req.CurrentPassword, req.NewPassword); err != nil {
		return domainError(err)
	}

	c.Logger().Infof("user with ID %s changed their password", callerID)

	return c.JSON(http.StatusOK, map[string]string{
		"message": "password updated successfully",
	})
}

// ListUsers godoc
// @Summary List users (admin only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param role query string false "Filter by role"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	page, pageSize := pageParams(c)

	result, err := h.userService.AdminListUsers(c.Request().Context(), c.QueryParam("role"), page, pageSize)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// GetUser godoc
// @Summary Get a user by ID (admin only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} model.PublicUser
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.userService.AdminGetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update a user (admin only)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body model.AdminUserUpdate true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var patch model.AdminUserUpdate
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	user, err := h.userService.AdminUpdateUser(c.Request().Context(), c.Param("id"), &patch)
	if err != nil {
		return domainError(err)
	}

	adminID, _ := CallerID(c)
	c.Logger().Infof("user with ID %s updated by admin %s", c.Param("id"), adminID)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "user updated successfully",
		"user":    user,
	})
}

// ResetPassword godoc
// @Summary Reset a user's password (admin only)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body ResetPasswordRequest true "New password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/reset-password [put]
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.AdminResetPassword(c.Request().Context(), c.Param("id"), req.NewPassword); err != nil {
		return domainError(err)
	}

	adminID, _ := CallerID(c)
	c.Logger().Infof("password for user with ID %s reset by admin %s", c.Param("id"), adminID)

	return c.JSON(http.StatusOK, map[string]string{
		"message": "password reset successfully",
	})
}
