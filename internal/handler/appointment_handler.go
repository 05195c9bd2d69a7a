package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ChrisUBS/DentixPro/internal/model"
	"github.com/ChrisUBS/DentixPro/internal/service"
)

// AppointmentHandler handles appointment endpoints.
type AppointmentHandler struct {
	appointmentService service.AppointmentService
}

// NewAppointmentHandler creates a new appointment handler.
func NewAppointmentHandler(appointmentService service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// CreateAppointmentRequest represents an appointment booking request.
// Title has no required tag: a missing title falls through to the
// title-length check for a uniform message.
type CreateAppointmentRequest struct {
	Title       string `json:"title"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// Create godoc
// @Summary Book a new appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAppointmentRequest true "Appointment data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /dates [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	callerID, err := CallerID(c)
	if err != nil {
		return err
	}

	var req CreateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appt, err := h.appointmentService.Create(c.Request().Context(), callerID, req.Title, req.Date, req.Time, req.Description)
	if err != nil {
		return domainError(err)
	}

	c.Logger().Infof("new appointment created with ID %s for user %s", appt.ID.Hex(), callerID)

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":     "appointment created successfully",
		"appointment": appt,
	})
}

// Cancel godoc
// @Summary Cancel an appointment (owner or admin)
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /dates/{id} [delete]
func (h *AppointmentHandler) Cancel(c echo.Context) error {
	callerID, err := CallerID(c)
	if err != nil {
		return err
	}

	if err := h.appointmentService.Cancel(c.Request().Context(), callerID, c.Param("id")); err != nil {
		return domainError(err)
	}

	c.Logger().Infof("appointment with ID %s cancelled by user %s", c.Param("id"), callerID)

	return c.JSON(http.StatusOK, map[string]string{
		"message": "appointment cancelled successfully",
	})
}

// ListMine godoc
// @Summary List the current user's appointments
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param status query string false "Filter by status"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me/dates [get]
func (h *AppointmentHandler) ListMine(c echo.Context) error {
	callerID, err := CallerID(c)
	if err != nil {
		return err
	}

	page, pageSize := pageParams(c)
	result, err := h.appointmentService.ListOwn(c.Request().Context(), callerID, c.QueryParam("status"), page, pageSize)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// AdminList godoc
// @Summary List all appointments (admin only)
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param status query string false "Filter by status"
// @Param date_from query string false "Earliest date (YYYY-MM-DD)"
// @Param date_to query string false "Latest date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/dates [get]
func (h *AppointmentHandler) AdminList(c echo.Context) error {
	page, pageSize := pageParams(c)

	result, err := h.appointmentService.AdminList(
		c.Request().Context(),
		c.QueryParam("status"),
		c.QueryParam("date_from"),
		c.QueryParam("date_to"),
		page, pageSize,
	)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, result)
}

// AdminUpdate godoc
// @Summary Update an appointment (admin only)
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body model.AppointmentUpdate true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/dates/{id} [put]
func (h *AppointmentHandler) AdminUpdate(c echo.Context) error {
	var patch model.AppointmentUpdate
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	appt, err := h.appointmentService.AdminUpdate(c.Request().Context(), c.Param("id"), &patch)
	if err != nil {
		return domainError(err)
	}

	adminID, _ := CallerID(c)
	c.Logger().Infof("appointment with ID %s updated by admin %s", c.Param("id"), adminID)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "appointment updated successfully",
		"appointment": appt,
	})
}

// AdminComplete godoc
// @Summary Mark an appointment as completed (admin only)
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/dates/{id}/complete [put]
func (h *AppointmentHandler) AdminComplete(c echo.Context) error {
	if err := h.appointmentService.AdminComplete(c.Request().Context(), c.Param("id")); err != nil {
		return domainError(err)
	}

	adminID, _ := CallerID(c)
	c.Logger().Infof("appointment with ID %s marked as completed by admin %s", c.Param("id"), adminID)

	return c.JSON(http.StatusOK, map[string]string{
		"message": "appointment marked as completed successfully",
	})
}

// AdminCancel godoc
// @Summary Cancel an appointment (admin only)
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/dates/{id}/cancel [put]
func (h *AppointmentHandler) AdminCancel(c echo.Context) error {
	if err := h.appointmentService.AdminCancel(c.Request().Context(), c.Param("id")); err != nil {
		return domainError(err)
	}

	adminID, _ := CallerID(c)
	c.Logger().Infof("appointment with ID %s cancelled by admin %s", c.Param("id"), adminID)

	return c.JSON(http.StatusOK, map[string]string{
		"message": "appointment cancelled successfully",
	})
}
