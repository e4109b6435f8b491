package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "storefront/internal/errors"
	"storefront/internal/events"
	"storefront/internal/service"
)

// AdminHandler handles user administration endpoints.
type AdminHandler struct {
	userService service.UserService
	producer    *events.Producer
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(userService service.UserService, producer *events.Producer) *AdminHandler {
	return &AdminHandler{userService: userService, producer: producer}
}

// UpdateRoleRequest represents a role change request.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Security SessionCookie
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateUserRole godoc
// @Summary Promote or demote a user
// @Description Owner only. The owner's own role can never be changed.
// @Tags admin
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param email path string true "Target user email"
// @Param role body UpdateRoleRequest true "New role (user or admin)"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{email} [put]
func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
	email := c.Param("email")

	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateRole(c.Request().Context(), email, req.Role)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	if err := h.producer.Publish(c.Request().Context(), user.ID.String(), map[string]any{
		"type":  "user_role_updated",
		"id":    user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
	}); err != nil {
		c.Logger().Errorf("event publish error: %v", err)
	}
	return c.JSON(http.StatusOK, user)
}
