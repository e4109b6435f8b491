package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "storefront/internal/errors"
	"storefront/internal/events"
	"storefront/internal/service"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	categoryService service.CategoryService
	producer        *events.Producer
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(categoryService service.CategoryService, producer *events.Producer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, producer: producer}
}

// CreateCategoryRequest represents a category creation request.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateCategoryRequest represents a partial category update.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ListCategories godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} model.Category
// @Router /categories [get]
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.categoryService.ListCategories(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, categories)
}

// GetCategory godoc
// @Summary Get category by id
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid category ID",
			Code:  "INVALID_UUID",
		})
	}

	category, err := h.categoryService.GetCategory(c.Request().Context(), id)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, category)
}

// CreateCategory godoc
// @Summary Create category
// @Description Rejects names already used by another category, ignoring case.
// @Tags categories
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param category body CreateCategoryRequest true "Category payload"
// @Success 201 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categoryService.CreateCategory(c.Request().Context(), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	h.publishEvent(c, category.ID.String(), "category_created", category.Name)
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory godoc
// @Summary Update category
// @Tags categories
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param id path string true "Category ID"
// @Param category body UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} model.Category
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid category ID",
			Code:  "INVALID_UUID",
		})
	}

	var req UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.categoryService.UpdateCategory(c.Request().Context(), id, service.CategoryUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	h.publishEvent(c, category.ID.String(), "category_updated", category.Name)
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary Delete category
// @Description Blocked with 409 while products still reference the category.
// @Tags categories
// @Produce json
// @Security SessionCookie
// @Param id path string true "Category ID"
// @Success 204 "deleted"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid category ID",
			Code:  "INVALID_UUID",
		})
	}

	if err := h.categoryService.DeleteCategory(c.Request().Context(), id); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	h.publishEvent(c, id.String(), "category_deleted", "")
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHandler) publishEvent(c echo.Context, id, eventType, name string) {
	event := map[string]any{"type": eventType, "id": id}
	if name != "" {
		event["name"] = name
	}
	if err := h.producer.Publish(c.Request().Context(), id, event); err != nil {
		c.Logger().Errorf("event publish error: %v", err)
	}
}
