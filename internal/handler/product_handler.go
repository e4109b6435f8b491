package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "storefront/internal/errors"
	"storefront/internal/events"
	"storefront/internal/service"
)

// ProductHandler handles catalog endpoints.
type ProductHandler struct {
	catalogService service.CatalogService
	producer       *events.Producer
}

// NewProductHandler creates a new product handler.
func NewProductHandler(catalogService service.CatalogService, producer *events.Producer) *ProductHandler {
	return &ProductHandler{catalogService: catalogService, producer: producer}
}

// CreateProductRequest represents a product creation request.
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"required"`
	ImageURL    string  `json:"image_url"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

// UpdateProductRequest represents a partial product update; omitted
// fields are left unchanged.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"image_url"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
}

func (h *ProductHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.producer.Publish(ctx, key, event); err != nil {
		c.Logger().Errorf("event publish error: %v", err)
	}
}

// ListProducts godoc
// @Summary List products with filters
// @Description Returns every product matching all active filters, ordered per sort_by.
// @Tags products
// @Produce json
// @Param search query string false "Substring match on name or description, case-insensitive"
// @Param category query string false "Exact category name"
// @Param min_price query number false "Lower price bound, inclusive (default 0)"
// @Param max_price query number false "Upper price bound, inclusive (default 10000)"
// @Param stock_status query string false "One of in_stock, low_stock, out_of_stock"
// @Param sort_by query string false "One of newest, price_asc, price_desc"
// @Success 200 {array} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Router /products [get]
func (h *ProductHandler) ListProducts(c echo.Context) error {
	query := service.ProductQuery{
		Search:      c.QueryParam("search"),
		Category:    c.QueryParam("category"),
		StockStatus: c.QueryParam("stock_status"),
		SortBy:      c.QueryParam("sort_by"),
	}

	var err error
	query.MinPrice, err = parsePrice(c.QueryParam("min_price"), service.DefaultMinPrice)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	query.MaxPrice, err = parsePrice(c.QueryParam("max_price"), service.DefaultMaxPrice)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	products, err := h.catalogService.ListProducts(c.Request().Context(), query)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, products)
}

// GetProduct godoc
// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid product ID",
			Code:  "INVALID_UUID",
		})
	}

	product, err := h.catalogService.GetProduct(c.Request().Context(), id)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, product)
}

// CreateProduct godoc
// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param product body CreateProductRequest true "Product payload"
// @Success 201 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /products [post]
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.catalogService.CreateProduct(c.Request().Context(), service.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
	})
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	h.publish(c, product.ID.String(), map[string]any{
		"type": "product_created",
		"id":   product.ID.String(),
		"name": product.Name,
	})
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct godoc
// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Security SessionCookie
// @Param id path string true "Product ID"
// @Param product body UpdateProductRequest true "Fields to update"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid product ID",
			Code:  "INVALID_UUID",
		})
	}

	var req UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.catalogService.UpdateProduct(c.Request().Context(), id, service.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Stock:       req.Stock,
	})
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	h.publish(c, product.ID.String(), map[string]any{
		"type": "product_updated",
		"id":   product.ID.String(),
		"name": product.Name,
	})
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct godoc
// @Summary Delete product
// @Tags products
// @Produce json
// @Security SessionCookie
// @Param id path string true "Product ID"
// @Success 204 "deleted"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid product ID",
			Code:  "INVALID_UUID",
		})
	}

	if err := h.catalogService.DeleteProduct(c.Request().Context(), id); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	h.publish(c, id.String(), map[string]any{
		"type": "product_deleted",
		"id":   id.String(),
	})
	return c.NoContent(http.StatusNoContent)
}

// parsePrice parses a price bound query parameter, falling back to def
// when the parameter is absent.
func parsePrice(raw string, def float64) (float64, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, apperrors.ErrInvalidPriceBound
	}
	return v, nil
}
