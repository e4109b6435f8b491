package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/model"
	"storefront/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authService service.AuthService,
	productHandler *handler.ProductHandler,
	categoryHandler *handler.CategoryHandler,
	authHandler *handler.AuthHandler,
	adminHandler *handler.AdminHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-Session-ID"},
		AllowCredentials: true,
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api", WithSession(authService))

	// Public catalog reads
	api.GET("/products", productHandler.ListProducts)
	api.GET("/products/:id", productHandler.GetProduct)
	api.GET("/categories", categoryHandler.ListCategories)
	api.GET("/categories/:id", categoryHandler.GetCategory)

	// Session lifecycle
	api.POST("/auth/session", authHandler.CreateSession)
	api.GET("/auth/me", authHandler.Me)
	api.POST("/auth/logout", authHandler.Logout)

	// Catalog mutations (admin or owner)
	staff := api.Group("", RequireRole(model.RoleAdmin, model.RoleOwner))
	staff.POST("/products", productHandler.CreateProduct)
	staff.PUT("/products/:id", productHandler.UpdateProduct)
	staff.DELETE("/products/:id", productHandler.DeleteProduct)
	staff.POST("/categories", categoryHandler.CreateCategory)
	staff.PUT("/categories/:id", categoryHandler.UpdateCategory)
	staff.DELETE("/categories/:id", categoryHandler.DeleteCategory)
	staff.GET("/admin/users", adminHandler.ListUsers)

	// Role management (owner only)
	owner := api.Group("", RequireRole(model.RoleOwner))
	owner.PUT("/admin/users/:email", adminHandler.UpdateUserRole)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
