package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"storefront/docs"
	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/events"
	"storefront/internal/handler"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
)

// @title Storefront API
// @version 1.0
// @description E-commerce storefront API: filtered product catalog, categories, cookie sessions and role-based administration.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey SessionCookie
// @in header
// @name Cookie
// @description Session cookie issued by POST /auth/session.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() {
		if err := cacheClient.Close(); err != nil {
			log.Printf("redis close: %v", err)
		}
	}()
	producer := events.NewProducer(cfg.KafkaBrokers)
	if producer == nil {
		log.Println("no kafka brokers configured, event publishing disabled")
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	sessionRepo := repository.NewSessionRepository(gormDB)

	// Initialize auth components
	provider := auth.NewProvider(cfg.AuthURL)
	sessionStore := auth.NewSessionStore(cacheClient)

	// Initialize services
	catalogService := service.NewCatalogService(productRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo, productRepo)
	authService := service.NewAuthService(userRepo, sessionRepo, provider, sessionStore)
	userService := service.NewUserService(userRepo)

	// Initialize handlers
	productHandler := handler.NewProductHandler(catalogService, producer)
	categoryHandler := handler.NewCategoryHandler(categoryService, producer)
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(userService, producer)

	// Register routes
	router.Register(
		e,
		cfg,
		authService,
		productHandler,
		categoryHandler,
		authHandler,
		adminHandler,
	)

	defer func() {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close: %v", err)
		}
	}()

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
