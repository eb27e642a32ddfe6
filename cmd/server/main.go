package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/deviceshop/deviceshop-backend/config"
	"github.com/deviceshop/deviceshop-backend/internal/app/controller"
	"github.com/deviceshop/deviceshop-backend/internal/app/repository"
	"github.com/deviceshop/deviceshop-backend/internal/app/service"
	"github.com/deviceshop/deviceshop-backend/internal/db"
	"github.com/deviceshop/deviceshop-backend/internal/middleware"
	"github.com/deviceshop/deviceshop-backend/internal/router"
	"github.com/deviceshop/deviceshop-backend/internal/scheduler"
	"github.com/deviceshop/deviceshop-backend/internal/storage"
	"github.com/deviceshop/deviceshop-backend/internal/websocket"
	"github.com/deviceshop/deviceshop-backend/pkg/logger"
	"github.com/deviceshop/deviceshop-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: true,
	})

	logger.Info("Starting DeviceShop Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"db_driver":   cfg.Database.Driver,
		"log_level":   logLevel,
	})

	// Initialize database
	gdb, err := db.Open(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(gdb); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}
	if err := db.SeedAdmin(gdb, &cfg.Admin); err != nil {
		logger.Warn("Failed to seed admin account", map[string]interface{}{
			"error": err.Error(),
		})
	}

	blacklist, closeBlacklist, err := redis.NewTokenBlacklist(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to initialize token blacklist", err)
	}
	defer closeBlacklist()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	hub := websocket.NewHub()
	go hub.Run(ctx)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gdb)
	productRepo := repository.NewProductRepository(gdb)
	purchaseRepo := repository.NewPurchaseRepository(gdb)
	postRepo := repository.NewBlogPostRepository(gdb)
	commentRepo := repository.NewCommentRepository(gdb)

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		blacklist,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
		cfg.Admin.Email,
	)
	productService := service.NewProductService(gdb, productRepo, purchaseRepo)
	cartService := service.NewCartService(gdb, userRepo, productRepo, purchaseRepo, cfg.Cart.AllowEmptyCheckout)
	blogService := service.NewBlogService(gdb, postRepo, commentRepo, userRepo, hub)
	userService := service.NewUserService(userRepo)

	// Initialize controllers
	homeController := controller.NewHomeController(blogService, productService)
	authController := controller.NewAuthController(authService, cfg.JWT.CookieSecure)
	blogController := controller.NewBlogController(blogService, hub, websocket.NewUpgrader(cfg.CORS.AllowedOrigins))
	cartController := controller.NewCartController(cartService)
	productController := controller.NewProductController(productService)
	userController := controller.NewUserController(userService)
	uploadController := controller.NewUploadController(storage.NewS3Storage(&cfg.S3))

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, blacklist, userRepo)

	r := router.NewRouter(
		homeController,
		authController,
		blogController,
		cartController,
		productController,
		userController,
		uploadController,
		authMiddleware,
		cfg,
	)

	sweeper := scheduler.NewCartSweeper(cfg.Scheduler.CartSweepSpec, purchaseRepo)
	if err := sweeper.Start(); err != nil {
		logger.Fatal("Failed to start cart sweeper", err)
	}
	defer sweeper.Stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r.Setup(),
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}
	stop()

	logger.Info("Server stopped successfully")
}
