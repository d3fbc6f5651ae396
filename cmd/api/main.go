package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/printcraft/printcraft-api/internal/config"
	"github.com/printcraft/printcraft-api/internal/handler"
	"github.com/printcraft/printcraft-api/internal/middleware"
	"github.com/printcraft/printcraft-api/internal/pricing"
	"github.com/printcraft/printcraft-api/internal/repository"
	"github.com/printcraft/printcraft-api/internal/service"
	"github.com/printcraft/printcraft-api/internal/upload"
	"github.com/printcraft/printcraft-api/internal/worker"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// PostgreSQL
	poolCfg, err := pgxpool.ParseConfig(cfg.DB.DSN())
	if err != nil {
		log.Error("parse db config", "error", err)
		os.Exit(1)
	}
	poolCfg.MaxConns = cfg.DB.MaxConns

	dbPool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(ctx); err != nil {
		log.Error("ping database", "error", err)
		os.Exit(1)
	}
	log.Info("connected to PostgreSQL")

	// Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("connected to Redis")

	// RabbitMQ
	amqpConn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		log.Error("connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer amqpConn.Close()

	amqpCh, err := amqpConn.Channel()
	if err != nil {
		log.Error("open RabbitMQ channel", "error", err)
		os.Exit(1)
	}
	defer amqpCh.Close()

	if err := worker.SetupRabbitMQ(amqpCh); err != nil {
		log.Error("setup RabbitMQ", "error", err)
		os.Exit(1)
	}
	log.Info("connected to RabbitMQ")

	// Pricing engine
	taxRate, err := cfg.Pricing.TaxRateDecimal()
	if err != nil {
		log.Error("parse pricing config", "error", err)
		os.Exit(1)
	}
	shippingCost, err := cfg.Pricing.ShippingCostDecimal()
	if err != nil {
		log.Error("parse pricing config", "error", err)
		os.Exit(1)
	}
	engine := pricing.NewEngine(taxRate, shippingCost)

	// Uploads
	uploadProcessor, err := upload.NewProcessor(cfg.Upload.Dir, cfg.Upload.ThumbnailWidth)
	if err != nil {
		log.Error("init upload processor", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepository(dbPool)
	productRepo := repository.NewProductRepository(dbPool)
	cartRepo := repository.NewCartRepository(dbPool)
	projectRepo := repository.NewProjectRepository(dbPool)
	orderRepo := repository.NewOrderRepository(dbPool)
	designRepo := repository.NewDesignRepository(dbPool)
	fontRepo := repository.NewFontRepository(dbPool)
	suggestionRepo := repository.NewSuggestionRepository(dbPool)

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	productSvc := service.NewProductService(productRepo, redisClient)
	cartSvc := service.NewCartService(cartRepo, productRepo, engine)
	projectSvc := service.NewProjectService(projectRepo, productRepo)
	orderSvc := service.NewOrderService(orderRepo, cartRepo, productRepo, engine, amqpCh)
	designSvc := service.NewDesignService(designRepo)
	fontSvc := service.NewFontService(fontRepo)
	suggestionSvc := service.NewSuggestionService(suggestionRepo)
	adminSvc := service.NewAdminService(userRepo, orderRepo, productRepo, projectRepo, authSvc)

	// Handlers
	authH := handler.NewAuthHandler(authSvc, cfg.JWT)
	productH := handler.NewProductHandler(productSvc)
	cartH := handler.NewCartHandler(cartSvc)
	projectH := handler.NewProjectHandler(projectSvc)
	orderH := handler.NewOrderHandler(orderSvc)
	designH := handler.NewDesignHandler(designSvc)
	fontH := handler.NewFontHandler(fontSvc)
	suggestionH := handler.NewSuggestionHandler(suggestionSvc)
	adminH := handler.NewAdminHandler(adminSvc)
	uploadH := handler.NewUploadHandler(uploadProcessor, cfg.Upload.MaxSizeMB)
	healthH := handler.NewHealthHandler(dbPool, redisClient, amqpConn)

	// Worker
	orderWorker := worker.NewOrderWorker(amqpCh, orderRepo, productRepo, redisClient, log)

	// Router
	router := gin.Default()
	router.GET("/healthz", healthH.Healthz)
	router.GET("/readyz", healthH.Readyz)
	router.Static("/static", cfg.Upload.Dir)

	authRequired := middleware.AuthMiddleware(cfg.JWT.Secret, cfg.JWT.CookieName)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/register", authH.Register)
		auth.POST("/login", authH.Login)
		auth.POST("/logout", authH.Logout)
		auth.GET("/me", authRequired, authH.Me)

		products := v1.Group("/products")
		products.GET("", productH.List)
		products.GET("/:id", productH.GetByID)

		productAdmin := products.Group("", authRequired, middleware.AdminOnly())
		productAdmin.POST("", productH.Create)
		productAdmin.PUT("/:id", productH.Update)
		productAdmin.DELETE("/:id", productH.Delete)

		cart := v1.Group("/cart", authRequired)
		cart.GET("", cartH.GetCart)
		cart.DELETE("", cartH.Clear)
		cart.POST("/items", cartH.AddItem)
		cart.PUT("/items/:id", cartH.UpdateItem)
		cart.DELETE("/items/:id", cartH.RemoveItem)
		cart.POST("/discount", cartH.ApplyDiscount)

		projects := v1.Group("/projects", authRequired)
		projects.POST("", projectH.Create)
		projects.GET("", projectH.List)
		projects.GET("/:id", projectH.GetByID)
		projects.PUT("/:id", projectH.Update)
		projects.PUT("/:id/elements", projectH.UpdateElements)
		projects.PATCH("/:id/status", projectH.UpdateStatus)
		projects.DELETE("/:id", projectH.Delete)
		projects.POST("/:id/versions", projectH.CreateVersion)
		projects.GET("/:id/versions", projectH.ListVersions)
		projects.POST("/:id/versions/:n/restore", projectH.RestoreVersion)
		projects.POST("/:id/duplicate", projectH.Duplicate)

		orders := v1.Group("/orders", authRequired)
		orders.POST("", orderH.CreateOrder)
		orders.GET("", orderH.ListOrders)
		orders.GET("/:id", orderH.GetOrder)
		orders.POST("/:id/cancel", orderH.CancelOrder)

		designs := v1.Group("/designs", authRequired)
		designs.POST("", designH.Create)
		designs.GET("", designH.List)
		designs.GET("/:id", designH.GetByID)
		designs.PUT("/:id", designH.Update)
		designs.DELETE("/:id", designH.Delete)

		fonts := v1.Group("/fonts", authRequired)
		fonts.GET("", fontH.List)
		fonts.POST("", middleware.AdminOnly(), fontH.Create)
		fonts.DELETE("/:id", middleware.AdminOnly(), fontH.Delete)

		suggestions := v1.Group("/suggestions", authRequired)
		suggestions.POST("", suggestionH.Create)
		suggestions.GET("", suggestionH.ListMine)

		v1.POST("/uploads", authRequired, uploadH.Upload)

		admin := v1.Group("/admin", authRequired, middleware.AdminOnly())
		admin.GET("/stats", adminH.Stats)
		admin.GET("/users", adminH.ListUsers)
		admin.GET("/suggestions", suggestionH.ListAll)
		admin.PUT("/suggestions/:id/status", suggestionH.UpdateStatus)
		admin.PATCH("/users/:id/role", adminH.UpdateUserRole)
		admin.DELETE("/users/:id", adminH.DeleteUser)
		admin.PUT("/orders/:id/tracking", adminH.SetTracking)

		superAdmin := admin.Group("", middleware.SuperAdminOnly())
		superAdmin.POST("/impersonate/:id", adminH.Impersonate)
	}

	if err := orderWorker.Start(ctx); err != nil {
		log.Error("start order worker", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting HTTP server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}

	orderWorker.Stop()
	time.Sleep(500 * time.Millisecond)
	cancel()
	log.Info("server stopped")
}
