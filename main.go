package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"shutterbay-backend/config"
	"shutterbay-backend/controllers"
	"shutterbay-backend/database"
	"shutterbay-backend/logger"
	"shutterbay-backend/middleware"
	"shutterbay-backend/repository"
	"shutterbay-backend/routes"
	"shutterbay-backend/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.Environment)
	defer logger.Log.Sync()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.ConnectMongo(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		logger.Log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewMongoUserRepository(db)
	productRepo := repository.NewMongoProductRepository(db)
	orderRepo := repository.NewMongoOrderRepository(db)
	cartRepo := repository.NewRedisCartRepository(redisClient)
	contactRepo := repository.NewMongoContactRepository(db)
	bannerRepo := repository.NewMongoBannerRepository(db)

	// Services
	tokens := services.NewTokenService(cfg.JWTSecret)
	uploadService, err := services.NewUploadService(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize upload service", zap.Error(err))
	}

	var orderEvents services.OrderEventPublisher
	if cfg.KafkaBrokers != "" {
		publisher := services.NewKafkaOrderEventPublisher(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic)
		defer publisher.Close()
		orderEvents = publisher
	}

	productCache := services.NewProductCache(redisClient)
	authService := services.NewAuthService(userRepo, productRepo, tokens)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, productRepo, userRepo, orderEvents)
	productService := services.NewProductService(productRepo, productCache, uploadService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger())
	router.Use(middleware.SecurityHeaders())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	routes.Register(router, routes.Controllers{
		Auth:    controllers.NewAuthController(authService),
		Cart:    controllers.NewCartController(cartService),
		Order:   controllers.NewOrderController(orderService),
		Product: controllers.NewProductController(productService),
		Upload:  controllers.NewUploadController(uploadService),
		Contact: controllers.NewContactController(contactRepo),
		Banner:  controllers.NewBannerController(bannerRepo),
	}, tokens)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("Server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Log.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("Shutdown error", zap.Error(err))
	}
	logger.Log.Info("Server shutdown complete")
}
