package main

import (
	"log"

	"github.com/emirpasha/vidshare/internal/broker"
	"github.com/emirpasha/vidshare/internal/config"
	"github.com/emirpasha/vidshare/internal/database"
	"github.com/emirpasha/vidshare/internal/handler"
	"github.com/emirpasha/vidshare/internal/journal"
	"github.com/emirpasha/vidshare/internal/middleware"
	"github.com/emirpasha/vidshare/internal/models"
	"github.com/emirpasha/vidshare/internal/repository"
	"github.com/emirpasha/vidshare/internal/service"
	"github.com/emirpasha/vidshare/internal/storage"
	"github.com/emirpasha/vidshare/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	log.Println("Config loaded successfully")

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.Connect(cfg)
	defer database.Close()
	database.Migrate()

	// Initialize engagement journal
	eventJournal, err := journal.New(cfg.JournalPath)
	if err != nil {
		log.Fatalf("Failed to initialize engagement journal: %v", err)
	}
	defer eventJournal.Close()

	// Anything still journaled from a previous run may not have been persisted.
	if pending, err := eventJournal.ReadAll(); err == nil && len(pending) > 0 {
		log.Printf("Warning: %d unconfirmed engagement events left in journal", len(pending))
	}

	// Initialize Redis event broker
	eventBroker, err := broker.NewRedisEventBroker(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to initialize Redis broker: %v", err)
	}
	defer eventBroker.Close()

	// Initialize media storage
	blobStore, err := newBlobStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize media storage: %v", err)
	}

	// Redis client for the rate limiter
	redisOpt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Invalid REDIS_URL: %v", err)
	}
	redisClient := redis.NewClient(redisOpt)
	defer redisClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(database.DB)
	videoRepo := repository.NewVideoRepository(database.DB)
	engagementRepo := repository.NewEngagementRepository(database.DB)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.SessionSecret, cfg.SessionTTL, cfg.Environment)
	videoService := service.NewVideoService(videoRepo, engagementRepo)
	engagementService := service.NewEngagementService(engagementRepo, videoRepo, eventBroker, eventJournal)
	uploadService := service.NewUploadService(blobStore)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, videoService, cfg.SessionTTL)
	videoHandler := handler.NewVideoHandler(videoService, engagementService, uploadService)
	engagementHandler := handler.NewEngagementHandler(engagementService)
	feedHandler := handler.NewFeedHandler(eventBroker)

	if err := feedHandler.Start(); err != nil {
		log.Fatalf("Failed to start live feed: %v", err)
	}

	// Rate limiter for the mutating engagement endpoints
	rateLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimiterConfig{
		MaxRequests: cfg.RateLimitMaxRequests,
		Window:      cfg.RateLimitWindow,
		BlockTime:   cfg.RateLimitBlockTime,
	})

	// Setup Gin router
	router := gin.Default()
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.HSTSMiddleware(cfg.IsProduction()))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Public routes
	router.GET("/", videoHandler.Index)
	router.GET("/shorts", videoHandler.Shorts)
	router.GET("/watch/:id", videoHandler.Watch)
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.GET("/ws/feed", feedHandler.HandleFeed)

	router.GET("/health", func(c *gin.Context) {
		dbStats := database.Stats()
		c.JSON(200, gin.H{
			"status":   "healthy",
			"database": database.Health() == nil,
			"app":      "vidshare",
			"feed_clients": feedHandler.ClientCount(),
			"database_stats": gin.H{
				"open_connections": dbStats.OpenConnections,
				"in_use":           dbStats.InUse,
				"idle":             dbStats.Idle,
			},
		})
	})

	// Routes requiring a session
	session := router.Group("")
	session.Use(middleware.SessionAuth(cfg.SessionSecret))
	{
		session.GET("/logout", authHandler.Logout)
		session.GET("/profile", authHandler.Profile)

		engagement := session.Group("")
		engagement.Use(rateLimiter.Middleware())
		{
			engagement.POST("/comment", engagementHandler.Comment)
			engagement.POST("/like", engagementHandler.Like)
		}

		// Creator-only routes
		creator := session.Group("")
		creator.Use(middleware.RequireRole(models.RoleCreator))
		{
			creator.GET("/dashboard", videoHandler.Dashboard)
			creator.POST("/upload", videoHandler.Upload)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newBlobStore(cfg *config.Config) (storage.BlobStore, error) {
	if cfg.StorageBackend == "s3" {
		return storage.NewS3Store(cfg.S3)
	}
	return storage.NewLocalStore(cfg.UploadDir, cfg.UploadBasePath)
}
