package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hearthside/backend/internal/auth"
	"github.com/hearthside/backend/internal/config"
	"github.com/hearthside/backend/internal/database"
	"github.com/hearthside/backend/internal/handlers"
	"github.com/hearthside/backend/internal/logger"
	"github.com/hearthside/backend/internal/middleware"
	"github.com/hearthside/backend/internal/posts"
	"github.com/hearthside/backend/internal/storage"
	"github.com/hearthside/backend/internal/token"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	// Initialize database
	if err := database.Initialize(cfg.DatabaseURL); err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		logger.Log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Services
	tokenService := token.NewService(cfg.JWTSecret, cfg.TokenTTL)
	accountService := auth.NewService(tokenService)
	postService := posts.NewService()

	// Media storage: S3 when a bucket is configured, local disk otherwise
	var uploader storage.PictureUploader
	if cfg.UseS3() {
		s3Uploader, err := storage.NewS3Uploader(cfg.AWSRegion, cfg.AWSBucket, cfg.CDNBaseURL)
		if err != nil {
			logger.Log.Fatal("Failed to initialize S3 uploader", zap.Error(err))
		}
		if err := s3Uploader.CheckBucketAccess(context.Background()); err != nil {
			logger.Log.Warn("S3 bucket access failed, picture uploads will fail", zap.Error(err))
		}
		uploader = s3Uploader
	} else {
		localUploader, err := storage.NewLocalUploader(cfg.MediaDir, "/uploads")
		if err != nil {
			logger.Log.Fatal("Failed to initialize local uploader", zap.Error(err))
		}
		uploader = localUploader
	}

	h := handlers.NewHandlers(accountService, postService, uploader)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())

	// CORS middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK
		if err := database.Health(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC(),
			"service":   "hearthside-backend",
		})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Locally stored pictures
	if !cfg.UseS3() {
		r.Static("/uploads", cfg.MediaDir)
	}

	requireAuth := middleware.RequireAuth(tokenService)

	// API routes
	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			// Public
			authGroup.POST("/register", h.Register)
			authGroup.POST("/login", h.Login)

			// Protected
			authGroup.GET("/me", requireAuth, h.Me)
			authGroup.PUT("/update", requireAuth, h.UpdateProfile)
			authGroup.DELETE("/delete", requireAuth, h.DeleteAccount)
			authGroup.POST("/suspend", requireAuth, h.Suspend)
			authGroup.POST("/reactivate", requireAuth, h.Reactivate)

			// Admin only
			authGroup.POST("/admin-reactivate", requireAuth, middleware.RequireAdmin(), h.AdminReactivate)
		}

		postGroup := api.Group("/posts")
		{
			postGroup.Use(requireAuth)
			postGroup.POST("/create", h.CreatePost)
			postGroup.GET("", h.ListPosts)
			postGroup.PUT("/update/:id", h.UpdatePost)
			postGroup.DELETE("/delete/:id", h.DeletePost)
			postGroup.POST("/like", h.LikePost)
			postGroup.POST("/unlike", h.UnlikePost)
			postGroup.POST("/share", h.SharePost)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info("Hearthside backend starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exited")
}
