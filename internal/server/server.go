package server

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/forkful/backend/config"
	"github.com/forkful/backend/internal/api"
	"github.com/forkful/backend/internal/database"
	"github.com/forkful/backend/internal/metrics"
	"github.com/forkful/backend/internal/middleware"
	"github.com/forkful/backend/internal/service"
)

// Server wraps the HTTP server and the router wiring.
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// New builds the router, wires the services and returns a ready server.
// redisClient may be nil when Redis is not configured.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, images service.ImageStore) *Server {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.Recovery())
	router.Use(metrics.Middleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context(), db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Uploaded and bundled images are served statically; the default
	// recipe image lives under the static directory.
	router.Static("/uploads", cfg.UploadDir)
	router.Static("/images", filepath.Join(cfg.StaticDir, "images"))

	api.SetupAPI(router, api.Services{
		Auth:    service.NewAuthService(db, cfg.JWTSecret),
		Recipes: service.NewRecipeService(db),
		Social:  service.NewSocialService(db),
		Images:  images,
		Redis:   redisClient,
	})

	return &Server{
		router: router,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: router,
		},
	}
}

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
