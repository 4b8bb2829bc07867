package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/forkful/backend/config"
	"github.com/forkful/backend/internal/database"
	"github.com/forkful/backend/internal/server"
	"github.com/forkful/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
	}

	var images service.ImageStore
	if cfg.S3Enabled() {
		s3cfg, err := config.NewS3Config(context.Background(), cfg.S3BucketName, cfg.AWSRegion)
		if err != nil {
			log.Fatalf("Failed to initialize S3: %v", err)
		}
		images = service.NewS3ImageStore(s3cfg)
		log.Printf("Storing uploads in S3 bucket %s", cfg.S3BucketName)
	} else {
		images, err = service.NewLocalImageStore(cfg.UploadDir, "/uploads")
		if err != nil {
			log.Fatalf("Failed to prepare uploads directory: %v", err)
		}
	}

	srv := server.New(cfg, db, redisClient, images)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
