package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/BruksfildServices01/gym-scheduler/internal/audit"
	"github.com/BruksfildServices01/gym-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/gym-scheduler/internal/db"
	"github.com/BruksfildServices01/gym-scheduler/internal/events"
	"github.com/BruksfildServices01/gym-scheduler/internal/middleware"
	"github.com/BruksfildServices01/gym-scheduler/internal/routes"
	"github.com/BruksfildServices01/gym-scheduler/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := dbpkg.NewDB(cfg)

	// audit rows always; broker events only when configured
	sinks := []audit.Sink{audit.New(db)}
	var publisher *events.Publisher
	if cfg.RabbitMQ.URL != "" {
		publisher = events.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
		sinks = append(sinks, publisher)
	}
	dispatcher := audit.NewDispatcher(sinks...)

	var limiter middleware.Limiter
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("redis unreachable at %s, rate limiting stays in-process: %v", cfg.Redis.Addr, err)
		}
		cancel()
		limiter = middleware.NewRedisLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}

	var files storage.FileStorage
	if cfg.S3.Bucket != "" {
		files, err = storage.NewS3Storage(cfg.S3)
		if err != nil {
			log.Printf("photo storage disabled: %v", err)
		}
	}

	r := gin.Default()
	routes.RegisterRoutes(r, routes.Deps{
		DB:      db,
		Config:  cfg,
		Audit:   dispatcher,
		Limiter: limiter,
		Files:   files,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}

	dispatcher.Close()
	if publisher != nil {
		publisher.Close()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
