package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tickerwire/tickerwire/internal/config"
	"github.com/tickerwire/tickerwire/internal/handler"
	"github.com/tickerwire/tickerwire/internal/middleware"
	"github.com/tickerwire/tickerwire/internal/pkg/database"
	mysqlrepo "github.com/tickerwire/tickerwire/internal/repository/mysql"
	"github.com/tickerwire/tickerwire/internal/service"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger

	// Database connections
	MySQL *database.MySQLDB
	Redis *redis.Client

	// Repositories
	SchemaCache *mysqlrepo.SchemaCache
	NewsRepo    *mysqlrepo.NewsRepository

	// Services
	NewsService *service.NewsService

	// Handlers
	HealthHandler *handler.HealthHandler
	NewsHandler   *handler.NewsHandler
	ToolsHandler  *handler.ToolsHandler

	// Middleware
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
}

// initDependencies initializes all dependencies
func initDependencies(cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	ctx := context.Background()

	// Initialize MySQL
	mysqlDB, err := database.NewMySQL(ctx, cfg.MySQL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MySQL: %w", err)
	}
	deps.MySQL = mysqlDB

	// Redis backs the rate limiter; skip it entirely when limiting is off
	if cfg.RateLimit.Enabled {
		redisClient, err := initRedis(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		deps.Redis = redisClient

		rateLimitConfig := middleware.DefaultRateLimitConfig()
		rateLimitConfig.Max = cfg.RateLimit.Max
		rateLimitConfig.Window = cfg.RateLimit.Window
		deps.RateLimitMiddleware = middleware.NewRateLimitMiddleware(redisClient, rateLimitConfig)
	}

	// Initialize repositories
	deps.SchemaCache = mysqlrepo.NewSchemaCache(mysqlDB)
	deps.NewsRepo = mysqlrepo.NewNewsRepository(mysqlDB, deps.SchemaCache, cfg.Limits, logger)

	// Initialize services
	deps.NewsService = service.NewNewsService(deps.NewsRepo, cfg.Limits)

	// Initialize handlers
	deps.HealthHandler = handler.NewHealthHandler(mysqlDB, deps.Redis, appVersion)
	deps.NewsHandler = handler.NewNewsHandler(deps.NewsService, logger)
	deps.ToolsHandler = handler.NewToolsHandler(deps.NewsService, logger)

	// Initialize middleware
	deps.AuthMiddleware = middleware.NewAuthMiddleware(cfg.Auth)

	return deps, nil
}

// Close closes all dependencies
func (d *Dependencies) Close() {
	if d.MySQL != nil {
		_ = d.MySQL.Close()
	}
	if d.Redis != nil {
		_ = d.Redis.Close()
	}
}

// initRedis initializes the Redis client
func initRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
