package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/graphql-go/handler"

	"github.com/noah-isme/employee-graph-api/internal/graph"
	"github.com/noah-isme/employee-graph-api/internal/middleware"
	"github.com/noah-isme/employee-graph-api/internal/repository"
	"github.com/noah-isme/employee-graph-api/internal/service"
	"github.com/noah-isme/employee-graph-api/pkg/cache"
	"github.com/noah-isme/employee-graph-api/pkg/config"
	"github.com/noah-isme/employee-graph-api/pkg/database"
	"github.com/noah-isme/employee-graph-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/employee-graph-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/employee-graph-api/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	validate := validator.New()

	var accountCache *repository.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, account cache disabled", "error", err)
		} else {
			defer redisClient.Close() //nolint:errcheck
			accountCache = repository.NewCacheRepository(redisClient, logr)
		}
	}

	userRepo := repository.NewUserRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, cacheOrNil(accountCache), validate, logr, service.AuthConfig{
		Secret:      cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		CacheTTL:    cfg.Cache.TTL,
	})
	employeeSvc := service.NewEmployeeService(employeeRepo, validate, logr)

	resolver := graph.NewResolver(authSvc, employeeSvc, metricsSvc, logr)
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		logr.Sugar().Fatalw("failed to build schema", "error", err)
	}

	gqlHandler := handler.New(&handler.Config{
		Schema:     &schema,
		Pretty:     cfg.Env != config.EnvProduction,
		Playground: cfg.GraphQL.Playground,
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	gql := r.Group("/graphql", middleware.Identity(authSvc, logr))
	gql.POST("", gin.WrapH(gqlHandler))
	gql.GET("", gin.WrapH(gqlHandler))

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "playground", cfg.GraphQL.Playground)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// cacheOrNil keeps a typed-nil *CacheRepository from sneaking into the auth
// service as a non-nil interface.
func cacheOrNil(c *repository.CacheRepository) service.AccountCache {
	if c == nil {
		return nil
	}
	return c
}
