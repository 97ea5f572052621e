package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/horolog/horolog/application/usecase"
	"github.com/horolog/horolog/infrastructure/config"
	apphttp "github.com/horolog/horolog/infrastructure/http"
	"github.com/horolog/horolog/infrastructure/http/handler"
	"github.com/horolog/horolog/infrastructure/http/middleware"
	"github.com/horolog/horolog/infrastructure/persistence/postgres"
	"github.com/horolog/horolog/infrastructure/service/audit"
	"github.com/horolog/horolog/infrastructure/service/jwt"
	"github.com/horolog/horolog/infrastructure/service/logger"
	"github.com/horolog/horolog/infrastructure/service/password"
	"github.com/horolog/horolog/infrastructure/service/ratelimit"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	structuredLogger := logger.NewStructuredLogger(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "horolog",
	})
	structuredLogger.Info(ctx, "Application starting", map[string]interface{}{
		"env": cfg.Environment,
	})

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		structuredLogger.Error(ctx, "Failed to ping database", err, nil)
		log.Fatalf("Failed to ping database: %v", err)
	}
	structuredLogger.Info(ctx, "Database connection established", nil)

	limiter, err := ratelimit.NewLimiter(ratelimit.Config{
		Enabled:  cfg.RateLimitEnabled,
		RedisURL: cfg.RedisURL,
		Attempts: cfg.RateLimitIPAttempts,
		Window:   cfg.RateLimitIPWindow,
	}, structuredLogger)
	if err != nil {
		structuredLogger.Error(ctx, "Failed to initialize rate limiter", err, map[string]interface{}{
			"redis_url": cfg.RedisURL,
		})
		log.Fatalf("Failed to initialize rate limiter: %v", err)
	}

	productRepo := postgres.NewProductRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	userRepo := postgres.NewUserRepository(db)

	tokenService := jwt.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL)
	passwordService := password.NewBcryptPasswordService(10)

	recorder := audit.NewRecorder(auditRepo, structuredLogger, cfg.AuditQueueSize)
	defer recorder.Close()

	productUseCase := usecase.NewProductUseCase(productRepo, recorder, structuredLogger)
	exportUseCase := usecase.NewExportUseCase(productRepo, structuredLogger)
	auditUseCase := usecase.NewAuditUseCase(auditRepo)
	statsUseCase := usecase.NewStatsUseCase(productRepo)
	authUseCase := usecase.NewAuthUseCase(userRepo, tokenService, passwordService, structuredLogger)

	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(limiter, structuredLogger)

	handlers := apphttp.Handlers{
		Products: handler.NewProductHandler(productUseCase),
		Export:   handler.NewExportHandler(exportUseCase, structuredLogger),
		Audit:    handler.NewAuditHandler(auditUseCase),
		Stats:    handler.NewStatsHandler(statsUseCase),
		Auth:     handler.NewAuthHandler(authUseCase),
	}

	router := apphttp.NewRouter(cfg, handlers, authMiddleware, rateLimitMiddleware)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		structuredLogger.Info(ctx, "Starting server", map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ServerPort,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			structuredLogger.Error(ctx, "Server failed to start", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	structuredLogger.Info(ctx, "Shutting down server...", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		structuredLogger.Error(ctx, "Server forced to shutdown", err, nil)
	}
	structuredLogger.Info(ctx, "Server exited", nil)
}
