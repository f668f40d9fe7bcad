package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/praxishq/praxis/internal/agents"
	"github.com/praxishq/praxis/internal/api"
	"github.com/praxishq/praxis/internal/db"
	"github.com/praxishq/praxis/internal/llm"
	"github.com/praxishq/praxis/internal/services"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	secretKey := getEnv("SECRET_KEY", "change_me_in_production")
	dbPath := getEnv("DB_PATH", filepath.Join("data", "praxis.db"))
	port := getEnv("PORT", "8080")

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer zapLogger.Sync()

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		zapLogger.Fatal("database init failed", zap.Error(err))
	}
	repositories := db.NewRepositories(database)

	registry := agents.LoadFromEnv(os.Getenv)
	completionClient := llm.NewClient(zapLogger)

	cooldown := 30 * time.Second
	var limiter services.GenerationLimiter
	if redisAddr := getEnv("REDIS_ADDR", ""); redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
		limiter = services.NewRedisGenerationLimiter(redisClient, cooldown)
	} else {
		limiter = services.NewMemoryGenerationLimiter(cooldown, nil)
	}

	planService := services.NewPlanService(services.PlanServiceConfig{
		Assessments:      repositories.Assessments,
		Plans:            repositories.Plans,
		Progress:         repositories.Progress,
		Registry:         registry,
		Client:           completionClient,
		Limiter:          limiter,
		TemplateFallback: getEnv("PRAXIS_TEMPLATE_FALLBACK", "") == "true",
		Log:              zapLogger,
	})
	handler := api.NewHandler(planService, secretKey, zapLogger)

	app := fiber.New(fiber.Config{
		AppName:               "Praxis",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			zapLogger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	zapLogger.Info("praxis listening", zap.String("port", port), zap.String("db", dbPath))
	if err := app.Listen(":" + port); err != nil {
		zapLogger.Fatal("server exited", zap.Error(err))
	}
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
