package main

import (
	"context"
	"os"

	"github.com/SAP-F-2025/exam-service/internal/auth"
	"github.com/SAP-F-2025/exam-service/internal/cache"
	"github.com/SAP-F-2025/exam-service/internal/clients"
	"github.com/SAP-F-2025/exam-service/internal/config"
	"github.com/SAP-F-2025/exam-service/internal/handlers"
	"github.com/SAP-F-2025/exam-service/internal/monitoring"
	"github.com/SAP-F-2025/exam-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/exam-service/internal/services"
	"github.com/SAP-F-2025/exam-service/internal/utils"
	"github.com/SAP-F-2025/exam-service/pkg"
	"github.com/gin-gonic/gin"
)

const serviceName = "course-service"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewLogger("production", serviceName).Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment, serviceName)
	if err := run(cfg, logger); err != nil {
		logger.Error("Course service stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger utils.Logger) error {
	db, err := pkg.InitDatabase(cfg, postgres.CourseModels()...)
	if err != nil {
		return err
	}

	// redis only backs the authorization cache here; run without it if absent
	var store cache.CacheService
	redisClient, err := pkg.NewRedisClient(context.Background(), cfg)
	if err != nil {
		logger.Warn("Redis unavailable, authorization verdicts will not be cached", "error", err)
	} else {
		defer redisClient.Close()
		store = cache.NewRedisCache(redisClient, logger)
	}

	metrics := monitoring.NewMetrics(serviceName)
	httpClient := clients.NewHTTPClient(cfg.HTTPClientTimeout)

	authorizer, err := auth.NewAuthorizer(cfg, httpClient, store, metrics, logger)
	if err != nil {
		return err
	}

	questionService := services.NewQuestionService(
		postgres.NewCourseRepository(db),
		authorizer,
		nil,
		utils.ToSlogLogger(logger),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	handlers.NewCourseHandlerManager(questionService, metrics, logger).SetupRoutes(router)

	return pkg.RunServer(":"+cfg.Port, router, logger)
}
