package main

import (
	"context"
	"os"

	"github.com/SAP-F-2025/exam-service/internal/auth"
	"github.com/SAP-F-2025/exam-service/internal/cache"
	"github.com/SAP-F-2025/exam-service/internal/clients"
	"github.com/SAP-F-2025/exam-service/internal/config"
	"github.com/SAP-F-2025/exam-service/internal/handlers"
	"github.com/SAP-F-2025/exam-service/internal/middleware"
	"github.com/SAP-F-2025/exam-service/internal/monitoring"
	"github.com/SAP-F-2025/exam-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/exam-service/internal/services"
	"github.com/SAP-F-2025/exam-service/internal/utils"
	"github.com/SAP-F-2025/exam-service/internal/validator"
	"github.com/SAP-F-2025/exam-service/pkg"
	"github.com/gin-gonic/gin"
)

const serviceName = "exam-service"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewLogger("production", serviceName).Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment, serviceName)
	if err := run(cfg, logger); err != nil {
		logger.Error("Exam service stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger utils.Logger) error {
	ctx := context.Background()
	slogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg, postgres.ExamModels()...)
	if err != nil {
		return err
	}

	redisClient, err := pkg.NewRedisClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()
	store := cache.NewRedisCache(redisClient, logger)

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", "error", err)
		}
	}()

	metrics := monitoring.NewMetrics(serviceName)
	httpClient := clients.NewHTTPClient(cfg.HTTPClientTimeout)

	authorizer, err := auth.NewAuthorizer(cfg, httpClient, store, metrics, logger)
	if err != nil {
		return err
	}
	courseClient := clients.NewCourseClient(httpClient, cfg.CourseServiceURL)

	validate := validator.New()
	serviceManager := services.NewServiceManager(services.Dependencies{
		Repo: postgres.NewRepository(db),
		Collaborators: services.Collaborators{
			Authorizer: authorizer,
			Enrollment: courseClient,
			Questions:  courseClient,
			Profiles:   clients.NewUserClient(httpClient, cfg.UserServiceURL),
		},
		Publisher:     publisher,
		Cache:         store,
		Metrics:       metrics,
		Logger:        slogger,
		Validator:     validate,
		StatisticsTTL: cfg.StatsCacheTTL,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	handlers.NewHandlerManager(serviceManager, validate, metrics, limiter, logger).SetupRoutes(router)

	return pkg.RunServer(":"+cfg.Port, router, logger)
}
