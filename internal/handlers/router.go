package handlers

import (
	"github.com/SAP-F-2025/exam-service/internal/middleware"
	"github.com/SAP-F-2025/exam-service/internal/monitoring"
	"github.com/SAP-F-2025/exam-service/internal/services"
	"github.com/SAP-F-2025/exam-service/internal/utils"
	"github.com/SAP-F-2025/exam-service/internal/validator"
	"github.com/gin-gonic/gin"
)

// HandlerManager wires the exam-service routes
type HandlerManager struct {
	attemptHandler   *AttemptHandler
	analyticsHandler *AnalyticsHandler
	metrics          *monitoring.Metrics
	limiter          *middleware.RateLimiter
	logger           utils.Logger
}

// NewHandlerManager builds the exam-service handlers. metrics and limiter may
// be nil.
func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *validator.Validator,
	metrics *monitoring.Metrics,
	limiter *middleware.RateLimiter,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		attemptHandler:   NewAttemptHandler(serviceManager.Attempt(), serviceManager.Grading(), validator, logger),
		analyticsHandler: NewAnalyticsHandler(serviceManager.Analytics(), serviceManager.Export(), logger),
		metrics:          metrics,
		limiter:          limiter,
		logger:           logger,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	useCommonMiddleware(router, hm.metrics, hm.logger)
	router.GET("/health", HealthCheck("exam-service"))

	v1 := router.Group("/api/v1")
	{
		exams := v1.Group("/exams/:exam_id")
		{
			exams.POST("/attempts", hm.rateLimited(hm.attemptHandler.CreateAttempt)...)
			exams.GET("/attempts", hm.attemptHandler.ListExamAttempts)

			exams.GET("/statistics", hm.analyticsHandler.GetExamStatistics)
			exams.GET("/statistics/average-grade", hm.analyticsHandler.GetAverageGrade)
			exams.GET("/statistics/participants", hm.analyticsHandler.GetParticipantCount)
			exams.GET("/statistics/least-answered", hm.analyticsHandler.GetLeastAnsweredCorrectly)
			exams.GET("/export", hm.analyticsHandler.ExportExamResults)
		}

		attempts := v1.Group("/attempts")
		{
			attempts.GET("/:id", hm.attemptHandler.GetAttempt)
			attempts.PUT("/:id/answers", hm.attemptHandler.SaveAnswers)
			attempts.POST("/:id/submit", hm.rateLimited(hm.attemptHandler.SubmitAttempt)...)
			attempts.DELETE("/:id", hm.attemptHandler.DeleteAttempt)
		}

		v1.GET("/users/:user_id/attempts", hm.attemptHandler.ListUserAttempts)
	}
}

// rateLimited puts the limiter in front of the handlers that write attempts
func (hm *HandlerManager) rateLimited(handler gin.HandlerFunc) []gin.HandlerFunc {
	if hm.limiter == nil {
		return []gin.HandlerFunc{handler}
	}
	return []gin.HandlerFunc{hm.limiter.Middleware(), handler}
}

// CourseHandlerManager wires the course-service routes
type CourseHandlerManager struct {
	questionHandler *QuestionHandler
	metrics         *monitoring.Metrics
	logger          utils.Logger
}

func NewCourseHandlerManager(questionService services.QuestionService, metrics *monitoring.Metrics, logger utils.Logger) *CourseHandlerManager {
	return &CourseHandlerManager{
		questionHandler: NewQuestionHandler(questionService, logger),
		metrics:         metrics,
		logger:          logger,
	}
}

func (hm *CourseHandlerManager) SetupRoutes(router *gin.Engine) {
	useCommonMiddleware(router, hm.metrics, hm.logger)
	router.GET("/health", HealthCheck("course-service"))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/courses/:course_id/exam-questions", hm.questionHandler.GenerateExamQuestions)
		v1.GET("/courses/:course_id/enrollments/:user_id", hm.questionHandler.IsEnrolled)
		v1.GET("/questions", hm.questionHandler.FetchQuestions)
	}
}

// useCommonMiddleware installs the chain shared by both services. The request
// id must be set before the loggers read it.
func useCommonMiddleware(router *gin.Engine, metrics *monitoring.Metrics, logger utils.Logger) {
	router.Use(
		middleware.RequestID(),
		utils.ContextLogger(logger),
		utils.LoggerMiddleware(logger),
		middleware.SessionToken(),
	)
	if metrics != nil {
		router.Use(metrics.MetricsMiddleware())
		router.GET("/metrics", metrics.PrometheusHandler())
	}
}
