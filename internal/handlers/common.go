package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/SAP-F-2025/exam-service/internal/middleware"
	"github.com/SAP-F-2025/exam-service/internal/services"
	"github.com/SAP-F-2025/exam-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Error codes let callers branch without parsing messages
const (
	CodeValidation  = "VALIDATION_FAILED"
	CodeForbidden   = "FORBIDDEN"
	CodeNotFound    = "NOT_FOUND"
	CodeConflict    = "CONFLICT"
	CodeUnprocessed = "UNPROCESSABLE"
	CodeUpstream    = "UPSTREAM_UNAVAILABLE"
	CodeInternal    = "INTERNAL_ERROR"
)

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging functionality for all handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{
		logger: logger,
	}
}

// requestLogger prefers the request-scoped logger set by ContextLogger
func (h *BaseHandler) requestLogger(c *gin.Context) utils.Logger {
	return utils.GetLoggerFromContext(c, h.logger)
}

// LogRequest logs the start of a handler with extra key/value pairs
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	h.requestLogger(c).Debug(message, additionalFields...)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	h.requestLogger(c).LogError(err, message, additionalFields...)
}

// LogWarn logs warning messages with context
func (h *BaseHandler) LogWarn(c *gin.Context, message string, additionalFields ...interface{}) {
	h.requestLogger(c).Warn(message, additionalFields...)
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, code, message string, err error, details ...interface{}) {
	errorResp := ErrorResponse{
		Message: message,
		Code:    code,
	}

	if len(details) > 0 {
		errorResp.Details = details[0]
	}

	if statusCode >= http.StatusInternalServerError && err != nil {
		h.LogError(c, err, message, "status_code", statusCode)
	} else {
		h.LogWarn(c, message, "status_code", statusCode, "error", err)
	}

	c.AbortWithStatusJSON(statusCode, errorResp)
}

// RespondWithSuccess sends a consistent success response
func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Message: message,
		Data:    data,
	})
}

// handleServiceError maps service errors onto HTTP statuses
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Validation failed", err, validationErrors)
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		h.RespondWithError(c, http.StatusForbidden, CodeForbidden, "Access denied", err, map[string]interface{}{
			"resource": permissionError.Resource,
			"action":   permissionError.Action,
			"reason":   permissionError.Reason,
		})
		return
	}

	switch {
	case services.IsForbidden(err):
		h.RespondWithError(c, http.StatusForbidden, CodeForbidden, rootMessage(err), err)
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, CodeNotFound, rootMessage(err), err)
	case services.IsConflict(err):
		h.RespondWithError(c, http.StatusConflict, CodeConflict, rootMessage(err), err)
	case services.IsUnprocessable(err):
		h.RespondWithError(c, http.StatusUnprocessableEntity, CodeUnprocessed, rootMessage(err), err)
	case services.IsUpstream(err):
		h.RespondWithError(c, http.StatusBadGateway, CodeUpstream, rootMessage(err), err)
	case errors.Is(err, context.DeadlineExceeded):
		h.RespondWithError(c, http.StatusGatewayTimeout, CodeUpstream, "Request timed out", err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, CodeInternal, "Internal server error", err)
	}
}

// rootMessage is the text of the sentinel a service error wraps, so wrapped
// internals never reach the client
func rootMessage(err error) string {
	for _, sentinel := range []error{
		services.ErrForbidden,
		services.ErrNotEnrolled,
		services.ErrExamNotFound,
		services.ErrAttemptNotFound,
		services.ErrQuestionNotFound,
		services.ErrUserNotFound,
		services.ErrRetryLimitExceeded,
		services.ErrOutsideExamWindow,
		services.ErrExamOver,
		services.ErrAttemptAlreadySubmitted,
		services.ErrTooManyTopics,
		services.ErrTopicWithoutQuestions,
		services.ErrNotEnoughQuestions,
		services.ErrInsufficientData,
		services.ErrExamGenerationFailed,
		services.ErrCorrectAnswersUnavailable,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "Request failed"
}

// serviceContext carries the request id into the services for event metadata
func serviceContext(c *gin.Context) context.Context {
	return services.WithRequestID(c.Request.Context(), middleware.GetRequestID(c))
}

// HealthCheck reports liveness
func HealthCheck(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": service,
		})
	}
}
