package handlers

import (
	"net/http"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/middleware"
	"github.com/SAP-F-2025/exam-service/internal/services"
	"github.com/SAP-F-2025/exam-service/internal/utils"
	"github.com/SAP-F-2025/exam-service/internal/validator"
	"github.com/gin-gonic/gin"
)

type AttemptHandler struct {
	BaseHandler
	attemptService services.AttemptService
	gradingService services.GradingService
	validator      *validator.Validator
	now            func() time.Time
}

func NewAttemptHandler(
	attemptService services.AttemptService,
	gradingService services.GradingService,
	validator *validator.Validator,
	logger utils.Logger,
) *AttemptHandler {
	return &AttemptHandler{
		BaseHandler:    NewBaseHandler(logger),
		attemptService: attemptService,
		gradingService: gradingService,
		validator:      validator,
		now:            time.Now,
	}
}

// CreateAttempt starts a new attempt of an exam
// @Summary Start exam attempt
// @Tags attempts
// @Accept json
// @Produce json
// @Param exam_id path uint true "Exam ID"
// @Param attempt body services.CreateAttemptRequest true "Attempt owner"
// @Success 201 {object} SuccessResponse{data=models.StudentExam}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /exams/{exam_id}/attempts [post]
func (h *AttemptHandler) CreateAttempt(c *gin.Context) {
	examID := h.parseIDParam(c, "exam_id")
	if examID == 0 {
		return
	}

	var req services.CreateAttemptRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.LogRequest(c, "Creating attempt", "exam_id", examID, "user_id", req.UserID)

	attempt, err := h.attemptService.CreateAttempt(serviceContext(c), middleware.GetSessionToken(c), examID, req.UserID, h.now())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Attempt created", attempt)
}

// GetAttempt returns one attempt with its questions
// @Summary Get attempt
// @Tags attempts
// @Produce json
// @Param id path uint true "Attempt ID"
// @Success 200 {object} SuccessResponse{data=models.StudentExam}
// @Failure 404 {object} ErrorResponse
// @Router /attempts/{id} [get]
func (h *AttemptHandler) GetAttempt(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	attempt, err := h.attemptService.GetAttempt(serviceContext(c), middleware.GetSessionToken(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Attempt retrieved", attempt)
}

// SaveAnswers stores in-progress selections
// @Summary Save answers
// @Tags attempts
// @Accept json
// @Produce json
// @Param id path uint true "Attempt ID"
// @Param answers body services.SaveAnswersRequest true "Selections"
// @Success 200 {object} SuccessResponse{data=models.StudentExam}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /attempts/{id}/answers [put]
func (h *AttemptHandler) SaveAnswers(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.SaveAnswersRequest
	if !h.bindJSON(c, &req) {
		return
	}

	attempt, err := h.attemptService.SaveAnswers(serviceContext(c), middleware.GetSessionToken(c), id, &req, h.now())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Answers saved", attempt)
}

// SubmitAttempt grades the attempt. The body is optional when the answers
// were saved before.
// @Summary Submit attempt
// @Tags attempts
// @Accept json
// @Produce json
// @Param id path uint true "Attempt ID"
// @Param answers body services.SubmitAttemptRequest false "Final selections"
// @Success 200 {object} SuccessResponse{data=models.StudentExam}
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /attempts/{id}/submit [post]
func (h *AttemptHandler) SubmitAttempt(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	req := &services.SubmitAttemptRequest{}
	if !h.bindOptionalJSON(c, req) {
		return
	}

	attempt, err := h.gradingService.SubmitAttempt(serviceContext(c), middleware.GetSessionToken(c), id, req, h.now())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Attempt graded", attempt)
}

// DeleteAttempt removes an attempt
// @Summary Delete attempt
// @Tags attempts
// @Param id path uint true "Attempt ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /attempts/{id} [delete]
func (h *AttemptHandler) DeleteAttempt(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.attemptService.DeleteAttempt(serviceContext(c), middleware.GetSessionToken(c), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListUserAttempts returns every attempt of a user
// @Router /users/{user_id}/attempts [get]
func (h *AttemptHandler) ListUserAttempts(c *gin.Context) {
	userID := h.parseIDParam(c, "user_id")
	if userID == 0 {
		return
	}

	attempts, err := h.attemptService.ListUserAttempts(serviceContext(c), middleware.GetSessionToken(c), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Attempts retrieved", attempts)
}

// ListExamAttempts returns every attempt of an exam
// @Router /exams/{exam_id}/attempts [get]
func (h *AttemptHandler) ListExamAttempts(c *gin.Context) {
	examID := h.parseIDParam(c, "exam_id")
	if examID == 0 {
		return
	}

	attempts, err := h.attemptService.ListExamAttempts(serviceContext(c), middleware.GetSessionToken(c), examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Attempts retrieved", attempts)
}
