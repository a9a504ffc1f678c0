package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/exam-service/internal/middleware"
	"github.com/SAP-F-2025/exam-service/internal/services"
	"github.com/SAP-F-2025/exam-service/internal/utils"
	"github.com/SAP-F-2025/exam-service/internal/validator"
	"github.com/gin-gonic/gin"
)

// QuestionHandler serves the course side of exam assembly
type QuestionHandler struct {
	BaseHandler
	questionService services.QuestionService
}

func NewQuestionHandler(questionService services.QuestionService, logger utils.Logger) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler:     NewBaseHandler(logger),
		questionService: questionService,
	}
}

// GenerateExamQuestions assembles a fresh question snapshot for one attempt
// @Summary Generate exam questions
// @Tags questions
// @Produce json
// @Param course_id path uint true "Course ID"
// @Success 200 {object} SuccessResponse{data=[]models.ExamQuestion}
// @Failure 422 {object} ErrorResponse
// @Router /courses/{course_id}/exam-questions [post]
func (h *QuestionHandler) GenerateExamQuestions(c *gin.Context) {
	courseID := h.parseIDParam(c, "course_id")
	if courseID == 0 {
		return
	}

	h.LogRequest(c, "Generating exam questions", "course_id", courseID)

	snapshot, err := h.questionService.GenerateExamQuestions(serviceContext(c), middleware.GetSessionToken(c), courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Exam questions generated", snapshot)
}

// FetchQuestions returns questions with answers in the order of ids
// @Param ids query string true "Comma separated question ids"
// @Router /questions [get]
func (h *QuestionHandler) FetchQuestions(c *gin.Context) {
	ids, err := validator.ParseIDList(c.Query("ids"))
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid ids", nil, "ids must be a comma separated list of positive integers")
		return
	}

	questions, err := h.questionService.FetchQuestionsByIDs(serviceContext(c), middleware.GetSessionToken(c), ids)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Questions retrieved", questions)
}

// IsEnrolled reports whether a user belongs to a course
// @Router /courses/{course_id}/enrollments/{user_id} [get]
func (h *QuestionHandler) IsEnrolled(c *gin.Context) {
	courseID := h.parseIDParam(c, "course_id")
	if courseID == 0 {
		return
	}
	userID := h.parseIDParam(c, "user_id")
	if userID == 0 {
		return
	}

	enrolled, err := h.questionService.IsEnrolled(serviceContext(c), middleware.GetSessionToken(c), userID, courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Enrollment checked", gin.H{
		"course_id": courseID,
		"user_id":   userID,
		"enrolled":  enrolled,
	})
}
