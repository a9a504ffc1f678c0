package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/SAP-F-2025/exam-service/internal/middleware"
	"github.com/SAP-F-2025/exam-service/internal/services"
	"github.com/SAP-F-2025/exam-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AnalyticsHandler struct {
	BaseHandler
	analyticsService services.AnalyticsService
	exportService    services.ExportService
}

func NewAnalyticsHandler(
	analyticsService services.AnalyticsService,
	exportService services.ExportService,
	logger utils.Logger,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		BaseHandler:      NewBaseHandler(logger),
		analyticsService: analyticsService,
		exportService:    exportService,
	}
}

// GetExamStatistics returns the statistics summary of an exam
// @Summary Exam statistics
// @Tags analytics
// @Produce json
// @Param exam_id path uint true "Exam ID"
// @Success 200 {object} SuccessResponse{data=models.ExamStatistics}
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /exams/{exam_id}/statistics [get]
func (h *AnalyticsHandler) GetExamStatistics(c *gin.Context) {
	examID := h.parseIDParam(c, "exam_id")
	if examID == 0 {
		return
	}

	stats, err := h.analyticsService.GetExamStatistics(serviceContext(c), middleware.GetSessionToken(c), examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Statistics retrieved", stats)
}

// @Router /exams/{exam_id}/statistics/average-grade [get]
func (h *AnalyticsHandler) GetAverageGrade(c *gin.Context) {
	examID := h.parseIDParam(c, "exam_id")
	if examID == 0 {
		return
	}

	average, err := h.analyticsService.GetAverageGrade(serviceContext(c), middleware.GetSessionToken(c), examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Average grade retrieved", gin.H{"exam_id": examID, "average_grade": average})
}

// @Router /exams/{exam_id}/statistics/participants [get]
func (h *AnalyticsHandler) GetParticipantCount(c *gin.Context) {
	examID := h.parseIDParam(c, "exam_id")
	if examID == 0 {
		return
	}

	count, err := h.analyticsService.GetParticipantCount(serviceContext(c), middleware.GetSessionToken(c), examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Participants retrieved", gin.H{"exam_id": examID, "participants": count})
}

// GetLeastAnsweredCorrectly ranks the questions answered wrong most often.
// top defaults to 2.
// @Param top query int false "Number of questions"
// @Router /exams/{exam_id}/statistics/least-answered [get]
func (h *AnalyticsHandler) GetLeastAnsweredCorrectly(c *gin.Context) {
	examID := h.parseIDParam(c, "exam_id")
	if examID == 0 {
		return
	}

	top := services.DefaultLeastAnsweredTop
	if raw := c.Query("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.RespondWithError(c, http.StatusBadRequest, CodeValidation, "Invalid top", nil, err.Error())
			return
		}
		top = n
	}

	questionIDs, err := h.analyticsService.GetLeastAnsweredCorrectly(serviceContext(c), middleware.GetSessionToken(c), examID, top)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Questions retrieved", gin.H{"exam_id": examID, "question_ids": questionIDs})
}

// ExportExamResults downloads the results workbook
// @Summary Export exam results
// @Tags analytics
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param exam_id path uint true "Exam ID"
// @Router /exams/{exam_id}/export [get]
func (h *AnalyticsHandler) ExportExamResults(c *gin.Context) {
	examID := h.parseIDParam(c, "exam_id")
	if examID == 0 {
		return
	}

	data, err := h.exportService.ExportExamResults(serviceContext(c), middleware.GetSessionToken(c), examID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="exam-%d-results.xlsx"`, examID))
	c.Data(http.StatusOK, xlsxContentType, data)
}
