package clients

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/SAP-F-2025/exam-service/internal/models"
)

// CourseClient reaches the course service for exam snapshots, authoritative
// questions and enrollment checks
type CourseClient struct {
	baseClient
}

func NewCourseClient(httpClient *http.Client, baseURL string) *CourseClient {
	return &CourseClient{baseClient: newBaseClient(httpClient, baseURL)}
}

func (c *CourseClient) GenerateExamQuestions(ctx context.Context, token string, courseID uint) ([]models.ExamQuestion, error) {
	var snapshot []models.ExamQuestion
	path := fmt.Sprintf("/api/v1/courses/%d/exam-questions", courseID)
	if err := c.do(ctx, "generate exam questions", http.MethodPost, path, token, struct{}{}, &snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (c *CourseClient) FetchQuestionsByIDs(ctx context.Context, token string, ids []uint) ([]models.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	query := url.Values{}
	query.Set("ids", strings.Join(parts, ","))

	var questions []models.Question
	if err := c.do(ctx, "fetch questions", http.MethodGet, "/api/v1/questions?"+query.Encode(), token, nil, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

type enrollmentResponse struct {
	Enrolled bool `json:"enrolled"`
}

// IsEnrolled treats a 404 from the course service as "not enrolled"
func (c *CourseClient) IsEnrolled(ctx context.Context, token string, userID, courseID uint) (bool, error) {
	var resp enrollmentResponse
	path := fmt.Sprintf("/api/v1/courses/%d/enrollments/%d", courseID, userID)
	if err := c.do(ctx, "check enrollment", http.MethodGet, path, token, nil, &resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return resp.Enrolled, nil
}
