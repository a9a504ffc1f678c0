package services

import (
	"context"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/models"
)

// AttemptService creates attempts and serves attempt queries
type AttemptService interface {
	CreateAttempt(ctx context.Context, token string, examID, userID uint, now time.Time) (*models.StudentExam, error)
	SaveAnswers(ctx context.Context, token string, attemptID uint, req *SaveAnswersRequest, now time.Time) (*models.StudentExam, error)
	GetAttempt(ctx context.Context, token string, attemptID uint) (*models.StudentExam, error)
	ListUserAttempts(ctx context.Context, token string, userID uint) ([]*models.StudentExam, error)
	ListExamAttempts(ctx context.Context, token string, examID uint) ([]*models.StudentExam, error)
	DeleteAttempt(ctx context.Context, token string, attemptID uint) error
}

// GradingService finalizes attempts
type GradingService interface {
	SubmitAttempt(ctx context.Context, token string, attemptID uint, req *SubmitAttemptRequest, now time.Time) (*models.StudentExam, error)
}

// AnalyticsService reports on the attempts of an exam. Teacher role only.
type AnalyticsService interface {
	GetExamStatistics(ctx context.Context, token string, examID uint) (*models.ExamStatistics, error)
	GetAverageGrade(ctx context.Context, token string, examID uint) (float64, error)
	GetParticipantCount(ctx context.Context, token string, examID uint) (int, error)
	GetLeastAnsweredCorrectly(ctx context.Context, token string, examID uint, topN int) ([]uint, error)
}

// ExportService renders exam results as a spreadsheet
type ExportService interface {
	ExportExamResults(ctx context.Context, token string, examID uint) ([]byte, error)
}

// QuestionService is the course side of exam assembly
type QuestionService interface {
	GenerateExamQuestions(ctx context.Context, token string, courseID uint) ([]models.ExamQuestion, error)
	FetchQuestionsByIDs(ctx context.Context, token string, ids []uint) ([]models.Question, error)
	IsEnrolled(ctx context.Context, token string, userID, courseID uint) (bool, error)
}
