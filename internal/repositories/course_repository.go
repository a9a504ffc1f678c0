package repositories

import (
	"context"

	"github.com/SAP-F-2025/exam-service/internal/models"
)

// TopicRepository interface for course topic lookups
type TopicRepository interface {
	// FindByCourseWithQuestions returns the course topics with questions and
	// their answers preloaded
	FindByCourseWithQuestions(ctx context.Context, courseID uint) ([]models.Topic, error)
}

// QuestionRepository interface for question lookups
type QuestionRepository interface {
	// FindByIDsWithAnswers returns the matching questions, answers ordered by
	// display order. Missing ids are skipped.
	FindByIDsWithAnswers(ctx context.Context, ids []uint) ([]models.Question, error)
}

// EnrollmentRepository interface for course membership
type EnrollmentRepository interface {
	Exists(ctx context.Context, userID, courseID uint) (bool, error)
}
