package repositories

import (
	"context"

	"github.com/SAP-F-2025/exam-service/internal/models"
)

// AttemptRepository interface for student exam attempt persistence.
// Every read returns attempts with their ExamQuestions ordered by position.
type AttemptRepository interface {
	FindByID(ctx context.Context, id uint) (*models.StudentExam, error)
	FindByExamAndUser(ctx context.Context, examID, userID uint) ([]*models.StudentExam, error)
	FindByExamID(ctx context.Context, examID uint) ([]*models.StudentExam, error)
	FindByUser(ctx context.Context, userID uint) ([]*models.StudentExam, error)

	// Save updates an existing attempt and its question snapshot
	Save(ctx context.Context, attempt *models.StudentExam) error
	DeleteByID(ctx context.Context, id uint) error

	// SaveSubmission stores the grade, the submission time and the snapshot
	// only if the attempt has not been submitted yet. The check and the
	// update are one statement; ErrAttemptAlreadySubmitted is returned
	// otherwise.
	SaveSubmission(ctx context.Context, attempt *models.StudentExam) error

	// CreateWithinLimit inserts the attempt only if fewer than limit attempts
	// exist for its (exam, user) pair. The count and the insert happen
	// atomically; ErrAttemptLimitReached is returned otherwise.
	CreateWithinLimit(ctx context.Context, attempt *models.StudentExam, limit int) error
}
