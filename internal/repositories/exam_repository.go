package repositories

import (
	"context"

	"github.com/SAP-F-2025/exam-service/internal/models"
)

// ExamRepository interface for exam definition lookups
type ExamRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Exam, error)
}
