package postgres

import (
	"context"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
	"gorm.io/gorm"
)

type ExamPostgreSQL struct {
	db *gorm.DB
}

func NewExamPostgreSQL(db *gorm.DB) repositories.ExamRepository {
	return &ExamPostgreSQL{db: db}
}

func (e ExamPostgreSQL) FindByID(ctx context.Context, id uint) (*models.Exam, error) {
	var exam models.Exam
	if err := e.db.WithContext(ctx).First(&exam, id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

// repository bundles the exam service stores over one connection
type repository struct {
	exam    repositories.ExamRepository
	attempt repositories.AttemptRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		exam:    NewExamPostgreSQL(db),
		attempt: NewAttemptPostgreSQL(db),
	}
}

func (r *repository) Exam() repositories.ExamRepository {
	return r.exam
}

func (r *repository) Attempt() repositories.AttemptRepository {
	return r.attempt
}

// ExamModels lists the tables owned by the exam service, for AutoMigrate
func ExamModels() []interface{} {
	return []interface{}{&models.Exam{}, &models.StudentExam{}, &models.ExamQuestion{}}
}
