package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptPostgreSQL struct {
	db *gorm.DB
}

func NewAttemptPostgreSQL(db *gorm.DB) repositories.AttemptRepository {
	return &AttemptPostgreSQL{
		db: db,
	}
}

func (a AttemptPostgreSQL) FindByID(ctx context.Context, id uint) (*models.StudentExam, error) {
	var attempt models.StudentExam
	if err := a.withQuestions(a.db.WithContext(ctx)).First(&attempt, id).Error; err != nil {
		return nil, err
	}

	return &attempt, nil
}

func (a AttemptPostgreSQL) FindByExamAndUser(ctx context.Context, examID, userID uint) ([]*models.StudentExam, error) {
	var attempts []*models.StudentExam
	if err := a.withQuestions(a.db.WithContext(ctx)).
		Where("exam_id = ? AND user_id = ?", examID, userID).
		Order("id ASC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}

	return attempts, nil
}

func (a AttemptPostgreSQL) FindByExamID(ctx context.Context, examID uint) ([]*models.StudentExam, error) {
	var attempts []*models.StudentExam
	if err := a.withQuestions(a.db.WithContext(ctx)).
		Where("exam_id = ?", examID).
		Order("id ASC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}

	return attempts, nil
}

func (a AttemptPostgreSQL) FindByUser(ctx context.Context, userID uint) ([]*models.StudentExam, error) {
	var attempts []*models.StudentExam
	if err := a.withQuestions(a.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("starting_time DESC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}

	return attempts, nil
}

func (a AttemptPostgreSQL) Save(ctx context.Context, attempt *models.StudentExam) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(attempt).Error; err != nil {
			return fmt.Errorf("failed to save attempt: %w", err)
		}

		for i := range attempt.ExamQuestions {
			eq := &attempt.ExamQuestions[i]
			eq.StudentExamID = attempt.ID
			if err := tx.Save(eq).Error; err != nil {
				return fmt.Errorf("failed to save exam question %d: %w", eq.QuestionID, err)
			}
		}
		return nil
	})
}

func (a AttemptPostgreSQL) SaveSubmission(ctx context.Context, attempt *models.StudentExam) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.StudentExam{}).
			Where("id = ? AND submitted_at IS NULL", attempt.ID).
			Updates(map[string]interface{}{
				"correct_questions": attempt.CorrectQuestions,
				"grade":             attempt.Grade,
				"submitted_at":      attempt.SubmittedAt,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to submit attempt: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return repositories.ErrAttemptAlreadySubmitted
		}

		for i := range attempt.ExamQuestions {
			eq := &attempt.ExamQuestions[i]
			eq.StudentExamID = attempt.ID
			if err := tx.Save(eq).Error; err != nil {
				return fmt.Errorf("failed to save exam question %d: %w", eq.QuestionID, err)
			}
		}
		return nil
	})
}

func (a AttemptPostgreSQL) DeleteByID(ctx context.Context, id uint) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_exam_id = ?", id).Delete(&models.ExamQuestion{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.StudentExam{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (a AttemptPostgreSQL) CreateWithinLimit(ctx context.Context, attempt *models.StudentExam, limit int) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the exam row so concurrent starts for the same exam serialize
		// on the count below.
		var exam models.Exam
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&exam, attempt.ExamID).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.StudentExam{}).
			Where("exam_id = ? AND user_id = ?", attempt.ExamID, attempt.UserID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(limit) {
			return repositories.ErrAttemptLimitReached
		}

		// Creates the attempt together with its ExamQuestions
		return tx.Create(attempt).Error
	})
}

func (a AttemptPostgreSQL) withQuestions(query *gorm.DB) *gorm.DB {
	return query.Preload("ExamQuestions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}
