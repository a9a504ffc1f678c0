package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
	"gorm.io/gorm"
)

type TopicPostgreSQL struct {
	db *gorm.DB
}

func NewTopicPostgreSQL(db *gorm.DB) repositories.TopicRepository {
	return &TopicPostgreSQL{db: db}
}

func (t TopicPostgreSQL) FindByCourseWithQuestions(ctx context.Context, courseID uint) ([]models.Topic, error) {
	var topics []models.Topic
	if err := t.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Questions.Answers", orderedAnswers).
		Order("id ASC").
		Find(&topics).Error; err != nil {
		return nil, fmt.Errorf("failed to get topics for course %d: %w", courseID, err)
	}
	return topics, nil
}

type QuestionPostgreSQL struct {
	db *gorm.DB
}

func NewQuestionPostgreSQL(db *gorm.DB) repositories.QuestionRepository {
	return &QuestionPostgreSQL{db: db}
}

func (q QuestionPostgreSQL) FindByIDsWithAnswers(ctx context.Context, ids []uint) ([]models.Question, error) {
	if len(ids) == 0 {
		return []models.Question{}, nil
	}

	var questions []models.Question
	if err := q.db.WithContext(ctx).
		Where("id IN ?", ids).
		Preload("Answers", orderedAnswers).
		Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	return questions, nil
}

type EnrollmentPostgreSQL struct {
	db *gorm.DB
}

func NewEnrollmentPostgreSQL(db *gorm.DB) repositories.EnrollmentRepository {
	return &EnrollmentPostgreSQL{db: db}
}

func (e EnrollmentPostgreSQL) Exists(ctx context.Context, userID, courseID uint) (bool, error) {
	var count int64
	if err := e.db.WithContext(ctx).
		Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

type courseRepository struct {
	topic      repositories.TopicRepository
	question   repositories.QuestionRepository
	enrollment repositories.EnrollmentRepository
}

func NewCourseRepository(db *gorm.DB) repositories.CourseRepository {
	return &courseRepository{
		topic:      NewTopicPostgreSQL(db),
		question:   NewQuestionPostgreSQL(db),
		enrollment: NewEnrollmentPostgreSQL(db),
	}
}

func (r *courseRepository) Topic() repositories.TopicRepository {
	return r.topic
}

func (r *courseRepository) Question() repositories.QuestionRepository {
	return r.question
}

func (r *courseRepository) Enrollment() repositories.EnrollmentRepository {
	return r.enrollment
}

// CourseModels lists the tables owned by the course service, for AutoMigrate
func CourseModels() []interface{} {
	return []interface{}{&models.Topic{}, &models.Question{}, &models.Answer{}, &models.Enrollment{}}
}

func orderedAnswers(db *gorm.DB) *gorm.DB {
	return db.Order("display_order ASC, id ASC")
}
