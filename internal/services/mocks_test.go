package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/events"
	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
	"github.com/SAP-F-2025/exam-service/internal/validator"
	"github.com/stretchr/testify/mock"
)

// ===== REPOSITORY MOCKS =====

type MockExamRepository struct {
	mock.Mock
}

func (m *MockExamRepository) FindByID(ctx context.Context, id uint) (*models.Exam, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exam), args.Error(1)
}

type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) FindByID(ctx context.Context, id uint) (*models.StudentExam, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudentExam), args.Error(1)
}

func (m *MockAttemptRepository) FindByExamAndUser(ctx context.Context, examID, userID uint) ([]*models.StudentExam, error) {
	args := m.Called(ctx, examID, userID)
	return args.Get(0).([]*models.StudentExam), args.Error(1)
}

func (m *MockAttemptRepository) FindByExamID(ctx context.Context, examID uint) ([]*models.StudentExam, error) {
	args := m.Called(ctx, examID)
	return args.Get(0).([]*models.StudentExam), args.Error(1)
}

func (m *MockAttemptRepository) FindByUser(ctx context.Context, userID uint) ([]*models.StudentExam, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.StudentExam), args.Error(1)
}

func (m *MockAttemptRepository) Save(ctx context.Context, attempt *models.StudentExam) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) SaveSubmission(ctx context.Context, attempt *models.StudentExam) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepository) DeleteByID(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAttemptRepository) CreateWithinLimit(ctx context.Context, attempt *models.StudentExam, limit int) error {
	args := m.Called(ctx, attempt, limit)
	return args.Error(0)
}

type MockRepository struct {
	exam    *MockExamRepository
	attempt *MockAttemptRepository
}

func newMockRepository() *MockRepository {
	return &MockRepository{
		exam:    &MockExamRepository{},
		attempt: &MockAttemptRepository{},
	}
}

func (m *MockRepository) Exam() repositories.ExamRepository       { return m.exam }
func (m *MockRepository) Attempt() repositories.AttemptRepository { return m.attempt }

type MockTopicRepository struct {
	mock.Mock
}

func (m *MockTopicRepository) FindByCourseWithQuestions(ctx context.Context, courseID uint) ([]models.Topic, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).([]models.Topic), args.Error(1)
}

type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) FindByIDsWithAnswers(ctx context.Context, ids []uint) ([]models.Question, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.Question), args.Error(1)
}

type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) Exists(ctx context.Context, userID, courseID uint) (bool, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Bool(0), args.Error(1)
}

type MockCourseRepository struct {
	topic      *MockTopicRepository
	question   *MockQuestionRepository
	enrollment *MockEnrollmentRepository
}

func newMockCourseRepository() *MockCourseRepository {
	return &MockCourseRepository{
		topic:      &MockTopicRepository{},
		question:   &MockQuestionRepository{},
		enrollment: &MockEnrollmentRepository{},
	}
}

func (m *MockCourseRepository) Topic() repositories.TopicRepository       { return m.topic }
func (m *MockCourseRepository) Question() repositories.QuestionRepository { return m.question }
func (m *MockCourseRepository) Enrollment() repositories.EnrollmentRepository {
	return m.enrollment
}

// ===== COLLABORATOR MOCKS =====

type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) IsAuthorized(ctx context.Context, token string, role models.Role) (bool, error) {
	args := m.Called(ctx, token, role)
	return args.Bool(0), args.Error(1)
}

type MockEnrollmentLookup struct {
	mock.Mock
}

func (m *MockEnrollmentLookup) IsEnrolled(ctx context.Context, token string, userID, courseID uint) (bool, error) {
	args := m.Called(ctx, token, userID, courseID)
	return args.Bool(0), args.Error(1)
}

type MockQuestionProvider struct {
	mock.Mock
}

func (m *MockQuestionProvider) GenerateExamQuestions(ctx context.Context, token string, courseID uint) ([]models.ExamQuestion, error) {
	args := m.Called(ctx, token, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExamQuestion), args.Error(1)
}

func (m *MockQuestionProvider) FetchQuestionsByIDs(ctx context.Context, token string, ids []uint) ([]models.Question, error) {
	args := m.Called(ctx, token, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Question), args.Error(1)
}

type MockUserProfile struct {
	mock.Mock
}

func (m *MockUserProfile) GetExtraTime(ctx context.Context, token string, userID uint) (int, error) {
	args := m.Called(ctx, token, userID)
	return args.Int(0), args.Error(1)
}

// ===== CACHE MOCK =====

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

// ===== FIXTURES =====

type testEnv struct {
	repo       *MockRepository
	authorizer *MockAuthorizer
	enrollment *MockEnrollmentLookup
	questions  *MockQuestionProvider
	profiles   *MockUserProfile
	cache      *MockCache
	publisher  *events.MockEventPublisher
}

func newTestEnv() *testEnv {
	return &testEnv{
		repo:       newMockRepository(),
		authorizer: &MockAuthorizer{},
		enrollment: &MockEnrollmentLookup{},
		questions:  &MockQuestionProvider{},
		profiles:   &MockUserProfile{},
		cache:      &MockCache{},
		publisher:  events.NewMockEventPublisher(testLogger()),
	}
}

func (e *testEnv) deps() Dependencies {
	return Dependencies{
		Repo: e.repo,
		Collaborators: Collaborators{
			Authorizer: e.authorizer,
			Enrollment: e.enrollment,
			Questions:  e.questions,
			Profiles:   e.profiles,
		},
		Publisher:     e.publisher,
		Cache:         e.cache,
		Logger:        testLogger(),
		Validator:     validator.New(),
		StatisticsTTL: time.Minute,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func boolPtr(b bool) *bool {
	return &b
}

func slots(selected ...bool) []models.StudentAnswer {
	out := make([]models.StudentAnswer, len(selected))
	for i, s := range selected {
		out[i] = models.StudentAnswer{AnswerID: uint(i + 1), Selected: s}
	}
	return out
}

func question(id uint, correct ...bool) models.Question {
	answers := make([]models.Answer, len(correct))
	for i, c := range correct {
		answers[i] = models.Answer{ID: id*10 + uint(i), QuestionID: id, Correct: c, DisplayOrder: i}
	}
	return models.Question{ID: id, Answers: answers}
}
