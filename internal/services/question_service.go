package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
)

// lockedRand makes a *rand.Rand safe for concurrent requests
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

func (r *lockedRand) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng.Shuffle(n, swap)
}

// NewRand returns a concurrency-safe Rand seeded with seed
func NewRand(seed int64) Rand {
	return &lockedRand{rng: rand.New(rand.NewSource(seed))}
}

type questionService struct {
	repo       repositories.CourseRepository
	authorizer Authorizer
	rng        Rand
	logger     *ServiceLogger
}

// NewQuestionService builds the course-side service. A nil rng is replaced
// by a time-seeded one.
func NewQuestionService(repo repositories.CourseRepository, authorizer Authorizer, rng Rand, logger *slog.Logger) QuestionService {
	if rng == nil {
		rng = NewRand(time.Now().UnixNano())
	}
	return &questionService{
		repo:       repo,
		authorizer: authorizer,
		rng:        rng,
		logger:     NewServiceLogger(logger, "question_service"),
	}
}

// GenerateExamQuestions selects the questions of a new attempt from the
// course's topics and returns them as a blank snapshot
func (s *questionService) GenerateExamQuestions(ctx context.Context, token string, courseID uint) (_ []models.ExamQuestion, err error) {
	op := s.logger.WithOperation(ctx, "generate_exam_questions", courseID)
	defer op.Done(&err)

	if err := authorize(ctx, s.authorizer, token, models.RoleStudent); err != nil {
		return nil, err
	}

	topics, err := s.repo.Topic().FindByCourseWithQuestions(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course topics: %w", err)
	}

	selected, err := SelectExamQuestions(topics, ExamQuestionCount, s.rng)
	if err != nil {
		return nil, err
	}

	op.Debug("Selected exam questions", "topics", len(topics), "questions", len(selected))
	return BuildSnapshot(selected), nil
}

// FetchQuestionsByIDs returns questions with their answers in the order of
// ids. Every id must exist.
func (s *questionService) FetchQuestionsByIDs(ctx context.Context, token string, ids []uint) (_ []models.Question, err error) {
	op := s.logger.WithOperation(ctx, "fetch_questions_by_ids", uint(len(ids)))
	defer op.Done(&err)

	if err := authorize(ctx, s.authorizer, token, models.RoleStudent); err != nil {
		return nil, err
	}

	found, err := s.repo.Question().FindByIDsWithAnswers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}

	byID := make(map[uint]models.Question, len(found))
	for _, q := range found {
		byID[q.ID] = q
	}

	ordered := make([]models.Question, len(ids))
	for i, id := range ids {
		q, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrQuestionNotFound, id)
		}
		ordered[i] = q
	}
	return ordered, nil
}

func (s *questionService) IsEnrolled(ctx context.Context, token string, userID, courseID uint) (_ bool, err error) {
	op := s.logger.WithOperation(ctx, "is_enrolled", courseID)
	defer op.Done(&err)

	if err := authorize(ctx, s.authorizer, token, models.RoleStudent); err != nil {
		return false, err
	}

	enrolled, err := s.repo.Enrollment().Exists(ctx, userID, courseID)
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}
	return enrolled, nil
}
