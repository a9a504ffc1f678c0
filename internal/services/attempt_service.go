package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/cache"
	"github.com/SAP-F-2025/exam-service/internal/events"
	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/monitoring"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
	"github.com/SAP-F-2025/exam-service/internal/validator"
)

type attemptService struct {
	repo      repositories.Repository
	collab    Collaborators
	publisher events.EventPublisher
	cache     cache.CacheService
	metrics   *monitoring.Metrics
	logger    *ServiceLogger
	validator *validator.Validator
}

func NewAttemptService(deps Dependencies) AttemptService {
	return &attemptService{
		repo:      deps.Repo,
		collab:    deps.Collaborators,
		publisher: deps.Publisher,
		cache:     deps.Cache,
		metrics:   deps.Metrics,
		logger:    NewServiceLogger(deps.Logger, "attempt_service"),
		validator: deps.Validator,
	}
}

// ===== CORE ATTEMPT OPERATIONS =====

// CreateAttempt builds a new attempt of examID for userID. The checks run in a
// fixed order and the first failing one decides the error.
func (s *attemptService) CreateAttempt(ctx context.Context, token string, examID, userID uint, now time.Time) (_ *models.StudentExam, err error) {
	op := s.logger.WithOperation(ctx, "create_attempt", examID)
	defer op.Done(&err)

	if err := authorize(ctx, s.collab.Authorizer, token, models.RoleStudent); err != nil {
		return nil, err
	}

	exam, err := s.repo.Exam().FindByID(ctx, examID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}

	enrolled, err := s.collab.Enrollment.IsEnrolled(ctx, token, userID, exam.CourseID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotEnrolled, err)
	}
	if !enrolled {
		return nil, ErrNotEnrolled
	}

	past, err := s.repo.Attempt().FindByExamAndUser(ctx, examID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get previous attempts: %w", err)
	}
	if AttemptLimitReached(past, MaxAttempts) {
		s.metrics.AttemptRejected("retry_limit")
		return nil, ErrRetryLimitExceeded
	}

	if !IsWithinWindow(now, exam.StartTime, exam.EndTime) {
		s.metrics.AttemptRejected("outside_window")
		return nil, ErrOutsideExamWindow
	}

	snapshot, err := s.collab.Questions.GenerateExamQuestions(ctx, token, exam.CourseID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExamGenerationFailed, err)
	}
	if len(snapshot) == 0 {
		return nil, ErrExamGenerationFailed
	}

	extraTime, err := s.collab.Profiles.GetExtraTime(ctx, token, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserNotFound, err)
	}

	attempt := newAttempt(examID, userID, extraTime, now, snapshot)

	if err := s.repo.Attempt().CreateWithinLimit(ctx, attempt, MaxAttempts); err != nil {
		if errors.Is(err, repositories.ErrAttemptLimitReached) {
			s.metrics.AttemptRejected("retry_limit")
			return nil, ErrRetryLimitExceeded
		}
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}

	s.metrics.AttemptCreated()
	invalidateExamCache(ctx, s.cache, op, examID)
	publishEvent(ctx, s.publisher, op, events.NewAttemptStartedEvent(events.AttemptStartedEvent{
		AttemptID:     attempt.ID,
		ExamID:        examID,
		UserID:        userID,
		StartedAt:     attempt.StartingTime,
		ExtraTime:     attempt.ExtraTime,
		QuestionCount: len(attempt.ExamQuestions),
		Deadline:      AttemptDeadline(attempt),
	}))

	return attempt, nil
}

// SaveAnswers stores in-progress selections without grading
func (s *attemptService) SaveAnswers(ctx context.Context, token string, attemptID uint, req *SaveAnswersRequest, now time.Time) (_ *models.StudentExam, err error) {
	op := s.logger.WithOperation(ctx, "save_answers", attemptID)
	defer op.Done(&err)

	if err := authorize(ctx, s.collab.Authorizer, token, models.RoleStudent); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	attempt, err := s.getAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	if attempt.IsSubmitted() {
		return nil, ErrAttemptAlreadySubmitted
	}
	if HasExpired(attempt.StartingTime, attempt.ExtraTime, BaseExamDuration, now) {
		return nil, ErrExamOver
	}

	if err := applySelections(attempt, req.Questions); err != nil {
		return nil, err
	}

	if err := s.repo.Attempt().Save(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to save answers: %w", err)
	}

	publishEvent(ctx, s.publisher, op, events.NewAttemptAnswersSavedEvent(events.AttemptAnswersSavedEvent{
		AttemptID:     attempt.ID,
		ExamID:        attempt.ExamID,
		UserID:        attempt.UserID,
		QuestionCount: len(req.Questions),
		SavedAt:       now,
	}))

	return attempt, nil
}

// ===== QUERIES =====

func (s *attemptService) GetAttempt(ctx context.Context, token string, attemptID uint) (_ *models.StudentExam, err error) {
	op := s.logger.WithOperation(ctx, "get_attempt", attemptID)
	defer op.Done(&err)

	if err := authorize(ctx, s.collab.Authorizer, token, models.RoleStudent); err != nil {
		return nil, err
	}
	return s.getAttempt(ctx, attemptID)
}

func (s *attemptService) ListUserAttempts(ctx context.Context, token string, userID uint) (_ []*models.StudentExam, err error) {
	op := s.logger.WithOperation(ctx, "list_user_attempts", userID)
	defer op.Done(&err)

	if err := authorize(ctx, s.collab.Authorizer, token, models.RoleStudent); err != nil {
		return nil, err
	}

	attempts, err := s.repo.Attempt().FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user attempts: %w", err)
	}
	return attempts, nil
}

func (s *attemptService) ListExamAttempts(ctx context.Context, token string, examID uint) (_ []*models.StudentExam, err error) {
	op := s.logger.WithOperation(ctx, "list_exam_attempts", examID)
	defer op.Done(&err)

	if err := authorize(ctx, s.collab.Authorizer, token, models.RoleTeacher); err != nil {
		return nil, err
	}

	if _, err := s.repo.Exam().FindByID(ctx, examID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}

	attempts, err := s.repo.Attempt().FindByExamID(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to list exam attempts: %w", err)
	}
	return attempts, nil
}

// DeleteAttempt removes an attempt. Deleted attempts no longer count towards
// the retry limit.
func (s *attemptService) DeleteAttempt(ctx context.Context, token string, attemptID uint) (err error) {
	op := s.logger.WithOperation(ctx, "delete_attempt", attemptID)
	defer op.Done(&err)

	if err := authorize(ctx, s.collab.Authorizer, token, models.RoleTeacher); err != nil {
		return err
	}

	attempt, err := s.getAttempt(ctx, attemptID)
	if err != nil {
		return err
	}

	if err := s.repo.Attempt().DeleteByID(ctx, attemptID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrAttemptNotFound
		}
		return fmt.Errorf("failed to delete attempt: %w", err)
	}

	invalidateExamCache(ctx, s.cache, op, attempt.ExamID)
	publishEvent(ctx, s.publisher, op, events.NewAttemptDeletedEvent(events.AttemptDeletedEvent{
		AttemptID: attempt.ID,
		ExamID:    attempt.ExamID,
		UserID:    attempt.UserID,
		DeletedAt: time.Now(),
	}))
	return nil
}

// ===== HELPERS =====

func (s *attemptService) getAttempt(ctx context.Context, attemptID uint) (*models.StudentExam, error) {
	return findAttempt(ctx, s.repo, attemptID)
}

func findAttempt(ctx context.Context, repo repositories.Repository, attemptID uint) (*models.StudentExam, error) {
	attempt, err := repo.Attempt().FindByID(ctx, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}
	return attempt, nil
}

// newAttempt assembles an ungraded attempt around a snapshot. Selections are
// reset so every attempt starts blank whatever the provider returned.
func newAttempt(examID, userID uint, extraTime int, now time.Time, snapshot []models.ExamQuestion) *models.StudentExam {
	questions := make([]models.ExamQuestion, len(snapshot))
	for i, eq := range snapshot {
		answers := make([]models.StudentAnswer, len(eq.StudentAnswers))
		for j, a := range eq.StudentAnswers {
			answers[j] = models.StudentAnswer{AnswerID: a.AnswerID, Selected: false}
		}
		questions[i] = models.ExamQuestion{
			QuestionID:     eq.QuestionID,
			Position:       i,
			StudentAnswers: answers,
		}
	}

	return &models.StudentExam{
		ExamID:           examID,
		UserID:           userID,
		StartingTime:     now,
		ExtraTime:        extraTime,
		CorrectQuestions: 0,
		Grade:            0,
		ExamQuestions:    questions,
	}
}

// applySelections copies submitted selections onto the attempt's answer
// slots. Nothing is changed unless every selection fits the snapshot.
func applySelections(attempt *models.StudentExam, selections []AnswerSelection) error {
	index := make(map[uint]int, len(attempt.ExamQuestions))
	for i, eq := range attempt.ExamQuestions {
		index[eq.QuestionID] = i
	}

	var errs ValidationErrors
	for k, sel := range selections {
		i, ok := index[sel.QuestionID]
		if !ok {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("questions[%d].question_id", k),
				Message: "is not part of this attempt",
				Value:   sel.QuestionID,
			})
			continue
		}
		if slots := len(attempt.ExamQuestions[i].StudentAnswers); len(sel.Selected) != slots {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("questions[%d].selected", k),
				Message: fmt.Sprintf("must have exactly %d entries", slots),
				Value:   len(sel.Selected),
			})
		}
	}
	if len(errs) > 0 {
		return errs
	}

	for _, sel := range selections {
		slots := attempt.ExamQuestions[index[sel.QuestionID]].StudentAnswers
		for j := range slots {
			slots[j].Selected = sel.Selected[j]
		}
	}
	return nil
}
