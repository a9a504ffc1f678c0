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

type gradingService struct {
	repo      repositories.Repository
	collab    Collaborators
	publisher events.EventPublisher
	cache     cache.CacheService
	metrics   *monitoring.Metrics
	logger    *ServiceLogger
	validator *validator.Validator
}

func NewGradingService(deps Dependencies) GradingService {
	return &gradingService{
		repo:      deps.Repo,
		collab:    deps.Collaborators,
		publisher: deps.Publisher,
		cache:     deps.Cache,
		metrics:   deps.Metrics,
		logger:    NewServiceLogger(deps.Logger, "grading_service"),
		validator: deps.Validator,
	}
}

// SubmitAttempt applies the final selections, grades the attempt against the
// live questions and stores the result. An attempt can be submitted once.
func (s *gradingService) SubmitAttempt(ctx context.Context, token string, attemptID uint, req *SubmitAttemptRequest, now time.Time) (_ *models.StudentExam, err error) {
	op := s.logger.WithOperation(ctx, "submit_attempt", attemptID)
	defer op.Done(&err)

	if err := authorize(ctx, s.collab.Authorizer, token, models.RoleStudent); err != nil {
		return nil, err
	}

	if req == nil {
		req = &SubmitAttemptRequest{}
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	attempt, err := findAttempt(ctx, s.repo, attemptID)
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

	authoritative, err := s.fetchAuthoritative(ctx, token, attempt)
	if err != nil {
		return nil, err
	}

	if err := GradeAttempt(attempt, authoritative, now); err != nil {
		return nil, err
	}
	submittedAt := now
	attempt.SubmittedAt = &submittedAt

	// a concurrent submit may have graded the attempt since it was loaded
	if err := s.repo.Attempt().SaveSubmission(ctx, attempt); err != nil {
		if errors.Is(err, repositories.ErrAttemptAlreadySubmitted) {
			return nil, ErrAttemptAlreadySubmitted
		}
		return nil, fmt.Errorf("failed to save graded attempt: %w", err)
	}

	op.Debug("Attempt graded",
		"exam_id", attempt.ExamID,
		"user_id", attempt.UserID,
		"correct_questions", attempt.CorrectQuestions,
		"grade", attempt.Grade)

	s.metrics.AttemptGraded(attempt.Grade)
	invalidateExamCache(ctx, s.cache, op, attempt.ExamID)
	publishEvent(ctx, s.publisher, op, events.NewAttemptGradedEvent(events.AttemptGradedEvent{
		AttemptID:        attempt.ID,
		ExamID:           attempt.ExamID,
		UserID:           attempt.UserID,
		CorrectQuestions: attempt.CorrectQuestions,
		TotalQuestions:   len(attempt.ExamQuestions),
		Grade:            attempt.Grade,
		GradedAt:         now,
	}))

	return attempt, nil
}

// fetchAuthoritative loads the live questions of the snapshot in snapshot order
func (s *gradingService) fetchAuthoritative(ctx context.Context, token string, attempt *models.StudentExam) ([]models.Question, error) {
	ids := attempt.QuestionIDs()
	if len(ids) == 0 {
		return nil, nil
	}

	questions, err := s.collab.Questions.FetchQuestionsByIDs(ctx, token, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrectAnswersUnavailable, err)
	}
	if len(questions) == 0 {
		return nil, ErrCorrectAnswersUnavailable
	}
	return questions, nil
}
