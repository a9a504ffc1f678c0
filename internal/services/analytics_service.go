package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/cache"
	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/SAP-F-2025/exam-service/internal/monitoring"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
)

type analyticsService struct {
	repo     repositories.Repository
	collab   Collaborators
	cache    cache.CacheService
	cacheTTL time.Duration
	metrics  *monitoring.Metrics
	logger   *ServiceLogger
}

func NewAnalyticsService(deps Dependencies) AnalyticsService {
	ttl := deps.StatisticsTTL
	if ttl <= 0 {
		ttl = defaultStatisticsTTL
	}
	return &analyticsService{
		repo:     deps.Repo,
		collab:   deps.Collaborators,
		cache:    deps.Cache,
		cacheTTL: ttl,
		metrics:  deps.Metrics,
		logger:   NewServiceLogger(deps.Logger, "analytics_service"),
	}
}

// GetExamStatistics returns the summary of an exam, served from cache when
// possible. A lack of incorrect answers is reported in the summary instead of
// failing it.
func (s *analyticsService) GetExamStatistics(ctx context.Context, token string, examID uint) (_ *models.ExamStatistics, err error) {
	op := s.logger.WithOperation(ctx, "get_exam_statistics", examID)
	defer op.Done(&err)

	if err := authorize(ctx, s.collab.Authorizer, token, models.RoleTeacher); err != nil {
		return nil, err
	}

	key := cache.ExamStatisticsKey(examID)
	if s.cache != nil {
		var cached models.ExamStatistics
		cacheErr := s.cache.Get(ctx, key, &cached)
		s.metrics.CacheLookup("statistics", cacheErr == nil)
		if cacheErr == nil {
			return &cached, nil
		}
		if !cache.IsMiss(cacheErr) {
			op.Warn("Statistics cache unavailable", "error", cacheErr)
		}
	}

	attempts, err := s.examAttempts(ctx, examID)
	if err != nil {
		return nil, err
	}

	stats := BuildExamStatistics(examID, attempts)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, stats, s.cacheTTL); err != nil {
			op.Warn("Failed to cache statistics", "error", err)
		}
	}
	return stats, nil
}

func (s *analyticsService) GetAverageGrade(ctx context.Context, token string, examID uint) (_ float64, err error) {
	op := s.logger.WithOperation(ctx, "get_average_grade", examID)
	defer op.Done(&err)

	if err := authorize(ctx, s.collab.Authorizer, token, models.RoleTeacher); err != nil {
		return 0, err
	}
	attempts, err := s.examAttempts(ctx, examID)
	if err != nil {
		return 0, err
	}
	return AverageGrade(attempts), nil
}

func (s *analyticsService) GetParticipantCount(ctx context.Context, token string, examID uint) (_ int, err error) {
	op := s.logger.WithOperation(ctx, "get_participant_count", examID)
	defer op.Done(&err)

	if err := authorize(ctx, s.collab.Authorizer, token, models.RoleTeacher); err != nil {
		return 0, err
	}
	attempts, err := s.examAttempts(ctx, examID)
	if err != nil {
		return 0, err
	}
	return DistinctParticipantCount(attempts), nil
}

func (s *analyticsService) GetLeastAnsweredCorrectly(ctx context.Context, token string, examID uint, topN int) (_ []uint, err error) {
	op := s.logger.WithOperation(ctx, "get_least_answered_correctly", examID)
	defer op.Done(&err)

	if err := authorize(ctx, s.collab.Authorizer, token, models.RoleTeacher); err != nil {
		return nil, err
	}
	if topN < 1 {
		return nil, ValidationErrors{{Field: "top", Message: "must be at least 1", Value: topN}}
	}
	attempts, err := s.examAttempts(ctx, examID)
	if err != nil {
		return nil, err
	}
	return LeastAnsweredCorrectly(attempts, topN)
}

func (s *analyticsService) examAttempts(ctx context.Context, examID uint) ([]*models.StudentExam, error) {
	return loadExamAttempts(ctx, s.repo, examID)
}

func loadExamAttempts(ctx context.Context, repo repositories.Repository, examID uint) ([]*models.StudentExam, error) {
	if _, err := repo.Exam().FindByID(ctx, examID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}

	attempts, err := repo.Attempt().FindByExamID(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exam attempts: %w", err)
	}
	return attempts, nil
}

// BuildExamStatistics aggregates attempts into the exam summary
func BuildExamStatistics(examID uint, attempts []*models.StudentExam) *models.ExamStatistics {
	stats := &models.ExamStatistics{
		ExamID:        examID,
		TotalAttempts: len(attempts),
		AverageGrade:  AverageGrade(attempts),
		Participants:  DistinctParticipantCount(attempts),
	}

	least, err := LeastAnsweredCorrectly(attempts, DefaultLeastAnsweredTop)
	if errors.Is(err, ErrInsufficientData) {
		stats.InsufficientData = true
	} else {
		stats.LeastAnsweredCorrectly = least
	}
	return stats
}
