package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/cache"
	"github.com/SAP-F-2025/exam-service/internal/events"
	"github.com/SAP-F-2025/exam-service/internal/monitoring"
	"github.com/SAP-F-2025/exam-service/internal/repositories"
	"github.com/SAP-F-2025/exam-service/internal/validator"
)

const defaultStatisticsTTL = time.Minute

// Dependencies is what the exam-side services are built from. Cache and
// Metrics are optional.
type Dependencies struct {
	Repo          repositories.Repository
	Collaborators Collaborators
	Publisher     events.EventPublisher
	Cache         cache.CacheService
	Metrics       *monitoring.Metrics
	Logger        *slog.Logger
	Validator     *validator.Validator
	StatisticsTTL time.Duration
}

// ServiceManager exposes the exam-side services
type ServiceManager interface {
	Attempt() AttemptService
	Grading() GradingService
	Analytics() AnalyticsService
	Export() ExportService
}

type serviceManager struct {
	attempt   AttemptService
	grading   GradingService
	analytics AnalyticsService
	export    ExportService
}

func NewServiceManager(deps Dependencies) ServiceManager {
	return &serviceManager{
		attempt:   NewAttemptService(deps),
		grading:   NewGradingService(deps),
		analytics: NewAnalyticsService(deps),
		export:    NewExportService(deps),
	}
}

func (m *serviceManager) Attempt() AttemptService     { return m.attempt }
func (m *serviceManager) Grading() GradingService     { return m.grading }
func (m *serviceManager) Analytics() AnalyticsService { return m.analytics }
func (m *serviceManager) Export() ExportService       { return m.export }

// publishEvent never fails the caller; a lost event is only logged
func publishEvent(ctx context.Context, publisher events.EventPublisher, op *Operation, event *events.ExamEvent) {
	if publisher == nil {
		return
	}
	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok && requestID != "" {
		event.WithMetadata("request_id", requestID)
	}
	if err := publisher.PublishEvent(ctx, event); err != nil {
		op.Warn("Failed to publish event", "event_type", event.Type, "event_id", event.ID, "error", err)
	}
}

// invalidateExamCache drops cached analytics of an exam after its attempts changed
func invalidateExamCache(ctx context.Context, store cache.CacheService, op *Operation, examID uint) {
	if store == nil {
		return
	}
	if err := store.DeletePattern(ctx, cache.ExamKeysPattern(examID)); err != nil {
		op.Warn("Failed to invalidate exam cache", "exam_id", examID, "error", err)
	}
}
