package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

type requestIDKey struct{}

// WithRequestID stores the request id so service logs can be correlated
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
}

func NewServiceLogger(logger *slog.Logger, component string) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("component", component),
	}
}

// ===== OPERATION LOGGING =====

// LogOperation writes one line per finished operation. Expected refusals are
// logged below error level.
func (l *ServiceLogger) LogOperation(ctx context.Context, operation string, resourceID uint, duration time.Duration, err error) {
	level := slog.LevelInfo
	status := "success"

	if err != nil {
		level = slog.LevelError
		status = "error"

		switch {
		case IsValidation(err):
			level, status = slog.LevelWarn, "validation_error"
		case IsForbidden(err):
			level, status = slog.LevelWarn, "forbidden"
		case IsNotFound(err):
			level, status = slog.LevelInfo, "not_found"
		case IsConflict(err), IsUnprocessable(err):
			level, status = slog.LevelWarn, "rejected"
		case IsUpstream(err):
			level, status = slog.LevelWarn, "upstream_error"
		}
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.Uint64("resource_id", uint64(resourceID)),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))

		var validationErrs ValidationErrors
		if errors.As(err, &validationErrs) {
			attrs = append(attrs, slog.Int("validation_errors_count", len(validationErrs)))
		}
		var permErr *PermissionError
		if errors.As(err, &permErr) {
			attrs = append(attrs,
				slog.Uint64("user_id", uint64(permErr.UserID)),
				slog.String("permission_action", permErr.Action))
		}
	}

	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok && requestID != "" {
		attrs = append(attrs, slog.String("request_id", requestID))
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf("%s operation %s", operation, status), attrs...)
}

// ===== HELPERS =====

// Operation measures one service call
type Operation struct {
	logger     *ServiceLogger
	ctx        context.Context
	name       string
	resourceID uint
	startTime  time.Time
}

func (l *ServiceLogger) WithOperation(ctx context.Context, operation string, resourceID uint) *Operation {
	return &Operation{
		logger:     l,
		ctx:        ctx,
		name:       operation,
		resourceID: resourceID,
		startTime:  time.Now(),
	}
}

// Done logs the outcome of the operation. Use it with a named error return:
//
//	defer op.Done(&err)
func (o *Operation) Done(errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	o.logger.LogOperation(o.ctx, o.name, o.resourceID, time.Since(o.startTime), err)
}

// Debug logs an intermediate step of the operation
func (o *Operation) Debug(msg string, args ...any) {
	o.logger.logger.DebugContext(o.ctx, msg, append([]any{"operation", o.name}, args...)...)
}

// Warn logs a non-fatal problem inside the operation
func (o *Operation) Warn(msg string, args ...any) {
	o.logger.logger.WarnContext(o.ctx, msg, append([]any{"operation", o.name}, args...)...)
}
