package services

import (
	"time"

	"github.com/SAP-F-2025/exam-service/internal/models"
)

const (
	// MaxAttempts is how many attempts a student may create per exam,
	// abandoned ones included
	MaxAttempts = 3
	// BaseExamDuration is the attempt duration in minutes before extra time
	BaseExamDuration = 20
)

// IsWithinWindow reports whether now lies strictly between start and end.
func IsWithinWindow(now, start, end time.Time) bool {
	return start.Before(now) && now.Before(end)
}

// AttemptLimitReached reports whether past already holds limit attempts.
func AttemptLimitReached(past []*models.StudentExam, limit int) bool {
	return len(past) >= limit
}

// HasExpired reports whether now is past the attempt deadline of
// startTime + extraTime + baseDuration minutes. The deadline itself is not expired.
func HasExpired(startTime time.Time, extraTimeMinutes, baseDurationMinutes int, now time.Time) bool {
	deadline := startTime.Add(time.Duration(extraTimeMinutes+baseDurationMinutes) * time.Minute)
	return now.After(deadline)
}

// AttemptDeadline returns when the attempt stops accepting mutations
func AttemptDeadline(attempt *models.StudentExam) time.Time {
	return attempt.StartingTime.Add(time.Duration(attempt.ExtraTime+BaseExamDuration) * time.Minute)
}
