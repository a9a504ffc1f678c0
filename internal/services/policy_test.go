package services

import (
	"testing"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestIsWithinWindow(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	tests := []struct {
		name     string
		now      time.Time
		expected bool
	}{
		{"before start", start.Add(-time.Second), false},
		{"at start", start, false},
		{"inside", start.Add(time.Hour), true},
		{"at end", end, false},
		{"after end", end.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsWithinWindow(tt.now, start, end))
		})
	}
}

func TestAttemptLimitReached(t *testing.T) {
	attempts := func(n int) []*models.StudentExam {
		out := make([]*models.StudentExam, n)
		for i := range out {
			out[i] = &models.StudentExam{ID: uint(i + 1)}
		}
		return out
	}

	assert.False(t, AttemptLimitReached(attempts(0), MaxAttempts))
	assert.False(t, AttemptLimitReached(attempts(2), MaxAttempts))
	assert.True(t, AttemptLimitReached(attempts(3), MaxAttempts))
	assert.True(t, AttemptLimitReached(attempts(4), MaxAttempts))
}

func TestHasExpired(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		extraTime int
		now       time.Time
		expected  bool
	}{
		{"just started", 0, start, false},
		{"at deadline", 0, start.Add(20 * time.Minute), false},
		{"one second late", 0, start.Add(20*time.Minute + time.Second), true},
		{"extra time keeps it open", 10, start.Add(25 * time.Minute), false},
		{"extra time deadline", 10, start.Add(30 * time.Minute), false},
		{"past extra time", 10, start.Add(31 * time.Minute), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasExpired(start, tt.extraTime, BaseExamDuration, tt.now))
		})
	}
}

func TestAttemptDeadline(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	attempt := &models.StudentExam{StartingTime: start, ExtraTime: 15}

	assert.Equal(t, start.Add(35*time.Minute), AttemptDeadline(attempt))
}
