package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventFactories(t *testing.T) {
	tests := []struct {
		name     string
		event    *ExamEvent
		expected EventType
	}{
		{
			name:     "started",
			event:    NewAttemptStartedEvent(AttemptStartedEvent{AttemptID: 1, ExamID: 2, UserID: 3}),
			expected: EventAttemptStarted,
		},
		{
			name:     "answers saved",
			event:    NewAttemptAnswersSavedEvent(AttemptAnswersSavedEvent{AttemptID: 1}),
			expected: EventAttemptAnswersSaved,
		},
		{
			name:     "graded",
			event:    NewAttemptGradedEvent(AttemptGradedEvent{AttemptID: 1, Grade: 4}),
			expected: EventAttemptGraded,
		},
		{
			name:     "deleted",
			event:    NewAttemptDeletedEvent(AttemptDeletedEvent{AttemptID: 1}),
			expected: EventAttemptDeleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.Type)
			assert.NotEmpty(t, tt.event.ID)
			assert.Equal(t, "exam-service", tt.event.Source)
			assert.Equal(t, "1.0", tt.event.Version)
			assert.False(t, tt.event.Timestamp.IsZero())
		})
	}
}

func TestEventFactories_UniqueIDs(t *testing.T) {
	a := NewAttemptDeletedEvent(AttemptDeletedEvent{AttemptID: 1})
	b := NewAttemptDeletedEvent(AttemptDeletedEvent{AttemptID: 1})
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewMessage(t *testing.T) {
	event := NewAttemptGradedEvent(AttemptGradedEvent{
		AttemptID:        7,
		ExamID:           3,
		CorrectQuestions: 2,
		TotalQuestions:   3,
		Grade:            7,
		GradedAt:         time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}).WithMetadata("request_id", "abc")

	msg, err := NewMessage(event)
	require.NoError(t, err)

	assert.Equal(t, event.ID, msg.UUID)
	assert.Equal(t, "attempt.graded", msg.Metadata.Get("event_type"))
	assert.Equal(t, "exam-service", msg.Metadata.Get("source"))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
	data := decoded["data"].(map[string]interface{})
	assert.Equal(t, float64(7), data["attempt_id"])
	assert.Equal(t, float64(7), data["grade"])
	assert.Equal(t, "abc", decoded["metadata"].(map[string]interface{})["request_id"])
}

func TestMockEventPublisher(t *testing.T) {
	publisher := NewMockEventPublisher(slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := publisher.PublishEvent(context.Background(), NewAttemptStartedEvent(AttemptStartedEvent{AttemptID: 1}))
	require.NoError(t, err)

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, EventAttemptStarted, published[0].Type)

	publisher.ClearEvents()
	assert.Empty(t, publisher.GetPublishedEvents())
	assert.NoError(t, publisher.Close())
}
