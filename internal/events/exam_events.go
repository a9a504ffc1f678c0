package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	eventSource  = "exam-service"
	eventVersion = "1.0"
)

// EventType represents the kinds of attempt lifecycle events
type EventType string

const (
	EventAttemptStarted      EventType = "attempt.started"
	EventAttemptAnswersSaved EventType = "attempt.answers_saved"
	EventAttemptGraded       EventType = "attempt.graded"
	EventAttemptDeleted      EventType = "attempt.deleted"
)

// ExamEvent is the envelope for every event published by the exam service
type ExamEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Event payloads

type AttemptStartedEvent struct {
	AttemptID     uint      `json:"attempt_id"`
	ExamID        uint      `json:"exam_id"`
	UserID        uint      `json:"user_id"`
	StartedAt     time.Time `json:"started_at"`
	ExtraTime     int       `json:"extra_time"` // minutes
	QuestionCount int       `json:"question_count"`
	Deadline      time.Time `json:"deadline"`
}

type AttemptAnswersSavedEvent struct {
	AttemptID     uint      `json:"attempt_id"`
	ExamID        uint      `json:"exam_id"`
	UserID        uint      `json:"user_id"`
	QuestionCount int       `json:"question_count"`
	SavedAt       time.Time `json:"saved_at"`
}

type AttemptGradedEvent struct {
	AttemptID        uint      `json:"attempt_id"`
	ExamID           uint      `json:"exam_id"`
	UserID           uint      `json:"user_id"`
	CorrectQuestions int       `json:"correct_questions"`
	TotalQuestions   int       `json:"total_questions"`
	Grade            float64   `json:"grade"`
	GradedAt         time.Time `json:"graded_at"`
}

type AttemptDeletedEvent struct {
	AttemptID uint      `json:"attempt_id"`
	ExamID    uint      `json:"exam_id"`
	UserID    uint      `json:"user_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// Event factory functions

func newExamEvent(eventType EventType, data interface{}) *ExamEvent {
	return &ExamEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

func NewAttemptStartedEvent(data AttemptStartedEvent) *ExamEvent {
	return newExamEvent(EventAttemptStarted, data)
}

func NewAttemptAnswersSavedEvent(data AttemptAnswersSavedEvent) *ExamEvent {
	return newExamEvent(EventAttemptAnswersSaved, data)
}

func NewAttemptGradedEvent(data AttemptGradedEvent) *ExamEvent {
	return newExamEvent(EventAttemptGraded, data)
}

func NewAttemptDeletedEvent(data AttemptDeletedEvent) *ExamEvent {
	return newExamEvent(EventAttemptDeleted, data)
}

// WithMetadata attaches a metadata entry and returns the event
func (e *ExamEvent) WithMetadata(key string, value interface{}) *ExamEvent {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}
