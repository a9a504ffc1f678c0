package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/exam-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Authorization gate
	ErrForbidden = errors.New("forbidden - insufficient permissions")

	// Question selection errors
	ErrTooManyTopics         = errors.New("course must have between 1 and 10 topics")
	ErrTopicWithoutQuestions = errors.New("topic has no questions")
	ErrNotEnoughQuestions    = errors.New("not enough questions to assemble an exam")
	ErrQuestionNotFound      = errors.New("question not found")

	// Attempt creation errors
	ErrExamNotFound         = errors.New("exam not found")
	ErrNotEnrolled          = errors.New("user is not enrolled in the exam's course")
	ErrRetryLimitExceeded   = errors.New("maximum attempts exceeded")
	ErrOutsideExamWindow    = errors.New("exam is not open")
	ErrExamGenerationFailed = errors.New("exam questions could not be generated")
	ErrUserNotFound         = errors.New("user not found")

	// Attempt mutation errors
	ErrAttemptNotFound         = errors.New("attempt not found")
	ErrAttemptAlreadySubmitted = errors.New("attempt already submitted")
	ErrExamOver                = errors.New("exam time is over")

	// Grading errors
	ErrCorrectAnswersUnavailable = errors.New("correct answers are unavailable")

	// Analytics errors
	ErrInsufficientData = errors.New("not enough data")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

type PermissionError struct {
	UserID     uint   `json:"user_id"`
	ResourceID uint   `json:"resource_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

func (pe *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %d cannot %s %s %d - %s",
		pe.UserID, pe.Action, pe.Resource, pe.ResourceID, pe.Reason)
}

// Unwrap lets errors.Is(err, ErrForbidden) match permission errors.
func (pe *PermissionError) Unwrap() error {
	return ErrForbidden
}

func NewPermissionError(userID uint, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrExamNotFound) ||
		errors.Is(err, ErrAttemptNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsForbidden checks if error represents a refused authorization or enrollment
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrNotEnrolled)
}

// IsConflict checks if error conflicts with the current attempt state
func IsConflict(err error) bool {
	return errors.Is(err, ErrRetryLimitExceeded) ||
		errors.Is(err, ErrOutsideExamWindow) ||
		errors.Is(err, ErrExamOver) ||
		errors.Is(err, ErrAttemptAlreadySubmitted)
}

// IsUnprocessable checks if the stored data cannot satisfy the request
func IsUnprocessable(err error) bool {
	return errors.Is(err, ErrTooManyTopics) ||
		errors.Is(err, ErrTopicWithoutQuestions) ||
		errors.Is(err, ErrNotEnoughQuestions) ||
		errors.Is(err, ErrInsufficientData)
}

// IsUpstream checks if a sibling service failed to provide data
func IsUpstream(err error) bool {
	return errors.Is(err, ErrExamGenerationFailed) ||
		errors.Is(err, ErrCorrectAnswersUnavailable)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}
