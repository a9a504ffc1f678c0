package services

import (
	"context"

	"github.com/SAP-F-2025/exam-service/internal/models"
)

// Authorizer checks a session token against a required role. An error means
// the verdict is unknown and callers treat it as a refusal.
type Authorizer interface {
	IsAuthorized(ctx context.Context, token string, role models.Role) (bool, error)
}

// EnrollmentLookup answers course membership questions
type EnrollmentLookup interface {
	IsEnrolled(ctx context.Context, token string, userID, courseID uint) (bool, error)
}

// CourseQuestionProvider serves exam snapshots and authoritative questions
type CourseQuestionProvider interface {
	// GenerateExamQuestions returns a fresh snapshot for one attempt: selected
	// question ids sorted ascending, each with one unselected slot per answer.
	GenerateExamQuestions(ctx context.Context, token string, courseID uint) ([]models.ExamQuestion, error)
	// FetchQuestionsByIDs returns the live questions in the order of ids
	FetchQuestionsByIDs(ctx context.Context, token string, ids []uint) ([]models.Question, error)
}

// UserProfile exposes per-student accommodations
type UserProfile interface {
	// GetExtraTime returns the student's extra exam time in minutes
	GetExtraTime(ctx context.Context, token string, userID uint) (int, error)
}

// Collaborators bundles the sibling-service capabilities the exam service uses
type Collaborators struct {
	Authorizer Authorizer
	Enrollment EnrollmentLookup
	Questions  CourseQuestionProvider
	Profiles   UserProfile
}

// authorize is the gate in front of every service entry point
func authorize(ctx context.Context, authorizer Authorizer, token string, role models.Role) error {
	if token == "" {
		return ErrForbidden
	}
	ok, err := authorizer.IsAuthorized(ctx, token, role)
	if err != nil || !ok {
		return ErrForbidden
	}
	return nil
}
