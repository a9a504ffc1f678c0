package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrAttemptLimitReached is returned by CreateWithinLimit when the
	// (exam, user) pair already holds the maximum number of attempts.
	ErrAttemptLimitReached = errors.New("attempt limit reached")

	// ErrAttemptAlreadySubmitted is returned by SaveSubmission when the
	// attempt was graded in the meantime.
	ErrAttemptAlreadySubmitted = errors.New("attempt already submitted")
)

// Repository groups the stores owned by the exam service
type Repository interface {
	Exam() ExamRepository
	Attempt() AttemptRepository
}

// CourseRepository groups the stores owned by the course service
type CourseRepository interface {
	Topic() TopicRepository
	Question() QuestionRepository
	Enrollment() EnrollmentRepository
}

// IsNotFoundError reports whether err is gorm's missing-record error
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
