package models

import (
	"time"

	"gorm.io/datatypes"
)

// Exam defines the window during which students of a course may start attempts.
type Exam struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CourseID  uint      `json:"course_id" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"not null;size:200"`
	StartTime time.Time `json:"start_time" gorm:"not null"`
	EndTime   time.Time `json:"end_time" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Attempts []StudentExam `json:"-" gorm:"foreignKey:ExamID;constraint:OnDelete:CASCADE"`
}

// StudentExam is one student's attempt at an exam. Grade is 0 until the
// attempt has been graded, then it lies in [1, 10].
type StudentExam struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	ExamID           uint       `json:"exam_id" gorm:"not null;index:idx_attempt_exam_user"`
	UserID           uint       `json:"user_id" gorm:"not null;index:idx_attempt_exam_user;index"`
	StartingTime     time.Time  `json:"starting_time" gorm:"not null"`
	ExtraTime        int        `json:"extra_time"` // minutes
	CorrectQuestions int        `json:"correct_questions" gorm:"default:0"`
	Grade            float64    `json:"grade" gorm:"default:0"`
	SubmittedAt      *time.Time `json:"submitted_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	ExamQuestions []ExamQuestion `json:"exam_questions" gorm:"foreignKey:StudentExamID;constraint:OnDelete:CASCADE"`
}

// ExamQuestion freezes one selected question inside an attempt together with
// the student's selections. StudentAnswers is positionally aligned with the
// question's answers in display order.
type ExamQuestion struct {
	ID             uint                               `json:"id" gorm:"primaryKey"`
	StudentExamID  uint                               `json:"student_exam_id" gorm:"not null;index"`
	QuestionID     uint                               `json:"question_id" gorm:"not null"`
	Position       int                                `json:"position" gorm:"not null"`
	StudentAnswers datatypes.JSONSlice[StudentAnswer] `json:"student_answers" gorm:"type:jsonb"`
	Correct        *bool                              `json:"correct"`
}

type StudentAnswer struct {
	AnswerID uint `json:"answer_id"`
	Selected bool `json:"selected"`
}

// IsSubmitted reports whether the attempt has already been graded.
func (a *StudentExam) IsSubmitted() bool {
	return a.SubmittedAt != nil
}

// QuestionIDs returns the snapshot question ids in snapshot order.
func (a *StudentExam) QuestionIDs() []uint {
	ids := make([]uint, len(a.ExamQuestions))
	for i, eq := range a.ExamQuestions {
		ids[i] = eq.QuestionID
	}
	return ids
}

func (Exam) TableName() string {
	return "exams"
}

func (StudentExam) TableName() string {
	return "student_exams"
}

func (ExamQuestion) TableName() string {
	return "exam_questions"
}
