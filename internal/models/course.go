package models

import (
	"time"
)

// Topic groups the questions of a course. Exam generation draws at least one
// question from every topic of the course.
type Topic struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CourseID  uint      `json:"course_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"not null;size:200"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Questions []Question `json:"questions" gorm:"foreignKey:TopicID"`
}

type Question struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TopicID   uint      `json:"topic_id" gorm:"not null;index"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Ordered by DisplayOrder when loaded
	Answers []Answer `json:"answers" gorm:"foreignKey:QuestionID"`
}

type Answer struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	QuestionID   uint   `json:"question_id" gorm:"not null;index"`
	Text         string `json:"text" gorm:"type:text;not null"`
	Correct      bool   `json:"correct" gorm:"not null;default:false"`
	DisplayOrder int    `json:"display_order" gorm:"not null;default:0"`
}

// Enrollment relates a user to a course.
type Enrollment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID  uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CreatedAt time.Time `json:"created_at"`
}

func (Topic) TableName() string {
	return "topics"
}

func (Question) TableName() string {
	return "questions"
}

func (Answer) TableName() string {
	return "answers"
}

func (Enrollment) TableName() string {
	return "enrollments"
}
