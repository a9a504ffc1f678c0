package models

// ExamStatistics summarises the attempts of one exam.
type ExamStatistics struct {
	ExamID                 uint    `json:"exam_id"`
	TotalAttempts          int     `json:"total_attempts"`
	AverageGrade           float64 `json:"average_grade"`
	Participants           int     `json:"participants"`
	LeastAnsweredCorrectly []uint  `json:"least_answered_correctly,omitempty"`
	InsufficientData       bool    `json:"insufficient_data"`
}
