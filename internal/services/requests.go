package services

// CreateAttemptRequest is the body of an attempt creation
type CreateAttemptRequest struct {
	UserID uint `json:"user_id" validate:"required,gt=0"`
}

// AnswerSelection carries one question's selections, aligned with the
// attempt's answer slots for that question
type AnswerSelection struct {
	QuestionID uint   `json:"question_id" validate:"required,gt=0"`
	Selected   []bool `json:"selected" validate:"required"`
}

// SaveAnswersRequest updates answers of an attempt still in progress
type SaveAnswersRequest struct {
	Questions []AnswerSelection `json:"questions" validate:"required,min=1,unique=QuestionID,dive"`
}

// SubmitAttemptRequest finalizes an attempt. Questions may be empty when the
// answers were already saved.
type SubmitAttemptRequest struct {
	Questions []AnswerSelection `json:"questions" validate:"omitempty,unique=QuestionID,dive"`
}
