package services

import (
	"testing"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeAttempt(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	now := start.Add(10 * time.Minute)

	// q1 answered correctly, q2 has a wrong selection, q3 misses a correct answer
	attempt := &models.StudentExam{
		StartingTime: start,
		ExamQuestions: []models.ExamQuestion{
			{QuestionID: 1, Position: 0, StudentAnswers: slots(true, false)},
			{QuestionID: 2, Position: 1, StudentAnswers: slots(true, true)},
			{QuestionID: 3, Position: 2, StudentAnswers: slots(false, false, false)},
		},
	}
	authoritative := []models.Question{
		question(1, true, false),
		question(2, false, true),
		question(3, false, true, false),
	}

	err := GradeAttempt(attempt, authoritative, now)
	require.NoError(t, err)

	assert.Equal(t, 1, attempt.CorrectQuestions)
	assert.InDelta(t, 4.0, attempt.Grade, 1e-9)
	require.NotNil(t, attempt.ExamQuestions[0].Correct)
	assert.True(t, *attempt.ExamQuestions[0].Correct)
	assert.False(t, *attempt.ExamQuestions[1].Correct)
	assert.False(t, *attempt.ExamQuestions[2].Correct)
}

func TestGradeAttempt_AllCorrect(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	attempt := &models.StudentExam{
		StartingTime: start,
		ExamQuestions: []models.ExamQuestion{
			{QuestionID: 1, StudentAnswers: slots(false, true)},
			{QuestionID: 2, StudentAnswers: slots(true)},
		},
	}

	err := GradeAttempt(attempt, []models.Question{question(1, false, true), question(2, true)}, start)
	require.NoError(t, err)

	assert.Equal(t, 2, attempt.CorrectQuestions)
	assert.InDelta(t, 10.0, attempt.Grade, 1e-9)
}

func TestGradeAttempt_SlotCountMismatchIsIncorrect(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	attempt := &models.StudentExam{
		StartingTime: start,
		ExamQuestions: []models.ExamQuestion{
			{QuestionID: 1, StudentAnswers: slots(true, false)},
		},
	}

	// an answer was added to the question after the snapshot was taken
	err := GradeAttempt(attempt, []models.Question{question(1, true, false, false)}, start)
	require.NoError(t, err)

	assert.Equal(t, 0, attempt.CorrectQuestions)
	assert.InDelta(t, 1.0, attempt.Grade, 1e-9)
	assert.False(t, *attempt.ExamQuestions[0].Correct)
}

func TestGradeAttempt_NoQuestions(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	attempt := &models.StudentExam{StartingTime: start}

	err := GradeAttempt(attempt, nil, start)
	require.NoError(t, err)
	assert.Equal(t, 1.0, attempt.Grade)
}

func TestGradeAttempt_Errors(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("expired", func(t *testing.T) {
		attempt := &models.StudentExam{
			StartingTime:  start,
			ExamQuestions: []models.ExamQuestion{{QuestionID: 1, StudentAnswers: slots(true)}},
		}
		err := GradeAttempt(attempt, []models.Question{question(1, true)}, start.Add(21*time.Minute))
		assert.ErrorIs(t, err, ErrExamOver)
		assert.Equal(t, 0.0, attempt.Grade)
		assert.Nil(t, attempt.ExamQuestions[0].Correct)
	})

	t.Run("question count mismatch", func(t *testing.T) {
		attempt := &models.StudentExam{
			StartingTime: start,
			ExamQuestions: []models.ExamQuestion{
				{QuestionID: 1, StudentAnswers: slots(true)},
				{QuestionID: 2, StudentAnswers: slots(true)},
			},
		}
		err := GradeAttempt(attempt, []models.Question{question(1, true)}, start)
		assert.ErrorIs(t, err, ErrCorrectAnswersUnavailable)
		assert.Equal(t, 0, attempt.CorrectQuestions)
	})
}

func TestComputeGrade(t *testing.T) {
	assert.InDelta(t, 1.0, ComputeGrade(0, 10), 1e-9)
	assert.InDelta(t, 5.5, ComputeGrade(5, 10), 1e-9)
	assert.InDelta(t, 10.0, ComputeGrade(10, 10), 1e-9)
	assert.Equal(t, 1.0, ComputeGrade(0, 0))
}
