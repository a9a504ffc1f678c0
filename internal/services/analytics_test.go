package services

import (
	"testing"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradedAttempt(userID uint, grade float64, outcomes map[uint]bool, order ...uint) *models.StudentExam {
	attempt := &models.StudentExam{UserID: userID, Grade: grade}
	for i, qid := range order {
		correct, graded := outcomes[qid]
		eq := models.ExamQuestion{QuestionID: qid, Position: i}
		if graded {
			eq.Correct = boolPtr(correct)
		}
		attempt.ExamQuestions = append(attempt.ExamQuestions, eq)
	}
	return attempt
}

func TestAverageGrade(t *testing.T) {
	attempts := []*models.StudentExam{
		{UserID: 1, Grade: 4},
		{UserID: 2, Grade: 7},
		{UserID: 3, Grade: 0},
	}
	assert.InDelta(t, 5.5, AverageGrade(attempts), 1e-9)

	assert.Equal(t, 0.0, AverageGrade(nil))
	assert.Equal(t, 0.0, AverageGrade([]*models.StudentExam{{Grade: 0}}))
}

func TestDistinctParticipantCount(t *testing.T) {
	attempts := []*models.StudentExam{
		{UserID: 1}, {UserID: 2}, {UserID: 1}, {UserID: 3}, {UserID: 2},
	}
	assert.Equal(t, 3, DistinctParticipantCount(attempts))
	assert.Equal(t, 0, DistinctParticipantCount(nil))
}

func TestLeastAnsweredCorrectly(t *testing.T) {
	const qA, qB, qC = 11, 12, 13

	attempts := []*models.StudentExam{
		gradedAttempt(1, 2, map[uint]bool{qA: false, qB: false, qC: true}, qA, qB, qC),
		gradedAttempt(2, 2, map[uint]bool{qA: false, qB: true, qC: false}, qA, qB, qC),
		gradedAttempt(3, 2, map[uint]bool{qA: false, qB: false, qC: true}, qA, qB, qC),
	}

	ids, err := LeastAnsweredCorrectly(attempts, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint{qA, qB}, ids)
}

func TestLeastAnsweredCorrectly_TiesKeepFirstSeenOrder(t *testing.T) {
	attempts := []*models.StudentExam{
		gradedAttempt(1, 1, map[uint]bool{30: false, 10: false, 20: false}, 30, 10, 20),
	}

	ids, err := LeastAnsweredCorrectly(attempts, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint{30, 10, 20}, ids)
}

func TestLeastAnsweredCorrectly_IgnoresUngraded(t *testing.T) {
	attempts := []*models.StudentExam{
		// question 2 was never graded
		gradedAttempt(1, 1, map[uint]bool{1: false}, 1, 2),
	}

	_, err := LeastAnsweredCorrectly(attempts, 2)
	assert.ErrorIs(t, err, ErrInsufficientData)

	ids, err := LeastAnsweredCorrectly(attempts, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, ids)
}

func TestLeastAnsweredCorrectly_InsufficientData(t *testing.T) {
	attempts := []*models.StudentExam{
		gradedAttempt(1, 10, map[uint]bool{1: true, 2: true}, 1, 2),
	}

	ids, err := LeastAnsweredCorrectly(attempts, 2)
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.Nil(t, ids)
}

func TestBuildExamStatistics(t *testing.T) {
	attempts := []*models.StudentExam{
		gradedAttempt(1, 4, map[uint]bool{1: false, 2: false}, 1, 2),
		gradedAttempt(1, 7, map[uint]bool{1: false, 2: true}, 1, 2),
		{UserID: 2},
	}

	stats := BuildExamStatistics(9, attempts)

	assert.Equal(t, uint(9), stats.ExamID)
	assert.Equal(t, 3, stats.TotalAttempts)
	assert.Equal(t, 2, stats.Participants)
	assert.InDelta(t, 5.5, stats.AverageGrade, 1e-9)
	assert.Equal(t, []uint{1, 2}, stats.LeastAnsweredCorrectly)
	assert.False(t, stats.InsufficientData)

	empty := BuildExamStatistics(9, nil)
	assert.True(t, empty.InsufficientData)
	assert.Nil(t, empty.LeastAnsweredCorrectly)
}
