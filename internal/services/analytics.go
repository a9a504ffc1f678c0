package services

import (
	"fmt"
	"sort"

	"github.com/SAP-F-2025/exam-service/internal/models"
)

// DefaultLeastAnsweredTop is how many question ids LeastAnsweredCorrectly
// returns when the caller does not ask for a specific number
const DefaultLeastAnsweredTop = 2

// AverageGrade is the mean grade over graded attempts. Attempts with a grade
// of 0 have not been graded and are left out; no graded attempts yields 0.
func AverageGrade(attempts []*models.StudentExam) float64 {
	var sum float64
	count := 0
	for _, a := range attempts {
		if a.Grade > 0 {
			sum += a.Grade
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// DistinctParticipantCount counts the different users among attempts
func DistinctParticipantCount(attempts []*models.StudentExam) int {
	users := make(map[uint]struct{})
	for _, a := range attempts {
		users[a.UserID] = struct{}{}
	}
	return len(users)
}

type questionMisses struct {
	questionID uint
	count      int
}

// LeastAnsweredCorrectly returns the topN question ids most often answered
// incorrectly. Snapshot entries that were never graded are ignored and ties
// keep the order in which the questions were first seen.
func LeastAnsweredCorrectly(attempts []*models.StudentExam, topN int) ([]uint, error) {
	index := make(map[uint]int)
	var misses []questionMisses

	for _, a := range attempts {
		for _, eq := range a.ExamQuestions {
			if eq.Correct == nil || *eq.Correct {
				continue
			}
			i, seen := index[eq.QuestionID]
			if !seen {
				i = len(misses)
				index[eq.QuestionID] = i
				misses = append(misses, questionMisses{questionID: eq.QuestionID})
			}
			misses[i].count++
		}
	}

	if len(misses) < topN {
		return nil, fmt.Errorf("%w: %d incorrectly answered questions, need %d", ErrInsufficientData, len(misses), topN)
	}

	sort.SliceStable(misses, func(i, j int) bool {
		return misses[i].count > misses[j].count
	})

	ids := make([]uint, topN)
	for i := 0; i < topN; i++ {
		ids[i] = misses[i].questionID
	}
	return ids, nil
}
