package services

import (
	"fmt"
	"sort"

	"github.com/SAP-F-2025/exam-service/internal/models"
)

const (
	// MaxTopics is the largest number of topics a course may expose to
	// exam generation
	MaxTopics = 10
	// ExamQuestionCount is the number of questions in one exam attempt
	ExamQuestionCount = 10
)

// Rand is the randomness source used for question selection.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// SelectExamQuestions picks one random question per topic, tops the
// selection up to targetCount from the shuffled remainder and returns it
// sorted by question id.
func SelectExamQuestions(topics []models.Topic, targetCount int, rng Rand) ([]models.Question, error) {
	if len(topics) == 0 || len(topics) > MaxTopics {
		return nil, fmt.Errorf("%w: got %d", ErrTooManyTopics, len(topics))
	}

	selected := make([]models.Question, 0, targetCount)
	var remaining []models.Question

	for _, topic := range topics {
		if len(topic.Questions) == 0 {
			return nil, fmt.Errorf("%w: topic %d", ErrTopicWithoutQuestions, topic.ID)
		}

		pick := rng.Intn(len(topic.Questions))
		selected = append(selected, topic.Questions[pick])
		for i, q := range topic.Questions {
			if i != pick {
				remaining = append(remaining, q)
			}
		}
	}

	rng.Shuffle(len(remaining), func(i, j int) {
		remaining[i], remaining[j] = remaining[j], remaining[i]
	})

	for len(selected) < targetCount {
		if len(remaining) == 0 {
			return nil, fmt.Errorf("%w: have %d, need %d", ErrNotEnoughQuestions, len(selected), targetCount)
		}
		selected = append(selected, remaining[0])
		remaining = remaining[1:]
	}

	sort.Slice(selected, func(i, j int) bool {
		return selected[i].ID < selected[j].ID
	})

	return selected, nil
}

// BuildSnapshot turns selected questions into the frozen per-attempt form:
// one unselected slot per answer, in answer display order.
func BuildSnapshot(questions []models.Question) []models.ExamQuestion {
	snapshot := make([]models.ExamQuestion, len(questions))
	for i, q := range questions {
		answers := make([]models.StudentAnswer, len(q.Answers))
		for j, a := range q.Answers {
			answers[j] = models.StudentAnswer{AnswerID: a.ID, Selected: false}
		}
		snapshot[i] = models.ExamQuestion{
			QuestionID:     q.ID,
			Position:       i,
			StudentAnswers: answers,
		}
	}
	return snapshot
}
