package services

import (
	"fmt"
	"time"

	"github.com/SAP-F-2025/exam-service/internal/models"
)

const (
	minGrade   = 1.0
	gradeRange = 9.0
)

// GradeAttempt scores the attempt in place against the live questions.
// authoritative[i] is matched to attempt.ExamQuestions[i] by position, and
// answer slot j of the student to answer j of the question. A question counts
// as correct only if every slot agrees with the answer's correctness flag.
func GradeAttempt(attempt *models.StudentExam, authoritative []models.Question, now time.Time) error {
	if HasExpired(attempt.StartingTime, attempt.ExtraTime, BaseExamDuration, now) {
		return ErrExamOver
	}
	if len(authoritative) != len(attempt.ExamQuestions) {
		return fmt.Errorf("%w: got %d questions for %d snapshot entries",
			ErrCorrectAnswersUnavailable, len(authoritative), len(attempt.ExamQuestions))
	}

	correctCount := 0
	for i := range attempt.ExamQuestions {
		eq := &attempt.ExamQuestions[i]
		correct := answersMatch(eq.StudentAnswers, authoritative[i].Answers)
		eq.Correct = &correct
		if correct {
			correctCount++
		}
	}

	attempt.CorrectQuestions = correctCount
	attempt.Grade = ComputeGrade(correctCount, len(attempt.ExamQuestions))
	return nil
}

// ComputeGrade maps the share of correct questions linearly onto 1..10.
func ComputeGrade(correct, total int) float64 {
	if total == 0 {
		return minGrade
	}
	return float64(correct)/float64(total)*gradeRange + minGrade
}

func answersMatch(selections []models.StudentAnswer, answers []models.Answer) bool {
	if len(selections) != len(answers) {
		return false
	}
	for j := range selections {
		if selections[j].Selected != answers[j].Correct {
			return false
		}
	}
	return true
}
