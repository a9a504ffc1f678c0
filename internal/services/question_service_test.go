package services

import (
	"context"
	"errors"
	"testing"

	"github.com/SAP-F-2025/exam-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestQuestionService_GenerateExamQuestions(t *testing.T) {
	topics := makeTopics(4, 3, 5)
	for ti := range topics {
		for qi := range topics[ti].Questions {
			q := &topics[ti].Questions[qi]
			q.Answers = question(q.ID, true, false).Answers
		}
	}

	repo := newMockCourseRepository()
	repo.topic.On("FindByCourseWithQuestions", mock.Anything, testCourseID).Return(topics, nil)
	authorizer := &MockAuthorizer{}
	authorizer.On("IsAuthorized", mock.Anything, testToken, models.RoleStudent).Return(true, nil)

	service := NewQuestionService(repo, authorizer, NewRand(7), testLogger())

	snapshot, err := service.GenerateExamQuestions(context.Background(), testToken, testCourseID)
	require.NoError(t, err)
	require.Len(t, snapshot, ExamQuestionCount)

	for i, eq := range snapshot {
		assert.Equal(t, i, eq.Position)
		require.Len(t, eq.StudentAnswers, 2)
		assert.Equal(t, eq.QuestionID*10, eq.StudentAnswers[0].AnswerID)
		assert.False(t, eq.StudentAnswers[0].Selected)
		if i > 0 {
			assert.Less(t, snapshot[i-1].QuestionID, eq.QuestionID)
		}
	}
}

func TestQuestionService_GenerateExamQuestions_SelectorErrors(t *testing.T) {
	repo := newMockCourseRepository()
	repo.topic.On("FindByCourseWithQuestions", mock.Anything, testCourseID).Return(makeTopics(2, 2), nil)
	authorizer := &MockAuthorizer{}
	authorizer.On("IsAuthorized", mock.Anything, testToken, models.RoleStudent).Return(true, nil)

	service := NewQuestionService(repo, authorizer, NewRand(7), testLogger())

	_, err := service.GenerateExamQuestions(context.Background(), testToken, testCourseID)
	assert.ErrorIs(t, err, ErrNotEnoughQuestions)
	assert.True(t, IsUnprocessable(err))
}

func TestQuestionService_FetchQuestionsByIDs(t *testing.T) {
	repo := newMockCourseRepository()
	// the store returns rows in its own order
	repo.question.On("FindByIDsWithAnswers", mock.Anything, []uint{3, 1, 2}).
		Return([]models.Question{question(1, true), question(2, false), question(3, true, false)}, nil)
	repo.question.On("FindByIDsWithAnswers", mock.Anything, []uint{1, 4}).
		Return([]models.Question{question(1, true)}, nil)
	authorizer := &MockAuthorizer{}
	authorizer.On("IsAuthorized", mock.Anything, testToken, models.RoleStudent).Return(true, nil)

	service := NewQuestionService(repo, authorizer, nil, testLogger())

	questions, err := service.FetchQuestionsByIDs(context.Background(), testToken, []uint{3, 1, 2})
	require.NoError(t, err)
	require.Len(t, questions, 3)
	assert.Equal(t, uint(3), questions[0].ID)
	assert.Equal(t, uint(1), questions[1].ID)
	assert.Equal(t, uint(2), questions[2].ID)

	_, err = service.FetchQuestionsByIDs(context.Background(), testToken, []uint{1, 4})
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestQuestionService_IsEnrolled(t *testing.T) {
	repo := newMockCourseRepository()
	repo.enrollment.On("Exists", mock.Anything, testUserID, testCourseID).Return(true, nil)
	repo.enrollment.On("Exists", mock.Anything, uint(41), testCourseID).Return(false, errors.New("db down"))
	authorizer := &MockAuthorizer{}
	authorizer.On("IsAuthorized", mock.Anything, testToken, models.RoleStudent).Return(true, nil)
	authorizer.On("IsAuthorized", mock.Anything, "bad", models.RoleStudent).Return(false, nil)

	service := NewQuestionService(repo, authorizer, nil, testLogger())
	ctx := context.Background()

	enrolled, err := service.IsEnrolled(ctx, testToken, testUserID, testCourseID)
	require.NoError(t, err)
	assert.True(t, enrolled)

	_, err = service.IsEnrolled(ctx, testToken, 41, testCourseID)
	assert.Error(t, err)

	_, err = service.IsEnrolled(ctx, "bad", testUserID, testCourseID)
	assert.ErrorIs(t, err, ErrForbidden)
}
