package service

import (
	"testing"

	"tryout_lms_backend/internal/model"
	"tryout_lms_backend/internal/repository"
	"tryout_lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTryoutService(t *testing.T) *TryoutService {
	t.Helper()
	db := newTestDB(t)
	return NewTryoutService(repository.NewTryoutRepository(db), nil, zap.NewNop())
}

func TestAddQuestionValidation(t *testing.T) {
	svc := newTryoutService(t)
	tryout, err := svc.Create(&TryoutRequest{Title: "试卷", IsActive: true})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  QuestionRequest
	}{
		{"unknown type", QuestionRequest{QuestionType: "true_false", Content: "?", Points: 1}},
		{"single choice without options", QuestionRequest{
			QuestionType: model.SingleChoice, Content: "?", Points: 1,
		}},
		{"single choice with two correct options", QuestionRequest{
			QuestionType: model.SingleChoice, Content: "?", Points: 1,
			Options: []QuestionOptionRequest{
				{Text: "a", IsCorrect: true},
				{Text: "b", IsCorrect: true},
			},
		}},
		{"multiple choice without correct option", QuestionRequest{
			QuestionType: model.MultipleChoice, Content: "?", Points: 1,
			Options: []QuestionOptionRequest{
				{Text: "a"},
				{Text: "b"},
			},
		}},
		{"essay with options", QuestionRequest{
			QuestionType: model.Essay, Content: "?", Points: 1,
			Options: []QuestionOptionRequest{{Text: "a"}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddQuestion(tryout.ID, &tt.req)
			assert.ErrorIs(t, err, util.ErrInvalidQuestion)
		})
	}
}

func TestGetForStudentStripsAnswerKey(t *testing.T) {
	svc := newTryoutService(t)
	tryout, err := svc.Create(&TryoutRequest{Title: "摸底", DurationMinutes: 30, IsActive: true})
	require.NoError(t, err)

	_, err = svc.AddQuestion(tryout.ID, &QuestionRequest{
		QuestionType: model.SingleChoice, Content: "1+1=?", Points: 5,
		Options: []QuestionOptionRequest{
			{Text: "2", IsCorrect: true},
			{Text: "3"},
		},
	})
	require.NoError(t, err)
	_, err = svc.AddQuestion(tryout.ID, &QuestionRequest{
		QuestionType: model.Essay, Content: "谈谈理解", Points: 10,
	})
	require.NoError(t, err)

	view, err := svc.GetForStudent(tryout.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, view.MaxScore)
	require.Len(t, view.Questions, 2)
	assert.Len(t, view.Questions[0].Options, 2)
	// StudentOptionView 不携带 isCorrect 字段，判分 key 不可能出现在响应里
}

func TestGetForStudentHidesInactiveTryout(t *testing.T) {
	svc := newTryoutService(t)
	tryout, err := svc.Create(&TryoutRequest{Title: "未上架", IsActive: false})
	require.NoError(t, err)

	_, err = svc.GetForStudent(tryout.ID)
	assert.ErrorIs(t, err, util.ErrTryoutNotFound)
}

func TestUpdateQuestionReplacesOptions(t *testing.T) {
	svc := newTryoutService(t)
	tryout, err := svc.Create(&TryoutRequest{Title: "试卷", IsActive: true})
	require.NoError(t, err)

	q, err := svc.AddQuestion(tryout.ID, &QuestionRequest{
		QuestionType: model.SingleChoice, Content: "旧题干", Points: 5,
		Options: []QuestionOptionRequest{
			{Text: "a", IsCorrect: true},
			{Text: "b"},
		},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateQuestion(q.ID, &QuestionRequest{
		QuestionType: model.SingleChoice, Content: "新题干", Points: 8,
		Options: []QuestionOptionRequest{
			{Text: "x"},
			{Text: "y", IsCorrect: true},
			{Text: "z"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "新题干", updated.Content)
	assert.Equal(t, 8, updated.Points)
	require.Len(t, updated.Options, 3)
}
