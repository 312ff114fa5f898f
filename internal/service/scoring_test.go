package service

import (
	"errors"
	"testing"

	"tryout_lms_backend/internal/model"
	"tryout_lms_backend/internal/util"
)

func uintPtr(v uint) *uint { return &v }

func TestScoreAnswerSingleChoice(t *testing.T) {
	q := &model.QuestionSnapshot{
		ID:               1,
		QuestionType:     model.SingleChoice,
		Points:           5,
		OptionIDs:        []uint{10, 11, 12},
		CorrectOptionIDs: []uint{11},
	}

	tests := []struct {
		name  string
		value model.AnswerValue
		want  int
	}{
		{"correct option scores full points", model.AnswerValue{OptionID: uintPtr(11)}, 5},
		{"wrong option scores zero", model.AnswerValue{OptionID: uintPtr(10)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScoreAnswer(q, &tt.value)
			if err != nil {
				t.Fatalf("ScoreAnswer() error = %v", err)
			}
			if got == nil || *got != tt.want {
				t.Errorf("ScoreAnswer() = %v, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreAnswerMultipleChoice(t *testing.T) {
	q := &model.QuestionSnapshot{
		ID:               2,
		QuestionType:     model.MultipleChoice,
		Points:           4,
		OptionIDs:        []uint{20, 21, 22, 23},
		CorrectOptionIDs: []uint{20, 22},
	}

	tests := []struct {
		name  string
		value model.AnswerValue
		want  int
	}{
		{"exact set scores full points", model.AnswerValue{OptionIDs: []uint{20, 22}}, 4},
		{"order does not matter", model.AnswerValue{OptionIDs: []uint{22, 20}}, 4},
		{"partial selection scores zero", model.AnswerValue{OptionIDs: []uint{20}}, 0},
		{"superset scores zero", model.AnswerValue{OptionIDs: []uint{20, 21, 22}}, 0},
		{"disjoint selection scores zero", model.AnswerValue{OptionIDs: []uint{21, 23}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScoreAnswer(q, &tt.value)
			if err != nil {
				t.Fatalf("ScoreAnswer() error = %v", err)
			}
			if got == nil || *got != tt.want {
				t.Errorf("ScoreAnswer() = %v, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreAnswerEssayIsNeverAutoScored(t *testing.T) {
	q := &model.QuestionSnapshot{
		ID:           3,
		QuestionType: model.Essay,
		Points:       10,
	}

	got, err := ScoreAnswer(q, &model.AnswerValue{Text: "my essay"})
	if err != nil {
		t.Fatalf("ScoreAnswer() error = %v", err)
	}
	if got != nil {
		t.Errorf("ScoreAnswer() = %d, want nil (pending manual grading)", *got)
	}
}

func TestScoreAnswerShapeMismatch(t *testing.T) {
	single := &model.QuestionSnapshot{
		QuestionType:     model.SingleChoice,
		Points:           5,
		OptionIDs:        []uint{10, 11},
		CorrectOptionIDs: []uint{11},
	}
	multi := &model.QuestionSnapshot{
		QuestionType:     model.MultipleChoice,
		Points:           4,
		OptionIDs:        []uint{20, 21},
		CorrectOptionIDs: []uint{20},
	}
	essay := &model.QuestionSnapshot{QuestionType: model.Essay, Points: 10}

	tests := []struct {
		name  string
		q     *model.QuestionSnapshot
		value model.AnswerValue
	}{
		{"single choice without option", single, model.AnswerValue{}},
		{"single choice with option list", single, model.AnswerValue{OptionIDs: []uint{10}}},
		{"single choice with text", single, model.AnswerValue{OptionID: uintPtr(10), Text: "x"}},
		{"single choice with foreign option", single, model.AnswerValue{OptionID: uintPtr(99)}},
		{"multiple choice with empty list", multi, model.AnswerValue{}},
		{"multiple choice with single option field", multi, model.AnswerValue{OptionID: uintPtr(20)}},
		{"multiple choice with duplicate options", multi, model.AnswerValue{OptionIDs: []uint{20, 20}}},
		{"multiple choice with foreign option", multi, model.AnswerValue{OptionIDs: []uint{20, 99}}},
		{"essay without text", essay, model.AnswerValue{}},
		{"essay with options", essay, model.AnswerValue{Text: "x", OptionIDs: []uint{1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ScoreAnswer(tt.q, &tt.value)
			if !errors.Is(err, util.ErrAnswerShapeMismatch) {
				t.Errorf("ScoreAnswer() error = %v, want ErrAnswerShapeMismatch", err)
			}
		})
	}
}
