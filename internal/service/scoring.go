package service

import (
	"tryout_lms_backend/internal/model"
	"tryout_lms_backend/internal/util"
)

// ScoreAnswer 纯判分函数：给定冻结的题目快照和打标签的作答值，
// 返回得分。无副作用，同样的输入永远得到同样的输出。
//
// 规则：
//   - 单选：命中唯一正确选项得满分，否则 0 分
//   - 多选：选项集合与正确集合完全相等才得满分，部分命中 0 分
//   - 问答：不自动判分，返回 nil 表示待人工批阅（求和时按 0 计）
//
// 作答形状与题型不符时返回 ErrAnswerShapeMismatch，判分不会进行。
func ScoreAnswer(q *model.QuestionSnapshot, v *model.AnswerValue) (*int, error) {
	if err := validateAnswerShape(q, v); err != nil {
		return nil, err
	}

	switch q.QuestionType {
	case model.SingleChoice:
		score := 0
		if len(q.CorrectOptionIDs) == 1 && *v.OptionID == q.CorrectOptionIDs[0] {
			score = q.Points
		}
		return &score, nil

	case model.MultipleChoice:
		score := 0
		if optionSetsEqual(v.OptionIDs, q.CorrectOptionIDs) {
			score = q.Points
		}
		return &score, nil

	default:
		// essay: persisted but never auto-scored
		return nil, nil
	}
}

// validateAnswerShape 校验作答值与题型匹配：单选必须且只能带 optionId，
// 多选必须带非空且无重复的 optionIds，问答必须带文本。选中的选项
// 必须属于快照里的选项集。
func validateAnswerShape(q *model.QuestionSnapshot, v *model.AnswerValue) error {
	switch q.QuestionType {
	case model.SingleChoice:
		if v.OptionID == nil || len(v.OptionIDs) > 0 || v.Text != "" {
			return util.ErrAnswerShapeMismatch
		}
		if !containsOption(q.OptionIDs, *v.OptionID) {
			return util.ErrAnswerShapeMismatch
		}
	case model.MultipleChoice:
		if len(v.OptionIDs) == 0 || v.OptionID != nil || v.Text != "" {
			return util.ErrAnswerShapeMismatch
		}
		seen := make(map[uint]bool, len(v.OptionIDs))
		for _, id := range v.OptionIDs {
			if seen[id] || !containsOption(q.OptionIDs, id) {
				return util.ErrAnswerShapeMismatch
			}
			seen[id] = true
		}
	case model.Essay:
		if v.Text == "" || v.OptionID != nil || len(v.OptionIDs) > 0 {
			return util.ErrAnswerShapeMismatch
		}
	default:
		return util.ErrAnswerShapeMismatch
	}
	return nil
}

func containsOption(ids []uint, id uint) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// optionSetsEqual 集合相等比较，与提交顺序无关
func optionSetsEqual(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[uint]bool, len(a))
	for _, id := range a {
		set[id] = true
	}
	for _, id := range b {
		if !set[id] {
			return false
		}
	}
	return true
}
