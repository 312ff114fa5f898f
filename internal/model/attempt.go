package model

import (
	"encoding/json"
	"time"
)

// TryoutAttempt 一次答卷。Snapshot 在 start 时冻结题目与判分依据，
// 之后对 tryout 的编辑不影响进行中的答卷。
// swagger:model TryoutAttempt
type TryoutAttempt struct {
	UUIDBase
	UserID      uint            `gorm:"not null;index;uniqueIndex:idx_user_tryout_active" json:"userId"`
	TryoutID    uint            `gorm:"not null;index;uniqueIndex:idx_user_tryout_active" json:"tryoutId"`
	StartedAt   time.Time       `gorm:"not null" json:"startedAt"`
	EndedAt     *time.Time      `json:"endedAt,omitempty"`
	IsCompleted bool            `gorm:"default:false;index" json:"isCompleted"`
	Score       int             `gorm:"default:0" json:"score"`
	MaxScore    int             `gorm:"not null" json:"maxScore"`
	Snapshot    json.RawMessage `gorm:"type:json" json:"-"`

	// Active is true while the attempt is in progress and NULL once it is
	// finalized. NULL values never collide inside idx_user_tryout_active, so
	// the store itself guarantees at most one running attempt per
	// (user, tryout) while keeping completed attempts around as audit rows.
	Active *bool `gorm:"uniqueIndex:idx_user_tryout_active" json:"-"`
}

func (TryoutAttempt) TableName() string {
	return "tryout_attempts"
}

// Deadline returns the absolute expiry time, or nil for unbounded tryouts.
func (a *TryoutAttempt) Deadline() *time.Time {
	snap, err := a.DecodeSnapshot()
	if err != nil || snap.DurationMinutes <= 0 {
		return nil
	}
	d := a.StartedAt.Add(time.Duration(snap.DurationMinutes) * time.Minute)
	return &d
}

func (a *TryoutAttempt) DecodeSnapshot() (*TryoutSnapshot, error) {
	var snap TryoutSnapshot
	if err := json.Unmarshal(a.Snapshot, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// TryoutSnapshot 冻结的试卷视图（含判分 key，绝不返回给客户端）
type TryoutSnapshot struct {
	TryoutID        uint               `json:"tryoutId"`
	Title           string             `json:"title"`
	DurationMinutes int                `json:"durationMinutes"`
	MaxScore        int                `json:"maxScore"`
	Questions       []QuestionSnapshot `json:"questions"`
}

type QuestionSnapshot struct {
	ID               uint         `json:"id"`
	QuestionType     QuestionType `json:"questionType"`
	Points           int          `json:"points"`
	Order            int          `json:"order"`
	Required         bool         `json:"required"`
	OptionIDs        []uint       `json:"optionIds,omitempty"`
	CorrectOptionIDs []uint       `json:"correctOptionIds,omitempty"`
}

// Question looks up a frozen question by id.
func (s *TryoutSnapshot) Question(questionID uint) *QuestionSnapshot {
	for i := range s.Questions {
		if s.Questions[i].ID == questionID {
			return &s.Questions[i]
		}
	}
	return nil
}

// AnswerValue 按题型打标签的作答值：单选、多选、文本三选一。
type AnswerValue struct {
	OptionID  *uint  `json:"optionId,omitempty"`
	OptionIDs []uint `json:"optionIds,omitempty"`
	Text      string `json:"text,omitempty"`
}

// TryoutAnswer 每 (attempt, question) 至多一行，重复提交走 upsert 覆盖。
// PointsAwarded 为 NULL 表示等待人工批阅（essay），求和时按 0 计。
// swagger:model TryoutAnswer
type TryoutAnswer struct {
	UUIDBase
	AttemptID     string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_attempt_question" json:"attemptId"`
	QuestionID    uint            `gorm:"not null;uniqueIndex:idx_attempt_question" json:"questionId"`
	Value         json.RawMessage `gorm:"type:json;not null" json:"value"`
	PointsAwarded *int            `json:"pointsAwarded,omitempty"`
}

func (TryoutAnswer) TableName() string {
	return "tryout_answers"
}

func (a *TryoutAnswer) DecodeValue() (*AnswerValue, error) {
	var v AnswerValue
	if err := json.Unmarshal(a.Value, &v); err != nil {
		return nil, err
	}
	return &v, nil
}
