package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tryout_lms_backend/internal/model"
	"tryout_lms_backend/internal/repository"
	"tryout_lms_backend/internal/util"
	"tryout_lms_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// AttemptService 答卷引擎：开始答卷、提交作答、交卷与超时收敛。
// 所有竞态都交给存储约束裁决，service 层不持有内存状态，多副本部署安全。
type AttemptService struct {
	TryoutRepo    *repository.TryoutRepository
	AttemptRepo   *repository.AttemptRepository
	Notifications *NotificationService // 可为 nil，交卷通知是尽力而为
}

func NewAttemptService(tryoutRepo *repository.TryoutRepository, attemptRepo *repository.AttemptRepository) *AttemptService {
	return &AttemptService{TryoutRepo: tryoutRepo, AttemptRepo: attemptRepo}
}

type SubmitAnswerRequest struct {
	QuestionID uint              `json:"questionId" binding:"required"`
	Value      model.AnswerValue `json:"value" binding:"required"`
}

// AttemptView 返回给客户端的答卷视图，冻结快照与判分 key 一律不出门。
type AttemptView struct {
	ID          string     `json:"id"`
	TryoutID    uint       `json:"tryoutId"`
	TryoutTitle string     `json:"tryoutTitle"`
	StartedAt   time.Time  `json:"startedAt"`
	EndedAt     *time.Time `json:"endedAt,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	IsCompleted bool       `json:"isCompleted"`
	Score       int        `json:"score"`
	MaxScore    int        `json:"maxScore"`
}

// AttemptResult 终态结果，含逐题得分明细
type AttemptResult struct {
	AttemptView
	Answers []AnswerResult `json:"answers"`
}

type AnswerResult struct {
	QuestionID    uint              `json:"questionId"`
	Value         model.AnswerValue `json:"value"`
	PointsAwarded *int              `json:"pointsAwarded,omitempty"` // null = 待人工批阅
	Pending       bool              `json:"pending"`
}

// StartAttempt 为 (user, tryout) 开启一份答卷。试卷结构在此刻冻结入快照，
// 后续编辑不影响进行中的答卷。同一 tryout 已有进行中答卷时返回
// ErrActiveAttemptExists，由唯一索引裁决而非先查后插。
func (s *AttemptService) StartAttempt(userID, tryoutID uint) (*AttemptView, error) {
	tryout, err := s.TryoutRepo.FindWithQuestions(tryoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTryoutNotFound
		}
		return nil, err
	}
	if !tryout.IsActive {
		return nil, util.ErrTryoutNotFound
	}

	snap := buildSnapshot(tryout)
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}

	active := true
	attempt := &model.TryoutAttempt{
		UserID:    userID,
		TryoutID:  tryoutID,
		StartedAt: time.Now(),
		MaxScore:  snap.MaxScore,
		Snapshot:  raw,
		Active:    &active,
	}
	if err := s.AttemptRepo.Create(attempt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			monitoring.ObserveAttempt("start", "conflict")
			return nil, util.ErrActiveAttemptExists
		}
		return nil, err
	}

	monitoring.ObserveAttempt("start", "ok")
	return s.view(attempt, snap), nil
}

// SubmitAnswer 判分后落一条作答。同题重复提交走 upsert，以最后一次为准。
// 已过期的答卷先走 finalize 收敛再返回 ErrAttemptExpired，迟到的提交不入库。
func (s *AttemptService) SubmitAnswer(attemptID string, actorID uint, req *SubmitAnswerRequest) (*AnswerResult, error) {
	attempt, snap, err := s.loadOwned(attemptID, actorID)
	if err != nil {
		return nil, err
	}
	if attempt.IsCompleted {
		return nil, util.ErrAttemptCompleted
	}
	if s.expired(attempt) {
		if err := s.finalize(attempt, snap); err != nil {
			return nil, err
		}
		monitoring.ObserveAttempt("submit", "expired")
		return nil, util.ErrAttemptExpired
	}

	q := snap.Question(req.QuestionID)
	if q == nil {
		return nil, util.ErrQuestionNotInTryout
	}

	points, err := ScoreAnswer(q, &req.Value)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(req.Value)
	if err != nil {
		return nil, err
	}
	ans := &model.TryoutAnswer{
		AttemptID:     attemptID,
		QuestionID:    req.QuestionID,
		Value:         raw,
		PointsAwarded: points,
	}
	if err := s.AttemptRepo.UpsertAnswer(ans); err != nil {
		return nil, err
	}

	monitoring.ObserveAttempt("submit", "ok")
	return &AnswerResult{
		QuestionID:    req.QuestionID,
		Value:         req.Value,
		PointsAwarded: points,
		Pending:       points == nil,
	}, nil
}

// FinishAttempt 交卷。幂等：已完成的答卷直接返回存量结果，并发交卷
// 由条件更新裁决，输掉的那个请求回读赢家写入的结果。
func (s *AttemptService) FinishAttempt(attemptID string, actorID uint) (*AttemptResult, error) {
	attempt, snap, err := s.loadOwned(attemptID, actorID)
	if err != nil {
		return nil, err
	}

	if !attempt.IsCompleted {
		if err := s.finalize(attempt, snap); err != nil {
			return nil, err
		}
	}
	monitoring.ObserveAttempt("finish", "ok")
	return s.result(attempt, snap)
}

// GetAttempt 查询答卷。进行中且已过期的答卷在此惰性收敛到终态，
// 客户端只会看到一致的 completed 视图。
func (s *AttemptService) GetAttempt(attemptID string, actorID uint) (*AttemptResult, error) {
	attempt, snap, err := s.loadOwned(attemptID, actorID)
	if err != nil {
		return nil, err
	}
	if !attempt.IsCompleted && s.expired(attempt) {
		if err := s.finalize(attempt, snap); err != nil {
			return nil, err
		}
	}
	return s.result(attempt, snap)
}

func (s *AttemptService) ListAttempts(userID uint, page, limit int) ([]AttemptView, int64, error) {
	attempts, total, err := s.AttemptRepo.ListByUser(userID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	views := make([]AttemptView, 0, len(attempts))
	for i := range attempts {
		snap, err := attempts[i].DecodeSnapshot()
		if err != nil {
			return nil, 0, err
		}
		views = append(views, *s.view(&attempts[i], snap))
	}
	return views, total, nil
}

func (s *AttemptService) loadOwned(attemptID string, actorID uint) (*model.TryoutAttempt, *model.TryoutSnapshot, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrAttemptNotFound
		}
		return nil, nil, err
	}
	if attempt.UserID != actorID {
		return nil, nil, util.ErrNotAttemptOwner
	}
	snap, err := attempt.DecodeSnapshot()
	if err != nil {
		return nil, nil, err
	}
	return attempt, snap, nil
}

func (s *AttemptService) expired(a *model.TryoutAttempt) bool {
	d := a.Deadline()
	return d != nil && time.Now().After(*d)
}

// finalize 收敛到终态：汇总得分、截到 [0, maxScore]、条件更新写库。
// 超时收敛与主动交卷都走这一条路径。条件更新没生效说明别的请求
// 已经完成了这份答卷，回读其结果即可，两边殊途同归。
func (s *AttemptService) finalize(attempt *model.TryoutAttempt, snap *model.TryoutSnapshot) error {
	sum, err := s.AttemptRepo.SumPoints(attempt.ID)
	if err != nil {
		return err
	}
	if sum < 0 {
		sum = 0
	}
	if sum > snap.MaxScore {
		sum = snap.MaxScore
	}

	endedAt := time.Now()
	if d := attempt.Deadline(); d != nil && endedAt.After(*d) {
		endedAt = *d
	}

	won, err := s.AttemptRepo.Finalize(attempt.ID, sum, endedAt)
	if err != nil {
		return err
	}
	if !won {
		stored, err := s.AttemptRepo.FindByID(attempt.ID)
		if err != nil {
			return err
		}
		*attempt = *stored
		return nil
	}
	attempt.Score = sum
	attempt.EndedAt = &endedAt
	attempt.IsCompleted = true
	attempt.Active = nil

	if s.Notifications != nil {
		_ = s.Notifications.Notify(attempt.UserID, "tryout_finished",
			fmt.Sprintf("《%s》已交卷", snap.Title),
			fmt.Sprintf("得分 %d / %d", sum, snap.MaxScore))
	}
	return nil
}

func (s *AttemptService) view(a *model.TryoutAttempt, snap *model.TryoutSnapshot) *AttemptView {
	return &AttemptView{
		ID:          a.ID,
		TryoutID:    a.TryoutID,
		TryoutTitle: snap.Title,
		StartedAt:   a.StartedAt,
		EndedAt:     a.EndedAt,
		Deadline:    a.Deadline(),
		IsCompleted: a.IsCompleted,
		Score:       a.Score,
		MaxScore:    a.MaxScore,
	}
}

func (s *AttemptService) result(a *model.TryoutAttempt, snap *model.TryoutSnapshot) (*AttemptResult, error) {
	answers, err := s.AttemptRepo.ListAnswers(a.ID)
	if err != nil {
		return nil, err
	}
	results := make([]AnswerResult, 0, len(answers))
	for i := range answers {
		v, err := answers[i].DecodeValue()
		if err != nil {
			return nil, err
		}
		results = append(results, AnswerResult{
			QuestionID:    answers[i].QuestionID,
			Value:         *v,
			PointsAwarded: answers[i].PointsAwarded,
			Pending:       answers[i].PointsAwarded == nil,
		})
	}
	return &AttemptResult{
		AttemptView: *s.view(a, snap),
		Answers:     results,
	}, nil
}

// buildSnapshot 把试卷当前结构冻结成快照，maxScore 在此刻定格。
func buildSnapshot(t *model.Tryout) *model.TryoutSnapshot {
	snap := &model.TryoutSnapshot{
		TryoutID:        t.ID,
		Title:           t.Title,
		DurationMinutes: t.DurationMinutes,
		Questions:       make([]model.QuestionSnapshot, 0, len(t.Questions)),
	}
	for i := range t.Questions {
		q := &t.Questions[i]
		qs := model.QuestionSnapshot{
			ID:           q.ID,
			QuestionType: q.QuestionType,
			Points:       q.Points,
			Order:        q.Order,
			Required:     q.Required,
		}
		for j := range q.Options {
			qs.OptionIDs = append(qs.OptionIDs, q.Options[j].ID)
			if q.Options[j].IsCorrect {
				qs.CorrectOptionIDs = append(qs.CorrectOptionIDs, q.Options[j].ID)
			}
		}
		snap.MaxScore += q.Points
		snap.Questions = append(snap.Questions, qs)
	}
	return snap
}
