package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tryout_lms_backend/internal/model"
	"tryout_lms_backend/internal/repository"
	"tryout_lms_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	tryoutDetailKeyPrefix = "tryout:detail:"
	tryoutDetailTTL       = 10 * time.Minute
)

// TryoutService 试卷编排（管理端）与学生端只读目录。学生端视图经过
// 净化：判分 key（isCorrect）与解析不出门，并走 redis 缓存。
type TryoutService struct {
	Repo   *repository.TryoutRepository
	Redis  *redis.Client
	Logger *zap.Logger
}

func NewTryoutService(repo *repository.TryoutRepository, rdb *redis.Client, logger *zap.Logger) *TryoutService {
	return &TryoutService{Repo: repo, Redis: rdb, Logger: logger}
}

type TryoutRequest struct {
	Title           string `json:"title" binding:"required"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"durationMinutes" binding:"min=0"`
	IsActive        bool   `json:"isActive"`
}

type QuestionOptionRequest struct {
	Text      string `json:"text" binding:"required"`
	Order     int    `json:"order"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionRequest struct {
	QuestionType model.QuestionType      `json:"questionType" binding:"required"`
	Content      string                  `json:"content" binding:"required"`
	ImageURL     string                  `json:"imageUrl"`
	Points       int                     `json:"points" binding:"required,min=1"`
	Order        int                     `json:"order"`
	Required     bool                    `json:"required"`
	Explanation  string                  `json:"explanation"`
	Options      []QuestionOptionRequest `json:"options"`
}

// StudentTryoutView 学生端试卷视图，选项不携带 isCorrect
type StudentTryoutView struct {
	ID              uint                  `json:"id"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	DurationMinutes int                   `json:"durationMinutes"`
	MaxScore        int                   `json:"maxScore"`
	Questions       []StudentQuestionView `json:"questions"`
}

type StudentQuestionView struct {
	ID           uint                `json:"id"`
	QuestionType model.QuestionType  `json:"questionType"`
	Content      string              `json:"content"`
	ImageURL     string              `json:"imageUrl,omitempty"`
	Points       int                 `json:"points"`
	Order        int                 `json:"order"`
	Required     bool                `json:"required"`
	Options      []StudentOptionView `json:"options,omitempty"`
}

type StudentOptionView struct {
	ID    uint   `json:"id"`
	Text  string `json:"text"`
	Order int    `json:"order"`
}

func (s *TryoutService) Create(req *TryoutRequest) (*model.Tryout, error) {
	t := &model.Tryout{
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		IsActive:        req.IsActive,
	}
	if err := s.Repo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TryoutService) Update(id uint, req *TryoutRequest) (*model.Tryout, error) {
	t, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTryoutNotFound
		}
		return nil, err
	}
	t.Title = req.Title
	t.Description = req.Description
	t.DurationMinutes = req.DurationMinutes
	t.IsActive = req.IsActive
	if err := s.Repo.Update(t); err != nil {
		return nil, err
	}
	s.invalidate(id)
	return t, nil
}

func (s *TryoutService) Delete(id uint) error {
	if _, err := s.Repo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrTryoutNotFound
		}
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.invalidate(id)
	return nil
}

// GetFull 管理端完整视图，含判分 key
func (s *TryoutService) GetFull(id uint) (*model.Tryout, error) {
	t, err := s.Repo.FindWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTryoutNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *TryoutService) List(page, limit int, activeOnly bool) ([]model.Tryout, int64, error) {
	return s.Repo.List(page, limit, activeOnly)
}

// GetForStudent 学生端净化视图，redis 缓存 10 分钟，编排改动时失效
func (s *TryoutService) GetForStudent(id uint) (*StudentTryoutView, error) {
	ctx := context.Background()
	key := fmt.Sprintf("%s%d", tryoutDetailKeyPrefix, id)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var view StudentTryoutView
			if err := json.Unmarshal([]byte(cached), &view); err == nil {
				return &view, nil
			}
		}
	}

	t, err := s.Repo.FindWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTryoutNotFound
		}
		return nil, err
	}
	if !t.IsActive {
		return nil, util.ErrTryoutNotFound
	}

	view := sanitize(t)

	if s.Redis != nil {
		if data, err := json.Marshal(view); err == nil {
			if err := s.Redis.Set(ctx, key, data, tryoutDetailTTL).Err(); err != nil {
				s.Logger.Warn("缓存试卷视图失败", zap.Uint("tryoutId", id), zap.Error(err))
			}
		}
	}
	return view, nil
}

func (s *TryoutService) AddQuestion(tryoutID uint, req *QuestionRequest) (*model.TryoutQuestion, error) {
	if _, err := s.Repo.FindByID(tryoutID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTryoutNotFound
		}
		return nil, err
	}
	if err := validateQuestion(req); err != nil {
		return nil, err
	}

	q := &model.TryoutQuestion{
		TryoutID:     tryoutID,
		QuestionType: req.QuestionType,
		Content:      req.Content,
		ImageURL:     req.ImageURL,
		Points:       req.Points,
		Order:        req.Order,
		Required:     req.Required,
		Explanation:  req.Explanation,
	}
	for _, o := range req.Options {
		q.Options = append(q.Options, model.QuestionOption{
			Text:      o.Text,
			Order:     o.Order,
			IsCorrect: o.IsCorrect,
		})
	}
	if err := s.Repo.CreateQuestion(q); err != nil {
		return nil, err
	}
	s.invalidate(tryoutID)
	return q, nil
}

func (s *TryoutService) UpdateQuestion(questionID uint, req *QuestionRequest) (*model.TryoutQuestion, error) {
	q, err := s.Repo.FindQuestionByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTryoutNotFound
		}
		return nil, err
	}
	if err := validateQuestion(req); err != nil {
		return nil, err
	}

	q.QuestionType = req.QuestionType
	q.Content = req.Content
	q.ImageURL = req.ImageURL
	q.Points = req.Points
	q.Order = req.Order
	q.Required = req.Required
	q.Explanation = req.Explanation
	q.Options = nil
	if err := s.Repo.UpdateQuestion(q); err != nil {
		return nil, err
	}

	options := make([]model.QuestionOption, 0, len(req.Options))
	for _, o := range req.Options {
		options = append(options, model.QuestionOption{
			Text:      o.Text,
			Order:     o.Order,
			IsCorrect: o.IsCorrect,
		})
	}
	if err := s.Repo.ReplaceOptions(questionID, options); err != nil {
		return nil, err
	}
	s.invalidate(q.TryoutID)
	return s.Repo.FindQuestionByID(questionID)
}

func (s *TryoutService) DeleteQuestion(questionID uint) error {
	q, err := s.Repo.FindQuestionByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrTryoutNotFound
		}
		return err
	}
	if err := s.Repo.DeleteQuestion(questionID); err != nil {
		return err
	}
	s.invalidate(q.TryoutID)
	return nil
}

func (s *TryoutService) invalidate(tryoutID uint) {
	if s.Redis == nil {
		return
	}
	key := fmt.Sprintf("%s%d", tryoutDetailKeyPrefix, tryoutID)
	if err := s.Redis.Del(context.Background(), key).Err(); err != nil {
		s.Logger.Warn("清除试卷缓存失败", zap.Uint("tryoutId", tryoutID), zap.Error(err))
	}
}

// validateQuestion 题型结构约束：选择题必须带选项且正确选项数目
// 与题型匹配，问答题不允许带选项。
func validateQuestion(req *QuestionRequest) error {
	if !req.QuestionType.Valid() {
		return fmt.Errorf("%w: unknown question type %q", util.ErrInvalidQuestion, req.QuestionType)
	}
	correct := 0
	for _, o := range req.Options {
		if o.IsCorrect {
			correct++
		}
	}
	switch req.QuestionType {
	case model.SingleChoice:
		if len(req.Options) < 2 || correct != 1 {
			return fmt.Errorf("%w: single choice needs at least 2 options with exactly 1 correct", util.ErrInvalidQuestion)
		}
	case model.MultipleChoice:
		if len(req.Options) < 2 || correct < 1 {
			return fmt.Errorf("%w: multiple choice needs at least 2 options with at least 1 correct", util.ErrInvalidQuestion)
		}
	case model.Essay:
		if len(req.Options) > 0 {
			return fmt.Errorf("%w: essay question must not have options", util.ErrInvalidQuestion)
		}
	}
	return nil
}

func sanitize(t *model.Tryout) *StudentTryoutView {
	view := &StudentTryoutView{
		ID:              t.ID,
		Title:           t.Title,
		Description:     t.Description,
		DurationMinutes: t.DurationMinutes,
	}
	for i := range t.Questions {
		q := &t.Questions[i]
		qv := StudentQuestionView{
			ID:           q.ID,
			QuestionType: q.QuestionType,
			Content:      q.Content,
			ImageURL:     q.ImageURL,
			Points:       q.Points,
			Order:        q.Order,
			Required:     q.Required,
		}
		for j := range q.Options {
			qv.Options = append(qv.Options, StudentOptionView{
				ID:    q.Options[j].ID,
				Text:  q.Options[j].Text,
				Order: q.Options[j].Order,
			})
		}
		view.MaxScore += q.Points
		view.Questions = append(view.Questions, qv)
	}
	return view
}
