package repository

import (
	"time"

	"tryout_lms_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttemptRepository 持久化答卷与作答。并发正确性全部压在存储约束上：
// idx_user_tryout_active 保证同一 (user, tryout) 同时只有一份进行中的
// 答卷，idx_attempt_question 保证每题一行，finalize 用条件更新保证
// 终态只会被写入一次。
type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// Create 条件创建：若该用户在此 tryout 下已有进行中的答卷，
// 唯一索引冲突会以 gorm.ErrDuplicatedKey 返回。
func (r *AttemptRepository) Create(a *model.TryoutAttempt) error {
	return r.DB.Create(a).Error
}

func (r *AttemptRepository) FindByID(id string) (*model.TryoutAttempt, error) {
	var a model.TryoutAttempt
	err := r.DB.Where("id = ?", id).First(&a).Error
	return &a, err
}

func (r *AttemptRepository) ListByUser(userID uint, page, limit int) ([]model.TryoutAttempt, int64, error) {
	var as []model.TryoutAttempt
	var total int64
	query := r.DB.Model(&model.TryoutAttempt{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("started_at desc").Offset(offset).Limit(limit).Find(&as).Error
	return as, total, err
}

// UpsertAnswer 对 (attempt_id, question_id) 做单条原子写：
// 不存在则插入，存在则覆盖 value 与 points_awarded。
func (r *AttemptRepository) UpsertAnswer(ans *model.TryoutAnswer) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"value", "points_awarded", "updated_at",
		}),
	}).Create(ans).Error
}

func (r *AttemptRepository) ListAnswers(attemptID string) ([]model.TryoutAnswer, error) {
	var answers []model.TryoutAnswer
	err := r.DB.Where("attempt_id = ?", attemptID).
		Order("question_id asc").Find(&answers).Error
	return answers, err
}

// SumPoints 汇总已判分的作答，NULL（待人工批阅）按 0 计。
func (r *AttemptRepository) SumPoints(attemptID string) (int, error) {
	var sum int64
	err := r.DB.Model(&model.TryoutAnswer{}).
		Where("attempt_id = ?", attemptID).
		Select("COALESCE(SUM(points_awarded), 0)").
		Scan(&sum).Error
	return int(sum), err
}

// Finalize 条件更新终态：只有 is_completed 仍为 false 的那次调用会生效，
// 返回 false 表示别的请求已经完成了这份答卷。
func (r *AttemptRepository) Finalize(attemptID string, score int, endedAt time.Time) (bool, error) {
	res := r.DB.Model(&model.TryoutAttempt{}).
		Where("id = ? AND is_completed = ?", attemptID, false).
		Updates(map[string]interface{}{
			"score":        score,
			"ended_at":     endedAt,
			"is_completed": true,
			"active":       nil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
