package repository

import (
	"time"

	"tryout_lms_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

// RegisterToken 同一 (user, token) 重复注册时只刷新 platform
func (r *NotificationRepository) RegisterToken(t *model.DeviceToken) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"platform", "updated_at"}),
	}).Create(t).Error
}

func (r *NotificationRepository) DeleteToken(userID uint, token string) error {
	return r.DB.Where("user_id = ? AND token = ?", userID, token).
		Delete(&model.DeviceToken{}).Error
}

func (r *NotificationRepository) TokensForUser(userID uint) ([]model.DeviceToken, error) {
	var ts []model.DeviceToken
	err := r.DB.Where("user_id = ?", userID).Find(&ts).Error
	return ts, err
}

func (r *NotificationRepository) Create(n *model.Notification) error {
	return r.DB.Create(n).Error
}

func (r *NotificationRepository) ListByUser(userID uint, page, limit int) ([]model.Notification, int64, error) {
	var ns []model.Notification
	var total int64
	query := r.DB.Model(&model.Notification{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&ns).Error
	return ns, total, err
}

func (r *NotificationRepository) MarkRead(userID uint, id uint) error {
	now := time.Now()
	return r.DB.Model(&model.Notification{}).
		Where("id = ? AND user_id = ? AND read_at IS NULL", id, userID).
		Update("read_at", now).Error
}
