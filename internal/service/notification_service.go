package service

import (
	"context"
	"encoding/json"

	"tryout_lms_backend/internal/model"
	"tryout_lms_backend/internal/repository"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// NotificationService 通知：落库 + redis 频道发布。实际的设备推送由
// 订阅频道的外部 worker 完成，这里只保证记录可查、消息可达频道。
type NotificationService struct {
	Repo    *repository.NotificationRepository
	Redis   *redis.Client
	Channel string
	Logger  *zap.Logger
}

func NewNotificationService(repo *repository.NotificationRepository, rdb *redis.Client, channel string, logger *zap.Logger) *NotificationService {
	return &NotificationService{Repo: repo, Redis: rdb, Channel: channel, Logger: logger}
}

type RegisterTokenRequest struct {
	Token    string `json:"token" binding:"required"`
	Platform string `json:"platform" binding:"required,oneof=android ios web"`
}

// pushMessage 发布到推送频道的消息体
type pushMessage struct {
	UserID uint   `json:"userId,omitempty"` // 0 = broadcast
	Kind   string `json:"kind"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

func (s *NotificationService) RegisterToken(userID uint, req *RegisterTokenRequest) error {
	return s.Repo.RegisterToken(&model.DeviceToken{
		UserID:   userID,
		Token:    req.Token,
		Platform: req.Platform,
	})
}

func (s *NotificationService) UnregisterToken(userID uint, token string) error {
	return s.Repo.DeleteToken(userID, token)
}

// Notify 给单个用户落一条通知并发布到推送频道
func (s *NotificationService) Notify(userID uint, kind, title, body string) error {
	n := &model.Notification{
		UserID: userID,
		Title:  title,
		Body:   body,
		Kind:   kind,
	}
	if err := s.Repo.Create(n); err != nil {
		return err
	}
	s.publish(&pushMessage{UserID: userID, Kind: kind, Title: title, Body: body})
	return nil
}

// Broadcast 全员广播只发频道不逐人落库，订阅方自行决定投递范围
func (s *NotificationService) Broadcast(kind, title, body string) {
	s.publish(&pushMessage{Kind: kind, Title: title, Body: body})
}

func (s *NotificationService) List(userID uint, page, limit int) ([]model.Notification, int64, error) {
	return s.Repo.ListByUser(userID, page, limit)
}

func (s *NotificationService) MarkRead(userID, id uint) error {
	return s.Repo.MarkRead(userID, id)
}

func (s *NotificationService) publish(msg *pushMessage) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.Redis.Publish(context.Background(), s.Channel, data).Err(); err != nil {
		s.Logger.Warn("发布推送消息失败", zap.String("channel", s.Channel), zap.Error(err))
	}
}
