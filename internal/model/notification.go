package model

import "time"

// DeviceToken 推送令牌注册表，每个设备一行，按 (user, token) 去重
type DeviceToken struct {
	BaseModel
	UserID   uint   `gorm:"not null;uniqueIndex:idx_user_token" json:"userId"`
	Token    string `gorm:"size:255;not null;uniqueIndex:idx_user_token" json:"token"`
	Platform string `gorm:"size:20" json:"platform"` // android / ios / web
}

func (DeviceToken) TableName() string {
	return "device_tokens"
}

// Notification 落库的通知记录；真正的推送投递由外部 worker 消费
// redis 频道完成，core 只负责写记录和发布。
// swagger:model Notification
type Notification struct {
	BaseModel
	UserID uint       `gorm:"index;not null" json:"userId"`
	Title  string     `gorm:"size:255;not null" json:"title"`
	Body   string     `gorm:"type:text" json:"body"`
	Kind   string     `gorm:"size:50;index" json:"kind"` // announcement / tryout_finished / ...
	ReadAt *time.Time `json:"readAt,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
