package model

import "time"

// swagger:model Announcement
type Announcement struct {
	BaseModel
	Title       string     `gorm:"size:255;not null" json:"title"`
	Body        string     `gorm:"type:text;not null" json:"body"`
	AuthorID    uint       `gorm:"index" json:"authorId"`
	IsPinned    bool       `gorm:"default:false" json:"isPinned"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

func (Announcement) TableName() string {
	return "announcements"
}
