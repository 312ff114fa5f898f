package model

import "time"

// swagger:model JobPosting
type JobPosting struct {
	BaseModel
	Title       string     `gorm:"size:255;not null" json:"title"`
	Company     string     `gorm:"size:255;not null" json:"company"`
	Location    string     `gorm:"size:255" json:"location"`
	Description string     `gorm:"type:text" json:"description"`
	SalaryRange string     `gorm:"size:100" json:"salaryRange"`
	ApplyURL    string     `gorm:"size:255" json:"applyUrl"`
	ExpiresAt   *time.Time `gorm:"index" json:"expiresAt,omitempty"`
}

func (JobPosting) TableName() string {
	return "job_postings"
}
