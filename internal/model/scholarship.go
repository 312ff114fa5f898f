package model

import "time"

// swagger:model Scholarship
type Scholarship struct {
	BaseModel
	Title        string     `gorm:"size:255;not null" json:"title"`
	Organizer    string     `gorm:"size:255" json:"organizer"`
	Description  string     `gorm:"type:text" json:"description"`
	Requirements string     `gorm:"type:text" json:"requirements"`
	Amount       string     `gorm:"size:100" json:"amount"`
	ApplyURL     string     `gorm:"size:255" json:"applyUrl"`
	OpensAt      *time.Time `json:"opensAt,omitempty"`
	ClosesAt     *time.Time `gorm:"index" json:"closesAt,omitempty"`
}

func (Scholarship) TableName() string {
	return "scholarships"
}
