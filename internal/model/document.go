package model

// swagger:model Document
type Document struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	FileURL     string `gorm:"size:255;not null" json:"fileUrl"`
	MimeType    string `gorm:"size:100" json:"mimeType"`
	SizeBytes   int64  `gorm:"default:0" json:"sizeBytes"`
	UploaderID  uint   `gorm:"index" json:"uploaderId"`
	Downloads   int    `gorm:"default:0" json:"downloads"`
}

func (Document) TableName() string {
	return "documents"
}
