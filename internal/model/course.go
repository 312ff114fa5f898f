package model

// swagger:model Course
type Course struct {
	BaseModel
	Title       string           `gorm:"size:255;not null" json:"title"`
	Description string           `gorm:"type:text" json:"description"`
	CoverURL    string           `gorm:"size:255" json:"coverUrl"`
	Category    string           `gorm:"size:100;index" json:"category"`
	IsPublished bool             `gorm:"default:false;index" json:"isPublished"`
	Materials   []CourseMaterial `gorm:"foreignKey:CourseID" json:"materials,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

type CourseMaterial struct {
	BaseModel
	CourseID uint   `gorm:"index;not null" json:"courseId"`
	Title    string `gorm:"size:255;not null" json:"title"`
	FileURL  string `gorm:"size:255;not null" json:"fileUrl"`
	MimeType string `gorm:"size:100" json:"mimeType"`
	Order    int    `gorm:"default:0" json:"order"`
}

func (CourseMaterial) TableName() string {
	return "course_materials"
}
