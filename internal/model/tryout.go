package model

type QuestionType string

const (
	SingleChoice   QuestionType = "single_choice"
	MultipleChoice QuestionType = "multiple_choice"
	Essay          QuestionType = "essay"
)

// AutoGradable 单选/多选可自动判分，简答/论述只能人工批阅
func (t QuestionType) AutoGradable() bool {
	return t == SingleChoice || t == MultipleChoice
}

func (t QuestionType) Valid() bool {
	switch t {
	case SingleChoice, MultipleChoice, Essay:
		return true
	}
	return false
}

// swagger:model Tryout
type Tryout struct {
	BaseModel
	Title           string           `gorm:"size:255;not null" json:"title"`
	Description     string           `gorm:"type:text" json:"description"`
	DurationMinutes int              `gorm:"default:0" json:"durationMinutes"` // 0 = no time limit
	IsActive        bool             `gorm:"default:false;index" json:"isActive"`
	Questions       []TryoutQuestion `gorm:"foreignKey:TryoutID" json:"questions,omitempty"`
}

func (Tryout) TableName() string {
	return "tryouts"
}

// swagger:model TryoutQuestion
type TryoutQuestion struct {
	BaseModel
	TryoutID     uint             `gorm:"index;not null" json:"tryoutId"`
	QuestionType QuestionType     `gorm:"size:50;not null" json:"questionType"`
	Content      string           `gorm:"type:text;not null" json:"content"`
	ImageURL     string           `gorm:"size:255" json:"imageUrl,omitempty"`
	Points       int              `gorm:"not null" json:"points"`
	Order        int              `gorm:"default:0" json:"order"`
	Required     bool             `gorm:"default:false" json:"required"`
	Explanation  string           `gorm:"type:text" json:"explanation,omitempty"`
	Options      []QuestionOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (TryoutQuestion) TableName() string {
	return "tryout_questions"
}

// IsCorrect 不会出现在任何面向学生的响应里，序列化时由 service 层剥离
type QuestionOption struct {
	BaseModel
	QuestionID uint   `gorm:"index;not null" json:"questionId"`
	Text       string `gorm:"type:text;not null" json:"text"`
	Order      int    `gorm:"default:0" json:"order"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect,omitempty"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}
