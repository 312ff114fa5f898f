package repository

import (
	"tryout_lms_backend/internal/model"

	"gorm.io/gorm"
)

type TryoutRepository struct {
	DB *gorm.DB
}

func NewTryoutRepository(db *gorm.DB) *TryoutRepository {
	return &TryoutRepository{DB: db}
}

func (r *TryoutRepository) Create(t *model.Tryout) error {
	return r.DB.Create(t).Error
}

func (r *TryoutRepository) FindByID(id uint) (*model.Tryout, error) {
	var t model.Tryout
	err := r.DB.First(&t, id).Error
	return &t, err
}

// FindWithQuestions 取试卷完整结构（题目按 order 排序，含选项与判分 key），
// start 时以此构建冻结快照。
func (r *TryoutRepository) FindWithQuestions(id uint) (*model.Tryout, error) {
	var t model.Tryout
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("`order` asc, id asc")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("`order` asc, id asc")
		}).
		First(&t, id).Error
	return &t, err
}

func (r *TryoutRepository) List(page, limit int, activeOnly bool) ([]model.Tryout, int64, error) {
	var ts []model.Tryout
	var total int64
	query := r.DB.Model(&model.Tryout{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&ts).Error
	return ts, total, err
}

func (r *TryoutRepository) Update(t *model.Tryout) error {
	return r.DB.Save(t).Error
}

func (r *TryoutRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Tryout{}, id).Error
}

func (r *TryoutRepository) CreateQuestion(q *model.TryoutQuestion) error {
	return r.DB.Create(q).Error
}

func (r *TryoutRepository) FindQuestionByID(id uint) (*model.TryoutQuestion, error) {
	var q model.TryoutQuestion
	err := r.DB.Preload("Options").First(&q, id).Error
	return &q, err
}

func (r *TryoutRepository) UpdateQuestion(q *model.TryoutQuestion) error {
	return r.DB.Save(q).Error
}

func (r *TryoutRepository) DeleteQuestion(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.QuestionOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.TryoutQuestion{}, id).Error
	})
}

// ReplaceOptions 整体替换题目选项（编辑题目时使用）
func (r *TryoutRepository) ReplaceOptions(questionID uint, options []model.QuestionOption) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", questionID).Delete(&model.QuestionOption{}).Error; err != nil {
			return err
		}
		if len(options) == 0 {
			return nil
		}
		for i := range options {
			options[i].QuestionID = questionID
		}
		return tx.Create(&options).Error
	})
}
