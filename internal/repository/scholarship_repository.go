package repository

import (
	"time"

	"tryout_lms_backend/internal/model"

	"gorm.io/gorm"
)

type ScholarshipRepository struct {
	DB *gorm.DB
}

func NewScholarshipRepository(db *gorm.DB) *ScholarshipRepository {
	return &ScholarshipRepository{DB: db}
}

func (r *ScholarshipRepository) Create(s *model.Scholarship) error {
	return r.DB.Create(s).Error
}

func (r *ScholarshipRepository) FindByID(id uint) (*model.Scholarship, error) {
	var s model.Scholarship
	err := r.DB.First(&s, id).Error
	return &s, err
}

// List openOnly 时只返回报名截止日未过的奖学金
func (r *ScholarshipRepository) List(page, limit int, openOnly bool) ([]model.Scholarship, int64, error) {
	var ss []model.Scholarship
	var total int64
	query := r.DB.Model(&model.Scholarship{})
	if openOnly {
		query = query.Where("closes_at IS NULL OR closes_at > ?", time.Now())
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("closes_at asc, created_at desc").Offset(offset).Limit(limit).Find(&ss).Error
	return ss, total, err
}

func (r *ScholarshipRepository) Update(s *model.Scholarship) error {
	return r.DB.Save(s).Error
}

func (r *ScholarshipRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Scholarship{}, id).Error
}
