package repository

import (
	"time"

	"tryout_lms_backend/internal/model"

	"gorm.io/gorm"
)

type JobRepository struct {
	DB *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{DB: db}
}

func (r *JobRepository) Create(j *model.JobPosting) error {
	return r.DB.Create(j).Error
}

func (r *JobRepository) FindByID(id uint) (*model.JobPosting, error) {
	var j model.JobPosting
	err := r.DB.First(&j, id).Error
	return &j, err
}

func (r *JobRepository) List(page, limit int, keyword string, openOnly bool) ([]model.JobPosting, int64, error) {
	var js []model.JobPosting
	var total int64
	query := r.DB.Model(&model.JobPosting{})
	if keyword != "" {
		query = query.Where("title LIKE ? OR company LIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}
	if openOnly {
		query = query.Where("expires_at IS NULL OR expires_at > ?", time.Now())
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&js).Error
	return js, total, err
}

func (r *JobRepository) Update(j *model.JobPosting) error {
	return r.DB.Save(j).Error
}

func (r *JobRepository) Delete(id uint) error {
	return r.DB.Delete(&model.JobPosting{}, id).Error
}
