package repository

import (
	"tryout_lms_backend/internal/model"

	"gorm.io/gorm"
)

type AnnouncementRepository struct {
	DB *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) *AnnouncementRepository {
	return &AnnouncementRepository{DB: db}
}

func (r *AnnouncementRepository) Create(a *model.Announcement) error {
	return r.DB.Create(a).Error
}

func (r *AnnouncementRepository) FindByID(id uint) (*model.Announcement, error) {
	var a model.Announcement
	err := r.DB.First(&a, id).Error
	return &a, err
}

// List 置顶优先，其余按发布时间倒序
func (r *AnnouncementRepository) List(page, limit int) ([]model.Announcement, int64, error) {
	var as []model.Announcement
	var total int64
	query := r.DB.Model(&model.Announcement{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("is_pinned desc, created_at desc").Offset(offset).Limit(limit).Find(&as).Error
	return as, total, err
}

func (r *AnnouncementRepository) Update(a *model.Announcement) error {
	return r.DB.Save(a).Error
}

func (r *AnnouncementRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Announcement{}, id).Error
}
