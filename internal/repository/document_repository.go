package repository

import (
	"tryout_lms_backend/internal/model"

	"gorm.io/gorm"
)

type DocumentRepository struct {
	DB *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

func (r *DocumentRepository) Create(d *model.Document) error {
	return r.DB.Create(d).Error
}

func (r *DocumentRepository) FindByID(id uint) (*model.Document, error) {
	var d model.Document
	err := r.DB.First(&d, id).Error
	return &d, err
}

func (r *DocumentRepository) List(page, limit int, keyword string) ([]model.Document, int64, error) {
	var ds []model.Document
	var total int64
	query := r.DB.Model(&model.Document{})
	if keyword != "" {
		query = query.Where("title LIKE ?", "%"+keyword+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&ds).Error
	return ds, total, err
}

func (r *DocumentRepository) Update(d *model.Document) error {
	return r.DB.Save(d).Error
}

func (r *DocumentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Document{}, id).Error
}

func (r *DocumentRepository) IncrementDownloads(id uint) error {
	return r.DB.Model(&model.Document{}).Where("id = ?", id).
		UpdateColumn("downloads", gorm.Expr("downloads + 1")).Error
}
