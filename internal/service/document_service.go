package service

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"tryout_lms_backend/internal/model"
	"tryout_lms_backend/internal/repository"

	"gorm.io/gorm"
)

var ErrDocumentNotFound = errors.New("document not found")

type DocumentService struct {
	Repo    *repository.DocumentRepository
	Storage *StorageService
}

func NewDocumentService(repo *repository.DocumentRepository, storage *StorageService) *DocumentService {
	return &DocumentService{Repo: repo, Storage: storage}
}

// Upload 先上传文件再落元数据记录
func (s *DocumentService) Upload(uploaderID uint, title, description string, file *multipart.FileHeader) (*model.Document, error) {
	ext := filepath.Ext(file.Filename)
	objectName := fmt.Sprintf("documents/%d_%d%s", uploaderID, time.Now().UnixNano(), ext)

	url, err := s.Storage.Upload(file, objectName)
	if err != nil {
		return nil, err
	}

	d := &model.Document{
		Title:       title,
		Description: description,
		FileURL:     url,
		MimeType:    file.Header.Get("Content-Type"),
		SizeBytes:   file.Size,
		UploaderID:  uploaderID,
	}
	if err := s.Repo.Create(d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DocumentService) Get(id uint) (*model.Document, error) {
	d, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *DocumentService) List(page, limit int, keyword string) ([]model.Document, int64, error) {
	return s.Repo.List(page, limit, keyword)
}

// Download 返回文件地址并累加下载计数
func (s *DocumentService) Download(id uint) (string, error) {
	d, err := s.Get(id)
	if err != nil {
		return "", err
	}
	if err := s.Repo.IncrementDownloads(id); err != nil {
		return "", err
	}
	return d.FileURL, nil
}

func (s *DocumentService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}
