package service

import (
	"errors"

	"tryout_lms_backend/internal/model"
	"tryout_lms_backend/internal/repository"

	"gorm.io/gorm"
)

var ErrCourseNotFound = errors.New("course not found")

type CourseService struct {
	Repo *repository.CourseRepository
}

func NewCourseService(repo *repository.CourseRepository) *CourseService {
	return &CourseService{Repo: repo}
}

type CourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	CoverURL    string `json:"coverUrl"`
	Category    string `json:"category"`
	IsPublished bool   `json:"isPublished"`
}

type MaterialRequest struct {
	Title    string `json:"title" binding:"required"`
	FileURL  string `json:"fileUrl" binding:"required"`
	MimeType string `json:"mimeType"`
	Order    int    `json:"order"`
}

func (s *CourseService) Create(req *CourseRequest) (*model.Course, error) {
	c := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		Category:    req.Category,
		IsPublished: req.IsPublished,
	}
	if err := s.Repo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CourseService) Get(id uint, publishedOnly bool) (*model.Course, error) {
	c, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	if publishedOnly && !c.IsPublished {
		return nil, ErrCourseNotFound
	}
	return c, nil
}

func (s *CourseService) List(page, limit int, category string, publishedOnly bool) ([]model.Course, int64, error) {
	return s.Repo.List(page, limit, category, publishedOnly)
}

func (s *CourseService) Update(id uint, req *CourseRequest) (*model.Course, error) {
	c, err := s.Get(id, false)
	if err != nil {
		return nil, err
	}
	c.Title = req.Title
	c.Description = req.Description
	c.CoverURL = req.CoverURL
	c.Category = req.Category
	c.IsPublished = req.IsPublished
	if err := s.Repo.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CourseService) Delete(id uint) error {
	if _, err := s.Get(id, false); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

func (s *CourseService) AddMaterial(courseID uint, req *MaterialRequest) (*model.CourseMaterial, error) {
	if _, err := s.Get(courseID, false); err != nil {
		return nil, err
	}
	m := &model.CourseMaterial{
		CourseID: courseID,
		Title:    req.Title,
		FileURL:  req.FileURL,
		MimeType: req.MimeType,
		Order:    req.Order,
	}
	if err := s.Repo.AddMaterial(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *CourseService) DeleteMaterial(id uint) error {
	return s.Repo.DeleteMaterial(id)
}
