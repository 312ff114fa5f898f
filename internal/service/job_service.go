package service

import (
	"errors"
	"time"

	"tryout_lms_backend/internal/model"
	"tryout_lms_backend/internal/repository"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job posting not found")

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

type JobRequest struct {
	Title       string     `json:"title" binding:"required"`
	Company     string     `json:"company" binding:"required"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	SalaryRange string     `json:"salaryRange"`
	ApplyURL    string     `json:"applyUrl"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

func (s *JobService) Create(req *JobRequest) (*model.JobPosting, error) {
	j := &model.JobPosting{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Description: req.Description,
		SalaryRange: req.SalaryRange,
		ApplyURL:    req.ApplyURL,
		ExpiresAt:   req.ExpiresAt,
	}
	if err := s.Repo.Create(j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *JobService) Get(id uint) (*model.JobPosting, error) {
	j, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return j, nil
}

func (s *JobService) List(page, limit int, keyword string, openOnly bool) ([]model.JobPosting, int64, error) {
	return s.Repo.List(page, limit, keyword, openOnly)
}

func (s *JobService) Update(id uint, req *JobRequest) (*model.JobPosting, error) {
	j, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	j.Title = req.Title
	j.Company = req.Company
	j.Location = req.Location
	j.Description = req.Description
	j.SalaryRange = req.SalaryRange
	j.ApplyURL = req.ApplyURL
	j.ExpiresAt = req.ExpiresAt
	if err := s.Repo.Update(j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *JobService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}
