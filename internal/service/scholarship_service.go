package service

import (
	"errors"
	"time"

	"tryout_lms_backend/internal/model"
	"tryout_lms_backend/internal/repository"

	"gorm.io/gorm"
)

var ErrScholarshipNotFound = errors.New("scholarship not found")

type ScholarshipService struct {
	Repo *repository.ScholarshipRepository
}

func NewScholarshipService(repo *repository.ScholarshipRepository) *ScholarshipService {
	return &ScholarshipService{Repo: repo}
}

type ScholarshipRequest struct {
	Title        string     `json:"title" binding:"required"`
	Organizer    string     `json:"organizer"`
	Description  string     `json:"description"`
	Requirements string     `json:"requirements"`
	Amount       string     `json:"amount"`
	ApplyURL     string     `json:"applyUrl"`
	OpensAt      *time.Time `json:"opensAt"`
	ClosesAt     *time.Time `json:"closesAt"`
}

func (s *ScholarshipService) Create(req *ScholarshipRequest) (*model.Scholarship, error) {
	sc := &model.Scholarship{
		Title:        req.Title,
		Organizer:    req.Organizer,
		Description:  req.Description,
		Requirements: req.Requirements,
		Amount:       req.Amount,
		ApplyURL:     req.ApplyURL,
		OpensAt:      req.OpensAt,
		ClosesAt:     req.ClosesAt,
	}
	if err := s.Repo.Create(sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *ScholarshipService) Get(id uint) (*model.Scholarship, error) {
	sc, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScholarshipNotFound
		}
		return nil, err
	}
	return sc, nil
}

func (s *ScholarshipService) List(page, limit int, openOnly bool) ([]model.Scholarship, int64, error) {
	return s.Repo.List(page, limit, openOnly)
}

func (s *ScholarshipService) Update(id uint, req *ScholarshipRequest) (*model.Scholarship, error) {
	sc, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	sc.Title = req.Title
	sc.Organizer = req.Organizer
	sc.Description = req.Description
	sc.Requirements = req.Requirements
	sc.Amount = req.Amount
	sc.ApplyURL = req.ApplyURL
	sc.OpensAt = req.OpensAt
	sc.ClosesAt = req.ClosesAt
	if err := s.Repo.Update(sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *ScholarshipService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}
