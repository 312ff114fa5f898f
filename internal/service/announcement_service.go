package service

import (
	"errors"
	"time"

	"tryout_lms_backend/internal/model"
	"tryout_lms_backend/internal/repository"

	"gorm.io/gorm"
)

var ErrAnnouncementNotFound = errors.New("announcement not found")

// AnnouncementService 公告管理。发布公告时同步经 NotificationService
// 给全体用户落通知并广播到推送频道。
type AnnouncementService struct {
	Repo          *repository.AnnouncementRepository
	Notifications *NotificationService
}

func NewAnnouncementService(repo *repository.AnnouncementRepository, notifications *NotificationService) *AnnouncementService {
	return &AnnouncementService{Repo: repo, Notifications: notifications}
}

type AnnouncementRequest struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
	IsPinned bool   `json:"isPinned"`
}

func (s *AnnouncementService) Create(authorID uint, req *AnnouncementRequest) (*model.Announcement, error) {
	now := time.Now()
	a := &model.Announcement{
		Title:       req.Title,
		Body:        req.Body,
		AuthorID:    authorID,
		IsPinned:    req.IsPinned,
		PublishedAt: &now,
	}
	if err := s.Repo.Create(a); err != nil {
		return nil, err
	}
	if s.Notifications != nil {
		s.Notifications.Broadcast("announcement", a.Title, a.Body)
	}
	return a, nil
}

func (s *AnnouncementService) Get(id uint) (*model.Announcement, error) {
	a, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *AnnouncementService) List(page, limit int) ([]model.Announcement, int64, error) {
	return s.Repo.List(page, limit)
}

func (s *AnnouncementService) Update(id uint, req *AnnouncementRequest) (*model.Announcement, error) {
	a, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	a.Title = req.Title
	a.Body = req.Body
	a.IsPinned = req.IsPinned
	if err := s.Repo.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AnnouncementService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}
