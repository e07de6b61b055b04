package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prequaliq/prequaliq_backend/internal/models"
	"github.com/prequaliq/prequaliq_backend/internal/repository"
)

// AnnouncementService handles the portal announcement board
// #INTEGRATION_POINT: Admins author announcements; suppliers and entities read role feeds
type AnnouncementService interface {
	// Create creates a new announcement
	Create(ctx context.Context, adminID primitive.ObjectID, req AnnouncementRequest) (*models.Announcement, error)

	// Update updates an existing announcement
	Update(ctx context.Context, id primitive.ObjectID, req AnnouncementRequest) (*models.Announcement, error)

	// Delete deletes an announcement
	Delete(ctx context.Context, id primitive.ObjectID) error

	// ListForRole lists unexpired announcements visible to a role
	ListForRole(ctx context.Context, role models.UserRole, opts repository.PaginationOptions) (*repository.PaginatedResult[models.Announcement], error)

	// ListAll lists every announcement including expired ones (admin view)
	ListAll(ctx context.Context, opts repository.PaginationOptions) (*repository.PaginatedResult[models.Announcement], error)
}

// AnnouncementRequest carries announcement fields from the client
type AnnouncementRequest struct {
	Title     string
	Body      string
	Audience  models.AnnouncementAudience
	ExpiresAt *time.Time
}

// announcementService implements AnnouncementService
type announcementService struct {
	announcementRepo repository.AnnouncementRepository
}

// NewAnnouncementService creates a new announcement service
func NewAnnouncementService(announcementRepo repository.AnnouncementRepository) AnnouncementService {
	return &announcementService{announcementRepo: announcementRepo}
}

// Create creates a new announcement
func (s *announcementService) Create(ctx context.Context, adminID primitive.ObjectID, req AnnouncementRequest) (*models.Announcement, error) {
	if err := validateAnnouncement(req); err != nil {
		return nil, err
	}

	announcement := &models.Announcement{
		Title:     strings.TrimSpace(req.Title),
		Body:      strings.TrimSpace(req.Body),
		Audience:  req.Audience,
		ExpiresAt: req.ExpiresAt,
		CreatedBy: adminID,
	}
	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}
	return announcement, nil
}

// Update updates an existing announcement
func (s *announcementService) Update(ctx context.Context, id primitive.ObjectID, req AnnouncementRequest) (*models.Announcement, error) {
	if err := validateAnnouncement(req); err != nil {
		return nil, err
	}

	announcement, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	announcement.Title = strings.TrimSpace(req.Title)
	announcement.Body = strings.TrimSpace(req.Body)
	announcement.Audience = req.Audience
	announcement.ExpiresAt = req.ExpiresAt

	if err := s.announcementRepo.Update(ctx, announcement); err != nil {
		return nil, fmt.Errorf("failed to update announcement: %w", err)
	}
	return announcement, nil
}

// Delete deletes an announcement
func (s *announcementService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.announcementRepo.Delete(ctx, id)
}

// ListForRole lists unexpired announcements visible to a role
func (s *announcementService) ListForRole(ctx context.Context, role models.UserRole, opts repository.PaginationOptions) (*repository.PaginatedResult[models.Announcement], error) {
	return s.announcementRepo.ListForRole(ctx, role, opts)
}

// ListAll lists every announcement including expired ones (admin view)
func (s *announcementService) ListAll(ctx context.Context, opts repository.PaginationOptions) (*repository.PaginatedResult[models.Announcement], error) {
	return s.announcementRepo.ListAll(ctx, opts)
}

func validateAnnouncement(req AnnouncementRequest) error {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Body) == "" {
		return models.ErrInvalidInput
	}
	if req.Audience != "" && !req.Audience.IsValid() {
		return models.ErrInvalidAudience
	}
	return nil
}
