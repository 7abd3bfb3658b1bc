// internal/services/visit_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/easyfix/electrox-backend/internal/models"
	"github.com/easyfix/electrox-backend/internal/utils"
)

// VisitService records storefront traffic for the admin dashboard.
// One row per visitor; each tracked page view folds into that row.
type VisitService struct {
	db *gorm.DB
}

type TrackVisitRequest struct {
	AnonymousID string `json:"anonymous_id,omitempty" validate:"omitempty,max=100"`
	Path        string `json:"path" validate:"required,max=500"`
	Country     string `json:"country,omitempty" validate:"omitempty,max=100"`
}

func NewVisitService(db *gorm.DB) *VisitService {
	return &VisitService{db: db}
}

// TrackVisit upserts the visitor's row. Signed-in visitors are keyed by
// account, anonymous ones by the client-generated anonymous ID; a
// request carrying neither is rejected. Repeat views of a known path
// only bump LastVisitAt.
func (s *VisitService) TrackVisit(userID *uuid.UUID, req *TrackVisitRequest, userAgent string) (*models.Visit, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if userID == nil && req.AnonymousID == "" {
		return nil, errors.New("visitor identity is required")
	}

	query := s.db.Model(&models.Visit{})
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	} else {
		query = query.Where("anonymous_id = ?", req.AnonymousID)
	}

	var visit models.Visit
	err := query.First(&visit).Error
	if err == nil {
		if !visit.HasVisited(req.Path) {
			visit.PathsVisited = append(visit.PathsVisited, req.Path)
		}
		visit.LastVisitAt = time.Now()
		if visit.UserAgent == "" {
			visit.UserAgent = userAgent
		}
		if err := s.db.Save(&visit).Error; err != nil {
			return nil, fmt.Errorf("failed to update visit: %w", err)
		}
		return &visit, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	country := req.Country
	if country == "" {
		country = "Unknown"
	}

	visit = models.Visit{
		UserID:       userID,
		AnonymousID:  req.AnonymousID,
		PathsVisited: []string{req.Path},
		UserAgent:    userAgent,
		Country:      country,
		LastVisitAt:  time.Now(),
	}
	if err := s.db.Create(&visit).Error; err != nil {
		return nil, fmt.Errorf("failed to record visit: %w", err)
	}

	return &visit, nil
}

func (s *VisitService) GetVisit(id uuid.UUID) (*models.Visit, error) {
	var visit models.Visit
	if err := s.db.Preload("User").First(&visit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("visit not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &visit, nil
}

func (s *VisitService) ListVisits(params utils.PaginationParams) ([]models.Visit, int64, error) {
	query := s.db.Model(&models.Visit{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count visits: %w", err)
	}

	allowedSortFields := []string{"created_at", "last_visit_at", "country"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var visits []models.Visit
	if err := query.Preload("User").Find(&visits).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch visits: %w", err)
	}

	return visits, total, nil
}

func (s *VisitService) DeleteVisit(id uuid.UUID) error {
	result := s.db.Delete(&models.Visit{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete visit: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("visit not found")
	}
	return nil
}
