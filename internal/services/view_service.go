package services

import (
	"time"

	"gigmarket_backend/internal/models"
	"gigmarket_backend/internal/repositories"
	"gigmarket_backend/internal/services/dto"
	"gigmarket_backend/pkg/apperrors"
)

// ViewService rate-limits view counting: one increment per (gig, viewer)
// per rolling window. Anonymous viewers share a single NULL identity per
// gig, which undercounts them on purpose.
type ViewService struct {
	viewRepo *repositories.ViewRepository
	gigRepo  *repositories.GigRepository
	window   time.Duration
}

func NewViewService(viewRepo *repositories.ViewRepository, gigRepo *repositories.GigRepository, window time.Duration) *ViewService {
	return &ViewService{
		viewRepo: viewRepo,
		gigRepo:  gigRepo,
		window:   window,
	}
}

// RecordView counts the view unless the same viewer was already counted
// inside the window, and returns the current count either way. The increment
// itself is a single in-place update; two distinct viewers racing each other
// both land.
func (s *ViewService) RecordView(gigID string, viewerID *string) (*dto.ViewResponse, error) {
	if _, err := s.gigRepo.FindByID(gigID); err != nil {
		if apperrors.Is(err, repositories.ErrGigNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	since := time.Now().Add(-s.window)
	seen, err := s.viewRepo.HasRecent(gigID, viewerID, since)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	counted := false
	if !seen {
		view := &models.View{GigID: gigID, ViewerID: viewerID}
		if err := s.viewRepo.RecordAndIncrement(view); err != nil {
			return nil, apperrors.InternalError(err)
		}
		counted = true
	}

	count, err := s.viewRepo.CurrentViewCount(gigID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.ViewResponse{
		GigID:     gigID,
		ViewCount: count,
		Counted:   counted,
	}, nil
}

// PurgeExpired drops view rows older than the window. The worker calls this;
// rows outside the window no longer influence dedup decisions anyway, so
// purging is an eviction, not a behavior change.
func (s *ViewService) PurgeExpired() (int64, error) {
	cutoff := time.Now().Add(-s.window)
	return s.viewRepo.DeleteOlderThan(cutoff)
}
