package services

import (
	"math"

	"gigmarket_backend/internal/models"
	"gigmarket_backend/internal/repositories"
	"gigmarket_backend/internal/services/dto"
	"gigmarket_backend/pkg/apperrors"
)

type GigService struct {
	gigRepo *repositories.GigRepository
}

func NewGigService(gigRepo *repositories.GigRepository) *GigService {
	return &GigService{gigRepo: gigRepo}
}

func (s *GigService) CreateGig(ownerID string, req *dto.CreateGigRequest) (*models.Gig, error) {
	gig := &models.Gig{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		OwnerID:     ownerID,
		Status:      models.GigStatusOpen,
	}

	if err := s.gigRepo.Create(gig); err != nil {
		return nil, apperrors.InternalError(err)
	}

	created, err := s.gigRepo.FindByID(gig.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return created, nil
}

func (s *GigService) GetGig(gigID string) (*models.Gig, error) {
	gig, err := s.gigRepo.FindByID(gigID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrGigNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return gig, nil
}

// ListGigs returns the public listing: open gigs only, optional free-text
// search, newest first.
func (s *GigService) ListGigs(query *dto.GigListQuery) (*dto.GigListResponse, error) {
	criteria := repositories.GigCriteria{
		Search: query.Search,
		Page:   query.Page,
		Limit:  query.Limit,
	}
	if criteria.Page <= 0 {
		criteria.Page = 1
	}
	if criteria.Limit <= 0 {
		criteria.Limit = 10
	}

	gigs, total, err := s.gigRepo.ListOpen(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(criteria.Limit)))

	return &dto.GigListResponse{
		Items:      gigs,
		Page:       criteria.Page,
		Limit:      criteria.Limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (s *GigService) GetMyGigs(ownerID string) ([]models.Gig, error) {
	gigs, err := s.gigRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return gigs, nil
}

// DeleteGig removes an open gig owned by the requester. The openness check
// is embedded in the delete itself, so a hire racing this call cannot leave
// an assigned gig half-deleted: whoever's guard matches first wins.
func (s *GigService) DeleteGig(gigID, requesterID string) error {
	gig, err := s.gigRepo.FindByID(gigID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrGigNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if gig.OwnerID != requesterID {
		return apperrors.NewForbiddenError("Not authorized to delete this gig")
	}

	rows, err := s.gigRepo.DeleteIfOpen(gigID, requesterID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if rows == 0 {
		return apperrors.ErrGigAlreadyAssigned
	}

	return nil
}
