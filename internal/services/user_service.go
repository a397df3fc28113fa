package services

import (
	"gigmarket_backend/internal/models"
	"gigmarket_backend/internal/repositories"
	"gigmarket_backend/internal/services/dto"
	"gigmarket_backend/pkg/apperrors"
)

type UserService struct {
	userRepo *repositories.UserRepository
	bidRepo  *repositories.BidRepository
	gigRepo  *repositories.GigRepository
}

func NewUserService(
	userRepo *repositories.UserRepository,
	bidRepo *repositories.BidRepository,
	gigRepo *repositories.GigRepository,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		bidRepo:  bidRepo,
		gigRepo:  gigRepo,
	}
}

// GetProfile returns a user with activity stats. Stats are computed from
// both sides of the marketplace because there is no role column: the same
// account may have posted gigs and won hires.
func (s *UserService) GetProfile(userID string) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	stats, err := s.collectStats(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.UserProfileResponse{
		User:  *user,
		Stats: *stats,
	}, nil
}

func (s *UserService) collectStats(userID string) (*models.UserStats, error) {
	var stats models.UserStats

	totalBids, err := s.bidRepo.CountByFreelancer(userID)
	if err != nil {
		return nil, err
	}
	stats.TotalBids = totalBids

	hiredCount, earnings, err := s.bidRepo.HiredStats(userID)
	if err != nil {
		return nil, err
	}
	stats.HiredCount = hiredCount
	stats.TotalEarnings = earnings

	totalGigs, err := s.gigRepo.CountByOwner(userID)
	if err != nil {
		return nil, err
	}
	stats.TotalGigs = totalGigs

	return &stats, nil
}
