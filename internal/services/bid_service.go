package services

import (
	"gigmarket_backend/internal/logger"
	"gigmarket_backend/internal/models"
	"gigmarket_backend/internal/repositories"
	"gigmarket_backend/internal/services/dto"
	"gigmarket_backend/pkg/apperrors"
)

// BidService is the bid ledger. It owns bid creation (with the openness,
// owner-exclusion and uniqueness preconditions) and every bid read path.
// Bid status transitions are not its business; only the hire transactor
// writes those.
type BidService struct {
	bidRepo             *repositories.BidRepository
	gigRepo             *repositories.GigRepository
	notificationService *NotificationService
}

func NewBidService(
	bidRepo *repositories.BidRepository,
	gigRepo *repositories.GigRepository,
	notificationService *NotificationService,
) *BidService {
	return &BidService{
		bidRepo:             bidRepo,
		gigRepo:             gigRepo,
		notificationService: notificationService,
	}
}

// SubmitBid checks the preconditions against current data, inserts the bid,
// then fans out notifications. The fan-out is fire-and-forget: once the bid
// row is committed the call succeeds no matter what dispatch does.
func (s *BidService) SubmitBid(freelancerID string, req *dto.CreateBidRequest) (*models.Bid, error) {
	gig, err := s.gigRepo.FindByID(req.GigID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrGigNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if gig.Status != models.GigStatusOpen {
		return nil, apperrors.ErrGigClosed
	}

	if gig.OwnerID == freelancerID {
		return nil, apperrors.ErrSelfBidForbidden
	}

	// Friendly duplicate check; the unique index is what actually holds
	// under concurrent submissions.
	if _, err := s.bidRepo.FindByGigAndFreelancer(req.GigID, freelancerID); err == nil {
		return nil, apperrors.ErrDuplicateBid
	} else if !apperrors.Is(err, repositories.ErrBidNotFound) {
		return nil, apperrors.InternalError(err)
	}

	bid := &models.Bid{
		GigID:        req.GigID,
		FreelancerID: freelancerID,
		Message:      req.Message,
		Price:        req.Price,
		Status:       models.BidStatusPending,
	}

	// Competitors are collected before the insert so the new bid's author
	// is excluded by construction.
	competitorIDs, err := s.bidRepo.PendingFreelancerIDs(req.GigID, freelancerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.bidRepo.Create(bid); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateBid
		}
		return nil, apperrors.InternalError(err)
	}

	created, err := s.bidRepo.FindByID(bid.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Dispatch after the committed write. Failures are logged, never
	// surfaced: the bid exists regardless.
	if err := s.notificationService.NotifyNewBid(competitorIDs, gig.Title, gig.ID, bid.ID); err != nil {
		logger.Error("failed to notify competing bidders", "gig_id", gig.ID, "bid_id", bid.ID, "error", err)
	}

	freelancerName := freelancerID
	if created.Freelancer != nil {
		freelancerName = created.Freelancer.Username
	}
	if err := s.notificationService.NotifyBidReceived(gig.OwnerID, gig.Title, freelancerName, gig.ID, bid.ID); err != nil {
		logger.Error("failed to notify gig owner", "gig_id", gig.ID, "bid_id", bid.ID, "error", err)
	}

	return created, nil
}

// GetBidsForGig lists a gig's bids for its owner; everyone else is refused.
func (s *BidService) GetBidsForGig(gigID, requesterID string, query *dto.BidListQuery) (*dto.BidListResponse, error) {
	gig, err := s.gigRepo.FindByID(gigID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrGigNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if gig.OwnerID != requesterID {
		return nil, apperrors.NewForbiddenError("Not authorized to view bids for this gig")
	}

	bids, err := s.bidRepo.ListByGig(gigID, repositories.BidOrder(query.Order))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.BidListResponse{
		Bids:  bids,
		Total: len(bids),
	}, nil
}

// GetMyBids returns the freelancer's bids, each carrying the pending-bid
// count of its gig.
func (s *BidService) GetMyBids(freelancerID string) (*dto.MyBidsResponse, error) {
	bids, err := s.bidRepo.ListByFreelancer(freelancerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.MyBidItem, 0, len(bids))
	for _, bid := range bids {
		count, err := s.bidRepo.CountPending(bid.GigID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		items = append(items, dto.MyBidItem{Bid: bid, TotalBids: count})
	}

	return &dto.MyBidsResponse{
		Bids:  items,
		Total: len(items),
	}, nil
}

// GetBidCount exposes the pending-bid count of a gig. Unlike the bid list,
// the count is not owner-gated: freelancers use it to gauge competition.
func (s *BidService) GetBidCount(gigID string) (int64, error) {
	count, err := s.bidRepo.CountPending(gigID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}
