package services

import (
	"gigmarket_backend/internal/logger"
	"gigmarket_backend/internal/models"
	"gigmarket_backend/internal/repositories"
	"gigmarket_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// HireService is the only code path that resolves a gig. Both transitions,
// gig open->assigned and bid pending->hired, happen as guarded conditional
// updates inside one transaction, so the store's row-level atomicity does the
// serialization: of N concurrent hires on one gig, exactly one set of guards
// matches and the rest observe zero rows affected.
//
// Guard failures are ordinary outcomes of contention. They are returned as
// distinct error kinds and never logged as faults.
type HireService struct {
	db                  *gorm.DB
	bidRepo             *repositories.BidRepository
	gigRepo             *repositories.GigRepository
	notificationService *NotificationService
}

func NewHireService(
	db *gorm.DB,
	bidRepo *repositories.BidRepository,
	gigRepo *repositories.GigRepository,
	notificationService *NotificationService,
) *HireService {
	return &HireService{
		db:                  db,
		bidRepo:             bidRepo,
		gigRepo:             gigRepo,
		notificationService: notificationService,
	}
}

// Hire accepts one bid, rejects its pending siblings and closes the gig.
//
// The precondition reads (steps 1-4) are advisory: they produce friendly
// errors for the common cases but prove nothing about the state at write
// time. Correctness rests entirely on the guarded updates in the
// transaction, evaluated gig first, then bid: committing a hired bid under
// a gig that was never closed is the one ordering this must rule out.
//
// Repeating Hire after success deterministically fails the pending check
// with ErrBidNotPending; the cascade and the notifications never re-fire.
func (s *HireService) Hire(bidID, requesterID string) (*models.Bid, error) {
	bid, err := s.bidRepo.FindByID(bidID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBidNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.TransientStoreError(err)
	}

	gig, err := s.gigRepo.FindByID(bid.GigID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrGigNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.TransientStoreError(err)
	}

	if gig.OwnerID != requesterID {
		return nil, apperrors.NewForbiddenError("Not authorized to hire for this gig")
	}

	if bid.Status != models.BidStatusPending {
		return nil, apperrors.ErrBidNotPending
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Gig guard: open -> assigned iff still open. Zero rows means a
		// concurrent hire won; the transaction aborts with no effects.
		rows, err := s.gigRepo.AssignIfOpen(tx, gig.ID)
		if err != nil {
			return apperrors.TransientStoreError(err)
		}
		if rows == 0 {
			return apperrors.ErrGigAlreadyAssigned
		}

		// Bid guard: pending -> hired iff still pending and still on this
		// gig. Zero rows here means the bid was resolved under us after the
		// gig guard passed; abort, rolling the gig transition back too.
		rows, err = s.bidRepo.HireIfPending(tx, bidID, gig.ID)
		if err != nil {
			return apperrors.TransientStoreError(err)
		}
		if rows == 0 {
			return apperrors.ErrBidNoLongerPending
		}

		// Cascade: every sibling still pending at write time is rejected.
		// Bids already resolved are left alone.
		if _, err := s.bidRepo.RejectOtherPending(tx, gig.ID, bidID); err != nil {
			return apperrors.TransientStoreError(err)
		}

		return nil
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.TransientStoreError(err)
	}

	hired, err := s.bidRepo.FindByID(bidID)
	if err != nil {
		// The transition committed; failing the response now would lie to
		// the caller. Return what we already know.
		logger.Error("hire committed but re-read failed", "bid_id", bidID, "error", err)
		bid.Status = models.BidStatusHired
		hired = bid
	}

	// Post-commit, best-effort: the hired freelancer gets a durable
	// notification plus a live push. Dispatch failure cannot unwind the
	// hire, so it is logged and swallowed.
	if err := s.notificationService.NotifyHired(hired.FreelancerID, gig.Title, gig.ID, hired.ID); err != nil {
		logger.Error("failed to notify hired freelancer", "bid_id", hired.ID, "error", err)
	}

	return hired, nil
}
