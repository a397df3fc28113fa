package repositories

import (
	"errors"
	"strings"

	"gigmarket_backend/internal/models"

	"gorm.io/gorm"
)

var ErrBidNotFound = errors.New("bid not found")

// BidOrder selects the listing order for a gig's bids.
type BidOrder string

const (
	BidOrderNewest    BidOrder = "newest"     // recency descending (default)
	BidOrderPriceAsc  BidOrder = "price_asc"  // pending first, then price ascending
	BidOrderPriceDesc BidOrder = "price_desc" // pending first, then price descending
)

type BidRepository struct {
	db *gorm.DB
}

func NewBidRepository(db *gorm.DB) *BidRepository {
	return &BidRepository{db: db}
}

func (r *BidRepository) Create(bid *models.Bid) error {
	return r.db.Create(bid).Error
}

func (r *BidRepository) FindByID(id string) (*models.Bid, error) {
	var bid models.Bid
	err := r.db.Preload("Freelancer").First(&bid, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidNotFound
		}
		return nil, err
	}
	return &bid, nil
}

func (r *BidRepository) FindByGigAndFreelancer(gigID, freelancerID string) (*models.Bid, error) {
	var bid models.Bid
	err := r.db.First(&bid, "gig_id = ? AND freelancer_id = ?", gigID, freelancerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidNotFound
		}
		return nil, err
	}
	return &bid, nil
}

func (r *BidRepository) ListByGig(gigID string, order BidOrder) ([]models.Bid, error) {
	query := r.db.Preload("Freelancer").Where("gig_id = ?", gigID)

	switch order {
	case BidOrderPriceAsc:
		// Pending over resolved, then price, then recency as the tie-break.
		query = query.Order("CASE WHEN status = 'pending' THEN 0 ELSE 1 END").
			Order("price ASC").Order("created_at DESC")
	case BidOrderPriceDesc:
		query = query.Order("CASE WHEN status = 'pending' THEN 0 ELSE 1 END").
			Order("price DESC").Order("created_at DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var bids []models.Bid
	err := query.Find(&bids).Error
	return bids, err
}

func (r *BidRepository) ListByFreelancer(freelancerID string) ([]models.Bid, error) {
	var bids []models.Bid
	err := r.db.Preload("Gig").
		Where("freelancer_id = ?", freelancerID).
		Order("created_at DESC").
		Find(&bids).Error
	return bids, err
}

// CountPending counts unresolved bids; it is public information used by
// freelancers to gauge competition, unlike the bid contents themselves.
func (r *BidRepository) CountPending(gigID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Bid{}).
		Where("gig_id = ? AND status = ?", gigID, models.BidStatusPending).
		Count(&count).Error
	return count, err
}

// PendingFreelancerIDs returns the freelancers with a live bid on the gig,
// excluding one (the author of a new competing bid).
func (r *BidRepository) PendingFreelancerIDs(gigID, excludeFreelancerID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Bid{}).
		Where("gig_id = ? AND status = ? AND freelancer_id <> ?",
			gigID, models.BidStatusPending, excludeFreelancerID).
		Pluck("freelancer_id", &ids).Error
	return ids, err
}

// HireIfPending is the bid-side guard: pending -> hired only if the row still
// reads pending and still belongs to the expected gig at write time.
func (r *BidRepository) HireIfPending(tx *gorm.DB, bidID, gigID string) (int64, error) {
	result := tx.Model(&models.Bid{}).
		Where("id = ? AND gig_id = ? AND status = ?", bidID, gigID, models.BidStatusPending).
		Update("status", models.BidStatusHired)
	return result.RowsAffected, result.Error
}

// RejectOtherPending is the cascade: every sibling bid still pending at write
// time becomes rejected. Bids already resolved are left untouched.
func (r *BidRepository) RejectOtherPending(tx *gorm.DB, gigID, hiredBidID string) (int64, error) {
	result := tx.Model(&models.Bid{}).
		Where("gig_id = ? AND id <> ? AND status = ?", gigID, hiredBidID, models.BidStatusPending).
		Update("status", models.BidStatusRejected)
	return result.RowsAffected, result.Error
}

func (r *BidRepository) CountByFreelancer(freelancerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Bid{}).Where("freelancer_id = ?", freelancerID).Count(&count).Error
	return count, err
}

func (r *BidRepository) HiredStats(freelancerID string) (count int64, earnings float64, err error) {
	row := r.db.Model(&models.Bid{}).
		Select("COUNT(*), COALESCE(SUM(price), 0)").
		Where("freelancer_id = ? AND status = ?", freelancerID, models.BidStatusHired).
		Row()
	err = row.Scan(&count, &earnings)
	return count, earnings, err
}

// IsUniqueViolation reports whether err is the unique-index violation raised
// when two identical bids race past the duplicate pre-check.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// pgx surfaces SQLSTATE 23505 in the error text; gorm does not always
	// translate it.
	return strings.Contains(err.Error(), "23505") ||
		strings.Contains(err.Error(), "duplicate key value")
}
