package repositories

import (
	"errors"
	"strings"

	"gigmarket_backend/internal/models"

	"gorm.io/gorm"
)

var ErrGigNotFound = errors.New("gig not found")

type GigRepository struct {
	db *gorm.DB
}

func NewGigRepository(db *gorm.DB) *GigRepository {
	return &GigRepository{db: db}
}

// GigCriteria drives the public gig listing.
type GigCriteria struct {
	Search string `form:"search"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (r *GigRepository) Create(gig *models.Gig) error {
	return r.db.Create(gig).Error
}

func (r *GigRepository) FindByID(id string) (*models.Gig, error) {
	var gig models.Gig
	err := r.db.Preload("Owner").First(&gig, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, err
	}
	return &gig, nil
}

// ListOpen returns open gigs newest-first with an optional free-text filter
// over title and description. The filter is a plain ILIKE predicate; anything
// smarter belongs to an external search indexer.
func (r *GigRepository) ListOpen(criteria GigCriteria) ([]models.Gig, int64, error) {
	query := r.db.Model(&models.Gig{}).Where("status = ?", models.GigStatusOpen)

	if search := strings.TrimSpace(criteria.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (criteria.Page - 1) * criteria.Limit

	var gigs []models.Gig
	err := query.Preload("Owner").
		Order("created_at DESC").
		Limit(criteria.Limit).Offset(offset).
		Find(&gigs).Error

	return gigs, total, err
}

func (r *GigRepository) ListByOwner(ownerID string) ([]models.Gig, error) {
	var gigs []models.Gig
	err := r.db.Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&gigs).Error
	return gigs, err
}

// AssignIfOpen is the gig-side guard of the hire transaction: flip
// open -> assigned only if the row still reads open at write time. The
// returned row count is the whole point; zero means a concurrent hire
// already closed this gig.
func (r *GigRepository) AssignIfOpen(tx *gorm.DB, gigID string) (int64, error) {
	result := tx.Model(&models.Gig{}).
		Where("id = ? AND status = ?", gigID, models.GigStatusOpen).
		Update("status", models.GigStatusAssigned)
	return result.RowsAffected, result.Error
}

// DeleteIfOpen removes an open gig owned by ownerID. Zero rows affected means
// the gig was concurrently assigned (or already gone).
func (r *GigRepository) DeleteIfOpen(gigID, ownerID string) (int64, error) {
	result := r.db.
		Where("id = ? AND owner_id = ? AND status = ?", gigID, ownerID, models.GigStatusOpen).
		Delete(&models.Gig{})
	return result.RowsAffected, result.Error
}

func (r *GigRepository) CountByOwner(ownerID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Gig{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}
