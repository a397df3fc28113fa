package repositories

import (
	"errors"
	"time"

	"gigmarket_backend/internal/models"

	"gorm.io/gorm"
)

type ViewRepository struct {
	db *gorm.DB
}

func NewViewRepository(db *gorm.DB) *ViewRepository {
	return &ViewRepository{db: db}
}

// HasRecent reports whether the (gig, viewer) pair already has a view inside
// the window. A nil viewerID matches only other anonymous views.
func (r *ViewRepository) HasRecent(gigID string, viewerID *string, since time.Time) (bool, error) {
	query := r.db.Model(&models.View{}).
		Where("gig_id = ? AND created_at >= ?", gigID, since)

	if viewerID == nil {
		query = query.Where("viewer_id IS NULL")
	} else {
		query = query.Where("viewer_id = ?", *viewerID)
	}

	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}

// RecordAndIncrement inserts the view row and bumps the gig counter in one
// transaction. The counter update is a single-statement in-place increment,
// never a read-modify-write, so concurrent viewers cannot lose updates.
func (r *ViewRepository) RecordAndIncrement(view *models.View) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(view).Error; err != nil {
			return err
		}

		result := tx.Model(&models.Gig{}).
			Where("id = ?", view.GigID).
			Update("view_count", gorm.Expr("view_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.New("gig disappeared while recording view")
		}
		return nil
	})
}

// DeleteOlderThan purges view rows outside the retention window. Postgres has
// no TTL index, so a worker calls this on a schedule.
func (r *ViewRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.View{})
	return result.RowsAffected, result.Error
}

func (r *ViewRepository) CurrentViewCount(gigID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Gig{}).
		Where("id = ?", gigID).
		Pluck("view_count", &count).Error
	return count, err
}
