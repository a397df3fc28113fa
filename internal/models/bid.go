package models

type BidStatus string

const (
	BidStatusPending  BidStatus = "pending"
	BidStatusHired    BidStatus = "hired"
	BidStatusRejected BidStatus = "rejected"
)

// Bid is a freelancer's offer on a gig. Status is monotonic:
// pending -> hired or pending -> rejected, both terminal. The composite
// unique index is the authority on one-bid-per-(gig,freelancer); the
// service-level duplicate check only exists to produce a friendly error
// before the insert races.
type Bid struct {
	BaseModel
	GigID        string    `gorm:"type:uuid;not null;uniqueIndex:idx_bids_gig_freelancer;index" json:"gigId"`
	FreelancerID string    `gorm:"type:uuid;not null;uniqueIndex:idx_bids_gig_freelancer;index" json:"freelancerId"`
	Message      string    `gorm:"not null" json:"message"`
	Price        float64   `gorm:"not null" json:"price"`
	Status       BidStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	Gig        *Gig  `gorm:"foreignKey:GigID" json:"gig,omitempty"`
	Freelancer *User `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
}
