package models

// User is an account. There is deliberately no role column: the same account
// posts gigs and submits bids, and every authorization decision in the gig/bid
// lifecycle compares identities (ownerId, freelancerId), never a stored role.
type User struct {
	BaseModel
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
}

// UserStats aggregates marketplace activity for a profile page.
type UserStats struct {
	TotalBids     int64   `json:"totalBids"`
	HiredCount    int64   `json:"hiredCount"`
	TotalEarnings float64 `json:"totalEarnings"`
	TotalGigs     int64   `json:"totalGigs"`
}
