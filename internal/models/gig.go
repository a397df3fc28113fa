package models

type GigStatus string

const (
	GigStatusOpen     GigStatus = "open"
	GigStatusAssigned GigStatus = "assigned"
)

// Gig is a paid work item posted by a client. Status moves open -> assigned
// exactly once, and only through the hire transactor's guarded update; no
// other code path writes it.
type Gig struct {
	BaseModel
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	Budget      float64   `gorm:"not null" json:"budget"`
	OwnerID     string    `gorm:"type:uuid;not null;index" json:"ownerId"`
	Status      GigStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	ViewCount   int64     `gorm:"not null;default:0" json:"viewCount"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}
