package models

// View is an append-only record of one visitor opening a gig, kept only for
// the dedup window (a background worker purges older rows, standing in for
// the TTL index the store itself does not provide). ViewerID is NULL for
// anonymous visitors; anonymous views therefore dedup against each other,
// which undercounts distinct anonymous visitors but avoids fingerprinting.
type View struct {
	BaseModel
	GigID    string  `gorm:"type:uuid;not null;index:idx_views_gig_viewer_created" json:"gigId"`
	ViewerID *string `gorm:"type:uuid;index:idx_views_gig_viewer_created" json:"viewerId,omitempty"`
}
