package models

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationTypeHired  NotificationType = "hired"
	NotificationTypeBid    NotificationType = "bid"
	NotificationTypeSystem NotificationType = "system"
)

// Notification is the durable record behind the notifications page. It is the
// authoritative side effect of a state transition; the websocket push derived
// from it is best-effort.
type Notification struct {
	BaseModel
	UserID  string           `gorm:"type:uuid;not null;index:idx_notifications_user_read" json:"userId"`
	Type    NotificationType `gorm:"type:varchar(20);not null;default:'system'" json:"type"`
	Message string           `gorm:"not null" json:"message"`
	GigID   *string          `gorm:"type:uuid" json:"gigId,omitempty"`
	BidID   *string          `gorm:"type:uuid" json:"bidId,omitempty"`
	IsRead  bool             `gorm:"not null;default:false;index:idx_notifications_user_read" json:"read"`
	ReadAt  *time.Time       `json:"readAt,omitempty"`
}

type NotificationEventStatus string

const (
	NotificationEventPending NotificationEventStatus = "pending"
	NotificationEventSent    NotificationEventStatus = "sent"
	NotificationEventFailed  NotificationEventStatus = "failed"
)

// NotificationEvent is an outbox row for live push. Writing it is cheap and
// durable; a worker drains pending rows and hands them to the websocket
// session registry. Push failure marks the row failed and is never surfaced
// to the request that produced it.
type NotificationEvent struct {
	BaseModel
	UserID   string                  `gorm:"type:uuid;not null;index" json:"userId"`
	Event    string                  `gorm:"not null" json:"event"`
	Payload  datatypes.JSON          `gorm:"type:jsonb" json:"payload"`
	Status   NotificationEventStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Attempts int                     `gorm:"not null;default:0" json:"attempts"`
}
