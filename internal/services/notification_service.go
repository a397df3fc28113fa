package services

import (
	"encoding/json"

	"gigmarket_backend/internal/logger"
	"gigmarket_backend/internal/models"
	"gigmarket_backend/internal/repositories"
	"gigmarket_backend/internal/services/dto"
	"gigmarket_backend/pkg/apperrors"
	"gigmarket_backend/ws"

	"gorm.io/datatypes"
)

// Live-push event names, mirrored by the frontend socket client.
const (
	EventHired       = "hired"
	EventNewBid      = "newBid"
	EventBidReceived = "bidReceived"
)

// NotificationService is the dispatcher: it persists notification rows (the
// authoritative side effect of a state transition) and queues best-effort
// live push through the outbox. A failed or impossible push never bubbles up
// to the transition that triggered it.
type NotificationService struct {
	repo    repositories.NotificationRepository
	manager *ws.Manager
}

func NewNotificationService(repo repositories.NotificationRepository, manager *ws.Manager) *NotificationService {
	return &NotificationService{repo: repo, manager: manager}
}

// Notify persists one notification and enqueues its push event. Only the
// persisted write can fail the call; outbox trouble is logged and swallowed.
func (s *NotificationService) Notify(userID, message string, nType models.NotificationType, gigID, bidID *string) error {
	notification := &models.Notification{
		UserID:  userID,
		Type:    nType,
		Message: message,
		GigID:   gigID,
		BidID:   bidID,
	}

	if err := s.repo.CreateNotification(notification); err != nil {
		return apperrors.InternalError(err)
	}

	s.enqueuePush(userID, string(nType), map[string]any{
		"message": message,
		"gigId":   gigID,
		"bidId":   bidID,
	})

	return nil
}

// NotifyHired tells the winning freelancer. Called after the hire
// transaction commits; rejected bidders deliberately get nothing (they
// observe the rejection through their bid status).
func (s *NotificationService) NotifyHired(freelancerID, gigTitle, gigID, bidID string) error {
	message := "You have been hired for \"" + gigTitle + "\"!"

	notification := &models.Notification{
		UserID:  freelancerID,
		Type:    models.NotificationTypeHired,
		Message: message,
		GigID:   &gigID,
		BidID:   &bidID,
	}

	if err := s.repo.CreateNotification(notification); err != nil {
		return apperrors.InternalError(err)
	}

	s.enqueuePush(freelancerID, EventHired, map[string]any{
		"message":  message,
		"gigId":    gigID,
		"gigTitle": gigTitle,
		"bidId":    bidID,
	})

	return nil
}

// NotifyNewBid fans out to every freelancer with a live bid on the same gig.
func (s *NotificationService) NotifyNewBid(freelancerIDs []string, gigTitle, gigID, bidID string) error {
	if len(freelancerIDs) == 0 {
		return nil
	}

	message := "A new bid was submitted on \"" + gigTitle + "\""

	notifications := make([]*models.Notification, 0, len(freelancerIDs))
	for _, id := range freelancerIDs {
		notifications = append(notifications, &models.Notification{
			UserID:  id,
			Type:    models.NotificationTypeBid,
			Message: message,
			GigID:   &gigID,
			BidID:   &bidID,
		})
	}

	if err := s.repo.CreateBulkNotifications(notifications); err != nil {
		return apperrors.InternalError(err)
	}

	for _, id := range freelancerIDs {
		s.enqueuePush(id, EventNewBid, map[string]any{
			"message":  message,
			"gigId":    gigID,
			"gigTitle": gigTitle,
			"bidId":    bidID,
		})
	}

	return nil
}

// NotifyBidReceived tells the gig owner about a fresh bid.
func (s *NotificationService) NotifyBidReceived(ownerID, gigTitle, freelancerName, gigID, bidID string) error {
	message := "New bid received on \"" + gigTitle + "\" from " + freelancerName

	notification := &models.Notification{
		UserID:  ownerID,
		Type:    models.NotificationTypeBid,
		Message: message,
		GigID:   &gigID,
		BidID:   &bidID,
	}

	if err := s.repo.CreateNotification(notification); err != nil {
		return apperrors.InternalError(err)
	}

	s.enqueuePush(ownerID, EventBidReceived, map[string]any{
		"message":        message,
		"gigId":          gigID,
		"gigTitle":       gigTitle,
		"bidId":          bidID,
		"freelancerName": freelancerName,
	})

	return nil
}

func (s *NotificationService) enqueuePush(userID, event string, payload map[string]any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		logger.Error("failed to marshal push payload", "event", event, "error", err)
		return
	}

	evt := &models.NotificationEvent{
		UserID:  userID,
		Event:   event,
		Payload: datatypes.JSON(raw),
	}

	if err := s.repo.EnqueueEvent(evt); err != nil {
		logger.Error("failed to enqueue push event", "event", event, "user_id", userID, "error", err)
	}
}

// DispatchPending drains up to limit outbox rows into the session registry.
// Called by the background worker. A user with no connected sessions still
// consumes the row: the durable notification already carries the content,
// the push is a hint.
func (s *NotificationService) DispatchPending(limit int) (int, error) {
	events, err := s.repo.FetchPendingEvents(limit)
	if err != nil {
		return 0, err
	}

	dispatched := 0
	for _, event := range events {
		var payload any
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			logger.Error("corrupt push payload, dropping", "event_id", event.ID, "error", err)
			if err := s.repo.MarkEventFailed(event.ID); err != nil {
				logger.Error("failed to mark push event failed", "event_id", event.ID, "error", err)
			}
			continue
		}

		s.manager.SendToUser(event.UserID, ws.Event{Event: event.Event, Payload: payload})

		if err := s.repo.MarkEventSent(event.ID); err != nil {
			logger.Error("failed to mark push event sent", "event_id", event.ID, "error", err)
			continue
		}
		dispatched++
	}

	return dispatched, nil
}

// --- Notifications page ---

func (s *NotificationService) GetUserNotifications(userID string, query *dto.NotificationListQuery) (*dto.NotificationListResponse, error) {
	criteria := repositories.NotificationCriteria{
		UnreadOnly: query.UnreadOnly,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}
	if criteria.Page <= 0 {
		criteria.Page = 1
	}
	if criteria.PageSize <= 0 {
		criteria.PageSize = 20
	}

	notifications, total, err := s.repo.FindUserNotifications(userID, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.NotificationListResponse{
		Notifications: notifications,
		Total:         total,
	}, nil
}

func (s *NotificationService) GetUnreadCount(userID string) (int64, error) {
	count, err := s.repo.GetUnreadCount(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

// MarkRead is owner-scoped and idempotent: re-marking a read notification
// succeeds without effect.
func (s *NotificationService) MarkRead(notificationID, userID string) error {
	err := s.repo.MarkAsRead(notificationID, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(userID string) error {
	if err := s.repo.MarkAllAsRead(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationService) Delete(notificationID, userID string) error {
	err := s.repo.DeleteNotification(notificationID, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
