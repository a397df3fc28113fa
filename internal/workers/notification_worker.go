package workers

import (
	"context"
	"time"

	"gigmarket_backend/internal/logger"
	"gigmarket_backend/internal/services"
)

const dispatchBatchSize = 100

// NotificationWorker drains pending outbox events into live WebSocket
// sessions. Events for offline users stay delivered through the
// notifications table, so a missed push is not a lost notification.
type NotificationWorker struct {
	notificationService *services.NotificationService
	interval            time.Duration
}

func NewNotificationWorker(notificationService *services.NotificationService, interval time.Duration) *NotificationWorker {
	return &NotificationWorker{
		notificationService: notificationService,
		interval:            interval,
	}
}

func (w *NotificationWorker) Start(ctx context.Context) {
	go w.dispatchLoop(ctx)
}

func (w *NotificationWorker) dispatchLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Notification worker stopped")
			return
		case <-ticker.C:
			sent, err := w.notificationService.DispatchPending(dispatchBatchSize)
			if err != nil {
				logger.WorkerLog("notification", "dispatch_pending", err)
				continue
			}
			if sent > 0 {
				logger.Info("Dispatched notification events", "count", sent)
			}
		}
	}
}
