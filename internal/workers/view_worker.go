package workers

import (
	"context"
	"time"

	"gigmarket_backend/internal/logger"
	"gigmarket_backend/internal/services"
)

// ViewWorker deletes view records older than the dedup window. The counter
// on the gig is untouched, only the dedup history is trimmed.
type ViewWorker struct {
	viewService *services.ViewService
	interval    time.Duration
}

func NewViewWorker(viewService *services.ViewService, interval time.Duration) *ViewWorker {
	return &ViewWorker{
		viewService: viewService,
		interval:    interval,
	}
}

func (w *ViewWorker) Start(ctx context.Context) {
	go w.purgeLoop(ctx)
}

func (w *ViewWorker) purgeLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("View worker stopped")
			return
		case <-ticker.C:
			deleted, err := w.viewService.PurgeExpired()
			if err != nil {
				logger.WorkerLog("views", "purge_expired", err)
				continue
			}
			if deleted > 0 {
				logger.Info("Purged expired view records", "count", deleted)
			}
		}
	}
}
